// Package template provides the stock document catalog and keyword matching.
//
// Templates are complete HTML documents embedded at build time. The catalog
// validates each document on load (required libraries, structural tags,
// scripts) and rejects invalid entries without failing the rest. The matcher
// scores a natural-language request against each template's keyword sets and
// returns the best candidate, if any.
package template
