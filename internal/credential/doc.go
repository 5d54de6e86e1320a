// Package credential detects third-party service usage in generated documents
// and injects the corresponding API keys.
//
// Each supported service has a strategy: a set of detection patterns, a
// placeholder token, and an injection rule. Most services share the generic
// strategy (replace placeholder, rewrite the key assignment); Mapbox and
// Gemini need service-specific injection because their initialization may be
// missing from the document entirely.
package credential
