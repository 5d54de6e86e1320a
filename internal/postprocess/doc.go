// Package postprocess normalizes raw backend output into a servable HTML
// document.
//
// Clean strips markdown fences the model sometimes wraps around the
// document. Enhance injects Chart.js when the request asked for charts but
// the document forgot the library. RepairTemplate restores the template's
// required libraries after personalization. Every function is pure and
// idempotent; none of them can fail.
package postprocess
