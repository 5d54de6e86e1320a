// Package orchestrator runs the full generation pipeline: template matching,
// message building, backend generation with retry, post-processing,
// credential detection, and snapshot recording.
//
// Progress is published on an event bus as the pipeline advances, so
// transports can stream it to clients as it happens.
package orchestrator
