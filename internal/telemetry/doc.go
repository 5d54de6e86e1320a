// Package telemetry provides OpenTelemetry instrumentation for pagesmithd.
//
// It owns the tracer and meter providers and their OTLP export pipelines.
// Telemetry is optional: when disabled the global no-op providers stay in
// place and instrumented packages pay nothing. Export failures degrade the
// instance instead of crashing the daemon.
package telemetry
