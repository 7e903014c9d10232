// Package observability wires OpenTelemetry tracing and metrics for the API.
//
// Setup initializes both providers against an OTLP HTTP collector and
// registers them globally; the returned Provider is shut down on exit.
//
//	prov, err := observability.Setup(ctx, cfg.Observability, "nestora-api")
//	defer prov.Shutdown(ctx)
//
// AuthMetrics carries the domain instruments: registrations, login outcomes,
// and token verification latency.
package observability
