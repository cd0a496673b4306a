// Package prometheus provides Prometheus collectors for phoneAuth metrics.
//
// [NewPrometheusExporter] accepts a [phoneAuth.Engine] and exposes an [http.Handler]
// that renders all phoneAuth counters and histograms in Prometheus text exposition
// format. Counter names are prefixed phoneauth_*_total; the single histogram is
// phoneauth_request_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate engine state.
package prometheus
