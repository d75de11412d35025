// Package metric provides Prometheus metrics for ztctl.
//
// This package implements client-side metrics collection:
//
//   - prometheus.go: Registry, round tripper instrumentation, textfile export
//   - collector.go: Controller inventory collection
//
// Metrics include:
//
//   - Request counters by status code and method
//   - Request latency histograms
//   - Network and member gauges
//
// ztctl is a short-lived process, so metrics are usually written to a
// node_exporter textfile rather than served over HTTP.
package metric
