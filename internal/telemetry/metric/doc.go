// Package metric provides Prometheus metrics for respkv.
//
//   - prometheus.go: registry, command and connection metrics, /metrics handler
//   - collector.go: store population collector
//
// Every metric lives under the "respkv" namespace. A Registry owns its own
// prometheus.Registry so tests can build isolated instances; the process
// uses Global.
package metric
