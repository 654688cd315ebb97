// Package httpserver provides the operations HTTP endpoint of respkv.
//
// It serves Prometheus metrics and liveness/readiness checks using the
// standard library net/http:
//
//	GET /metrics   Prometheus exposition
//	GET /health    always 200 while the process runs
//	GET /ready     200 once the RESP listener accepts connections, else 503
package httpserver
