// Package http provides the HTTP API implementation.
//
// The HTTP server exposes endpoints for:
//   - Liveness checks (/check)
//   - Instance metadata (/info)
//   - Prometheus metrics (/metrics)
package http
