// Package controller holds the HTTP middlewares shared by the API server.
//
//   - WithCORS answers browser clients of an origin allowlist and preflights.
//   - WithLogger tags each request with an ID and writes the access log.
//   - WithMetrics counts requests and their latency per route.
//   - PprofMux serves the runtime profiles.
package controller
