// Package server serves the rendered site for local preview together with
// health and Prometheus endpoints.
package server
