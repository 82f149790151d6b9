// Package metrics records build and preview metrics.
//
// Components hold a Recorder and default to NoopRecorder, so metrics stay
// optional without nil checks at call sites. The preview server swaps in a
// PrometheusRecorder and exposes it through HTTPHandler:
//
//	reg := prometheus.NewRegistry()
//	builder := build.New(cfg, registry).WithRecorder(metrics.NewPrometheusRecorder(reg))
//	mux.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics
