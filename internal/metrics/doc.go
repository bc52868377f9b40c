// Package metrics records configuration load and render outcomes.
//
// Components receive a Recorder. NoopRecorder is the default and costs
// nothing; PrometheusRecorder is injected by `docsite watch --metrics-addr`
// and served through HTTPHandler:
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	http.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics
