// Package metrics provides observability hooks for link check runs.
//
// Components receive a Recorder and default to NoopRecorder, so metrics
// collection never requires nil checks at call sites:
//
//	checker := linkcheck.New(linkcheck.WithRecorder(metrics.NoopRecorder{}))
//
// When a metrics file is configured the CLI swaps in a PrometheusRecorder
// and dumps its registry with WriteTextfile after the run, in the format
// read by the node_exporter textfile collector.
package metrics
