// Package metrics exports Prometheus metrics for tier recommendations.
//
// A Collector registers one counter of recommendations per tier and
// histograms of scores, token estimates, cost estimates and confidence:
//
//	reg := prometheus.NewRegistry()
//	c := metrics.NewCollector(reg)
//	runner := batch.NewRunner(analyzer, batch.WithObserver(c))
//
// Pass a nil Registerer to create unregistered collectors.
package metrics
