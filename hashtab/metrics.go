// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashtab

import "github.com/prometheus/client_golang/prometheus"

// MetricsCollector adapts a named Table into a prometheus.Collector,
// exposing occupancy and chain-length gauges the way cmd/ocprometheus
// exposes OpenConfig values: one Collect call walks GetStats and emits a
// gauge per table/metric pair, nothing cached between scrapes.
type MetricsCollector[E any, K comparable] struct {
	name string
	t    *Table[E, K]

	used        *prometheus.Desc
	size        *prometheus.Desc
	buckets     *prometheus.Desc
	maxChainLen *prometheus.Desc
}

// NewMetricsCollector builds a Collector for t, labeling every metric with
// name (e.g. the table's logical purpose: "sessions", "routes") and the
// physical table index (0 or 1, the latter only present mid-rehash).
func NewMetricsCollector[E any, K comparable](name string, t *Table[E, K]) *MetricsCollector[E, K] {
	labels := []string{"table", "index"}
	return &MetricsCollector[E, K]{
		name: name,
		t:    t,
		used: prometheus.NewDesc(
			"hashtab_used_elements", "Number of elements stored.", labels, nil),
		size: prometheus.NewDesc(
			"hashtab_capacity_elements", "Theoretical element capacity at current size.", labels, nil),
		buckets: prometheus.NewDesc(
			"hashtab_buckets", "Number of buckets allocated.", labels, nil),
		maxChainLen: prometheus.NewDesc(
			"hashtab_max_chain_length", "Longest probe chain observed.", labels, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *MetricsCollector[E, K]) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.used
	ch <- c.size
	ch <- c.buckets
	ch <- c.maxChainLen
}

// Collect implements prometheus.Collector.
func (c *MetricsCollector[E, K]) Collect(ch chan<- prometheus.Metric) {
	for _, s := range c.t.GetStats() {
		index := indexLabel(s.TableIndex)
		ch <- prometheus.MustNewConstMetric(c.used, prometheus.GaugeValue, float64(s.Used), c.name, index)
		ch <- prometheus.MustNewConstMetric(c.size, prometheus.GaugeValue, float64(s.Size), c.name, index)
		ch <- prometheus.MustNewConstMetric(c.buckets, prometheus.GaugeValue, float64(s.Buckets), c.name, index)
		ch <- prometheus.MustNewConstMetric(c.maxChainLen, prometheus.GaugeValue, float64(s.MaxChainLen), c.name, index)
	}
}

func indexLabel(ti int) string {
	if ti == 0 {
		return "0"
	}
	return "1"
}
