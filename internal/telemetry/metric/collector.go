package metric

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/respkv-go/internal/storage/memory"
)

// StatsSource reports store population.
type StatsSource interface {
	Stats() memory.Stats
}

// StoreCollector exports store sizes at scrape time.
type StoreCollector struct {
	src StatsSource

	keys   *prometheus.Desc
	fields *prometheus.Desc
}

// NewStoreCollector creates a collector reading from src.
func NewStoreCollector(src StatsSource) *StoreCollector {
	return &StoreCollector{
		src: src,
		keys: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "store", "keys"),
			"Keys held in the store, by namespace.",
			[]string{"space"}, nil,
		),
		fields: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "store", "hash_fields"),
			"Fields held across all hashes.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *StoreCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.keys
	ch <- c.fields
}

// Collect implements prometheus.Collector.
func (c *StoreCollector) Collect(ch chan<- prometheus.Metric) {
	st := c.src.Stats()
	ch <- prometheus.MustNewConstMetric(c.keys, prometheus.GaugeValue, float64(st.StringKeys), "strings")
	ch <- prometheus.MustNewConstMetric(c.keys, prometheus.GaugeValue, float64(st.HashKeys), "hashes")
	ch <- prometheus.MustNewConstMetric(c.fields, prometheus.GaugeValue, float64(st.HashFields))
}
