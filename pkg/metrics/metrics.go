package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles persistence instrumentation on a private registry so
// embedding applications can expose or scrape it as they see fit.
type Metrics struct {
	registry *prometheus.Registry

	WritesTotal   *prometheus.CounterVec
	WriteFailures *prometheus.CounterVec
	WritesDropped *prometheus.CounterVec
	LoadDuration  prometheus.Histogram
}

// New registers the persistence collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	writesTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storage_writes_total",
		Help: "Durable slot writes issued, by slot key",
	}, []string{"key"})

	writeFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storage_write_failures_total",
		Help: "Durable slot writes that returned an error, by slot key",
	}, []string{"key"})

	writesDropped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storage_writes_coalesced_total",
		Help: "Slot writes superseded by a newer value before hitting storage",
	}, []string{"key"})

	loadDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "storage_load_duration_seconds",
		Help:    "Time spent loading all slots at startup",
		Buckets: prometheus.DefBuckets,
	})

	registry.MustRegister(writesTotal, writeFailures, writesDropped, loadDuration)

	return &Metrics{
		registry:      registry,
		WritesTotal:   writesTotal,
		WriteFailures: writeFailures,
		WritesDropped: writesDropped,
		LoadDuration:  loadDuration,
	}
}

// Registry exposes the underlying registry. The collectors live on a
// private registry rather than the global one; mounting a scrape
// endpoint or logging gathered families is the embedding
// application's job, not this package's.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
