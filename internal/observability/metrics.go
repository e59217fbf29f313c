package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Metrics aggregates the engine's operational counters. Labels stay low
// cardinality: outcomes and statuses only, never IDs or codes.
type Metrics struct {
	Registry *prometheus.Registry

	ResolveTotal    *prometheus.CounterVec
	ResolveDuration prometheus.Histogram
	LifecycleTotal  *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		ResolveTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tarife",
			Subsystem: "rating",
			Name:      "resolve_total",
			Help:      "Price resolutions by outcome.",
		}, []string{"outcome"}),
		ResolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tarife",
			Subsystem: "rating",
			Name:      "resolve_duration_seconds",
			Help:      "Price resolution latency.",
			Buckets:   prometheus.DefBuckets,
		}),
		LifecycleTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tarife",
			Subsystem: "tariff",
			Name:      "lifecycle_transitions_total",
			Help:      "Tariff lifecycle transitions by target status.",
		}, []string{"transition"}),
	}

	m.Registry.MustRegister(
		m.ResolveTotal,
		m.ResolveDuration,
		m.LifecycleTotal,
	)
	return m
}

// NewResolveTimer starts a latency observation; call ObserveDuration when the
// resolution finishes regardless of outcome.
func (m *Metrics) NewResolveTimer() *prometheus.Timer {
	return prometheus.NewTimer(m.ResolveDuration)
}

var Module = fx.Module("observability",
	fx.Provide(New),
)
