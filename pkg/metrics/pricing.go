package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Price quote sources reported on the resolutions counter.
const (
	SourceRemote = "remote"
	SourceLocal  = "local"
	SourceCache  = "cache"
)

// PricingMetrics tracks price resolution outcomes. A nil receiver is a
// no-op so callers never need to guard instrumentation sites.
type PricingMetrics struct {
	resolutions   *prometheus.CounterVec
	remoteLatency prometheus.Histogram
	fallbacks     prometheus.Counter
}

// NewPricingMetrics registers the pricing collectors on reg.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	m := &PricingMetrics{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "diamondlab",
			Subsystem: "pricing",
			Name:      "resolutions_total",
			Help:      "Price resolutions by quote source.",
		}, []string{"source"}),
		remoteLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "diamondlab",
			Subsystem: "pricing",
			Name:      "remote_latency_seconds",
			Help:      "Latency of remote price quote calls.",
			Buckets:   prometheus.DefBuckets,
		}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "diamondlab",
			Subsystem: "pricing",
			Name:      "remote_fallbacks_total",
			Help:      "Remote quote failures answered by local computation.",
		}),
	}

	reg.MustRegister(m.resolutions, m.remoteLatency, m.fallbacks)
	return m
}

// ObserveResolution records one resolved quote and its source.
func (m *PricingMetrics) ObserveResolution(source string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(source).Inc()
}

// ObserveRemoteLatency records the duration of a remote quote call.
func (m *PricingMetrics) ObserveRemoteLatency(seconds float64) {
	if m == nil {
		return
	}
	m.remoteLatency.Observe(seconds)
}

// ObserveFallback records a remote failure that degraded to local math.
func (m *PricingMetrics) ObserveFallback() {
	if m == nil {
		return
	}
	m.fallbacks.Inc()
}
