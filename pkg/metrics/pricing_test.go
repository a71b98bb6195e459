package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPricingMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *PricingMetrics
	m.ObserveResolution(SourceRemote)
	m.ObserveRemoteLatency(0.2)
	m.ObserveFallback()
}

func TestPricingMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPricingMetrics(reg)

	m.ObserveResolution(SourceRemote)
	m.ObserveResolution(SourceLocal)
	m.ObserveResolution(SourceLocal)
	m.ObserveFallback()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.resolutions.WithLabelValues(SourceRemote)))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.resolutions.WithLabelValues(SourceLocal)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.fallbacks))
}
