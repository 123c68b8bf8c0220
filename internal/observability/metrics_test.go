package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveRender(t *testing.T) {
	m := MustNewMetrics(prometheus.NewRegistry())

	m.ObserveRender("pdf", 10*time.Millisecond, nil, "")
	m.ObserveRender("pdf", 10*time.Millisecond, errors.New("boom"), "render_error")

	assert.Equal(t, 1, testutil.CollectAndCount(m.renderFailures))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.renderFailures.WithLabelValues("pdf", "render_error")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.renderDuration))
}

func TestMetrics_Cache(t *testing.T) {
	m := MustNewMetrics(prometheus.NewRegistry())

	m.CacheHit()
	m.CacheHit()
	m.CacheMiss()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.cacheLookups.WithLabelValues("miss")))
}

func TestMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := MustNewMetrics(reg)
	second := MustNewMetrics(reg)

	first.ObserveAICall("optimize", time.Second, nil)
	second.ObserveAICall("optimize", time.Second, nil)

	require.Same(t, first.aiDuration, second.aiDuration)
	assert.Equal(t, 1, testutil.CollectAndCount(second.aiDuration))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRender("pdf", time.Second, nil, "")
		m.ObserveAICall("optimize", time.Second, nil)
		m.CacheHit()
		m.CacheMiss()
	})
}

func TestMetrics_ObserveRequest(t *testing.T) {
	m := MustNewMetrics(prometheus.NewRegistry())

	m.ObserveRequest("POST /v1/check", 200, time.Millisecond)
	m.ObserveRequest("", 404, time.Millisecond)

	assert.Equal(t, 2, testutil.CollectAndCount(m.httpDuration))
}
