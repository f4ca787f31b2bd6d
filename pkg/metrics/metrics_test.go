package metrics_test

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinetrip-backend/pkg/metrics"
)

func TestMetrics_RegisterAndObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New()
	require.NoError(t, m.Register(reg))

	m.ObserveResolve(metrics.OutcomeCacheHit, false)
	m.ObserveResolve(metrics.OutcomeCacheHit, false)
	m.ObserveResolve(metrics.OutcomeGenerated, true)
	m.ObserveGeneration("scenes", 1.2, nil)
	m.ObserveGeneration("scenes", 0.2, errors.New("boom"))
	m.ObserveMovieLookup("fallback")
	m.ObserveHTTPRequest("GET", "/llm/scenes/:tmdbId", "200", 0.05)

	n, err := testutil.GatherAndCount(reg, metrics.MetricSceneResolveTotal)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "two label combinations")

	n, err = testutil.GatherAndCount(reg, metrics.MetricGenerationDuration)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObserveResolve(metrics.OutcomeError, false)
		m.ObserveGeneration("checklist", 1, nil)
		m.ObserveMovieLookup("found")
		m.ObserveHTTPRequest("GET", "/", "200", 0.1)
	})
}
