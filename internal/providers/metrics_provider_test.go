package providers

import (
	"context"
	"survey/internal/models"
	"survey/internal/structures"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- minimal mock for ResponseStoreInterface ---

type metricsTestStore struct {
	durable bool
}

func (m *metricsTestStore) Create(_ context.Context, _ *models.SurveyResponse) (string, error) {
	return "", nil
}
func (m *metricsTestStore) QueryByUser(_ context.Context, _ string) ([]*models.SurveyResponse, error) {
	return nil, nil
}
func (m *metricsTestStore) QueryAll(_ context.Context, _, _ int) ([]*models.SurveyResponse, error) {
	return nil, nil
}
func (m *metricsTestStore) Durable() bool                 { return m.durable }
func (m *metricsTestStore) Close(_ context.Context) error { return nil }

func useTestRegistry(t *testing.T) *prometheus.Registry {
	t.Helper()
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = prometheus.NewRegistry()
		prometheus.DefaultGatherer = prometheus.DefaultRegisterer.(prometheus.Gatherer)
	})
	return reg
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	require.NoError(t, c.Write(&metric))
	return metric.GetCounter().GetValue()
}

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf, &metricsTestStore{})
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	// Ensure no-op methods don't panic
	m.IncRequestsTotal("/test", 200)
	m.ObserveRequestDuration("/test", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncSubmissions("created")
	m.IncIdentityVerifications("verified")
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	useTestRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf, &metricsTestStore{durable: true})
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_IncrementCounters(t *testing.T) {
	useTestRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf, &metricsTestStore{}).(*MetricsProvider)

	m.IncRequestsTotal("/survey/results", 200)
	m.IncRequestsTotal("/survey/results", 422)
	m.ObserveRequestDuration("/survey/results", 5*time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncSubmissions("created")
	m.IncSubmissions("created")
	m.IncIdentityVerifications("rejected")

	assert.Equal(t, float64(1), counterValue(t, m.requestsTotal.WithLabelValues("/survey/results", "4xx")))
	assert.Equal(t, float64(2), counterValue(t, m.submissionsTotal.WithLabelValues("created")))
	assert.Equal(t, float64(1), counterValue(t, m.identityVerifications.WithLabelValues("rejected")))
}

func TestMetricsProvider_StoreDurableGauge(t *testing.T) {
	reg := useTestRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	NewMetricsProvider(conf, &metricsTestStore{durable: false})

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "survey_store_durable" {
			found = true
			assert.Equal(t, float64(0), f.GetMetric()[0].GetGauge().GetValue())
		}
	}
	assert.True(t, found, "survey_store_durable gauge should be registered")
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{401, "4xx"},
		{422, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
