package apigateway

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/30Piraten/watchful/descriptor"
)

func TestStageDimensions(t *testing.T) {
	calls := NewMetricFactory().MetricCalls("orders", "prod", nil)

	assert.Equal(t, "AWS/ApiGateway", calls.Namespace)
	assert.Equal(t, "Count", calls.MetricName)
	assert.Equal(t, descriptor.Sum, calls.Statistic)
	assert.Equal(t, map[string]string{"ApiName": "orders", "Stage": "prod"}, calls.Dimensions)
}

func TestOperationDimensionsAreMerged(t *testing.T) {
	op := &Operation{HTTPMethod: "GET", ResourcePath: "/orders/{id}"}
	errs := NewMetricFactory().MetricErrors("orders", "prod", op)

	want := map[string]string{
		"ApiName":  "orders",
		"Stage":    "prod",
		"Method":   "GET",
		"Resource": "/orders/{id}",
	}
	assert.Equal(t, want, errs.Count4XX.Dimensions)
	assert.Equal(t, want, errs.Count5XX.Dimensions)
	assert.Equal(t, "4XXError", errs.Count4XX.MetricName)
	assert.Equal(t, "5XXError", errs.Count5XX.MetricName)
	assert.Equal(t, "GET /orders/{id}", op.Name())
}

func TestLatencyVariants(t *testing.T) {
	f := NewMetricFactory()
	latency := f.MetricLatency("orders", "prod", nil)
	integration := f.MetricIntegrationLatency("orders", "prod", nil)

	for _, m := range latency.All() {
		assert.Equal(t, Latency, m.(descriptor.Descriptor).MetricName)
	}
	for _, m := range integration.All() {
		assert.Equal(t, IntegrationLatency, m.(descriptor.Descriptor).MetricName)
	}
	assert.Equal(t, descriptor.Statistic("p95"), latency.P95.Statistic)
}

func TestCacheCounts(t *testing.T) {
	cache := NewMetricFactory().MetricCache("orders", "prod", nil)

	assert.Equal(t, CacheHitCount, cache.Hits.MetricName)
	assert.Equal(t, CacheMissCount, cache.Misses.MetricName)
	assert.Equal(t, descriptor.Sum, cache.Hits.Statistic)
}
