package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitMetrics_Idempotent(t *testing.T) {
	InitMetrics()
	first := HTTPRequestsTotal
	InitMetrics()

	require.NotNil(t, HTTPRequestsTotal)
	assert.Same(t, first, HTTPRequestsTotal)
	assert.NotNil(t, OrderMutationsTotal)
	assert.NotNil(t, CircuitBreakerState)
}

func TestCounter(t *testing.T) {
	InitMetrics()
	before := counterValue(t, OrdersCreatedTotal)

	IncCounter(OrdersCreatedTotal)
	IncCounter(OrdersCreatedTotal)
	AddCounter(OrderItemsTotal, 0)

	assert.Equal(t, before+2, counterValue(t, OrdersCreatedTotal))
}

func TestCounterVec(t *testing.T) {
	InitMetrics()
	labels := map[string]string{"method": "GET", "path": "/api/v1/orders", "status": "200"}
	other := map[string]string{"method": "POST", "path": "/api/v1/orders", "status": "201"}
	before := counterVecValue(t, HTTPRequestsTotal, labels)

	IncCounterVec(HTTPRequestsTotal, labels)
	IncCounterVec(HTTPRequestsTotal, other)
	IncCounterVec(HTTPRequestsTotal, labels)

	assert.Equal(t, before+2, counterVecValue(t, HTTPRequestsTotal, labels))
}

func TestGauge(t *testing.T) {
	InitMetrics()
	before := gaugeValue(t, HTTPRequestsInProgress)

	IncGauge(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	DecGauge(HTTPRequestsInProgress)

	assert.Equal(t, before+1, gaugeValue(t, HTTPRequestsInProgress))
	DecGauge(HTTPRequestsInProgress)
}

func TestGaugeVec(t *testing.T) {
	InitMetrics()
	SetGaugeVec(CircuitBreakerState, map[string]string{"name": "order-events"}, 1)

	var m dto.Metric
	require.NoError(t, CircuitBreakerState.With(map[string]string{"name": "order-events"}).Write(&m))
	assert.Equal(t, float64(1), m.GetGauge().GetValue())
}

func TestHistogramVec(t *testing.T) {
	InitMetrics()
	labels := map[string]string{"action": "create"}

	var before dto.Metric
	require.NoError(t, OrderMutationDuration.With(labels).(prometheus.Histogram).Write(&before))

	ObserveHistogramVec(OrderMutationDuration, labels, 0.02)
	ObserveHistogramVec(OrderMutationDuration, labels, 0.3)

	var after dto.Metric
	require.NoError(t, OrderMutationDuration.With(labels).(prometheus.Histogram).Write(&after))
	assert.Equal(t, before.GetHistogram().GetSampleCount()+2, after.GetHistogram().GetSampleCount())
	assert.InDelta(t, before.GetHistogram().GetSampleSum()+0.32, after.GetHistogram().GetSampleSum(), 1e-9)
}

func TestResult(t *testing.T) {
	assert.Equal(t, "success", Result(nil))
	assert.Equal(t, "failure", Result(errors.New("x")))
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func counterVecValue(t *testing.T, vec *prometheus.CounterVec, labels map[string]string) float64 {
	t.Helper()
	return counterValue(t, vec.With(labels))
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}
