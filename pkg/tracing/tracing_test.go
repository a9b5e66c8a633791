package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	Install(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return sr
}

func TestInitTracer(t *testing.T) {
	// exporter懒连接，Collector不在线也能初始化
	shutdown, err := InitTracer(context.Background(), Options{
		ServiceName: "bookstore-api-test",
		Endpoint:    "localhost:4317",
		Insecure:    true,
	})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
}

func TestStartSpan_ChildInheritsTrace(t *testing.T) {
	sr := newRecorder(t)

	ctx, root := StartSpan(context.Background(), "POST /api/v1/orders")
	_, child := StartSpan(ctx, "order.Create")
	child.End()
	root.End()

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "order.Create", spans[0].Name())
	assert.Equal(t, spans[1].SpanContext().TraceID(), spans[0].SpanContext().TraceID())
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
}

func TestEnd_RecordsError(t *testing.T) {
	sr := newRecorder(t)

	_, span := StartSpan(context.Background(), "order.Persist")
	End(span, errors.New("duplicate entry"))

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Len(t, spans[0].Events(), 1)
}

func TestExtractIDs(t *testing.T) {
	newRecorder(t)

	assert.Empty(t, ExtractTraceID(context.Background()))
	assert.Empty(t, ExtractSpanID(context.Background()))

	ctx, span := StartSpan(context.Background(), "op")
	defer span.End()
	assert.Len(t, ExtractTraceID(ctx), 32)
	assert.Len(t, ExtractSpanID(ctx), 16)
}

func TestSampler(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), sampler(0).Description())
	assert.Equal(t, sdktrace.AlwaysSample().Description(), sampler(1).Description())
	assert.Equal(t, sdktrace.TraceIDRatioBased(0.25).Description(), sampler(0.25).Description())
}
