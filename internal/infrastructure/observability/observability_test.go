package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestInitLoggerWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithWriter("neuromap-test", "production", &buf)

	GetLogger().Info().Str("search_id", "abc").Msg("clinic search completed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "neuromap-test", entry["service"])
	assert.Equal(t, "abc", entry["search_id"])
	assert.Equal(t, "info", entry["level"])
}

func TestLoggerFromContext_AddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithWriter("neuromap-test", "production", &buf)

	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	ctx, span := tp.Tracer("test").Start(context.Background(), "search")
	defer span.End()

	LoggerFromContext(ctx).Info().Msg("traced")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, span.SpanContext().TraceID().String(), entry["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), entry["span_id"])
}

func TestRecorders_NilMetrics(t *testing.T) {
	ctx := context.Background()
	assert.NotPanics(t, func() {
		RecordRequestMetric(ctx, nil, "GET", "GET /health", 200, time.Millisecond)
		RecordCacheHit(ctx, nil, "geocode")
		RecordCacheMiss(ctx, nil, "geocode")
		RecordLLMMetric(ctx, nil, "gemini", time.Second, errors.New("boom"))
		RecordSearchResults(ctx, nil, 3)
	})
}

func TestInitMetrics_Records(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	metrics, err := InitMetrics()
	require.NoError(t, err)

	ctx := context.Background()
	RecordLLMMetric(ctx, metrics, "gemini", 1500*time.Millisecond, errors.New("timeout"))
	RecordSearchResults(ctx, metrics, 4)
	RecordCacheHit(ctx, metrics, "geocode")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	names := map[string]bool{}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			names[m.Name] = true
		}
	}
	for _, name := range []string{"ai.request.count", "ai.request.errors", "ai.request.duration", "search.result.count", "cache.hit.count"} {
		assert.True(t, names[name], name)
	}
}
