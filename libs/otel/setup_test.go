package otelx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_SAMPLING_RATIO", "3")
	cfg := ConfigFromEnv("booking-service")
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 1.0, cfg.SampleRatio)
	assert.Equal(t, "booking-service", cfg.ServiceName)
}

func TestSetupDisabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestTraceContextRoundTrip(t *testing.T) {
	_, err := Setup(context.Background(), Config{})
	require.NoError(t, err)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1, 2, 3},
		SpanID:     trace.SpanID{4, 5, 6},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	tp, ts := TraceContextStrings(ctx)
	require.NotEmpty(t, tp)

	restored := trace.SpanContextFromContext(ContextWithTraceContext(context.Background(), tp, ts))
	assert.Equal(t, sc.TraceID(), restored.TraceID())
	assert.Equal(t, sc.SpanID(), restored.SpanID())
	assert.Equal(t, context.Background(), ContextWithTraceContext(context.Background(), "", ""))
}
