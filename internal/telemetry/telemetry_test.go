package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

func TestNew_Disabled(t *testing.T) {
	cfg := NewDefaultConfig()

	tel, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, tel.IsEnabled())
	assert.NotNil(t, tel.Tracer("test"))
	assert.NotNil(t, tel.Meter("test"))

	health := tel.Health()
	assert.True(t, health.Healthy)
	assert.False(t, health.Degraded)

	assert.NoError(t, tel.Shutdown(context.Background()))
	assert.False(t, tel.Health().Healthy)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Enabled = true
	cfg.SampleRate = 2.0

	_, err := New(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestNilReceiverIsSafe(t *testing.T) {
	var tel *Telemetry

	assert.NotNil(t, tel.Tracer("test"))
	assert.NotNil(t, tel.Meter("test"))
	assert.NoError(t, tel.Shutdown(context.Background()))
	assert.NoError(t, tel.ForceFlush(context.Background()))
	assert.False(t, tel.IsEnabled())
	assert.True(t, tel.Health().Degraded)
}

func TestTestTelemetry_RecordsSpans(t *testing.T) {
	tel := NewTestTelemetry()

	tracer := tel.Tracer("test-scope")
	_, span := tracer.Start(context.Background(), "pipeline.step")
	span.SetAttributes(attribute.String("artifact_id", "art-1"))
	span.End()

	recorded := tel.SpanByName("pipeline.step")
	require.NotNil(t, recorded)

	var found bool
	for _, attr := range recorded.Attributes() {
		if attr.Key == "artifact_id" && attr.Value.AsString() == "art-1" {
			found = true
		}
	}
	assert.True(t, found)

	assert.Nil(t, tel.SpanByName("missing"))
}
