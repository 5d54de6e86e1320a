package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/pagesmith/internal/config"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.False(t, cfg.Enabled)
	assert.Equal(t, "localhost:4317", cfg.Endpoint)
	assert.Equal(t, "grpc", cfg.Protocol)
	assert.Equal(t, "pagesmithd", cfg.ServiceName)
	assert.True(t, cfg.Insecure)
	assert.Equal(t, 1.0, cfg.SampleRate)
	assert.Equal(t, 30*time.Second, cfg.MetricsPeriod.Duration())
}

func TestFromObservability(t *testing.T) {
	obs := config.ObservabilityConfig{
		Enabled:       true,
		ServiceName:   "pagesmith-staging",
		Endpoint:      "collector:4318",
		Protocol:      "http/protobuf",
		Insecure:      false,
		SampleRate:    0.25,
		MetricsPeriod: config.Duration(time.Minute),
	}

	cfg := FromObservability(obs, "1.2.3")

	assert.True(t, cfg.Enabled)
	assert.Equal(t, "pagesmith-staging", cfg.ServiceName)
	assert.Equal(t, "collector:4318", cfg.Endpoint)
	assert.Equal(t, "http/protobuf", cfg.Protocol)
	assert.False(t, cfg.Insecure)
	assert.Equal(t, 0.25, cfg.SampleRate)
	assert.Equal(t, time.Minute, cfg.MetricsPeriod.Duration())
	assert.Equal(t, "1.2.3", cfg.ServiceVersion)

	// Empty fields keep defaults.
	cfg = FromObservability(config.ObservabilityConfig{Enabled: true, Insecure: true, SampleRate: 1.0}, "")
	assert.Equal(t, "localhost:4317", cfg.Endpoint)
	assert.Equal(t, "grpc", cfg.Protocol)
	assert.Equal(t, "pagesmithd", cfg.ServiceName)
	assert.Equal(t, "0.1.0", cfg.ServiceVersion)
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		cfg := NewDefaultConfig()
		cfg.Enabled = true
		return cfg
	}

	t.Run("disabled skips validation", func(t *testing.T) {
		cfg := &Config{Enabled: false}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("defaults are valid when enabled", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing endpoint",
			mutate:  func(c *Config) { c.Endpoint = "" },
			wantErr: "endpoint is required",
		},
		{
			name:    "bad protocol",
			mutate:  func(c *Config) { c.Protocol = "thrift" },
			wantErr: "protocol must be",
		},
		{
			name:    "missing service name",
			mutate:  func(c *Config) { c.ServiceName = "" },
			wantErr: "service_name is required",
		},
		{
			name:    "insecure remote endpoint",
			mutate:  func(c *Config) { c.Endpoint = "collector.example.com:4317" },
			wantErr: "insecure connections to remote endpoints",
		},
		{
			name:    "sample rate out of range",
			mutate:  func(c *Config) { c.SampleRate = 1.5 },
			wantErr: "sample_rate must be between 0 and 1",
		},
		{
			name:    "non-positive metrics period",
			mutate:  func(c *Config) { c.MetricsPeriod = 0 },
			wantErr: "metrics_period must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIsLocalEndpoint(t *testing.T) {
	tests := []struct {
		endpoint string
		local    bool
	}{
		{"localhost:4317", true},
		{"127.0.0.1:4317", true},
		{"127.1.2.3:4317", true},
		{"[::1]:4317", true},
		{"::1", true},
		{"collector.example.com:4317", false},
		{"10.0.0.5:4317", false},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			cfg := &Config{Endpoint: tt.endpoint}
			assert.Equal(t, tt.local, cfg.isLocalEndpoint())
		})
	}
}
