package generation

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const instrumentationName = "github.com/fyrsmithlabs/pagesmith/internal/generation"

// Result is a completed generation.
type Result struct {
	// Text is the raw generated output, before post-processing.
	Text string

	// Retries counts attempts beyond the first.
	Retries int

	// Duration is the total time including backoff waits.
	Duration time.Duration
}

// Client wraps a Backend with bounded retry for transient upstream errors.
type Client struct {
	backend    Backend
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger

	tracer          trace.Tracer
	meter           metric.Meter
	requestCounter  metric.Int64Counter
	retryCounter    metric.Int64Counter
	requestDuration metric.Float64Histogram
}

// NewClient creates a retrying client. maxRetries bounds additional attempts
// after the first; retryDelay is the base backoff.
func NewClient(backend Backend, maxRetries int, retryDelay time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		backend:    backend,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		logger:     logger,
		tracer:     otel.Tracer(instrumentationName),
		meter:      otel.Meter(instrumentationName),
	}
	c.initMetrics()
	return c
}

func (c *Client) initMetrics() {
	var err error

	c.requestCounter, err = c.meter.Int64Counter(
		"pagesmith.generation.requests_total",
		metric.WithDescription("Total number of generation requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		c.logger.Warn("failed to create request counter", zap.Error(err))
	}

	c.retryCounter, err = c.meter.Int64Counter(
		"pagesmith.generation.retries_total",
		metric.WithDescription("Total number of generation retries"),
		metric.WithUnit("{retry}"),
	)
	if err != nil {
		c.logger.Warn("failed to create retry counter", zap.Error(err))
	}

	c.requestDuration, err = c.meter.Float64Histogram(
		"pagesmith.generation.request_duration_seconds",
		metric.WithDescription("Generation request duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		c.logger.Warn("failed to create duration histogram", zap.Error(err))
	}
}

// Generate runs a request, retrying transient upstream failures with
// exponential backoff (base, 2x base, 4x base, ...). Non-transient errors
// propagate immediately. Backoff waits respect context cancellation.
func (c *Client) Generate(ctx context.Context, req *Request) (*Result, error) {
	ctx, span := c.tracer.Start(ctx, "generation.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("model", req.Model),
		attribute.Bool("cached", req.CachedContent != ""),
	)

	start := time.Now()
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		text, err := c.backend.GenerateContent(ctx, req)
		if err == nil {
			if attempt > 0 {
				c.logger.Info("generation succeeded after retry", zap.Int("retries", attempt))
			}

			duration := time.Since(start)
			c.record(ctx, "ok", duration)
			span.SetAttributes(attribute.Int("retries", attempt))

			return &Result{Text: text, Retries: attempt, Duration: duration}, nil
		}
		lastErr = err

		if !IsTransient(err) {
			break
		}
		if attempt == c.maxRetries {
			c.logger.Error("generation failed after all attempts",
				zap.Int("attempts", attempt+1),
				zap.Error(err))
			break
		}

		delay := c.retryDelay << attempt
		c.logger.Warn("transient backend error, retrying",
			zap.Duration("delay", delay),
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", c.maxRetries+1),
			zap.Error(err))

		if c.retryCounter != nil {
			c.retryCounter.Add(ctx, 1)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			c.record(ctx, "canceled", time.Since(start))
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.record(ctx, "error", time.Since(start))
	span.RecordError(lastErr)
	span.SetStatus(codes.Error, lastErr.Error())
	return nil, lastErr
}

func (c *Client) record(ctx context.Context, status string, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("status", status))
	if c.requestCounter != nil {
		c.requestCounter.Add(ctx, 1, attrs)
	}
	if c.requestDuration != nil {
		c.requestDuration.Record(ctx, duration.Seconds(), attrs)
	}
}
