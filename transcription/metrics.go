package transcription

import (
	"context"
	"time"

	"github.com/kbukum/asrdrop/observability"
)

// WithMetrics records each invocation's outcome, duration and uploaded
// file count on m.
func WithMetrics(m *observability.Metrics) Middleware {
	return func(inner Provider) Provider {
		return &metricsProvider{inner: inner, metrics: m}
	}
}

type metricsProvider struct {
	inner   Provider
	metrics *observability.Metrics
}

func (m *metricsProvider) Name() string                         { return m.inner.Name() }
func (m *metricsProvider) IsAvailable(ctx context.Context) bool { return m.inner.IsAvailable(ctx) }

func (m *metricsProvider) Transcribe(ctx context.Context, req Request) Result {
	start := time.Now()
	res := m.inner.Transcribe(ctx, req)
	m.metrics.RecordInvocation(ctx, string(req.WithDefaults().Mode), outcome(res), res.Uploaded, time.Since(start))
	return res
}
