package transcription

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/asrdrop/observability"
)

// WithTracing starts an asr.transcribe span around each invocation. The
// wrapped provider can annotate it through trace.SpanFromContext.
func WithTracing() Middleware {
	return func(inner Provider) Provider {
		return &tracingProvider{inner: inner}
	}
}

type tracingProvider struct {
	inner Provider
}

func (t *tracingProvider) Name() string                         { return t.inner.Name() }
func (t *tracingProvider) IsAvailable(ctx context.Context) bool { return t.inner.IsAvailable(ctx) }

func (t *tracingProvider) Transcribe(ctx context.Context, req Request) Result {
	ctx, requestID := EnsureRequestID(ctx)
	defaults := req.WithDefaults()
	ctx, span := observability.StartSpan(ctx, observability.SpanTranscribe, trace.WithAttributes(
		attribute.String(observability.AttrProvider, t.inner.Name()),
		attribute.String(observability.AttrRequestID, requestID),
		attribute.String(observability.AttrMode, string(defaults.Mode)),
		attribute.String(observability.AttrLanguage, defaults.Language),
	))

	res := t.inner.Transcribe(ctx, req)
	observability.EndSpan(span, outcome(res), res.Err())
	return res
}
