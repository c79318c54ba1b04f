package transcription

import (
	"context"
	"time"

	"github.com/kbukum/asrdrop/logger"
)

// WithLogging logs one line per invocation with its code and duration.
// Failures are logged at warn level.
func WithLogging(log *logger.Logger) Middleware {
	return func(inner Provider) Provider {
		return &loggingProvider{inner: inner, log: log}
	}
}

type loggingProvider struct {
	inner Provider
	log   *logger.Logger
}

func (l *loggingProvider) Name() string                         { return l.inner.Name() }
func (l *loggingProvider) IsAvailable(ctx context.Context) bool { return l.inner.IsAvailable(ctx) }

func (l *loggingProvider) Transcribe(ctx context.Context, req Request) Result {
	ctx, requestID := EnsureRequestID(ctx)
	start := time.Now()
	res := l.inner.Transcribe(ctx, req)

	req = req.WithDefaults()
	fields := logger.MergeWithDuration(logger.Fields(
		"provider", l.inner.Name(),
		logger.FieldRequestID, requestID,
		logger.FieldMode, string(req.Mode),
		logger.FieldLanguage, req.Language,
		logger.FieldCode, outcome(res),
		"files", res.Uploaded,
	), time.Since(start))

	if res.Error != nil {
		l.log.WithError(res.Error).Warn("Transcription failed", fields)
	} else {
		l.log.Info("Transcription completed", fields)
	}
	return res
}
