package transcription

import (
	"context"

	"github.com/kbukum/asrdrop/provider"
)

// Provider is the interface that transcription backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Transcribe runs one invocation. It never panics and never returns a
	// Go error: every failure is reported in Result.Error.
	Transcribe(ctx context.Context, req Request) Result
}
