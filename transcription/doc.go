// Package transcription defines the provider interface and the request and
// result types shared by speech-to-text backends.
//
// An invocation either uploads the first audio file found (ModeSingle) and
// returns a Transcript, or uploads them all (ModeBatch) and returns a
// BatchTranscript carrying the service's JSON untouched. Failures are
// returned in Result.Error as *errors.AppError, never as a panic.
//
// # Backends
//
//   - transcription/sensevoice: SenseVoice-style multipart ASR endpoint
//
// # Usage
//
//	reg := transcription.NewRegistry()
//	reg.RegisterFactory("sensevoice", sensevoice.Factory())
//	p, _ := reg.GetOrCreate("sensevoice", map[string]any{"url": url})
//	res := p.Transcribe(ctx, transcription.Request{Language: "auto"})
//
// # Middleware
//
// WithTracing, WithLogging and WithMetrics wrap any Provider. Chain
// composes them with the first one outermost:
//
//	p = transcription.Chain(
//		transcription.WithTracing(),
//		transcription.WithLogging(log),
//		transcription.WithMetrics(m),
//	)(p)
package transcription
