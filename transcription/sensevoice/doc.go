// Package sensevoice implements transcription.Provider for a SenseVoice ASR
// HTTP service.
//
// Each invocation scans the configured input directory for .wav and .mp3
// files and sends them in one multipart POST:
//
//	lang=<language>
//	keys=<keys>            (only when non-blank)
//	files=<audio>          (one part per file, declared audio/wav)
//
// Single mode uploads only the first file found and returns a
// transcription.Transcript built from the first element of the "result"
// array. Batch mode uploads every file and returns the response body
// untouched inside a transcription.BatchTranscript.
//
// Every file opened for an invocation is closed before Transcribe returns.
//
//	p, err := sensevoice.NewProvider(sensevoice.Config{URL: url})
//	res := p.TranscribeFirst(ctx, "auto", "")
package sensevoice
