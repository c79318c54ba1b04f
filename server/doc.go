// Package server exposes a transcription provider over HTTP using Gin,
// with HTTP/2 cleartext (h2c) support on the same port.
//
// # Routes
//
//   - POST /v1/transcriptions: transcribe the first file in the input directory
//   - POST /v1/transcriptions/batch: transcribe every file in one upload
//   - GET /health: aggregated component health
//   - GET /ready: 503 while the ASR endpoint is unreachable
//   - GET /info: build and provider information
//   - GET /metrics: Prometheus metrics
//
// The transcription routes take an optional JSON body {"lang":"zh","keys":"..."}
// (or the same names as query parameters) and answer with the transcription
// result, or with {"error":{...}} and the status matching the error code.
//
// # Middleware
//
// Applied to every request, outermost first (server/middleware):
//
//   - Recovery: panics become a 500 UNEXPECTED_ERROR envelope
//   - RequestID: X-Request-Id propagation, forwarded to the ASR service
//   - CORS: cross-origin headers and preflight
//   - BodySizeLimit: caps request bodies
//   - RequestLogger: one log line per request with duration
//
// RateLimit applies to the transcription routes only.
package server
