// Package endpoint provides the Gin handlers mounted by the server:
// transcription routes, /health, /ready, /info and /metrics.
package endpoint
