// Package errors provides the error taxonomy of the ASR adapter.
// Every failure an invocation can hit maps to one AppError code, which
// carries a human-readable message, optional details, an HTTP status for
// the server surface, and a retryable hint for callers.
package errors
