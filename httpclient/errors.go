package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// ErrorCode classifies HTTP client errors.
type ErrorCode int

const (
	// ErrCodeTimeout indicates the request ran past its deadline.
	ErrCodeTimeout ErrorCode = iota
	// ErrCodeConnection indicates the endpoint could not be reached
	// (refused, reset, DNS, dial failure).
	ErrCodeConnection
	// ErrCodeRequest indicates any other transport-level failure,
	// including caller cancellation.
	ErrCodeRequest
	// ErrCodeValidation indicates the request could not be built.
	ErrCodeValidation
	// ErrCodeEncode indicates the request body could not be encoded,
	// typically because a streamed file could not be read.
	ErrCodeEncode
	// ErrCodeNotFound indicates the resource was not found (404).
	ErrCodeNotFound
	// ErrCodeRateLimit indicates rate limiting (429).
	ErrCodeRateLimit
	// ErrCodeClient indicates any other 4xx answer.
	ErrCodeClient
	// ErrCodeServer indicates a server-side error (5xx).
	ErrCodeServer
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeConnection:
		return "connection"
	case ErrCodeRequest:
		return "request"
	case ErrCodeValidation:
		return "validation"
	case ErrCodeEncode:
		return "encode"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeRateLimit:
		return "rate_limit"
	case ErrCodeClient:
		return "client"
	case ErrCodeServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is a structured HTTP client error with classification.
type Error struct {
	// StatusCode is the HTTP status code (0 for transport-level errors).
	StatusCode int
	// Code classifies the error.
	Code ErrorCode
	// Message describes the error.
	Message string
	// Retryable indicates whether trying again later could succeed.
	Retryable bool
	// Body is the original response body (may be nil).
	Body []byte
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(err error) *Error {
	return &Error{Code: ErrCodeTimeout, Message: err.Error(), Retryable: true, Err: err}
}

// NewConnectionError creates a connection error.
func NewConnectionError(err error) *Error {
	return &Error{Code: ErrCodeConnection, Message: err.Error(), Retryable: true, Err: err}
}

// NewRequestError creates an error for any other transport failure.
func NewRequestError(err error) *Error {
	return &Error{Code: ErrCodeRequest, Message: err.Error(), Err: err}
}

// NewValidationError creates a validation error.
func NewValidationError(msg string, err error) *Error {
	return &Error{Code: ErrCodeValidation, Message: msg, Err: err}
}

// NewEncodeError creates an error for a body that could not be encoded.
func NewEncodeError(err error) *Error {
	return &Error{Code: ErrCodeEncode, Message: fmt.Sprintf("encode body: %v", err), Err: err}
}

// IsEncode checks if an error is a body encoding error.
func IsEncode(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeEncode
}

// ClassifyTransportError maps an error returned by http.Client.Do onto
// Timeout, Connection or Request.
// ctx is the request context; a canceled context is a Request error, an
// expired one is a Timeout.
func ClassifyTransportError(ctx context.Context, err error) *Error {
	if e := classifyInterrupted(ctx, err); e != nil {
		return e
	}
	if isConnectionFailure(err) {
		return NewConnectionError(err)
	}
	return NewRequestError(err)
}

// ClassifyBodyError maps a failure while reading a response body. The
// connection was established, so only Timeout and Request apply.
func ClassifyBodyError(ctx context.Context, err error) *Error {
	if e := classifyInterrupted(ctx, err); e != nil {
		return e
	}
	return NewRequestError(err)
}

// classifyInterrupted handles typed errors, cancellation and deadlines.
func classifyInterrupted(ctx context.Context, err error) *Error {
	var hcErr *Error
	if errors.As(err, &hcErr) {
		return hcErr
	}
	if ctx != nil && errors.Is(ctx.Err(), context.Canceled) {
		return NewRequestError(err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewTimeoutError(err)
	}
	return nil
}

func isConnectionFailure(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNABORTED) || errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Op == "dial" || opErr.Op == "read" || opErr.Op == "write"
	}
	return false
}

// ClassifyStatusCode converts an HTTP status code into a typed error.
// Returns nil for 2xx status codes.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	e := &Error{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("HTTP %d", statusCode),
		Body:       body,
	}
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil
	case statusCode == 404:
		e.Code = ErrCodeNotFound
	case statusCode == 429:
		e.Code = ErrCodeRateLimit
		e.Retryable = true
	case statusCode >= 400 && statusCode < 500:
		e.Code = ErrCodeClient
	case statusCode >= 500:
		e.Code = ErrCodeServer
		e.Retryable = true
	default:
		e.Code = ErrCodeServer
	}
	return e
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeTimeout
}

// IsConnection checks if an error is a connection error.
func IsConnection(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeConnection
}

// IsServerError checks if an error is a 5xx status error.
func IsServerError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeServer
}
