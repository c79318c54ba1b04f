package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Constructors, one per error kind ---

// InvalidLanguage creates an error for a language code outside the supported set.
func InvalidLanguage(lang string, supported []string) *AppError {
	return &AppError{
		Code:       ErrCodeInvalidLanguage,
		Message:    fmt.Sprintf("Unsupported language: %s. Supported languages: %s", lang, strings.Join(supported, ", ")),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"field": "lang", "value": lang, "supported": supported},
	}
}

// Validation creates a validation error.
func Validation(message string) *AppError {
	return &AppError{
		Code:       ErrCodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NoInputDir creates an error for a missing input directory.
func NoInputDir(dir string) *AppError {
	return &AppError{
		Code:       ErrCodeNoInputDir,
		Message:    "Input directory does not exist",
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"dir": dir},
	}
}

// NoAudioFiles creates an error for an input directory without audio files.
func NoAudioFiles(dir string) *AppError {
	return &AppError{
		Code:       ErrCodeNoAudioFiles,
		Message:    "No audio files found (supported formats: .wav and .mp3)",
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"dir": dir},
	}
}

// FileError creates an error for an audio file that could not be opened or read.
func FileError(path string, cause error) *AppError {
	return &AppError{
		Code:       ErrCodeFile,
		Message:    fmt.Sprintf("Failed to open or process audio file: %v", cause),
		HTTPStatus: http.StatusInternalServerError,
		Details:    map[string]any{"path": path},
		Cause:      cause,
	}
}

// ASRAPIError creates an error for a non-200 answer from the ASR service.
// The raw body is kept both in the message and in the details.
func ASRAPIError(status int, body string) *AppError {
	return &AppError{
		Code:       ErrCodeASRAPI,
		Message:    fmt.Sprintf("ASR service returned an error: HTTP %d - %s", status, body),
		HTTPStatus: http.StatusBadGateway,
		Retryable:  true,
		Details:    map[string]any{"status": status, "body": body},
	}
}

// Timeout creates an error for a request that ran past its deadline.
func Timeout(limit string, cause error) *AppError {
	return &AppError{
		Code:       ErrCodeTimeout,
		Message:    fmt.Sprintf("ASR service request timed out (%s)", limit),
		HTTPStatus: http.StatusGatewayTimeout,
		Retryable:  true,
		Details:    map[string]any{"timeout": limit},
		Cause:      cause,
	}
}

// ConnectionFailed creates an error for an unreachable ASR endpoint.
func ConnectionFailed(endpoint string, cause error) *AppError {
	return &AppError{
		Code:       ErrCodeConnection,
		Message:    fmt.Sprintf("Unable to connect to ASR service: %s", endpoint),
		HTTPStatus: http.StatusServiceUnavailable,
		Retryable:  true,
		Details:    map[string]any{"endpoint": endpoint},
		Cause:      cause,
	}
}

// RequestFailed creates an error for any other transport-level failure.
func RequestFailed(cause error) *AppError {
	return &AppError{
		Code:       ErrCodeRequest,
		Message:    fmt.Sprintf("Error while calling ASR service: %v", cause),
		HTTPStatus: http.StatusBadGateway,
		Cause:      cause,
	}
}

// ParseFailed creates an error for a response body that is not valid JSON.
func ParseFailed(cause error) *AppError {
	return &AppError{
		Code:       ErrCodeParse,
		Message:    fmt.Sprintf("Failed to parse ASR response: %v", cause),
		HTTPStatus: http.StatusBadGateway,
		Cause:      cause,
	}
}

// RateLimited creates an error for a client over its request budget.
func RateLimited(limit int) *AppError {
	return &AppError{
		Code:       ErrCodeRateLimited,
		Message:    fmt.Sprintf("Rate limit exceeded: %d requests per minute", limit),
		HTTPStatus: http.StatusTooManyRequests,
		Retryable:  true,
		Details:    map[string]any{"limit": limit},
	}
}

// Unexpected creates the last-resort error. The message is the raw cause text.
func Unexpected(cause error) *AppError {
	msg := "unexpected error"
	if cause != nil {
		msg = cause.Error()
	}
	return &AppError{
		Code:       ErrCodeUnexpected,
		Message:    msg,
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}
