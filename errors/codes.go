package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Input errors. These are raised before any network access.
const (
	// ErrCodeInvalidLanguage indicates the requested language is not supported.
	ErrCodeInvalidLanguage ErrorCode = "INVALID_LANGUAGE"
	// ErrCodeNoInputDir indicates the input directory does not exist.
	ErrCodeNoInputDir ErrorCode = "NO_INPUT_DIR"
	// ErrCodeNoAudioFiles indicates the input directory holds no .wav/.mp3 files.
	ErrCodeNoAudioFiles ErrorCode = "NO_AUDIO_FILES"
	// ErrCodeFile indicates an audio file could not be opened or read.
	ErrCodeFile ErrorCode = "FILE_ERROR"
	// ErrCodeValidation indicates malformed input to the server or a config struct.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
)

// Remote service errors
const (
	// ErrCodeASRAPI indicates the ASR service answered with a non-200 status.
	ErrCodeASRAPI ErrorCode = "ASR_API_ERROR"
	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeConnection indicates the ASR service could not be reached.
	ErrCodeConnection ErrorCode = "CONNECTION_ERROR"
	// ErrCodeRequest indicates any other transport-level failure.
	ErrCodeRequest ErrorCode = "REQUEST_ERROR"
	// ErrCodeParse indicates the response body was not valid JSON.
	ErrCodeParse ErrorCode = "PARSE_ERROR"
)

// Server surface errors
const (
	// ErrCodeRateLimited indicates a client exceeded the server's request budget.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
)

// Internal errors
const (
	// ErrCodeUnexpected is the last-resort code for anything not anticipated.
	ErrCodeUnexpected ErrorCode = "UNEXPECTED_ERROR"
)

// The adapter itself never retries; this only tells callers whether
// trying again later could plausibly succeed.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeASRAPI:      true,
	ErrCodeTimeout:     true,
	ErrCodeConnection:  true,
	ErrCodeRateLimited: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
