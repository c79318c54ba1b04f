package transcription

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/kbukum/asrdrop/errors"
)

// Result is the outcome of one invocation. Exactly one of Transcript,
// Batch and Error is set.
type Result struct {
	Transcript *Transcript
	Batch      *BatchTranscript
	Error      *errors.AppError

	// Uploaded is the number of files sent to the service. It is not encoded.
	Uploaded int
}

// Single wraps a single-mode success.
func Single(t Transcript) Result {
	return Result{Transcript: &t}
}

// Batched wraps a batch-mode success.
func Batched(b BatchTranscript) Result {
	b.Success = true
	return Result{Batch: &b}
}

// Failed wraps an error.
func Failed(err *errors.AppError) Result {
	if err == nil {
		err = errors.Unexpected(nil)
	}
	return Result{Error: err}
}

// OK reports whether the invocation succeeded.
func (r Result) OK() bool {
	return r.Error == nil && (r.Transcript != nil || r.Batch != nil)
}

// Err returns the failure as an error, or nil.
func (r Result) Err() error {
	if r.Error == nil {
		return nil
	}
	return r.Error
}

// Code returns the error code, or "" on success.
func (r Result) Code() errors.ErrorCode {
	if r.Error == nil {
		return ""
	}
	return r.Error.Code
}

// MarshalJSON renders the success payload, or the error envelope
// {"error":{"code","message","retryable","details"}}. Strings are not
// HTML-escaped and batch results are copied verbatim. Nesting a Result
// inside another encoding/json value compacts and re-escapes it.
func (r Result) MarshalJSON() ([]byte, error) {
	switch {
	case r.Error != nil:
		return encode(r.Error.ToResponse())
	case r.Transcript != nil:
		return r.Transcript.MarshalJSON()
	case r.Batch != nil:
		return r.Batch.MarshalJSON()
	default:
		return encode(errors.Unexpected(nil).ToResponse())
	}
}

// MarshalJSON omits raw_text and clean_text for unrecognized bodies.
func (t Transcript) MarshalJSON() ([]byte, error) {
	if t.Unrecognized {
		return encode(struct {
			Text     string `json:"text"`
			Filename string `json:"filename"`
			Language string `json:"language"`
		}{t.Text, t.Filename, t.Language})
	}
	type plain Transcript
	return encode(plain(t))
}

// MarshalJSON writes Results as stored. Empty Results encode as null.
func (b BatchTranscript) MarshalJSON() ([]byte, error) {
	results := []byte(b.Results)
	if len(results) == 0 {
		results = []byte("null")
	} else if !json.Valid(results) {
		return nil, fmt.Errorf("transcription: batch results are not valid JSON")
	}
	lang, err := encode(b.Language)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(`{"success":`)
	buf.WriteString(strconv.FormatBool(b.Success))
	buf.WriteString(`,"results":`)
	buf.Write(results)
	buf.WriteString(`,"total_files":`)
	buf.WriteString(strconv.Itoa(b.TotalFiles))
	buf.WriteString(`,"language":`)
	buf.Write(lang)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encode is json.Marshal without HTML escaping.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
