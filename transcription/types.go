package transcription

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Mode selects how many discovered files one invocation uploads.
type Mode string

const (
	// ModeSingle uploads the first discovered file and extracts one transcript.
	ModeSingle Mode = "single"
	// ModeBatch uploads every discovered file in one request.
	ModeBatch Mode = "batch"
)

// ParseMode parses a mode name. Empty means ModeSingle.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeSingle:
		return ModeSingle, nil
	case ModeBatch:
		return ModeBatch, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want %s or %s)", s, ModeSingle, ModeBatch)
	}
}

// Request holds the parameters of one invocation.
type Request struct {
	// Language is the language hint sent as the lang field. Empty means auto.
	Language string `json:"lang"`
	// Keys is an optional hotword string, sent verbatim when it is not blank.
	Keys string `json:"keys,omitempty"`
	// Mode selects single or batch upload. Empty means single.
	Mode Mode `json:"mode,omitempty"`
}

// WithDefaults returns a copy of r with empty fields defaulted.
func (r Request) WithDefaults() Request {
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
	if r.Mode == "" {
		r.Mode = ModeSingle
	}
	return r
}

// HasKeys reports whether the keys field should be sent.
func (r Request) HasKeys() bool {
	return strings.TrimSpace(r.Keys) != ""
}

// Transcript is the single-mode success payload.
type Transcript struct {
	// Text is clean_text, else text, else "" when the service answered with
	// the expected shape. Otherwise it is the compact JSON of the whole body.
	Text string `json:"text"`
	// Filename is the base name of the uploaded file.
	Filename string `json:"filename"`
	// Language is the language that was requested.
	Language string `json:"language"`
	// RawText is the service's raw_text, or "".
	RawText string `json:"raw_text"`
	// CleanText is the service's clean_text, or "".
	CleanText string `json:"clean_text"`

	// Unrecognized is set when the body was not of the expected shape.
	// Such transcripts are encoded without raw_text and clean_text.
	Unrecognized bool `json:"-"`
}

// BatchTranscript is the batch-mode success payload.
type BatchTranscript struct {
	// Success is always true; failures are reported through Result.Error.
	Success bool `json:"success"`
	// Results is the service's response body, unmodified.
	Results json.RawMessage `json:"results"`
	// TotalFiles is the number of files uploaded, not a count read from Results.
	TotalFiles int `json:"total_files"`
	// Language is the language that was requested.
	Language string `json:"language"`
}
