package sensevoice

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kbukum/asrdrop/errors"
	"github.com/kbukum/asrdrop/transcription"
)

// The service answers {"result":[{"key","text","raw_text","clean_text"},...]}.
// Only the first element is read in single mode.

// parseSingle maps a 200 body onto a Transcript. A body that is valid JSON
// but not of the expected shape is returned as compact JSON text.
func parseSingle(body []byte, filename, lang string) (transcription.Transcript, *errors.AppError) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return transcription.Transcript{}, errors.ParseFailed(err)
	}

	t := transcription.Transcript{Filename: filename, Language: lang}

	if first, ok := firstResult(payload); ok {
		t.RawText = textField(first, "raw_text")
		t.CleanText = textField(first, "clean_text")
		t.Text = t.CleanText
		if t.Text == "" {
			t.Text = textField(first, "text")
		}
		return t, nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err != nil {
		return transcription.Transcript{}, errors.ParseFailed(err)
	}
	t.Text = buf.String()
	t.Unrecognized = true
	return t, nil
}

// parseBatch checks the body is JSON and keeps it byte-for-byte.
func parseBatch(body []byte, total int, lang string) (transcription.BatchTranscript, *errors.AppError) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return transcription.BatchTranscript{}, errors.ParseFailed(err)
	}
	return transcription.BatchTranscript{
		Success:    true,
		Results:    json.RawMessage(bytes.Clone(body)),
		TotalFiles: total,
		Language:   lang,
	}, nil
}

func firstResult(payload any) (map[string]any, bool) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, false
	}
	results, ok := obj["result"].([]any)
	if !ok || len(results) == 0 {
		return nil, false
	}
	first, ok := results[0].(map[string]any)
	return first, ok
}

// textField returns a string field, "" when absent or null, and the JSON
// text of any other value.
func textField(obj map[string]any, key string) string {
	switch v := obj[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	}
}
