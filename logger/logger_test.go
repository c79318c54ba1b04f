package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "debug", Format: "json"}, "asrdrop", &buf)

	l.WithComponent("sensevoice").Info("Processing file", Fields("filename", "a.wav"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "Processing file" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry[FieldComponent] != "sensevoice" {
		t.Errorf("component = %v", entry[FieldComponent])
	}
	if entry["filename"] != "a.wav" {
		t.Errorf("filename = %v", entry["filename"])
	}
	if entry["service"] != "asrdrop" {
		t.Errorf("service = %v", entry["service"])
	}
}

func TestNewWithWriter_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "warn", Format: "json"}, "svc", &buf)

	l.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn level, got %q", buf.String())
	}
	l.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn should be written, got %q", buf.String())
	}
}

func TestNewInvalidLevel(t *testing.T) {
	l := New(&Config{Level: "invalid-level", Format: "json", Output: "stderr"}, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestWithFieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "svc", &buf)

	l.WithFields(map[string]interface{}{FieldRequestID: "r-1"}).
		WithError(errors.New("boom")).
		Error("failed")

	out := buf.String()
	if !strings.Contains(out, `"request_id":"r-1"`) {
		t.Errorf("expected request_id in %q", out)
	}
	if !strings.Contains(out, `"error":"boom"`) {
		t.Errorf("expected error in %q", out)
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "console", NoColor: true}, "asrdrop", &buf)
	l.Info("hello")
	out := buf.String()
	if !strings.Contains(out, "[ASR][INF]") {
		t.Errorf("expected service and level tag, got %q", out)
	}
}

func TestNop(t *testing.T) {
	// must not panic
	Nop().Info("nothing", Fields("a", 1))
}

func TestGlobalLogger(t *testing.T) {
	globalLogger = nil
	if GetGlobalLogger() == nil {
		t.Fatal("expected default global logger to be created")
	}

	l := NewDefault("custom")
	SetGlobalLogger(l)
	if GetGlobalLogger() != l {
		t.Error("expected SetGlobalLogger to set the global logger")
	}

	Init(&Config{Level: "debug", Format: "json", ServiceName: "asrdrop"})
	if GetGlobalLogger().service != "asrdrop" {
		t.Errorf("Init should use ServiceName, got %q", GetGlobalLogger().service)
	}
	// These should not panic
	Debug("debug msg")
	Info("info msg")
	Warn("warn msg")
	Error("error msg")
	WithComponent("x").Info("component msg")
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected output 'stderr', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json", Output: "stdout"}, false},
		{"valid console", Config{Level: "debug", Format: "console", Output: "stderr"}, false},
		{"invalid level", Config{Level: "bad", Format: "json", Output: "stderr"}, true},
		{"invalid format", Config{Level: "info", Format: "xml", Output: "stderr"}, true},
		{"invalid output", Config{Level: "info", Format: "json", Output: "file"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestFieldsHelpers(t *testing.T) {
	f := Fields("a", 1, "b", "two", 3, "ignored")
	if f["a"] != 1 || f["b"] != "two" {
		t.Errorf("Fields() = %v", f)
	}
	if len(f) != 2 {
		t.Errorf("non-string keys should be skipped, got %v", f)
	}

	ef := ErrorFields("upload", errors.New("x"))
	if ef[FieldOperation] != "upload" || ef[FieldError] != "x" {
		t.Errorf("ErrorFields() = %v", ef)
	}

	df := MergeWithDuration(nil, 1500*time.Millisecond)
	if df[FieldDuration] != int64(1500) {
		t.Errorf("MergeWithDuration() = %v", df)
	}
}
