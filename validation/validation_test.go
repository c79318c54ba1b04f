package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/asrdrop/errors"
)

func TestValidatorRequired(t *testing.T) {
	v := New()
	v.Required("lang", "auto")
	if v.HasErrors() {
		t.Error("expected no errors for valid input")
	}

	v2 := New()
	v2.Required("lang", "")
	if !v2.HasErrors() {
		t.Error("expected error for empty required field")
	}

	v3 := New()
	v3.Required("lang", "   ")
	if !v3.HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorOptionalUUID(t *testing.T) {
	v := New()
	v.OptionalUUID("id", "")
	if v.HasErrors() {
		t.Error("expected no error for empty optional UUID")
	}

	v2 := New()
	v2.OptionalUUID("id", uuid.New().String())
	if v2.HasErrors() {
		t.Error("expected no error for valid optional UUID")
	}

	v3 := New()
	v3.OptionalUUID("id", "bad-uuid")
	if !v3.HasErrors() {
		t.Error("expected error for invalid optional UUID")
	}
}

func TestValidatorOneOf(t *testing.T) {
	allowed := []string{"auto", "zh", "en"}

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"allowed value", "zh", false},
		{"disallowed value", "fr", true},
		{"case sensitive", "ZH", true},
		{"empty is skipped", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := New().OneOf("lang", tc.value, allowed)
			if v.HasErrors() != tc.wantErr {
				t.Errorf("HasErrors() = %v, want %v (%v)", v.HasErrors(), tc.wantErr, v.Errors())
			}
		})
	}

	v := New().OneOf("lang", "fr", allowed)
	if msg := v.Errors()[0].Message; msg != "must be one of: auto, zh, en" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestValidatorValidate(t *testing.T) {
	v := New()
	v.Required("url", "http://asr")
	if appErr := v.Validate(); appErr != nil {
		t.Error("expected nil for valid input")
	}

	v2 := New()
	v2.Required("url", "")
	v2.Required("input_dir", "")
	appErr := v2.Validate()
	if appErr == nil {
		t.Fatal("expected error")
	}
	if appErr.Code != errors.ErrCodeValidation {
		t.Errorf("code = %s, want %s", appErr.Code, errors.ErrCodeValidation)
	}
	if fields, ok := appErr.Details["fields"].([]FieldError); !ok || len(fields) != 2 {
		t.Errorf("expected 2 field errors in details, got %v", appErr.Details["fields"])
	}
	if !strings.Contains(appErr.Message, "url") || !strings.Contains(appErr.Message, "input_dir") {
		t.Errorf("expected both fields in message, got %q", appErr.Message)
	}
}

func TestValidatorChaining(t *testing.T) {
	v := New()
	result := v.Required("lang", "en").OptionalUUID("request_id", "").OneOf("lang", "en", []string{"en"})
	if result != v {
		t.Error("expected chaining to return same validator")
	}
	if v.HasErrors() {
		t.Error("expected no errors for valid chained validation")
	}
}

type endpointConfig struct {
	URL      string        `mapstructure:"url" validate:"required,url"`
	InputDir string        `mapstructure:"input_dir" validate:"required"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gt=0"`
	Mode     string        `json:"mode" validate:"omitempty,oneof=single batch"`
}

func TestStructValidateValid(t *testing.T) {
	cfg := endpointConfig{URL: "http://asr:50000/api/v1/asr", InputDir: "data/inputs", Timeout: time.Minute, Mode: "batch"}
	if err := Validate(cfg); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestStructValidateInvalid(t *testing.T) {
	err := Validate(endpointConfig{URL: "not a url", Mode: "stream"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	for _, want := range []string{"url: must be a valid URL", "input_dir: is required", "timeout: must be greater than 0", "mode: must be one of: single, batch"} {
		if !strings.Contains(appErr.Message, want) {
			t.Errorf("expected %q in %q", want, appErr.Message)
		}
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 4 {
		t.Errorf("expected 4 field errors, got %v", appErr.Details["fields"])
	}
}

func TestToSnakeCase(t *testing.T) {
	if got := toSnakeCase("InputDir"); got != "input_dir" {
		t.Errorf("toSnakeCase = %q", got)
	}
}
