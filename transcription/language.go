package transcription

import (
	"slices"

	"github.com/kbukum/asrdrop/errors"
	"github.com/kbukum/asrdrop/validation"
)

// DefaultLanguage lets the service detect the language.
const DefaultLanguage = "auto"

// Languages is the closed set of language codes the service accepts.
var Languages = []string{"auto", "zh", "en", "yue", "ja", "ko", "nospeech"}

// IsSupportedLanguage reports whether lang is in Languages. Matching is
// exact and case-sensitive.
func IsSupportedLanguage(lang string) bool {
	return slices.Contains(Languages, lang)
}

// ValidateLanguage returns INVALID_LANGUAGE unless lang is supported.
func ValidateLanguage(lang string) *errors.AppError {
	v := validation.New().
		Required("lang", lang).
		OneOf("lang", lang, Languages)
	if v.HasErrors() {
		return errors.InvalidLanguage(lang, Languages)
	}
	return nil
}
