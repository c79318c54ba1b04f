// Package validation provides input validation utilities.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Failures come back as
// *errors.AppError with code VALIDATION_ERROR and the offending fields in
// Details["fields"].
//
// # Struct Tag Validation
//
//	type Config struct {
//	    URL     string        `mapstructure:"url" validate:"required,url"`
//	    Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("lang", lang).OneOf("lang", lang, supported)
//	if appErr := v.Validate(); appErr != nil { ... }
package validation
