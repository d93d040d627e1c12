package api

import "fmt"

// ValidationConfig holds configurable limits for request validation.
type ValidationConfig struct {
	MaxTextSize int
}

// DefaultValidationConfig returns a ValidationConfig with sensible defaults.
func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		MaxTextSize: 64 * 1024, // 64KB of source text
	}
}

// ValidateRequest checks a CreateTranslationRequest for validity. It returns
// a *TranslationError describing the first validation failure, or nil if the
// request is valid. Validation short-circuits: only the first defect is
// reported.
func ValidateRequest(req *CreateTranslationRequest, cfg ValidationConfig) *TranslationError {
	if req.Text == "" {
		return NewParamError("text is required")
	}

	if cfg.MaxTextSize > 0 && len(req.Text) > cfg.MaxTextSize {
		return NewParamError(fmt.Sprintf("text exceeds maximum of %d bytes", cfg.MaxTextSize))
	}

	if req.TargetLang == "" {
		return NewParamError("target_lang is required")
	}

	return nil
}
