package engine

import "github.com/schliff-dev/schliff/pkg/api"

// Config holds configuration for the core engine.
type Config struct {
	// MaxTextSize caps the source text length in bytes. Zero means the
	// default from api.DefaultValidationConfig.
	MaxTextSize int

	// DefaultSourceLang is assumed when the request omits source_lang.
	// Empty means prompt selection falls back to the generic prompt.
	DefaultSourceLang string
}

// validationConfig returns the effective validation limits.
func (c Config) validationConfig() api.ValidationConfig {
	cfg := api.DefaultValidationConfig()
	if c.MaxTextSize > 0 {
		cfg.MaxTextSize = c.MaxTextSize
	}
	return cfg
}
