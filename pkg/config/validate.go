package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be > 0, got %d", c.Server.Port))
	}

	// Azure backends are deployment-scoped.
	if strings.Contains(c.Provider.BaseURL, "openai.azure.com") && c.Provider.Deployment == "" {
		errs = append(errs, fmt.Errorf("provider.deployment is required for Azure backends"))
	}

	switch c.Provider.PolishMode {
	case "simplicity", "detailed", "":
		// valid
	default:
		errs = append(errs, fmt.Errorf("provider.polish_mode must be \"simplicity\" or \"detailed\", got %q", c.Provider.PolishMode))
	}

	if c.Engine.MaxTextSize <= 0 {
		errs = append(errs, fmt.Errorf("engine.max_text_size must be > 0, got %d", c.Engine.MaxTextSize))
	}

	switch c.Storage.Type {
	case "memory":
		// valid
	default:
		errs = append(errs, fmt.Errorf("storage.type must be \"memory\", got %q", c.Storage.Type))
	}

	if c.Storage.MaxSize <= 0 {
		errs = append(errs, fmt.Errorf("storage.max_size must be > 0, got %d", c.Storage.MaxSize))
	}

	switch c.Auth.Type {
	case "none", "apikey", "jwt":
		// valid
	default:
		errs = append(errs, fmt.Errorf("auth.type must be \"none\", \"apikey\", or \"jwt\", got %q", c.Auth.Type))
	}

	if c.Auth.Type == "apikey" && len(c.Auth.APIKeys) == 0 {
		errs = append(errs, fmt.Errorf("auth.api_keys must not be empty when auth.type is \"apikey\""))
	}

	if c.Auth.Type == "jwt" && c.Auth.JWT.JWKSURL == "" {
		errs = append(errs, fmt.Errorf("auth.jwt.jwks_url is required when auth.type is \"jwt\""))
	}

	return errors.Join(errs...)
}
