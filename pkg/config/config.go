// Package config provides unified configuration for the schliff gateway.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (SCHLIFF_ prefix)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
package config

import "time"

// Config holds all configuration for the schliff gateway.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Provider      ProviderConfig      `yaml:"provider"`
	Engine        EngineConfig        `yaml:"engine"`
	Storage       StorageConfig       `yaml:"storage"`
	Auth          AuthConfig          `yaml:"auth"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `yaml:"port"`          // default: 8080
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"` // default: 120s
}

// ProviderConfig holds upstream chat-completion backend settings. The
// provider family (OpenAI, Azure, gateway) is detected from the base URL.
type ProviderConfig struct {
	BaseURL     string `yaml:"base_url"`      // empty means the public OpenAI host
	APIKeys     string `yaml:"api_keys"`      // comma-delimited; one picked per call
	APIKeysFile string `yaml:"api_keys_file"` // _file variant for api_keys
	Deployment  string `yaml:"deployment"`    // required for Azure backends
	APIVersion  string `yaml:"api_version"`   // Azure api-version override

	Model       string `yaml:"model"`        // default: "gpt-3.5-turbo"
	CustomModel string `yaml:"custom_model"` // wins over model when set

	PolishMode           string `yaml:"polish_mode"` // "simplicity" or "detailed"
	SystemPromptTemplate string `yaml:"system_prompt_template"`
	UserPromptTemplate   string `yaml:"user_prompt_template"`

	Timeout time.Duration `yaml:"timeout"` // per-call HTTP timeout, default: 60s
}

// EngineConfig holds translation engine settings.
type EngineConfig struct {
	MaxTextSize       int    `yaml:"max_text_size"`       // default: 100000
	DefaultSourceLang string `yaml:"default_source_lang"` // default: "auto"
}

// StorageConfig holds translation record storage settings.
type StorageConfig struct {
	Type    string `yaml:"type"`     // "memory", default: "memory"
	MaxSize int    `yaml:"max_size"` // LRU capacity, default: 10000
}

// AuthConfig holds inbound authentication settings.
type AuthConfig struct {
	Type      string          `yaml:"type"`     // "none", "apikey", "jwt", default: "none"
	APIKeys   []APIKeyConfig  `yaml:"api_keys"` // key entries for type=apikey
	JWT       JWTConfig       `yaml:"jwt"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// APIKeyConfig describes a single inbound API key entry.
type APIKeyConfig struct {
	Key         string `yaml:"key"`
	KeyFile     string `yaml:"key_file"` // _file variant for key
	Subject     string `yaml:"subject"`
	TenantID    string `yaml:"tenant_id"`
	ServiceTier string `yaml:"service_tier"`
}

// JWTConfig holds JWT/OIDC validation settings.
type JWTConfig struct {
	Issuer      string        `yaml:"issuer"`
	Audience    string        `yaml:"audience"`
	JWKSURL     string        `yaml:"jwks_url"`
	UserClaim   string        `yaml:"user_claim"`   // default: "sub"
	TenantClaim string        `yaml:"tenant_claim"` // default: "tenant_id"
	ScopesClaim string        `yaml:"scopes_claim"` // default: "scope"
	CacheTTL    time.Duration `yaml:"cache_ttl"`    // default: 1h
}

// RateLimitConfig holds per-tier rate limit settings.
type RateLimitConfig struct {
	Enabled    bool           `yaml:"enabled"`
	DefaultRPM int            `yaml:"default_rpm"` // default: 60
	Tiers      map[string]int `yaml:"tiers"`       // tier name -> requests per minute
}

// ObservabilityConfig holds monitoring settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second,
		},
		Provider: ProviderConfig{
			Model:      "gpt-3.5-turbo",
			PolishMode: "simplicity",
			Timeout:    60 * time.Second,
		},
		Engine: EngineConfig{
			MaxTextSize:       100000,
			DefaultSourceLang: "auto",
		},
		Storage: StorageConfig{
			Type:    "memory",
			MaxSize: 10000,
		},
		Auth: AuthConfig{
			Type: "none",
			RateLimit: RateLimitConfig{
				DefaultRPM: 60,
			},
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
	}
}
