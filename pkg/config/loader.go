package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, SCHLIFF_CONFIG env, ./config.yaml, /etc/schliff/config.yaml)
//  3. Environment variable overrides
//  4. File reference resolution (_file suffix)
//  5. Validation
func Load(configPath string) (*Config, error) {
	cfg := Defaults()

	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := resolveFileReferences(&cfg); err != nil {
		return nil, fmt.Errorf("resolving file references: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
// 1. Explicit configPath argument
// 2. SCHLIFF_CONFIG environment variable
// 3. ./config.yaml in the current directory
// 4. /etc/schliff/config.yaml
//
// Returns empty string if no config file is found.
func discoverConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}

	if envPath := os.Getenv("SCHLIFF_CONFIG"); envPath != "" {
		return envPath
	}

	candidates := []string{
		"config.yaml",
		"/etc/schliff/config.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps SCHLIFF_* environment variables to config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SCHLIFF_BASE_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv("SCHLIFF_API_KEYS"); v != "" {
		cfg.Provider.APIKeys = v
	}
	if v := os.Getenv("SCHLIFF_DEPLOYMENT"); v != "" {
		cfg.Provider.Deployment = v
	}
	if v := os.Getenv("SCHLIFF_API_VERSION"); v != "" {
		cfg.Provider.APIVersion = v
	}
	if v := os.Getenv("SCHLIFF_MODEL"); v != "" {
		cfg.Provider.Model = v
	}
	if v := os.Getenv("SCHLIFF_CUSTOM_MODEL"); v != "" {
		cfg.Provider.CustomModel = v
	}
	if v := os.Getenv("SCHLIFF_POLISH_MODE"); v != "" {
		cfg.Provider.PolishMode = v
	}
	if v := os.Getenv("SCHLIFF_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("SCHLIFF_DEFAULT_SOURCE_LANG"); v != "" {
		cfg.Engine.DefaultSourceLang = v
	}
	if v := os.Getenv("SCHLIFF_STORAGE_SIZE"); v != "" {
		if size, err := strconv.Atoi(v); err == nil {
			cfg.Storage.MaxSize = size
		}
	}
	if v := os.Getenv("SCHLIFF_AUTH_TYPE"); v != "" {
		cfg.Auth.Type = v
	}

	// SCHLIFF_AUTH_API_KEYS: JSON array of inbound API key configs.
	if v := os.Getenv("SCHLIFF_AUTH_API_KEYS"); v != "" {
		var keys []APIKeyConfig
		if err := json.Unmarshal([]byte(v), &keys); err == nil && len(keys) > 0 {
			cfg.Auth.APIKeys = keys
		}
	}
}

// resolveFileReferences reads _file fields and populates the corresponding
// value fields. For each field ending in _file, if the value field is empty
// and the file field is set, the file is read, whitespace is trimmed, and the
// value field is populated.
func resolveFileReferences(cfg *Config) error {
	// provider.api_keys_file -> provider.api_keys
	if cfg.Provider.APIKeysFile != "" && cfg.Provider.APIKeys == "" {
		val, err := readSecretFile(cfg.Provider.APIKeysFile)
		if err != nil {
			return fmt.Errorf("provider.api_keys_file: %w", err)
		}
		cfg.Provider.APIKeys = val
	}

	// auth.api_keys[*].key_file -> auth.api_keys[*].key
	for i := range cfg.Auth.APIKeys {
		if cfg.Auth.APIKeys[i].KeyFile != "" && cfg.Auth.APIKeys[i].Key == "" {
			val, err := readSecretFile(cfg.Auth.APIKeys[i].KeyFile)
			if err != nil {
				return fmt.Errorf("auth.api_keys[%d].key_file: %w", i, err)
			}
			cfg.Auth.APIKeys[i].Key = val
		}
	}

	return nil
}

// readSecretFile reads a file and returns its content with surrounding
// whitespace trimmed.
func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
