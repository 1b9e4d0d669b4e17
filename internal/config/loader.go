package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load builds the effective configuration. Precedence, lowest to highest:
// built-in defaults, the optional YAML config file, environment variables.
// An empty configPath skips the file layer.
func Load(configPath string) (*Config, error) {
	cfg := defaults()

	if configPath != "" {
		if err := loadFile(cfg, configPath); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		SecretToken:  PlaceholderSecretToken,
		RelayURL:     PlaceholderRelayURL,
		RelayTimeout: DefaultRelayTimeout,
		Port:         DefaultPort,
		LogLevel:     DefaultLogLevel,
		MaxBodySize:  DefaultMaxBodySize,
	}
}

func loadFile(cfg *Config, configPath string) error {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return fmt.Errorf("failed to resolve config path %q: %w", configPath, err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("config file not found: %s\n"+
			"Hint: check the path or run without --config to use environment variables only", absPath)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", absPath, err)
	}

	return nil
}

// applyEnv overlays environment variables onto cfg. Unset variables leave
// the existing value in place; set-but-invalid numeric values are errors
// rather than silent fallbacks.
func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("WEBHOOK_SECRET_TOKEN"); ok {
		cfg.SecretToken = v
	}
	if v, ok := os.LookupEnv("RELAY_URL"); ok {
		cfg.RelayURL = v
	}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}

	if v, ok := os.LookupEnv("RELAY_TIMEOUT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RELAY_TIMEOUT %q: %w", v, err)
		}
		cfg.RelayTimeout = n
	}
	if v, ok := os.LookupEnv("PORT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = n
	}
	if v, ok := os.LookupEnv("MAX_BODY_SIZE"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid MAX_BODY_SIZE %q: %w", v, err)
		}
		cfg.MaxBodySize = n
	}

	return nil
}

func validate(cfg *Config) error {
	if cfg.RelayTimeout <= 0 {
		return fmt.Errorf("relay_timeout must be positive, got %d", cfg.RelayTimeout)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("port must be in range 1-65535, got %d", cfg.Port)
	}
	if cfg.MaxBodySize <= 0 {
		return fmt.Errorf("max_body_size must be positive, got %d", cfg.MaxBodySize)
	}
	return nil
}
