package config

import (
	"fmt"
	"time"
)

// Documented placeholder defaults. A value still equal to its placeholder
// counts as "not configured" for the status endpoint and for verification.
const (
	PlaceholderSecretToken = "your-secret-token-here"
	PlaceholderRelayURL    = "https://your-destination-url.com/webhook"
)

// Default values applied before file and environment overrides.
const (
	DefaultRelayTimeout = 30 // seconds
	DefaultPort         = 8000
	DefaultLogLevel     = "INFO"
	DefaultMaxBodySize  = 1048576 // 1 MB
)

// Config holds the relay's runtime configuration. It is loaded once at
// startup and read-only afterwards.
type Config struct {
	// SecretToken is the shared secret used to answer the provider's
	// verification challenge.
	SecretToken string `yaml:"secret_token"`

	// RelayURL is the destination that inbound webhook envelopes are
	// forwarded to.
	RelayURL string `yaml:"relay_url"`

	// RelayTimeout bounds each outbound relay call, in seconds.
	RelayTimeout int `yaml:"relay_timeout"`

	// Port is the HTTP listen port.
	Port int `yaml:"port"`

	// LogLevel is one of DEBUG, INFO, WARN, ERROR.
	LogLevel string `yaml:"log_level"`

	// MaxBodySize caps inbound webhook bodies, in bytes.
	MaxBodySize int64 `yaml:"max_body_size"`
}

// SecretConfigured reports whether the secret token has been set to a real
// value rather than left empty or at the documented placeholder.
func (c *Config) SecretConfigured() bool {
	return c.SecretToken != "" && c.SecretToken != PlaceholderSecretToken
}

// RelayURLConfigured reports whether the relay destination has been set to a
// real value rather than left empty or at the documented placeholder.
func (c *Config) RelayURLConfigured() bool {
	return c.RelayURL != "" && c.RelayURL != PlaceholderRelayURL
}

// Timeout returns the relay timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RelayTimeout) * time.Second
}

// ListenAddr returns the address the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
