package webhook

import (
	"testing"

	"github.com/cameo-health/webhook-relay/internal/config"
)

func TestFromGlobalConfig(t *testing.T) {
	gc := &config.Config{
		SecretToken:  "real-secret",
		RelayURL:     "https://hooks.example.com/in",
		RelayTimeout: 15,
		Port:         9000,
		LogLevel:     "INFO",
		MaxBodySize:  2048,
	}

	cfg, err := FromGlobalConfig(gc)
	if err != nil {
		t.Fatalf("FromGlobalConfig failed: %v", err)
	}

	if cfg.Listen != ":9000" {
		t.Errorf("Listen = %q, want :9000", cfg.Listen)
	}
	if cfg.SecretToken != "real-secret" {
		t.Errorf("SecretToken = %q, want real-secret", cfg.SecretToken)
	}
	if !cfg.SecretSet || !cfg.RelayURLSet {
		t.Errorf("SecretSet/RelayURLSet = %v/%v, want true/true", cfg.SecretSet, cfg.RelayURLSet)
	}
	if cfg.RelayTimeoutSeconds != 15 {
		t.Errorf("RelayTimeoutSeconds = %d, want 15", cfg.RelayTimeoutSeconds)
	}
	if cfg.MaxBodySize != 2048 {
		t.Errorf("MaxBodySize = %d, want 2048", cfg.MaxBodySize)
	}
	if len(cfg.Fingerprint) != 64 {
		t.Errorf("Fingerprint length = %d, want 64", len(cfg.Fingerprint))
	}
}

func TestFromGlobalConfigPlaceholders(t *testing.T) {
	gc := &config.Config{
		SecretToken:  config.PlaceholderSecretToken,
		RelayURL:     config.PlaceholderRelayURL,
		RelayTimeout: 30,
		Port:         8000,
		MaxBodySize:  1048576,
	}

	cfg, err := FromGlobalConfig(gc)
	if err != nil {
		t.Fatalf("FromGlobalConfig failed: %v", err)
	}

	if cfg.SecretSet {
		t.Error("SecretSet = true for placeholder secret, want false")
	}
	if cfg.RelayURLSet {
		t.Error("RelayURLSet = true for placeholder URL, want false")
	}
}

func TestFromGlobalConfigNil(t *testing.T) {
	if _, err := FromGlobalConfig(nil); err == nil {
		t.Error("expected error for nil config")
	}
}
