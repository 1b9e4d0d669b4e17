package webhook

import (
	"fmt"

	"github.com/cameo-health/webhook-relay/internal/config"
)

// FromGlobalConfig converts the global config into webhook server
// configuration, computing the fingerprint once so handlers never touch
// the raw config values.
func FromGlobalConfig(gc *config.Config) (Config, error) {
	if gc == nil {
		return Config{}, fmt.Errorf("global config is nil")
	}

	fingerprint, err := gc.Fingerprint()
	if err != nil {
		return Config{}, fmt.Errorf("failed to fingerprint config: %w", err)
	}

	return Config{
		Listen:              gc.ListenAddr(),
		SecretToken:         gc.SecretToken,
		SecretSet:           gc.SecretConfigured(),
		RelayURLSet:         gc.RelayURLConfigured(),
		RelayTimeoutSeconds: gc.RelayTimeout,
		MaxBodySize:         gc.MaxBodySize,
		Fingerprint:         fingerprint,
	}, nil
}
