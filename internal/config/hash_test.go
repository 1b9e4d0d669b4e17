package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintStable(t *testing.T) {
	cfg := defaults()

	a, err := cfg.Fingerprint()
	require.NoError(t, err)
	b, err := cfg.Fingerprint()
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64) // 256-bit digest, hex encoded
}

func TestFingerprintChangesWithConfig(t *testing.T) {
	base := defaults()
	changed := defaults()
	changed.RelayURL = "https://hooks.example.com/in"

	a, err := base.Fingerprint()
	require.NoError(t, err)
	b, err := changed.Fingerprint()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
