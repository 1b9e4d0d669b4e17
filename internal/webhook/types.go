package webhook

import "github.com/cameo-health/webhook-relay/internal/relay"

// Config holds webhook server configuration, resolved from the global
// config at startup.
type Config struct {
	// Listen is the address the HTTP server binds to (e.g. ":8000").
	Listen string

	// SecretToken answers the provider's verification challenge.
	SecretToken string

	// SecretSet and RelayURLSet report whether the corresponding values
	// differ from their documented placeholders.
	SecretSet   bool
	RelayURLSet bool

	// RelayTimeoutSeconds is echoed by the status endpoint.
	RelayTimeoutSeconds int

	// MaxBodySize caps inbound webhook bodies in bytes.
	MaxBodySize int64

	// Fingerprint identifies the effective configuration without exposing
	// its values.
	Fingerprint string
}

// HealthResponse is the JSON response for GET /.
type HealthResponse struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// VerificationResponse is the JSON response for GET /webhook.
type VerificationResponse struct {
	SecretToken string `json:"secret_token"`
}

// AckResponse is the JSON response for POST /webhook. It always rides a
// 200 so the provider never schedules a redelivery; the relay outcome is
// carried in the body instead.
type AckResponse struct {
	Status     string        `json:"status"`
	Message    string        `json:"message"`
	Event      string        `json:"event,omitempty"`
	DeliveryID string        `json:"delivery_id,omitempty"`
	Relay      *relay.Result `json:"relay,omitempty"`
}

// StatusResponse is the JSON response for GET /webhook/status.
type StatusResponse struct {
	Configured          bool   `json:"configured"`
	SecretSet           bool   `json:"secret_set"`
	RelayURLSet         bool   `json:"relay_url_set"`
	RelayTimeoutSeconds int    `json:"relay_timeout_seconds"`
	ConfigFingerprint   string `json:"config_fingerprint"`
}

// ErrorResponse is the JSON response for webhook errors.
type ErrorResponse struct {
	Error string `json:"error"`
}
