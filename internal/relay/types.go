package relay

import (
	"context"
	"encoding/json"
)

// Provider header names carried through to the destination.
const (
	HeaderEvent     = "X-drchrono-event"
	HeaderSignature = "X-drchrono-signature"
	HeaderDelivery  = "X-drchrono-delivery"
)

// EnvelopeHeaders is the fixed set of inbound headers forwarded alongside
// the payload. JSON keys match the provider's header names exactly.
type EnvelopeHeaders struct {
	Event       string `json:"X-drchrono-event"`
	Signature   string `json:"X-drchrono-signature"`
	DeliveryID  string `json:"X-drchrono-delivery"`
	ContentType string `json:"Content-Type"`
}

// Envelope is the wrapper forwarded to the relay destination: the selected
// provider headers plus the original JSON body, untouched.
type Envelope struct {
	Headers EnvelopeHeaders `json:"headers"`
	Body    json.RawMessage `json:"body"`
}

// Relay outcome states.
const (
	StatusSuccess = "success"
	StatusTimeout = "timeout"
	StatusError   = "error"
)

// Result describes a single outbound relay attempt. StatusCode is set only
// when the destination produced an HTTP response.
type Result struct {
	AttemptID  string `json:"attempt_id"`
	Status     string `json:"status"`
	StatusCode int    `json:"status_code,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Forwarder is the seam between the HTTP handlers and the outbound client.
type Forwarder interface {
	Forward(ctx context.Context, env Envelope) Result
}
