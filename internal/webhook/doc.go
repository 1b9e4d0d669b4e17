// Package webhook implements the relay's HTTP surface for a single upstream
// webhook provider.
//
// # Endpoints
//
//   - GET  /               health check
//   - GET  /webhook        verification challenge (HMAC-SHA256 of ?msg)
//   - POST /webhook        delivery intake, forwarded to the relay destination
//   - GET  /webhook/status configuration status
//
// # Acknowledgement Policy
//
// POST /webhook always answers 200, even when the outbound relay times out
// or fails outright. The provider treats any non-2xx as a redelivery
// trigger, and the operator prefers a dropped relay over a retry storm.
// Relay outcomes are logged at error level and echoed in the ack body, so
// failures stay visible on the operator's side.
//
// # Verification
//
// The provider verifies the receiver by sending GET /webhook?msg=<challenge>
// and expecting {"secret_token": HMAC_SHA256(secret, msg)} as lowercase hex.
// An unset or placeholder secret makes this the only endpoint that returns
// a 5xx.
package webhook
