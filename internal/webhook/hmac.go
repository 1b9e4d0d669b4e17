package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// challengeDigest computes the HMAC-SHA256 of a verification challenge
// message, keyed by the shared secret. The provider compares this hex
// digest against its own computation to confirm the receiver holds the
// secret.
func challengeDigest(secret, msg string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(msg))
	return hex.EncodeToString(mac.Sum(nil))
}
