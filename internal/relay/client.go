package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const userAgent = "webhook-relay/1.0"

// Client forwards webhook envelopes to a single destination URL. Each call
// is bounded by the configured timeout; there are no retries.
type Client struct {
	url     string
	timeout time.Duration
	client  *http.Client
	logger  *slog.Logger
}

// NewClient creates a relay client for the given destination.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url:     url,
		timeout: timeout,
		client:  &http.Client{},
		logger:  logger,
	}
}

// Forward POSTs the envelope to the destination as JSON. Any HTTP response
// from the destination counts as success with the code recorded; transport
// failures are classified as timeout or error. Forward never returns an
// error value because the caller acknowledges the provider regardless.
func (c *Client) Forward(ctx context.Context, env Envelope) Result {
	res := Result{AttemptID: uuid.NewString()}

	payload, err := json.Marshal(env)
	if err != nil {
		res.Status = StatusError
		res.Error = err.Error()
		return res
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		res.Status = StatusError
		res.Error = err.Error()
		return res
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			res.Status = StatusTimeout
		} else {
			res.Status = StatusError
		}
		res.Error = err.Error()
		c.logger.Error("relay attempt failed",
			"attempt_id", res.AttemptID,
			"status", res.Status,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return res
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused; the destination's response
	// body is not relayed anywhere.
	_, _ = io.Copy(io.Discard, resp.Body)

	res.Status = StatusSuccess
	res.StatusCode = resp.StatusCode

	c.logger.Info("relay attempt completed",
		"attempt_id", res.AttemptID,
		"status_code", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return res
}

// isTimeout reports whether the transport error was a deadline expiry
// rather than a reachability or protocol failure.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
