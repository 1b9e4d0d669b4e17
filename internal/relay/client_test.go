package relay

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEnvelope() Envelope {
	return Envelope{
		Headers: EnvelopeHeaders{
			Event:       "patient.updated",
			Signature:   "abc",
			DeliveryID:  "123",
			ContentType: "application/json",
		},
		Body: json.RawMessage(`{"receiver":"X","object":"Y"}`),
	}
}

func TestForwardSuccess(t *testing.T) {
	var gotBody []byte
	var gotContentType, gotUserAgent string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotContentType = r.Header.Get("Content-Type")
		gotUserAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, testLogger())
	res := client.Forward(context.Background(), testEnvelope())

	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, http.StatusAccepted, res.StatusCode)
	assert.NotEmpty(t, res.AttemptID)
	assert.Empty(t, res.Error)

	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, userAgent, gotUserAgent)

	want := `{"headers":{"X-drchrono-event":"patient.updated","X-drchrono-signature":"abc","X-drchrono-delivery":"123","Content-Type":"application/json"},"body":{"receiver":"X","object":"Y"}}`
	assert.JSONEq(t, want, string(gotBody))
}

func TestForwardDestinationErrorStatusIsStillSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, testLogger())
	res := client.Forward(context.Background(), testEnvelope())

	// Reaching the destination is a completed relay; the code is recorded
	// for the logs but does not change the outcome.
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, http.StatusBadGateway, res.StatusCode)
}

func TestForwardUnreachableDestination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	client := NewClient(srv.URL, 5*time.Second, testLogger())
	res := client.Forward(context.Background(), testEnvelope())

	assert.Equal(t, StatusError, res.Status)
	assert.NotEmpty(t, res.Error)
	assert.Zero(t, res.StatusCode)
}

func TestForwardTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		srv.Close()
	}()

	client := NewClient(srv.URL, 50*time.Millisecond, testLogger())

	start := time.Now()
	res := client.Forward(context.Background(), testEnvelope())

	assert.Equal(t, StatusTimeout, res.Status)
	assert.NotEmpty(t, res.Error)
	require.Less(t, time.Since(start), 2*time.Second, "timeout should be bounded by the configured duration")
}

func TestForwardFreshAttemptIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, testLogger())
	a := client.Forward(context.Background(), testEnvelope())
	b := client.Forward(context.Background(), testEnvelope())

	assert.NotEqual(t, a.AttemptID, b.AttemptID)
}
