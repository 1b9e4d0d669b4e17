package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cameo-health/webhook-relay/internal/relay"
)

// Server is the relay's HTTP surface: health check, verification
// challenge, webhook intake, and configuration status.
type Server struct {
	config    Config
	forwarder relay.Forwarder
	logger    *slog.Logger
	server    *http.Server
	startedAt time.Time
}

// New creates a new webhook server instance.
func New(config Config, forwarder relay.Forwarder, logger *slog.Logger) *Server {
	if config.MaxBodySize <= 0 {
		config.MaxBodySize = 1048576
	}
	return &Server{
		config:    config,
		forwarder: forwarder,
		logger:    logger,
		startedAt: time.Now(),
	}
}

// Start starts the webhook HTTP server (blocking).
func (s *Server) Start(ctx context.Context) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:         s.config.Listen,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: time.Duration(s.config.RelayTimeoutSeconds+10) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("webhook relay starting",
		"listen", s.config.Listen,
		"relay_timeout_seconds", s.config.RelayTimeoutSeconds,
		"secret_set", s.config.SecretSet,
		"relay_url_set", s.config.RelayURLSet,
	)

	// Run server in goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for context cancellation or server error
	select {
	case <-ctx.Done():
		s.logger.Info("webhook relay shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("webhook relay shutdown failed: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		return fmt.Errorf("webhook relay server error: %w", err)
	}
}

// setupRoutes configures the HTTP router.
func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleHealth)
	r.Get("/webhook", s.handleVerification)
	r.Post("/webhook", s.handleDelivery)
	r.Get("/webhook/status", s.handleStatus)

	return r
}

// loggingMiddleware logs HTTP requests (excludes payload content).
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
			"remote_addr", r.RemoteAddr,
		)
	})
}

// handleHealth handles GET /. It must succeed under any configuration,
// including a completely empty environment.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		Message:       "webhook relay is running",
		UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
	})
}

// handleVerification handles GET /webhook, the provider's verification
// challenge. The response proves possession of the shared secret by
// returning the HMAC-SHA256 hex digest of the supplied message.
func (s *Server) handleVerification(w http.ResponseWriter, r *http.Request) {
	msg := r.URL.Query().Get("msg")
	if msg == "" {
		s.respondError(w, http.StatusBadRequest, "missing msg parameter")
		return
	}

	if !s.config.SecretSet {
		s.logger.Error("verification failed: secret token not configured")
		s.respondError(w, http.StatusInternalServerError, "verification failed")
		return
	}

	s.logger.Info("verification challenge answered")
	s.respondJSON(w, http.StatusOK, VerificationResponse{
		SecretToken: challengeDigest(s.config.SecretToken, msg),
	})
}

// handleDelivery handles POST /webhook. The envelope is forwarded to the
// destination, and the provider is acknowledged with 200 no matter how the
// relay went: a non-2xx here would trigger the provider's redelivery loop,
// which the operator explicitly does not want. Failures are logged and
// reported in the ack body instead.
func (s *Server) handleDelivery(w http.ResponseWriter, r *http.Request) {
	event := r.Header.Get(relay.HeaderEvent)
	if event == "" {
		event = "unknown"
	}
	signature := r.Header.Get(relay.HeaderSignature)
	deliveryID := r.Header.Get(relay.HeaderDelivery)

	logger := s.logger.With("event", event, "delivery_id", deliveryID)

	body, err := s.readBody(r)
	if err != nil {
		logger.Warn("failed to read webhook body", "error", err)
		body = nil
	}

	// Malformed or empty JSON becomes an empty object; the delivery is
	// still acknowledged and relayed.
	if len(body) == 0 || !json.Valid(body) {
		if len(body) > 0 {
			logger.Warn("webhook body is not valid JSON, relaying empty object")
		}
		body = []byte("{}")
	}

	logger.Info("webhook received")

	env := relay.Envelope{
		Headers: relay.EnvelopeHeaders{
			Event:       event,
			Signature:   signature,
			DeliveryID:  deliveryID,
			ContentType: "application/json",
		},
		Body: json.RawMessage(body),
	}

	res := s.forwarder.Forward(r.Context(), env)

	ack := AckResponse{
		Event:      event,
		DeliveryID: deliveryID,
		Relay:      &res,
	}

	switch res.Status {
	case relay.StatusSuccess:
		ack.Status = relay.StatusSuccess
		ack.Message = "webhook received and relayed"
		logger.Info("webhook relayed", "attempt_id", res.AttemptID, "status_code", res.StatusCode)
	case relay.StatusTimeout:
		ack.Status = relay.StatusTimeout
		ack.Message = "webhook received but relay timed out"
		logger.Error("webhook relay timed out", "attempt_id", res.AttemptID)
	default:
		ack.Status = relay.StatusError
		ack.Message = "webhook received but relay failed"
		logger.Error("webhook relay failed", "attempt_id", res.AttemptID, "error", res.Error)
	}

	s.respondJSON(w, http.StatusOK, ack)
}

// handleStatus handles GET /webhook/status.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, StatusResponse{
		Configured:          s.config.SecretSet && s.config.RelayURLSet,
		SecretSet:           s.config.SecretSet,
		RelayURLSet:         s.config.RelayURLSet,
		RelayTimeoutSeconds: s.config.RelayTimeoutSeconds,
		ConfigFingerprint:   s.config.Fingerprint,
	})
}

// readBody reads the request body up to the configured size cap.
func (s *Server) readBody(r *http.Request) ([]byte, error) {
	limitedReader := io.LimitReader(r.Body, s.config.MaxBodySize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > s.config.MaxBodySize {
		return nil, fmt.Errorf("body exceeds %d byte limit", s.config.MaxBodySize)
	}
	return body, nil
}

// respondJSON sends a JSON response.
func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError sends a JSON error response.
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, ErrorResponse{Error: message})
}
