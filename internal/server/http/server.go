// Package http exposes the auth service over HTTP: create-account,
// authenticate and fetch-current-user, plus health and metrics endpoints.
package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

// Authenticator is the part of the auth service the handlers need.
type Authenticator interface {
	Register(ctx context.Context, username, password, email string) (string, error)
	Authorize(ctx context.Context, username, password string) (string, error)
	CurrentUser(ctx context.Context, token string) (*models.UserProfile, error)
}

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address string
	auth    Authenticator
	logger  logging.Logger
	metrics *metrics.Metrics
	srv     *http.Server
}

func NewHTTPServer(a string, l logging.Logger, svc Authenticator, m *metrics.Metrics) *HTTPServer {
	s := &HTTPServer{
		address: a,
		auth:    svc,
		logger:  l.With("module", "http_server"),
		metrics: m,
	}
	s.srv = &http.Server{
		Addr:              a,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the routed and instrumented handler tree.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /registration", s.handleRegistration)
	mux.HandleFunc("POST /authorization", s.handleAuthorization)
	mux.HandleFunc("GET /user_data", s.handleUserData)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /{$}", http.RedirectHandler("/healthz", http.StatusTemporaryRedirect))
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}

	return s.requestIDMiddleware(s.loggingMiddleware(mux))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run over an already bound listener.
func (s *HTTPServer) Serve(ctx context.Context, listen net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())
		errCh <- s.srv.Serve(listen)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
