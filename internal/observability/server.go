// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package observability provides Prometheus metrics and health probe endpoints.
package observability

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/oops"
)

// ReadinessChecker returns whether the service is ready to take traffic.
// serve flips it to true once the API listener is bound.
type ReadinessChecker func() bool

// Server serves /metrics and the Kubernetes-style health probes.
type Server struct {
	addr     string
	registry *prometheus.Registry
	metrics  *Metrics
	isReady  ReadinessChecker
	running  atomic.Bool

	// mu guards listener and httpServer, which Start sets while other
	// goroutines may already be calling Addr or Stop.
	mu         sync.Mutex
	listener   net.Listener
	httpServer *http.Server
}

// NewServer creates an observability server.
// addr is the listen address in "host:port" form, e.g. "127.0.0.1:9100",
// or ":9100" for all interfaces. A nil readiness checker always reports ready.
func NewServer(addr string, readinessChecker ReadinessChecker) *Server {
	// Each server owns its registry so tests and embedded servers never
	// collide on the global one.
	registry := prometheus.NewRegistry()

	// Runtime and process collectors come first, then passgen's own metrics.
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &Server{
		addr:     addr,
		registry: registry,
		metrics:  NewMetrics(registry),
		isReady:  readinessChecker,
	}
}

// Metrics returns the passgen metrics registered with this server. The API
// server records generations and requests through it.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start binds the listener and begins serving in the background.
// The returned channel receives at most one error if the HTTP server fails
// after Start has returned, and is closed once serving ends. Callers select
// on it alongside their shutdown signal.
func (s *Server) Start() (<-chan error, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, oops.Errorf("observability server already running")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.running.Store(false)
		return nil, oops.With("addr", s.addr).Wrap(err)
	}

	mux := http.NewServeMux()

	// Prometheus scrape endpoint.
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))

	// Health probes.
	mux.HandleFunc("/healthz/liveness", s.handleLiveness)
	mux.HandleFunc("/healthz/readiness", s.handleReadiness)

	httpSrv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.mu.Lock()
	s.listener = listener
	s.httpServer = httpSrv
	s.mu.Unlock()

	// Buffered so the serve goroutine never blocks on a caller that stopped
	// listening.
	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		// httpSrv is captured locally so a later Start cannot swap it out
		// from under this goroutine.
		if serveErr := httpSrv.Serve(listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("observability server error", "error", serveErr)
			errCh <- serveErr
		}
	}()

	slog.Info("observability server started", "addr", listener.Addr().String())
	return errCh, nil
}

// Stop gracefully shuts the server down. Stopping a stopped server is a no-op.
func (s *Server) Stop(ctx context.Context) error {
	// CompareAndSwap keeps a concurrent Start from slipping in between the
	// check and the state change.
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	s.mu.Lock()
	httpSrv := s.httpServer
	s.mu.Unlock()

	if httpSrv != nil {
		if err := httpSrv.Shutdown(ctx); err != nil {
			// Still running: allow another Stop attempt.
			s.running.Store(true)
			return oops.With("operation", "shutdown_observability_server").Wrap(err)
		}
	}

	slog.Info("observability server stopped")
	return nil
}

// Addr returns the address the server is bound to, or "" before Start.
// With a ":0" listen address this is how callers learn the real port.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}

// handleLiveness answers 200 whenever the process can serve HTTP at all.
func (s *Server) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // health check write error is acceptable, client may disconnect
	w.Write([]byte("ok\n"))
}

// handleReadiness answers 200 while the readiness checker reports ready and
// 503 otherwise, so load balancers stop routing during startup and shutdown.
func (s *Server) handleReadiness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if s.isReady == nil || s.isReady() {
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck // health check write error is acceptable, client may disconnect
		w.Write([]byte("ok\n"))
		return
	}

	w.WriteHeader(http.StatusServiceUnavailable)
	//nolint:errcheck // health check write error is acceptable, client may disconnect
	w.Write([]byte("not ready\n"))
}
