// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package api serves password generation over HTTP.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/holomush/passgen/internal/password"
)

// Routes served by the API.
const (
	RoutePasswords = "/v1/passwords"
	RouteClasses   = "/v1/classes"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 64 << 10

// Generator produces one password per call. *password.Generator implements it.
type Generator interface {
	Generate(req password.Request) (string, error)
}

// Recorder receives metrics. *observability.Metrics implements it.
type Recorder interface {
	RecordGeneration(code string, length int)
	RecordHTTPRequest(route string, status int)
}

type nopRecorder struct{}

func (nopRecorder) RecordGeneration(string, int)  {}
func (nopRecorder) RecordHTTPRequest(string, int) {}

// Options configures a Server.
type Options struct {
	// Addr is the listen address in "host:port" form.
	Addr string
	// Defaults fills fields a client leaves out.
	Defaults password.Request
	// DefaultCount is the number of passwords when a client sends no count.
	DefaultCount int
	// MaxLength and MaxCount cap client requests.
	MaxLength int
	MaxCount  int

	Generator Generator
	Recorder  Recorder
	Logger    *slog.Logger
}

// Server is the HTTP API server.
type Server struct {
	opts    Options
	tracer  trace.Tracer
	running atomic.Bool

	// mu guards listener and httpServer against Addr and Stop racing Start.
	mu         sync.Mutex
	listener   net.Listener
	httpServer *http.Server
}

// NewServer creates a Server. A nil Generator uses crypto/rand, a nil
// Recorder drops metrics, and a nil Logger uses slog.Default.
func NewServer(opts Options) (*Server, error) {
	if opts.MaxLength < 1 || opts.MaxCount < 1 {
		return nil, oops.With("max_length", opts.MaxLength).
			With("max_count", opts.MaxCount).
			Errorf("api limits must be positive")
	}
	if opts.DefaultCount < 1 {
		opts.DefaultCount = 1
	}
	if opts.Generator == nil {
		opts.Generator = password.NewGenerator()
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Server{
		opts:   opts,
		tracer: otel.Tracer("github.com/holomush/passgen/internal/api"),
	}, nil
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST "+RoutePasswords, s.instrument(RoutePasswords, s.handleGenerate))
	mux.Handle("GET "+RouteClasses, s.instrument(RouteClasses, s.handleClasses))
	return mux
}

// Start begins serving. The returned channel receives a serve error if the
// server fails after Start returns, and is closed when it stops.
func (s *Server) Start() (<-chan error, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, oops.Errorf("api server already running")
	}

	listener, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		s.running.Store(false)
		return nil, oops.With("addr", s.opts.Addr).Wrap(err)
	}

	httpSrv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.mu.Lock()
	s.listener = listener
	s.httpServer = httpSrv
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if serveErr := httpSrv.Serve(listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			s.opts.Logger.Error("api server error", "error", serveErr)
			errCh <- serveErr
		}
	}()

	s.opts.Logger.Info("api server started", "addr", listener.Addr().String())
	return errCh, nil
}

// Stop gracefully shuts the server down. Stopping a stopped server is a no-op.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	s.mu.Lock()
	httpSrv := s.httpServer
	s.mu.Unlock()

	if err := httpSrv.Shutdown(ctx); err != nil {
		s.running.Store(true)
		return oops.With("operation", "shutdown_api_server").Wrap(err)
	}

	s.opts.Logger.Info("api server stopped")
	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}

// Running reports whether the server is accepting requests.
func (s *Server) Running() bool {
	return s.running.Load()
}

// statusWriter remembers the response status for metrics.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (s *Server) instrument(route string, h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		h(sw, r)
		s.opts.Recorder.RecordHTTPRequest(route, sw.status)
	})
}
