// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/holomush/passgen/internal/api"
	"github.com/holomush/passgen/internal/config"
	"github.com/holomush/passgen/internal/observability"
	"github.com/holomush/passgen/internal/password"
)

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve password generation over HTTP",
		Long: `Start the HTTP API (POST /v1/passwords, GET /v1/classes) and, unless
--metrics-addr is empty, the metrics and health probe server. Request fields
a client omits take the generation settings from the config file and flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}

	config.BindGenerateFlags(cmd.Flags())
	config.BindServerFlags(cmd.Flags())

	return cmd
}

func runServe(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := setupLogging(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	shutdownTimeout, err := cfg.Server.Timeout()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var ready atomic.Bool
	var obsServer *observability.Server
	var obsErrCh <-chan error
	var recorder api.Recorder
	if cfg.Server.MetricsAddr != "" {
		obsServer = observability.NewServer(cfg.Server.MetricsAddr, ready.Load)
		obsErrCh, err = obsServer.Start()
		if err != nil {
			return fmt.Errorf("failed to start observability server: %w", err)
		}
		recorder = obsServer.Metrics()
		logger.Info("observability server started", "addr", obsServer.Addr())
	}

	apiServer, err := api.NewServer(api.Options{
		Addr:         cfg.Server.Addr,
		Defaults:     cfg.Request(),
		DefaultCount: cfg.Count,
		MaxLength:    cfg.Server.MaxLength,
		MaxCount:     cfg.Server.MaxCount,
		Generator:    password.NewGenerator(),
		Recorder:     recorder,
		Logger:       logger,
	})
	if err != nil {
		stopObservability(logger, shutdownTimeout, obsServer)
		return fmt.Errorf("failed to create api server: %w", err)
	}
	apiErrCh, err := apiServer.Start()
	if err != nil {
		stopObservability(logger, shutdownTimeout, obsServer)
		return fmt.Errorf("failed to start api server: %w", err)
	}
	ready.Store(true)

	cmd.Printf("passgen listening on %s\n", apiServer.Addr())

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down", "reason", context.Cause(ctx))
	case err := <-apiErrCh:
		serveErr = fmt.Errorf("api server error: %w", err)
	case err := <-obsErrCh:
		serveErr = fmt.Errorf("observability server error: %w", err)
	}

	ready.Store(false)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := apiServer.Stop(shutdownCtx); err != nil {
		logger.Warn("error stopping api server", "error", err)
	}
	stopObservability(logger, shutdownTimeout, obsServer)

	logger.Info("shutdown complete")
	return serveErr
}

// stopObservability stops s if it was started.
func stopObservability(logger *slog.Logger, timeout time.Duration, s *observability.Server) {
	if s == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		logger.Warn("error stopping observability server", "error", err)
	}
}
