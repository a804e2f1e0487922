package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/holomush/passgen/internal/config"
	"github.com/holomush/passgen/internal/logging"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the passgen CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passgen",
		Short: "passgen - secure random password generator",
		Long: `passgen generates passwords from a cryptographically secure source.
Every enabled character class appears at least once, excluded characters
never appear, and guaranteed characters are shuffled so their positions
are indistinguishable from the rest.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default: XDG_CONFIG_HOME/passgen/config.yaml)")
	config.BindLogFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewConfigCmd())

	return cmd
}

// loadConfig reads configuration for cmd, layering its flags over the file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(config.LoadOptions{Path: configFile, Flags: cmd.Flags()})
}

// setupLogging installs the default logger described by cfg. Callers pass
// the command's stderr so stdout carries only command output.
func setupLogging(w io.Writer, cfg *config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return logging.SetDefault(logging.Options{
		Service: "passgen",
		Version: version,
		Format:  cfg.Log.Format,
		Level:   level,
		Writer:  w,
	}), nil
}
