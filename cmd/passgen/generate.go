// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/holomush/passgen/internal/config"
	"github.com/holomush/passgen/internal/password"
	"github.com/holomush/passgen/pkg/errutil"
)

// generateOutput is the structured form of generate's output.
type generateOutput struct {
	Passwords []string `json:"passwords" yaml:"passwords"`
}

// NewGenerateCmd creates the generate subcommand.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one or more passwords",
		Long: `Generate passwords of the requested length. Each enabled class
contributes at least one character. Disable a class with --upper=false,
--lower=false, --digits=false, or --symbols=false.`,
		Example: `  passgen generate
  passgen generate -l 24 --symbols=false
  passgen generate -l 12 -x 'l1IO0' -c 5 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, password.NewGenerator())
		},
	}

	config.BindGenerateFlags(cmd.Flags())

	return cmd
}

// runGenerate loads configuration, generates, and writes the result to
// the command's stdout.
func runGenerate(cmd *cobra.Command, gen *password.Generator) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := setupLogging(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	req := cfg.Request()
	passwords, err := gen.GenerateN(req, cfg.Count)
	if err != nil {
		errutil.LogError(cmd.Context(), logger, "password generation failed", err)
		return err
	}

	logger.Debug("generated passwords",
		"count", len(passwords),
		"length", req.Length,
		"classes", req.Classes.String(),
	)

	return writePasswords(cmd.OutOrStdout(), cfg.Output, passwords)
}

// writePasswords renders passwords in the given output format.
func writePasswords(w io.Writer, format string, passwords []string) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(generateOutput{Passwords: passwords}); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(generateOutput{Passwords: passwords}); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
	default:
		for _, p := range passwords {
			if _, err := fmt.Fprintln(w, p); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
	}
	return nil
}
