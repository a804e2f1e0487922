// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package config loads passgen configuration from defaults, a YAML file, and
// command-line flags, in that order of precedence.
package config

import (
	"fmt"
	"time"

	"github.com/samber/oops"

	"github.com/holomush/passgen/internal/logging"
	"github.com/holomush/passgen/internal/password"
)

// CodeInvalid is the oops code for configuration that fails validation.
const CodeInvalid = "CONFIG_INVALID"

// Output formats for generated passwords.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config is the full passgen configuration.
type Config struct {
	Length  int    `koanf:"length" json:"length,omitempty" yaml:"length" jsonschema:"minimum=1,description=Password length in characters"`
	Upper   bool   `koanf:"upper" json:"upper,omitempty" yaml:"upper" jsonschema:"description=Include uppercase letters"`
	Lower   bool   `koanf:"lower" json:"lower,omitempty" yaml:"lower" jsonschema:"description=Include lowercase letters"`
	Digits  bool   `koanf:"digits" json:"digits,omitempty" yaml:"digits" jsonschema:"description=Include digits"`
	Symbols bool   `koanf:"symbols" json:"symbols,omitempty" yaml:"symbols" jsonschema:"description=Include ASCII punctuation"`
	Exclude string `koanf:"exclude" json:"exclude,omitempty" yaml:"exclude" jsonschema:"description=Characters that must never appear"`
	Count   int    `koanf:"count" json:"count,omitempty" yaml:"count" jsonschema:"minimum=1,description=Passwords per invocation"`
	Output  string `koanf:"output" json:"output,omitempty" yaml:"output" jsonschema:"enum=text,enum=json,enum=yaml"`

	Log    LogConfig    `koanf:"log" json:"log,omitempty" yaml:"log"`
	Server ServerConfig `koanf:"server" json:"server,omitempty" yaml:"server"`
}

// LogConfig controls logging.
type LogConfig struct {
	Format string `koanf:"format" json:"format,omitempty" yaml:"format" jsonschema:"enum=text,enum=json"`
	Level  string `koanf:"level" json:"level,omitempty" yaml:"level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
}

// ServerConfig controls the serve command.
type ServerConfig struct {
	Addr            string `koanf:"addr" json:"addr,omitempty" yaml:"addr" jsonschema:"description=API listen address"`
	MetricsAddr     string `koanf:"metrics_addr" json:"metrics_addr,omitempty" yaml:"metrics_addr" jsonschema:"description=Metrics and health listen address; empty disables"`
	MaxLength       int    `koanf:"max_length" json:"max_length,omitempty" yaml:"max_length" jsonschema:"minimum=1,maximum=4096,description=Largest password length the CLI and API accept"`
	MaxCount        int    `koanf:"max_count" json:"max_count,omitempty" yaml:"max_count" jsonschema:"minimum=1,description=Most passwords per CLI run or API request"`
	ShutdownTimeout string `koanf:"shutdown_timeout" json:"shutdown_timeout,omitempty" yaml:"shutdown_timeout" jsonschema:"description=Go duration such as 10s"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Length:  password.DefaultLength,
		Upper:   true,
		Lower:   true,
		Digits:  true,
		Symbols: true,
		Count:   1,
		Output:  OutputText,
		Log: LogConfig{
			Format: "text",
			Level:  "info",
		},
		Server: ServerConfig{
			Addr:            "127.0.0.1:8080",
			MetricsAddr:     "127.0.0.1:9100",
			MaxLength:       1024,
			MaxCount:        100,
			ShutdownTimeout: "10s",
		},
	}
}

// Validate checks values that the schema cannot express. server.max_length
// and server.max_count bound length and count for the CLI as well as the API.
func (c *Config) Validate() error {
	if c.Length < 1 {
		return invalid("length", c.Length, "length must be at least 1")
	}
	if c.Count < 1 {
		return invalid("count", c.Count, "count must be at least 1")
	}
	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return invalid("output", c.Output, "output must be text, json, or yaml")
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return invalid("log.format", c.Log.Format, "log format must be json or text")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return oops.Code(CodeInvalid).With("field", "log.level").Wrap(err)
	}
	if c.Server.MaxLength < 1 || c.Server.MaxLength > password.MaxLength {
		return invalid("server.max_length", c.Server.MaxLength,
			fmt.Sprintf("max length must be between 1 and %d", password.MaxLength))
	}
	if c.Server.MaxCount < 1 {
		return invalid("server.max_count", c.Server.MaxCount, "max count must be at least 1")
	}
	if c.Length > c.Server.MaxLength {
		return invalid("length", c.Length,
			fmt.Sprintf("length must not exceed server.max_length (%d)", c.Server.MaxLength))
	}
	if c.Count > c.Server.MaxCount {
		return invalid("count", c.Count,
			fmt.Sprintf("count must not exceed server.max_count (%d)", c.Server.MaxCount))
	}
	if _, err := c.Server.Timeout(); err != nil {
		return err
	}
	return nil
}

// Timeout parses ShutdownTimeout.
func (s ServerConfig) Timeout() (time.Duration, error) {
	d, err := time.ParseDuration(s.ShutdownTimeout)
	if err != nil {
		return 0, oops.Code(CodeInvalid).With("field", "server.shutdown_timeout").Wrap(err)
	}
	if d <= 0 {
		return 0, invalid("server.shutdown_timeout", s.ShutdownTimeout, "shutdown timeout must be positive")
	}
	return d, nil
}

// Classes returns the enabled character classes.
func (c *Config) Classes() password.ClassSet {
	var set password.ClassSet
	if c.Upper {
		set = set.With(password.Upper)
	}
	if c.Lower {
		set = set.With(password.Lower)
	}
	if c.Digits {
		set = set.With(password.Digit)
	}
	if c.Symbols {
		set = set.With(password.Symbol)
	}
	return set
}

// Request builds the generation request described by the config.
func (c *Config) Request() password.Request {
	return password.Request{
		Length:  c.Length,
		Classes: c.Classes(),
		Exclude: password.NewCharSet(c.Exclude),
	}
}

func invalid(field string, value any, msg string) error {
	return oops.Code(CodeInvalid).
		With("field", field).
		With("value", value).
		Errorf("%s", msg)
}
