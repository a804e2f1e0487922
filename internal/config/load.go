// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/holomush/passgen/internal/xdg"
)

// CodeLoadFailed is the oops code for config files that cannot be read or parsed.
const CodeLoadFailed = "CONFIG_LOAD_FAILED"

// flagKeys maps flag names to config keys. Flags not listed here, such as
// --config and --help, never reach the config.
var flagKeys = map[string]string{
	"length":           "length",
	"upper":            "upper",
	"lower":            "lower",
	"digits":           "digits",
	"symbols":          "symbols",
	"exclude":          "exclude",
	"count":            "count",
	"output":           "output",
	"log-format":       "log.format",
	"log-level":        "log.level",
	"addr":             "server.addr",
	"metrics-addr":     "server.metrics_addr",
	"max-length":       "server.max_length",
	"max-count":        "server.max_count",
	"shutdown-timeout": "server.shutdown_timeout",
}

// LoadOptions selects the sources for Load.
type LoadOptions struct {
	// Path is an explicit config file. It must exist. When empty the XDG
	// default is used if present.
	Path string
	// Flags overrides file values for every flag the user changed. May be nil.
	Flags *pflag.FlagSet
}

// Load merges defaults, the config file, and flags, then validates the result.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	path := opts.Path
	explicit := path != ""
	if !explicit {
		// A missing home directory only means there is no default file.
		path, _ = xdg.ConfigFile()
	}

	if path != "" {
		if err := loadFile(k, path, explicit); err != nil {
			return nil, err
		}
	}

	if opts.Flags != nil {
		provider := posflag.ProviderWithFlag(opts.Flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(opts.Flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, oops.Code(CodeLoadFailed).With("source", "flags").Wrap(err)
		}
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, oops.Code(CodeLoadFailed).Wrap(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return oops.Code(CodeLoadFailed).With("path", path).Wrap(err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := ValidateSchema(data); err != nil {
		return oops.Code(CodeInvalid).With("path", path).Wrap(err)
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return oops.Code(CodeLoadFailed).With("path", path).Wrap(err)
	}
	return nil
}

// BindGenerateFlags registers the generation flags with defaults from Default.
func BindGenerateFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.IntP("length", "l", d.Length, "password length")
	fs.Bool("upper", d.Upper, "include uppercase letters (A-Z)")
	fs.Bool("lower", d.Lower, "include lowercase letters (a-z)")
	fs.Bool("digits", d.Digits, "include digits (0-9)")
	fs.Bool("symbols", d.Symbols, "include symbols (ASCII punctuation)")
	fs.StringP("exclude", "x", d.Exclude, "characters to exclude, e.g. l1O0")
	fs.IntP("count", "c", d.Count, "number of passwords to generate")
	fs.StringP("output", "o", d.Output, "output format (text, json, or yaml)")
}

// BindLogFlags registers the logging flags.
func BindLogFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("log-format", d.Log.Format, "log format (json or text)")
	fs.String("log-level", d.Log.Level, "log level (debug, info, warn, error)")
}

// BindServerFlags registers the serve command flags.
func BindServerFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("addr", d.Server.Addr, "API listen address")
	fs.String("metrics-addr", d.Server.MetricsAddr, "metrics/health HTTP address (empty = disabled)")
	fs.Int("max-length", d.Server.MaxLength, "largest password length the CLI and API accept")
	fs.Int("max-count", d.Server.MaxCount, "most passwords per CLI run or API request")
	fs.String("shutdown-timeout", d.Server.ShutdownTimeout, "graceful shutdown timeout")
}
