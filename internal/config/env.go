// This file contains environment variable utilities for configuration override.

package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	apperrors "github.com/agbru/pisanocalc/internal/errors"
)

// LoadEnvFile loads PISANO_ variables from a dotenv file into the process
// environment. Variables already set are left untouched, so the real
// environment wins over the file. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return apperrors.NewConfigError("failed to load %s: %v", path, err)
	}
	return nil
}

// isFlagSetAny checks if any of the specified flags were explicitly set on
// the command line. Flags unknown to fs are ignored, so a single override
// table can serve every command.
func isFlagSetAny(fs *pflag.FlagSet, names ...string) bool {
	for _, name := range names {
		if f := fs.Lookup(name); f != nil && f.Changed {
			return true
		}
	}
	return false
}

// hasAnyFlag reports whether fs defines at least one of names.
func hasAnyFlag(fs *pflag.FlagSet, names ...string) bool {
	for _, name := range names {
		if fs.Lookup(name) != nil {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the PISANO_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string) error
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// Numeric overrides
	{"MAX_STEPS", []string{"max-steps"}, func(c *AppConfig, v string) error {
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return err
		}
		c.MaxSteps = parsed
		return nil
	}},
	{"WORKERS", []string{"workers"}, func(c *AppConfig, v string) error {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		c.Workers = parsed
		return nil
	}},

	// Duration overrides
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) error {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		c.Timeout = parsed
		return nil
	}},

	// String overrides
	{"INPUT", []string{"input", "i"}, func(c *AppConfig, v string) error {
		c.InputFile = v
		return nil
	}},
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) error {
		c.OutputFile = v
		return nil
	}},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) error {
		c.LogLevel = v
		return nil
	}},
	{"METRICS_FILE", []string{"metrics-file"}, func(c *AppConfig, v string) error {
		c.MetricsFile = v
		return nil
	}},

	// Boolean overrides
	{"QUIET", []string{"quiet", "q"}, boolOverride(func(c *AppConfig) *bool { return &c.Quiet })},
	{"VERBOSE", []string{"verbose", "v"}, boolOverride(func(c *AppConfig) *bool { return &c.Verbose })},
	{"NO_COLOR", []string{"no-color"}, boolOverride(func(c *AppConfig) *bool { return &c.NoColor })},
	{"TUI", []string{"tui"}, boolOverride(func(c *AppConfig) *bool { return &c.TUI })},
}

func boolOverride(field func(*AppConfig) *bool) func(*AppConfig, string) error {
	return func(c *AppConfig, v string) error {
		parsed, ok := parseBoolEnv(v)
		if !ok {
			return errors.New("expected true/false, 1/0 or yes/no")
		}
		*field(c) = parsed
		return nil
	}
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
func parseBoolEnv(val string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	}
	return false, false
}

// ApplyEnvOverrides applies environment variable values to the configuration
// for flags that fs defines but that were not explicitly set on the command
// line. This implements the priority: CLI flags > Environment variables > Defaults.
//
// Supported environment variables (all prefixed with PISANO_):
//   - INPUT, OUTPUT, MAX_STEPS, WORKERS, TIMEOUT, LOG_LEVEL, METRICS_FILE,
//     QUIET, VERBOSE, NO_COLOR, TUI
//
// A malformed value is a ConfigError naming the variable.
func ApplyEnvOverrides(cfg *AppConfig, fs *pflag.FlagSet) error {
	for _, o := range envOverrides {
		if !hasAnyFlag(fs, o.flags...) || isFlagSetAny(fs, o.flags...) {
			continue
		}
		val, ok := os.LookupEnv(EnvPrefix + o.envKey)
		if !ok || val == "" {
			continue
		}
		if err := o.apply(cfg, val); err != nil {
			return apperrors.NewConfigError("invalid %s%s=%q: %v", EnvPrefix, o.envKey, val, err)
		}
	}
	return nil
}
