// Package config defines the application configuration, its command-line
// flags and its resolution chain.
//
// Resolution order (highest priority first):
//  1. CLI flags
//  2. Environment variables (PISANO_ prefix)
//  3. The .env file named by --env-file
//  4. Defaults below
package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	apperrors "github.com/agbru/pisanocalc/internal/errors"
	"github.com/agbru/pisanocalc/internal/logging"
	"github.com/agbru/pisanocalc/internal/primes"
)

const (
	// EnvPrefix is prepended to every environment variable key.
	EnvPrefix = "PISANO_"

	// DefaultEnvFile is loaded when present.
	DefaultEnvFile = ".env"

	// DefaultLogLevel keeps normal runs free of log noise.
	DefaultLogLevel = "warn"
)

// AppConfig aggregates the configuration of a single invocation.
type AppConfig struct {
	// InputFile is the CSV of primes read by the periods command.
	InputFile string
	// OutputFile is the CSV written by periods and primes (empty for none).
	OutputFile string
	// MaxSteps caps the Pisano search per prime. Zero selects the 6n bound.
	MaxSteps uint64
	// Workers bounds the sieve concurrency. Zero selects runtime.NumCPU().
	Workers int
	// Timeout aborts the run after the given duration. Zero disables it.
	Timeout time.Duration

	Quiet   bool
	Verbose bool
	NoColor bool
	// TUI launches the interactive dashboard for the periods batch.
	TUI bool

	// LogLevel is a zerolog level name.
	LogLevel string
	// MetricsFile receives a Prometheus text-format snapshot at exit.
	MetricsFile string
	// EnvFile is the dotenv file consulted for PISANO_ variables.
	EnvFile string
}

// Default returns the configuration used when nothing is overridden.
func Default() AppConfig {
	return AppConfig{
		LogLevel: DefaultLogLevel,
		EnvFile:  DefaultEnvFile,
	}
}

// BindPersistentFlags registers the flags shared by every command.
func BindPersistentFlags(fs *pflag.FlagSet, cfg *AppConfig) {
	fs.BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "Print only machine-readable results.")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Print every result and memory statistics.")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable colored output (also honors NO_COLOR).")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error, disabled.")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Abort after this duration (e.g. 30s, 5m). 0 disables.")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "Write Prometheus metrics to this file at exit.")
	fs.StringVar(&cfg.EnvFile, "env-file", cfg.EnvFile, "Dotenv file providing PISANO_ variables.")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Concurrent sieve segments (0 = number of CPUs).")
}

// BindPeriodsFlags registers the flags of the periods command.
func BindPeriodsFlags(fs *pflag.FlagSet, cfg *AppConfig) {
	fs.StringVarP(&cfg.InputFile, "input", "i", cfg.InputFile, "CSV file whose first column lists primes.")
	fs.StringVarP(&cfg.OutputFile, "output", "o", cfg.OutputFile, "CSV file receiving Prime,Pisano Period rows.")
	fs.Uint64Var(&cfg.MaxSteps, "max-steps", cfg.MaxSteps, "Step cap for each period search (0 = 6n bound).")
	fs.BoolVar(&cfg.TUI, "tui", cfg.TUI, "Show the interactive dashboard.")
}

// BindPrimesFlags registers the flags of the primes command.
func BindPrimesFlags(fs *pflag.FlagSet, cfg *AppConfig) {
	fs.StringVarP(&cfg.OutputFile, "output", "o", cfg.OutputFile, "CSV file receiving the generated primes.")
}

// Validate checks cross-field constraints after flags and environment have
// been applied.
func (c AppConfig) Validate() error {
	if c.Workers < 0 {
		return apperrors.NewConfigError("--workers must be >= 0, got %d", c.Workers)
	}
	if c.Timeout < 0 {
		return apperrors.NewConfigError("--timeout must be >= 0, got %s", c.Timeout)
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("--quiet and --verbose are mutually exclusive")
	}
	if c.Quiet && c.TUI {
		return apperrors.NewConfigError("--quiet and --tui are mutually exclusive")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("--log-level: %v", err)
	}
	return nil
}

// ParseCount parses the prime count argument and checks its range.
func ParseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, apperrors.ValidationError{
			Field:   "count",
			Message: "please enter a positive integer up to 1,000,000",
		}
	}
	if err := primes.ValidateCount(n); err != nil {
		return 0, err
	}
	return n, nil
}
