package logging

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// TestFieldHelpers tests the Field constructor functions.
func TestFieldHelpers(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"String", String("input", "primes.csv"), "input", "primes.csv"},
		{"Int", Int("count", 42), "count", 42},
		{"Uint64", Uint64("prime", 18446744073709551557), "prime", uint64(18446744073709551557)},
		{"Float64", Float64("progress", 0.5), "progress", 0.5},
		{"Duration", Duration("elapsed", time.Second), "elapsed", time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.key {
				t.Errorf("%s().Key = %q, want %q", tt.name, tt.field.Key, tt.key)
			}
			if tt.field.Value != tt.value {
				t.Errorf("%s().Value = %v, want %v", tt.name, tt.field.Value, tt.value)
			}
		})
	}

	t.Run("Err uses the error key", func(t *testing.T) {
		testErr := errors.New("test error")
		f := Err(testErr)
		if f.Key != "error" || f.Value != testErr {
			t.Errorf("Err() = %+v", f)
		}
	})
}

// TestNewLogger tests the custom logger constructor.
func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "periods")
	logger.Info("batch started", Int("count", 3))

	output := buf.String()
	for _, want := range []string{"periods", "batch started", `"count":3`} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got: %s", want, output)
		}
	}
}

func TestNewDefaultLogger(t *testing.T) {
	if NewDefaultLogger() == nil {
		t.Fatal("NewDefaultLogger returned nil")
	}
}

func TestNewConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, "primes")
	logger.Warn("slow sieve", Int("segments", 60))

	output := buf.String()
	if !strings.Contains(output, "slow sieve") || !strings.Contains(output, "segments") {
		t.Errorf("console output missing content: %s", output)
	}
}

// TestZerologAdapter_Levels tests the leveled methods.
func TestZerologAdapter_Levels(t *testing.T) {
	tests := []struct {
		name     string
		log      func(Logger)
		contains []string
	}{
		{
			name:     "info",
			log:      func(l Logger) { l.Info("read input", String("path", "in.csv")) },
			contains: []string{`"level":"info"`, "read input", "in.csv"},
		},
		{
			name:     "warn",
			log:      func(l Logger) { l.Warn("batch stopped", Int("done", 2)) },
			contains: []string{`"level":"warn"`, "batch stopped"},
		},
		{
			name:     "error with cause",
			log:      func(l Logger) { l.Error("write failed", errors.New("disk full"), String("path", "out.csv")) },
			contains: []string{`"level":"error"`, "write failed", "disk full", "out.csv"},
		},
		{
			name:     "error with nil cause",
			log:      func(l Logger) { l.Error("odd", nil) },
			contains: []string{"odd", "error"},
		},
		{
			name:     "debug",
			log:      func(l Logger) { l.Debug("segment", Uint64("lo", 262144)) },
			contains: []string{`"level":"debug"`, "262144"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel))
			tt.log(logger)

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

func TestZerologAdapter_WithLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test").WithLevel(zerolog.WarnLevel)

	logger.Info("hidden")
	logger.Warn("shown")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("info entry should be filtered, got: %s", output)
	}
	if !strings.Contains(output, "shown") {
		t.Errorf("warn entry should be written, got: %s", output)
	}
}

func TestZerologAdapter_PrintfPrintln(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test")

	logger.Printf("period of %d is %d", 7, 16)
	logger.Println("done", 3)

	output := buf.String()
	if !strings.Contains(output, "period of 7 is 16") {
		t.Errorf("Printf should format message, got: %s", output)
	}
	if !strings.Contains(output, "done 3") {
		t.Errorf("Println should join arguments, got: %s", output)
	}
}

// TestZerologAdapter_applyFields tests field application with all supported types.
func TestZerologAdapter_applyFields(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		contains string
	}{
		{"string field", Field{Key: "str", Value: "hello"}, "hello"},
		{"int field", Field{Key: "num", Value: 42}, "42"},
		{"int64 field", Field{Key: "big", Value: int64(9223372036854775807)}, "9223372036854775807"},
		{"uint64 field", Field{Key: "huge", Value: uint64(18446744073709551615)}, "18446744073709551615"},
		{"float64 field", Field{Key: "pi", Value: 3.14}, "3.14"},
		{"bool field", Field{Key: "stopped", Value: true}, "true"},
		{"error field", Field{Key: "err", Value: errors.New("oops")}, "oops"},
		{"duration field", Field{Key: "elapsed", Value: 1500 * time.Millisecond}, "1500"},
		{"interface field", Field{Key: "pair", Value: struct{ Prime uint64 }{Prime: 7}}, "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewLogger(&buf, "test").Info("test", tt.field)
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("applyFields should handle %s, output: %s", tt.name, buf.String())
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"debug", zerolog.DebugLevel, false},
		{" WARN ", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"disabled", zerolog.Disabled, false},
		{"loud", zerolog.NoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// TestStdLoggerAdapter tests the standard library backend.
func TestStdLoggerAdapter(t *testing.T) {
	tests := []struct {
		name     string
		log      func(Logger)
		contains []string
	}{
		{"info", func(l Logger) { l.Info("saved", String("path", "p.csv")) }, []string{"[INFO]", "saved", "path=p.csv"}},
		{"warn", func(l Logger) { l.Warn("stopped") }, []string{"[WARN]", "stopped"}},
		{"debug", func(l Logger) { l.Debug("trace", Int("line", 42)) }, []string{"[DEBUG]", "trace", "line=42"}},
		{"error", func(l Logger) { l.Error("failed", errors.New("boom")) }, []string{"[ERROR]", "failed", "boom"}},
		{"printf", func(l Logger) { l.Printf("value is %d", 123) }, []string{"value is 123"}},
		{"println", func(l Logger) { l.Println("a", "b") }, []string{"a b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewStdLoggerAdapter(log.New(&buf, "", 0)))
			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

// TestLoggerInterface verifies every backend implements Logger.
func TestLoggerInterface(t *testing.T) {
	var buf bytes.Buffer
	var _ Logger = NewLogger(&buf, "test")
	var _ Logger = NewStdLoggerAdapter(log.New(&buf, "", 0))
	var _ Logger = NopLogger{}
}
