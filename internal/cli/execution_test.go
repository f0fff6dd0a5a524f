package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/pisanocalc/internal/config"
)

func TestPrintPeriodsConfig(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		cfg      config.AppConfig
		contains []string
	}{
		{"defaults", config.AppConfig{InputFile: "in.csv"}, []string{"1,234 prime(s) from in.csv", "6n per prime", "No timeout"}},
		{"explicit bound", config.AppConfig{InputFile: "in.csv", MaxSteps: 5000, Timeout: time.Minute}, []string{"5,000 steps per prime", "Timeout 1m0s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			PrintPeriodsConfig(&buf, tt.cfg, 1234)
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output should contain %q, got:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestPrintPrimesConfig(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	PrintPrimesConfig(&buf, config.AppConfig{Workers: 3}, 1_000_000)
	for _, want := range []string{"first 1,000,000 prime(s)", "3 sieve worker(s)", "--- Starting Execution ---"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output should contain %q, got:\n%s", want, buf.String())
		}
	}
}
