package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/agbru/pisanocalc/internal/errors"
	"github.com/agbru/pisanocalc/internal/orchestration"
)

func TestSavePeriods(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()
	results := []orchestration.PeriodResult{{Prime: 5, Period: 20}, {Prime: 11, Period: 10}}

	testCases := []struct {
		name        string
		cfg         OutputConfig
		wantMessage bool
		wantFile    bool
	}{
		{"writes and confirms", OutputConfig{OutputFile: filepath.Join(tmpDir, "a.csv")}, true, true},
		{"quiet writes silently", OutputConfig{OutputFile: filepath.Join(tmpDir, "b.csv"), Quiet: true}, false, true},
		{"nested directory", OutputConfig{OutputFile: filepath.Join(tmpDir, "x", "y", "c.csv")}, true, true},
		{"no output file", OutputConfig{}, false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := SavePeriods(&buf, results, tc.cfg); err != nil {
				t.Fatalf("SavePeriods: %v", err)
			}
			gotMessage := strings.Contains(buf.String(), "✓ Results saved to: "+tc.cfg.OutputFile)
			if gotMessage != tc.wantMessage {
				t.Errorf("confirmation printed = %v, want %v (output %q)", gotMessage, tc.wantMessage, buf.String())
			}
			if !tc.wantFile {
				return
			}
			data, err := os.ReadFile(tc.cfg.OutputFile)
			if err != nil {
				t.Fatalf("output file: %v", err)
			}
			if string(data) != "Prime,Pisano Period\n5,20\n11,10\n" {
				t.Errorf("file content = %q", data)
			}
		})
	}
}

func TestSavePrimes(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "primes.csv")
	var buf bytes.Buffer
	if err := SavePrimes(&buf, []uint64{2, 3, 5}, OutputConfig{OutputFile: path}); err != nil {
		t.Fatalf("SavePrimes: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Prime Numbers\n2\n3\n5\n" {
		t.Errorf("file content = %q", data)
	}
	if !strings.Contains(buf.String(), "Results saved to") {
		t.Errorf("missing confirmation: %q", buf.String())
	}
}

func TestSave_Error(t *testing.T) {
	t.Parallel()
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	err := SavePrimes(&buf, []uint64{2}, OutputConfig{OutputFile: filepath.Join(blocker, "p.csv")})
	var fileErr apperrors.FileError
	if !errors.As(err, &fileErr) {
		t.Errorf("error = %v, want FileError", err)
	}
	if buf.Len() != 0 {
		t.Errorf("no confirmation expected on failure, got %q", buf.String())
	}
}
