package csvio

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	apperrors "github.com/agbru/pisanocalc/internal/errors"
	"github.com/agbru/pisanocalc/internal/orchestration"
)

func TestReadPrimes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  []uint64
	}{
		{"with header", "Prime\n2\n3\n5\n", []uint64{2, 3, 5}},
		{"without header", "7\n11\n13\n", []uint64{7, 11, 13}},
		{"trims cells", "  primes \n 17 \n\t19\n", []uint64{17, 19}},
		{"ignores extra columns", "p,note\n23,a\n29,b,c\n", []uint64{23, 29}},
		{"keeps duplicates and order", "31\n2\n31\n", []uint64{31, 2, 31}},
		{"explicit plus sign", "+37\n", []uint64{37}},
		{"skips blank lines", "41\n\n43\n", []uint64{41, 43}},
		{"byte order mark", "\ufeff2\n3\n5\n", []uint64{2, 3, 5}},
		{"byte order mark before header", "\ufeffPrime\n7\n", []uint64{7}},
		{"large prime", "18446744073709551557\n", []uint64{18446744073709551557}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ReadPrimes(strings.NewReader(tt.input), "test.csv")
			if err != nil {
				t.Fatalf("ReadPrimes() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadPrimes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadPrimes_CollectsEveryInvalidValue(t *testing.T) {
	t.Parallel()
	input := "Prime\n2\n4\nabc\n7\n-3\n1\n9.5\n"

	got, err := ReadPrimes(strings.NewReader(input), "bad.csv")
	if got != nil {
		t.Errorf("no primes should be returned on validation failure, got %v", got)
	}

	var invalid *apperrors.InvalidValuesError
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want *InvalidValuesError", err)
	}
	if invalid.Source != "bad.csv" {
		t.Errorf("Source = %q, want bad.csv", invalid.Source)
	}

	want := []apperrors.InvalidValue{
		{Row: 3, Value: "4", Reason: ReasonNotPrime},
		{Row: 4, Value: "abc", Reason: ReasonNotInt},
		{Row: 6, Value: "-3", Reason: ReasonNotPrime},
		{Row: 7, Value: "1", Reason: ReasonNotPrime},
		{Row: 8, Value: "9.5", Reason: ReasonNotInt},
	}
	if !reflect.DeepEqual(invalid.Values, want) {
		t.Errorf("Values = %+v\nwant %+v", invalid.Values, want)
	}
	if apperrors.ExitCode(err) != apperrors.ExitErrorValidation {
		t.Errorf("ExitCode = %d, want %d", apperrors.ExitCode(err), apperrors.ExitErrorValidation)
	}
}

func TestReadPrimes_Empty(t *testing.T) {
	t.Parallel()
	for _, input := range []string{"", "Prime\n", "\n\n"} {
		_, err := ReadPrimes(strings.NewReader(input), "empty.csv")
		var validationErr apperrors.ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("ReadPrimes(%q) error = %v, want ValidationError", input, err)
		}
	}
}

func TestReadPrimes_MalformedCSV(t *testing.T) {
	t.Parallel()
	_, err := ReadPrimes(strings.NewReader("2\n\"3\n"), "quote.csv")
	var fileErr apperrors.FileError
	if !errors.As(err, &fileErr) {
		t.Errorf("error = %v, want FileError", err)
	}
}

func TestPeriodsRoundTrip(t *testing.T) {
	t.Parallel()
	results := []orchestration.PeriodResult{
		{Prime: 2, Period: 3},
		{Prime: 5, Period: 20},
		{Prime: 7, Period: 16},
		{Prime: 5, Period: 20},
		{Prime: 101, Period: 50},
	}

	var sb strings.Builder
	if err := WritePeriods(&sb, results); err != nil {
		t.Fatalf("WritePeriods: %v", err)
	}
	if !strings.HasPrefix(sb.String(), "Prime,Pisano Period\n2,3\n") {
		t.Errorf("unexpected layout:\n%s", sb.String())
	}

	got, err := ReadPeriods(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("ReadPeriods: %v", err)
	}
	if !reflect.DeepEqual(got, results) {
		t.Errorf("round trip = %v, want %v", got, results)
	}
}

func TestReadPeriods_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"wrong header", "p,q\n2,3\n"},
		{"bad prime", "Prime,Pisano Period\nx,3\n"},
		{"bad period", "Prime,Pisano Period\n2,y\n"},
		{"wrong arity", "Prime,Pisano Period\n2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := ReadPeriods(strings.NewReader(tt.input)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestWritePrimes(t *testing.T) {
	t.Parallel()
	var sb strings.Builder
	if err := WritePrimes(&sb, []uint64{2, 3, 5, 7, 11}); err != nil {
		t.Fatalf("WritePrimes: %v", err)
	}
	want := "Prime Numbers\n2\n3\n5\n7\n11\n"
	if sb.String() != want {
		t.Errorf("WritePrimes() = %q, want %q", sb.String(), want)
	}
}

func TestFileHelpers(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	t.Run("periods file in nested directory", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(dir, "nested", "out", "periods.csv")
		results := []orchestration.PeriodResult{{Prime: 3, Period: 8}}
		if err := WritePeriodsFile(path, results); err != nil {
			t.Fatalf("WritePeriodsFile: %v", err)
		}
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		got, err := ReadPeriods(f)
		if err != nil || !reflect.DeepEqual(got, results) {
			t.Errorf("ReadPeriods = %v, %v", got, err)
		}
	})

	t.Run("primes file feeds the periods reader", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(dir, "primes.csv")
		if err := WritePrimesFile(path, []uint64{2, 3, 5}); err != nil {
			t.Fatalf("WritePrimesFile: %v", err)
		}
		got, err := ReadPrimesFile(path)
		if err != nil {
			t.Fatalf("ReadPrimesFile: %v", err)
		}
		if !reflect.DeepEqual(got, []uint64{2, 3, 5}) {
			t.Errorf("ReadPrimesFile = %v", got)
		}
	})

	t.Run("missing input", func(t *testing.T) {
		t.Parallel()
		_, err := ReadPrimesFile(filepath.Join(dir, "absent.csv"))
		var fileErr apperrors.FileError
		if !errors.As(err, &fileErr) || !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("error = %v, want FileError wrapping ErrNotExist", err)
		}
		if apperrors.ExitCode(err) != apperrors.ExitErrorIO {
			t.Errorf("ExitCode = %d, want %d", apperrors.ExitCode(err), apperrors.ExitErrorIO)
		}
	})

	t.Run("unwritable output", func(t *testing.T) {
		t.Parallel()
		blocker := filepath.Join(dir, "blocker")
		if err := os.WriteFile(blocker, nil, 0o600); err != nil {
			t.Fatal(err)
		}
		err := WritePrimesFile(filepath.Join(blocker, "primes.csv"), []uint64{2})
		var fileErr apperrors.FileError
		if !errors.As(err, &fileErr) {
			t.Errorf("error = %v, want FileError", err)
		}
	})
}

func TestParseInteger(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in       string
		value    uint64
		negative bool
		ok       bool
	}{
		{"42", 42, false, true},
		{"+42", 42, false, true},
		{"-42", 0, true, true},
		{"0", 0, false, true},
		{"", 0, false, false},
		{"-", 0, false, false},
		{"4.2", 0, false, false},
		{"18446744073709551616", 0, false, false},
	}
	for _, tt := range tests {
		got, ok := parseInteger(tt.in)
		if ok != tt.ok || got.value != tt.value || got.negative != tt.negative {
			t.Errorf("parseInteger(%q) = %+v, %v", tt.in, got, ok)
		}
	}
}
