// Package csvio reads and writes the flat CSV files exchanged by pisanocalc:
// the list of primes fed to the period batch, the Prime,Pisano Period
// results, and the generated prime list.
//
// # Naming Conventions
//
//   - Read* functions parse from an [io.Reader].
//   - Write* functions serialize to an [io.Writer].
//   - *File variants open or create the named file and report failures as
//     [apperrors.FileError].
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "github.com/agbru/pisanocalc/internal/errors"
	"github.com/agbru/pisanocalc/internal/orchestration"
	"github.com/agbru/pisanocalc/internal/primes"
)

// Column headers of the generated files.
const (
	HeaderPrime    = "Prime"
	HeaderPeriod   = "Pisano Period"
	HeaderPrimes   = "Prime Numbers"
	ReasonNotInt   = "not an integer"
	ReasonNotPrime = "not prime"
)

// ReadPrimes parses the first column of r as a list of primes.
//
// The first record is a header when its first cell is not an integer.
// Cells are whitespace-trimmed and extra columns are ignored. Every record is
// inspected; if any value is malformed or composite the returned error is an
// *apperrors.InvalidValuesError listing all of them, and no primes are
// returned. source names the input in error messages.
func ReadPrimes(r io.Reader, source string) ([]uint64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var (
		values  []uint64
		invalid []apperrors.InvalidValue
		first   = true
	)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.FileError{Op: "parse", Path: source, Cause: err}
		}
		row, _ := cr.FieldPos(0)
		cell := strings.TrimSpace(record[0])

		if first {
			first = false
			cell = strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff"))
			if _, ok := parseInteger(cell); !ok {
				continue
			}
		}

		n, ok := parseInteger(cell)
		switch {
		case !ok:
			invalid = append(invalid, apperrors.InvalidValue{Row: row, Value: cell, Reason: ReasonNotInt})
		case n.negative || !primes.IsPrime(n.value):
			invalid = append(invalid, apperrors.InvalidValue{Row: row, Value: cell, Reason: ReasonNotPrime})
		default:
			values = append(values, n.value)
		}
	}

	if len(invalid) > 0 {
		return nil, &apperrors.InvalidValuesError{Source: source, Values: invalid}
	}
	if len(values) == 0 {
		return nil, apperrors.ValidationError{Field: "input", Message: fmt.Sprintf("%s contains no values", source)}
	}
	return values, nil
}

type integer struct {
	value    uint64
	negative bool
}

// parseInteger accepts an optionally signed decimal that fits in 64 bits.
func parseInteger(s string) (integer, bool) {
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		if _, err := strconv.ParseUint(rest, 10, 64); err != nil {
			return integer{}, false
		}
		return integer{negative: true}, true
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, 64)
	if err != nil {
		return integer{}, false
	}
	return integer{value: v}, true
}

// WritePeriods writes a Prime,Pisano Period header followed by one row per
// result, in order.
func WritePeriods(w io.Writer, results []orchestration.PeriodResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{HeaderPrime, HeaderPeriod}); err != nil {
		return err
	}
	row := make([]string, 2)
	for _, r := range results {
		row[0] = strconv.FormatUint(r.Prime, 10)
		row[1] = strconv.FormatUint(r.Period, 10)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadPeriods parses a file produced by WritePeriods.
func ReadPeriods(r io.Reader) ([]orchestration.PeriodResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if header[0] != HeaderPrime || header[1] != HeaderPeriod {
		return nil, fmt.Errorf("unexpected header %q", strings.Join(header, ","))
	}

	var results []orchestration.PeriodResult
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return results, nil
		}
		if err != nil {
			return nil, err
		}
		prime, err := strconv.ParseUint(strings.TrimSpace(record[0]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("prime column: %w", err)
		}
		period, err := strconv.ParseUint(strings.TrimSpace(record[1]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("period column: %w", err)
		}
		results = append(results, orchestration.PeriodResult{Prime: prime, Period: period})
	}
}

// WritePrimes writes a Prime Numbers header followed by one prime per row.
func WritePrimes(w io.Writer, list []uint64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{HeaderPrimes}); err != nil {
		return err
	}
	row := make([]string, 1)
	for _, p := range list {
		row[0] = strconv.FormatUint(p, 10)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadPrimesFile opens path and parses it with ReadPrimes.
func ReadPrimesFile(path string) ([]uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.FileError{Op: "open", Path: path, Cause: err}
	}
	defer f.Close()
	return ReadPrimes(f, path)
}

// WritePeriodsFile creates path, including missing parent directories, and
// writes results to it.
func WritePeriodsFile(path string, results []orchestration.PeriodResult) error {
	return writeFile(path, func(w io.Writer) error { return WritePeriods(w, results) })
}

// WritePrimesFile creates path, including missing parent directories, and
// writes the primes to it.
func WritePrimesFile(path string, list []uint64) error {
	return writeFile(path, func(w io.Writer) error { return WritePrimes(w, list) })
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.FileError{Op: "create directory for", Path: path, Cause: err}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return apperrors.FileError{Op: "create", Path: path, Cause: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = apperrors.FileError{Op: "close", Path: path, Cause: cerr}
		}
	}()

	if err := write(f); err != nil {
		return apperrors.FileError{Op: "write", Path: path, Cause: err}
	}
	return nil
}
