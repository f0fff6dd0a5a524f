package apperrors

import (
	"errors"
	"fmt"
	"io"
)

// ColorProvider supplies the escape sequences used when printing errors.
// A nil provider prints plain text.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// HandleError prints err to out in a user-facing form and returns the
// matching exit code. Invalid batch values are listed one per line.
func HandleError(err error, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}

	red, yellow, reset := "", "", ""
	if colors != nil {
		red, yellow, reset = colors.Red(), colors.Yellow(), colors.Reset()
	}

	code := ExitCode(err)
	var invalid *InvalidValuesError
	switch {
	case errors.As(err, &invalid):
		fmt.Fprintf(out, "%sInvalid prime numbers found in %s:%s\n", red, invalid.Source, reset)
		for _, v := range invalid.Values {
			fmt.Fprintf(out, "  - %s\n", v)
		}
	case code == ExitErrorTimeout:
		fmt.Fprintf(out, "%sStatus: Failure (Timeout).%s %v\n", yellow, reset, err)
	case code == ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled.%s %v\n", yellow, reset, err)
	default:
		fmt.Fprintf(out, "%sError: %v%s\n", red, err, reset)
	}
	return code
}
