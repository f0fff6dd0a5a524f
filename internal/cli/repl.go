package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/pisanocalc/internal/fibonacci"
	"github.com/agbru/pisanocalc/internal/format"
	"github.com/agbru/pisanocalc/internal/primes"
	"github.com/agbru/pisanocalc/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Timeout is the maximum duration of each period search. Zero disables it.
	Timeout time.Duration
	// MaxSteps caps each period search. Zero selects the 6n bound.
	MaxSteps uint64
}

// REPL is an interactive session for one-off period, Fibonacci and
// primality queries.
type REPL struct {
	config REPLConfig
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a REPL reading from stdin and writing to stdout.
func NewREPL(config REPLConfig) *REPL {
	return &REPL{config: config, in: os.Stdin, out: os.Stdout}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start reads and executes commands until exit or EOF.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"pisano> "+ui.ColorReset())
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			}
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
		if ctx.Err() != nil {
			return
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if !r.processCommand(ctx, input) {
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s   %sPisano Period Calculator - Interactive%s     %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %speriod <n>%s    - Pisano period of n (a bare number does the same)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sfib <n> <m>%s   - F(n) mod m, any size of m\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sisprime <n>%s   - Primality test\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sbound <k>%s     - Set the step cap (0 = 6n)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s        - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s          - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s  - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "period", "p":
		r.cmdPeriod(ctx, args)
	case "fib", "f":
		r.cmdFib(args)
	case "isprime", "prime":
		r.cmdIsPrime(args)
	case "bound", "b":
		r.cmdBound(args)
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if n, err := strconv.ParseUint(cmd, 10, 64); err == nil {
			r.period(ctx, n)
		} else {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		}
	}
	return true
}

func (r *REPL) parseArg(args []string, usage string) (uint64, bool) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: %s%s\n", ui.ColorRed(), usage, ui.ColorReset())
		return 0, false
	}
	n, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return 0, false
	}
	return n, true
}

func (r *REPL) cmdPeriod(ctx context.Context, args []string) {
	if n, ok := r.parseArg(args, "period <n>"); ok {
		r.period(ctx, n)
	}
}

func (r *REPL) period(ctx context.Context, n uint64) {
	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	period, err := fibonacci.PeriodContext(ctx, n, r.config.MaxSteps)
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, fibonacci.ErrPeriodNotFound):
		fmt.Fprintf(r.out, "%s%v%s\n", ui.ColorYellow(), err, ui.ColorReset())
		return
	case err != nil:
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "π(%s%d%s) = %s%d%s  %s(%s)%s\n",
		ui.ColorCyan(), n, ui.ColorReset(),
		ui.ColorMagenta(), period, ui.ColorReset(),
		ui.ColorGrey(), format.FormatExecutionDuration(elapsed), ui.ColorReset())
}

func (r *REPL) cmdFib(args []string) {
	if len(args) < 2 {
		fmt.Fprintf(r.out, "%sUsage: fib <n> <m>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	n, ok := r.parseArg(args, "fib <n> <m>")
	if !ok {
		return
	}
	m, ok := new(big.Int).SetString(args[1], 10)
	if !ok {
		fmt.Fprintf(r.out, "%sInvalid modulus: %s%s\n", ui.ColorRed(), args[1], ui.ColorReset())
		return
	}
	v, err := fibonacci.FibonacciModAny(n, m)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "F(%d) mod %s = %s%s%s\n", n, m, ui.ColorGreen(), v, ui.ColorReset())
}

func (r *REPL) cmdIsPrime(args []string) {
	if n, ok := r.parseArg(args, "isprime <n>"); ok {
		DisplayPrimality(r.out, n, primes.IsPrime(n))
	}
}

func (r *REPL) cmdBound(args []string) {
	if k, ok := r.parseArg(args, "bound <k>"); ok {
		r.config.MaxSteps = k
		fmt.Fprintf(r.out, "Step cap set to: %s%s%s\n", ui.ColorGreen(), r.describeBound(), ui.ColorReset())
	}
}

func (r *REPL) describeBound() string {
	if r.config.MaxSteps == 0 {
		return "6n"
	}
	return format.FormatCount(r.config.MaxSteps)
}

func (r *REPL) cmdStatus() {
	timeout := "none"
	if r.config.Timeout > 0 {
		timeout = r.config.Timeout.String()
	}
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Step cap:  %s%s%s\n", ui.ColorCyan(), r.describeBound(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:   %s%s%s\n", ui.ColorCyan(), timeout, ui.ColorReset())
	fmt.Fprintln(r.out)
}
