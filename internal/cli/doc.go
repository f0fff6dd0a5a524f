// Package cli renders pisanocalc's terminal output: the spinner progress
// reporter, result presenters, save confirmations and the interactive REPL.
//
// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayPeriod], [DisplayQuietPeriods], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatPeriod], [FormatQuietPeriod].
//
//   - Save* functions write results to files and report the outcome.
//     Examples: [SavePeriods], [SavePrimes].
package cli
