// Package format holds pure string formatting helpers shared by the CLI and
// the interactive dashboard: durations, thousands separators, progress bars
// and ETA estimation.
package format
