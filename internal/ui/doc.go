// Package ui provides theme and color support for pisanocalc's terminal
// output. The CLI uses ANSI escape codes from the active Theme; the
// dashboard uses the lipgloss palette returned by GetCurrentTUITheme.
//
// Colors are disabled by --no-color or a NO_COLOR environment variable.
package ui
