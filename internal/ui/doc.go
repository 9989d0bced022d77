// Package ui holds the color themes shared by the CLI and the TUI.
//
// CLI output uses ANSI escape codes from the active Theme through the
// Color* helpers. The TUI dashboard uses the lipgloss palette returned by
// GetCurrentTUITheme. Both honor --no-color and the NO_COLOR variable.
package ui
