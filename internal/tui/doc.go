// Package tui implements the --tui dashboard: a bubbletea program that runs
// the selected engines and shows their progress beside live memory and
// system load.
package tui
