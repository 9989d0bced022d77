// Package cli renders a run on the terminal: the execution header, the
// spinner with progress bar and ETA, the result and accuracy lines, the
// engine comparison table and shell completion scripts.
//
// Display* functions write to an io.Writer, Format* functions return
// strings and Write* functions touch the filesystem.
package cli
