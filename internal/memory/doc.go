// Package memory controls the Go garbage collector around long runs and
// reads runtime memory statistics for reporting.
package memory
