// Package logging provides the logging interface used across picalc,
// backed by zerolog, with a log.Logger adapter for callers that only
// have the standard library logger.
package logging
