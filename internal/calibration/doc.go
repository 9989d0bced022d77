// Package calibration measures the fastest worker count for the host and
// caches it in a JSON profile so later runs can use it as their default.
package calibration
