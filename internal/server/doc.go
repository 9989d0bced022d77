// Package server exposes run metrics over HTTP in the Prometheus text
// format. The endpoint lives only for the duration of a run and is enabled
// with --metrics-addr.
package server
