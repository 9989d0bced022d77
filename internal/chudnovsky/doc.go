// Package chudnovsky evaluates the individual terms of the Chudnovsky series
// for π at an explicit binary precision.
//
// Every function in this package is pure: a term depends only on its index and
// the requested precision, so terms may be computed concurrently and in any
// order. Summation, scheduling and the final reciprocal live in the engine
// package.
//
// The exact integer parts of a term (factorials, powers of 640320³) are
// produced by an IntBackend. The default backend uses math/big; building with
// -tags=gmp registers a backend on top of libgmp.
package chudnovsky
