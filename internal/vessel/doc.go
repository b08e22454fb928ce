// Package vessel chains element solves through a single pressure vessel.
//
// A vessel holds N membrane elements in series sharing one feed-to-concentrate
// path: each element's concentrate stream and outlet pressure become the next
// element's inlet. The simulator aggregates the per-element permeates into an
// immutable result snapshot.
package vessel
