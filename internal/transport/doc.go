// Package transport implements the log-mean membrane transport model for a
// single reverse-osmosis element.
//
// The model is a fixed-depth fixed-point iteration: it always runs the same
// number of passes and never tests for convergence, so its output is a
// deterministic function of the inlet stream and the coefficients. All
// numeric degeneracies (near-zero flow, near-equal concentrations, pressure
// ratios near 1) are handled by substitution or flooring; the solver has no
// failure modes.
package transport
