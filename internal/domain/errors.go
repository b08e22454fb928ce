package domain

import "errors"

// Domain errors represent error conditions in the rosim domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrProductNotFound is returned when a membrane product name is not
	// present in the spec catalog. It is surfaced before any numeric work.
	ErrProductNotFound = errors.New("rosim: membrane product not found")

	// ErrInvalidInput is returned when a simulation input fails validation.
	ErrInvalidInput = errors.New("rosim: invalid simulation input")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("rosim: invalid configuration")
)
