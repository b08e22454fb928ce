package domain

import (
	"fmt"
	"time"
)

// SimulationInput holds the feed conditions and vessel configuration for one
// simulation run.
type SimulationInput struct {
	// Product is the membrane product name; must exist in the spec catalog
	Product string

	// FeedFlow in m3/h
	FeedFlow float64

	// FeedTDS in mg/L
	FeedTDS float64

	// FeedPressure in bar
	FeedPressure float64

	// Temperature in degC
	Temperature float64

	// NumElements is the number of elements in series, at least 1
	NumElements int
}

// Validate checks the input for errors that can be detected without the spec
// catalog. Product existence is checked by the simulator against the registry.
func (in SimulationInput) Validate() error {
	if in.Product == "" {
		return fmt.Errorf("%w: product is required", ErrInvalidInput)
	}
	if in.NumElements < 1 {
		return fmt.Errorf("%w: num_elements must be at least 1, got %d", ErrInvalidInput, in.NumElements)
	}
	if in.FeedFlow < 0 {
		return fmt.Errorf("%w: feed flow must not be negative", ErrInvalidInput)
	}
	if in.FeedTDS < 0 {
		return fmt.Errorf("%w: feed TDS must not be negative", ErrInvalidInput)
	}
	if in.FeedPressure < 0 {
		return fmt.Errorf("%w: feed pressure must not be negative", ErrInvalidInput)
	}
	return nil
}

// SimulationResult is the immutable aggregate of one vessel simulation.
// No per-element intermediate state is exposed.
type SimulationResult struct {
	// Product is the membrane product the run was computed for
	Product string

	// FeedFlow in m3/h, echoed from the input
	FeedFlow float64

	// FeedTDS in mg/L, echoed from the input
	FeedTDS float64

	// Temperature in degC, echoed from the input
	Temperature float64

	// NumElements echoed from the input
	NumElements int

	// PermeateFlow is the total permeate over all elements in m3/h
	PermeateFlow float64

	// RecoveryPct is permeate flow over feed flow as a percentage
	RecoveryPct float64

	// PermeateTDS is the flow-weighted permeate concentration in mg/L
	PermeateTDS float64

	// ConcentrateFlow is the reject flow leaving the last element in m3/h
	ConcentrateFlow float64

	// ConcentrateTDS is the reject concentration in mg/L
	ConcentrateTDS float64

	// FinalPressure is the pressure leaving the last element in bar
	FinalPressure float64
}

// HistoryRecord is a stored simulation result with the time it was computed.
// History is append-only; insertion order is chronological order.
type HistoryRecord struct {
	Timestamp time.Time
	Result    SimulationResult
}
