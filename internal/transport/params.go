package transport

// Params collects every numeric constant of the transport model so tests can
// vary them independently. Production code uses DefaultParams; changing
// Passes or the seeds changes computed results for identical inputs.
type Params struct {
	// RefTemperature is the temperature the vendor coefficients are quoted
	// at, degC.
	RefTemperature float64

	// TCFSlope is the fractional coefficient change per degC away from the
	// reference.
	TCFSlope float64

	// Passes is the fixed iteration depth of the element solver.
	Passes int

	// PressureFloor is the minimum outlet pressure used inside the log-mean
	// pressure formula, bar. The reported outlet pressure is not floored.
	PressureFloor float64

	// ConcFloor is the minimum concentrate concentration used inside the
	// log-mean concentration formula, mg/L.
	ConcFloor float64

	// ConcEqualEps is the threshold below which inlet and concentrate
	// concentrations are treated as equal, bypassing the log-mean.
	ConcEqualEps float64

	// FlowEps is the threshold below which a flow is treated as zero in
	// solute-balance divisions.
	FlowEps float64

	// SeedPermeateFlow is the initial permeate flow guess, m3/h.
	SeedPermeateFlow float64

	// SeedPermeateConc is the initial permeate concentration guess, mg/L.
	SeedPermeateConc float64
}

// DefaultParams returns the parameters of the reference model.
func DefaultParams() Params {
	return Params{
		RefTemperature:   25.0,
		TCFSlope:         0.03,
		Passes:           5,
		PressureFloor:    1e-5,
		ConcFloor:        1e-5,
		ConcEqualEps:     1e-10,
		FlowEps:          1e-12,
		SeedPermeateFlow: 1.0,
		SeedPermeateConc: 50.0,
	}
}
