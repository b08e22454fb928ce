package domain

// MembraneSpec holds the vendor transport coefficients for one membrane
// product. Specs are owned by the registry and never mutated after load.
type MembraneSpec struct {
	// Name is the product name used to select the spec (e.g. "CPA5-LD")
	Name string

	// AValue is the solvent permeability in m3/(m2*s*bar)
	AValue float64

	// BValue is the solute permeability in m3/(m2*s)
	BValue float64

	// AreaM2 is the active membrane area of one element in m2
	AreaM2 float64

	// DPElement is the per-element pressure drop in bar
	DPElement float64

	// OsmCoef converts concentration to osmotic pressure, bar per mg/L
	OsmCoef float64
}

// StreamState is the hydraulic state at one point in the element chain.
// Each element consumes the stream of its predecessor and produces a new one.
type StreamState struct {
	// Flow in m3/h
	Flow float64

	// Conc is the TDS concentration in mg/L
	Conc float64

	// Pressure in bar
	Pressure float64
}
