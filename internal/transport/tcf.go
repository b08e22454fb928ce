package transport

// TCF returns the linear temperature correction factor for the given
// temperature. The factor is 1 at the reference temperature, grows by
// TCFSlope per degC, and is floored at 0.
func (p Params) TCF(temperature float64) float64 {
	tcf := 1.0 + p.TCFSlope*(temperature-p.RefTemperature)
	if tcf < 0 {
		tcf = 0
	}
	return tcf
}

// Correct scales both transport coefficients by the temperature correction
// factor. Pure and total: any finite input yields finite, non-negative
// outputs.
func (p Params) Correct(aValue, bValue, temperature float64) (aCorr, bCorr float64) {
	tcf := p.TCF(temperature)
	return aValue * tcf, bValue * tcf
}
