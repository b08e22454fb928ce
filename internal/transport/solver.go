package transport

import (
	"math"

	"github.com/osmoflow/rosim/internal/domain"
)

// secondsPerHour converts the per-second vendor coefficients to the per-hour
// basis the flow balance works in.
const secondsPerHour = 3600.0

// ElementOutlet is the solved state of one element: the permeate drawn
// through the membrane and the concentrate passed to the next element.
type ElementOutlet struct {
	// PermeateFlow in m3/h
	PermeateFlow float64

	// PermeateConc in mg/L
	PermeateConc float64

	// ConcentrateFlow in m3/h
	ConcentrateFlow float64

	// ConcentrateConc in mg/L
	ConcentrateConc float64

	// OutletPressure in bar, feeding the next element
	OutletPressure float64
}

// SolveElement derives one element's outlet streams from its inlet stream and
// the temperature-corrected coefficients.
//
// The iteration depth is fixed at p.Passes with no convergence test and no
// early exit; the output is deterministic for any input. The final
// concentrate is recomputed from the solute balance with the converged
// permeate values, so mass closure at the outlet is exact. The reported
// outlet pressure is max(inlet - dP, 0); the PressureFloor applies only
// inside the log-mean pressure formula.
func SolveElement(p Params, inlet domain.StreamState, aCorr, bCorr, areaM2, dPElement, osmCoef float64) ElementOutlet {
	pOut := inlet.Pressure - dPElement
	if pOut < 0 {
		pOut = 0
	}

	qp := p.SeedPermeateFlow
	cp := p.SeedPermeateConc

	for i := 0; i < p.Passes; i++ {
		qc := inlet.Flow - qp
		saltIn := inlet.Flow * inlet.Conc
		saltPerm := qp * cp
		cc := inlet.Conc
		if qc > p.FlowEps {
			cc = (saltIn - saltPerm) / qc
		}

		// Log-mean pressure across the element.
		if pOut < p.PressureFloor {
			pOut = p.PressureFloor
		}
		pAvg := (inlet.Pressure - pOut) / math.Log(inlet.Pressure/pOut)

		// Log-mean feed-side concentration. When inlet and concentrate are
		// effectively equal the log-mean degenerates to the inlet value.
		if cc < p.ConcFloor {
			cc = p.ConcFloor
		}
		cAvg := inlet.Conc
		if math.Abs(inlet.Conc-cc) > p.ConcEqualEps {
			cAvg = (inlet.Conc - cc) / math.Log(inlet.Conc/cc)
		}

		ndp := pAvg - osmCoef*cAvg
		if ndp < 0 {
			ndp = 0
		}

		aHourly := aCorr * secondsPerHour
		bHourly := bCorr * secondsPerHour

		qpNew := aHourly * ndp * areaM2
		soluteFlux := bHourly * cAvg * areaM2 // mg/h
		cpNew := inlet.Conc
		if qpNew > p.FlowEps {
			cpNew = soluteFlux / qpNew
		}

		qp = qpNew
		cp = cpNew
	}

	// Exact mass closure with the converged permeate values.
	qc := inlet.Flow - qp
	cc := inlet.Conc
	if qc > p.FlowEps {
		cc = (inlet.Flow*inlet.Conc - qp*cp) / qc
	}

	outletPressure := inlet.Pressure - dPElement
	if outletPressure < 0 {
		outletPressure = 0
	}

	return ElementOutlet{
		PermeateFlow:    qp,
		PermeateConc:    cp,
		ConcentrateFlow: qc,
		ConcentrateConc: cc,
		OutletPressure:  outletPressure,
	}
}
