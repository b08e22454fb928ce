package vessel

import (
	"fmt"

	"github.com/osmoflow/rosim/internal/domain"
	"github.com/osmoflow/rosim/internal/ports"
	"github.com/osmoflow/rosim/internal/transport"
	"github.com/osmoflow/rosim/pkg/log"
)

// Simulator runs serial-element vessel simulations against a spec catalog.
// Simulate is side-effect-free and safe for concurrent use.
type Simulator struct {
	specs  ports.SpecSource
	params transport.Params
	log    log.Logger
}

// New creates a Simulator. A nil logger falls back to the no-op logger.
func New(specs ports.SpecSource, params transport.Params, logger log.Logger) *Simulator {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Simulator{specs: specs, params: params, log: logger}
}

// Simulate computes the outlet conditions for one pressure vessel.
//
// The product is resolved before any numeric work; an unknown product fails
// with domain.ErrProductNotFound. Temperature correction is applied once and
// the same corrected coefficients are reused for every element.
func (s *Simulator) Simulate(in domain.SimulationInput) (domain.SimulationResult, error) {
	if err := in.Validate(); err != nil {
		return domain.SimulationResult{}, err
	}

	spec, err := s.specs.Lookup(in.Product)
	if err != nil {
		return domain.SimulationResult{}, fmt.Errorf("simulate: %w", err)
	}

	aCorr, bCorr := s.params.Correct(spec.AValue, spec.BValue, in.Temperature)

	running := domain.StreamState{
		Flow:     in.FeedFlow,
		Conc:     in.FeedTDS,
		Pressure: in.FeedPressure,
	}

	var totalPermeate, totalSolute float64

	for i := 0; i < in.NumElements; i++ {
		out := transport.SolveElement(s.params, running, aCorr, bCorr,
			spec.AreaM2, spec.DPElement, spec.OsmCoef)

		// The model does not clamp permeate against inlet flow; flag the
		// operating points where the result is physically implausible.
		if out.PermeateFlow > running.Flow {
			s.log.Warn("element permeate exceeds inlet flow",
				log.Int("element", i+1),
				log.Float64("permeate_m3h", out.PermeateFlow),
				log.Float64("inlet_m3h", running.Flow))
		}

		totalPermeate += out.PermeateFlow
		totalSolute += out.PermeateFlow * out.PermeateConc

		running = domain.StreamState{
			Flow:     out.ConcentrateFlow,
			Conc:     out.ConcentrateConc,
			Pressure: out.OutletPressure,
		}
	}

	recovery := 0.0
	if in.FeedFlow > s.params.FlowEps {
		recovery = totalPermeate / in.FeedFlow * 100.0
	}
	permeateTDS := 0.0
	if totalPermeate > s.params.FlowEps {
		permeateTDS = totalSolute / totalPermeate
	}

	res := domain.SimulationResult{
		Product:         in.Product,
		FeedFlow:        in.FeedFlow,
		FeedTDS:         in.FeedTDS,
		Temperature:     in.Temperature,
		NumElements:     in.NumElements,
		PermeateFlow:    totalPermeate,
		RecoveryPct:     recovery,
		PermeateTDS:     permeateTDS,
		ConcentrateFlow: running.Flow,
		ConcentrateTDS:  running.Conc,
		FinalPressure:   running.Pressure,
	}

	s.log.Debug("vessel solved",
		log.String("product", in.Product),
		log.Int("elements", in.NumElements),
		log.Float64("recovery_pct", res.RecoveryPct))

	return res, nil
}
