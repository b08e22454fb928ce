package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/osmoflow/rosim/internal/domain"
	"github.com/osmoflow/rosim/internal/ports"
	"github.com/osmoflow/rosim/internal/vessel"
	"github.com/osmoflow/rosim/pkg/log"
)

// Handler serves the simulation API.
type Handler struct {
	sim    *vessel.Simulator
	specs  ports.SpecSource
	store  ports.HistoryStore
	logger log.Logger
}

// NewHandler constructs the HTTP handler adapter.
func NewHandler(sim *vessel.Simulator, specs ports.SpecSource, store ports.HistoryStore, logger log.Logger) *Handler {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Handler{sim: sim, specs: specs, store: store, logger: logger}
}

// simulateRequest is the JSON body of POST /api/simulate.
type simulateRequest struct {
	Product      string  `json:"product" binding:"required"`
	FeedFlow     float64 `json:"feed_flow"`
	FeedTDS      float64 `json:"feed_tds"`
	FeedPressure float64 `json:"feed_pressure"`
	Temperature  float64 `json:"temperature"`
	NumElements  int     `json:"num_elements"`
}

// simulateResponse carries the result with the stable wire field names.
type simulateResponse struct {
	Product         string  `json:"Selected_Product"`
	FeedFlow        float64 `json:"FeedFlow_m3/h"`
	FeedTDS         float64 `json:"FeedTDS_mg/L"`
	Temperature     float64 `json:"Temperature_degC"`
	NumElements     int     `json:"Number_of_Elements"`
	PermeateFlow    float64 `json:"PermeateFlow_m3/h"`
	RecoveryPct     float64 `json:"Recovery_%"`
	PermeateTDS     float64 `json:"PermeateTDS_mg/L"`
	ConcentrateFlow float64 `json:"ConcentrateFlow_m3/h"`
	ConcentrateTDS  float64 `json:"ConcentrateTDS_mg/L"`
	FinalPressure   float64 `json:"FinalPressure_bar"`
}

func toResponse(res domain.SimulationResult) simulateResponse {
	return simulateResponse{
		Product:         res.Product,
		FeedFlow:        res.FeedFlow,
		FeedTDS:         res.FeedTDS,
		Temperature:     res.Temperature,
		NumElements:     res.NumElements,
		PermeateFlow:    res.PermeateFlow,
		RecoveryPct:     res.RecoveryPct,
		PermeateTDS:     res.PermeateTDS,
		ConcentrateFlow: res.ConcentrateFlow,
		ConcentrateTDS:  res.ConcentrateTDS,
		FinalPressure:   res.FinalPressure,
	}
}

// Simulate runs one vessel simulation and appends the result to history.
func (h *Handler) Simulate(c *gin.Context) {
	var req simulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid simulate payload", log.Err(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := h.sim.Simulate(domain.SimulationInput{
		Product:      req.Product,
		FeedFlow:     req.FeedFlow,
		FeedTDS:      req.FeedTDS,
		FeedPressure: req.FeedPressure,
		Temperature:  req.Temperature,
		NumElements:  req.NumElements,
	})
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		h.logger.Error("simulation failed", log.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "simulation failed"})
		return
	}

	rec := domain.HistoryRecord{Timestamp: time.Now().UTC(), Result: res}
	if err := h.store.Append(c.Request.Context(), rec); err != nil {
		// The result is still valid; persistence failure must not hide it.
		h.logger.Error("failed to append history", log.Err(err))
	}

	c.JSON(http.StatusOK, toResponse(res))
}

// Products lists the membrane catalog.
func (h *Handler) Products(c *gin.Context) {
	type productEntry struct {
		Name      string  `json:"name"`
		AValue    float64 `json:"a_value"`
		BValue    float64 `json:"b_value"`
		AreaM2    float64 `json:"area_m2"`
		DPElement float64 `json:"default_dp_element"`
		OsmCoef   float64 `json:"default_osm_coef"`
	}

	specs := h.specs.Products()
	out := make([]productEntry, 0, len(specs))
	for _, s := range specs {
		out = append(out, productEntry{
			Name:      s.Name,
			AValue:    s.AValue,
			BValue:    s.BValue,
			AreaM2:    s.AreaM2,
			DPElement: s.DPElement,
			OsmCoef:   s.OsmCoef,
		})
	}

	c.JSON(http.StatusOK, gin.H{"products": out})
}

// History returns all stored runs in insertion order.
func (h *Handler) History(c *gin.Context) {
	records, err := h.store.Load(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load history", log.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	type historyEntry struct {
		Timestamp string `json:"Timestamp"`
		simulateResponse
	}

	out := make([]historyEntry, 0, len(records))
	for _, rec := range records {
		out = append(out, historyEntry{
			Timestamp:        rec.Timestamp.Format(time.RFC3339Nano),
			simulateResponse: toResponse(rec.Result),
		})
	}

	c.JSON(http.StatusOK, gin.H{"history": out})
}
