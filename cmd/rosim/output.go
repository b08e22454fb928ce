package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/osmoflow/rosim/internal/adapters/history"
	"github.com/osmoflow/rosim/internal/domain"
	"github.com/osmoflow/rosim/internal/ports"
	"github.com/osmoflow/rosim/pkg/log"
)

// resultJSON is the wire form of a simulation result. The field names match
// the history files so saved and printed output line up.
type resultJSON struct {
	Timestamp       string  `json:"Timestamp,omitempty"`
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

func toResultJSON(res domain.SimulationResult) resultJSON {
	return resultJSON{
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

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printResultTable(res domain.SimulationResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Product\t%s\n", res.Product)
	fmt.Fprintf(w, "Elements\t%d\n", res.NumElements)
	fmt.Fprintf(w, "Feed flow\t%.3f m3/h\n", res.FeedFlow)
	fmt.Fprintf(w, "Feed TDS\t%.1f mg/L\n", res.FeedTDS)
	fmt.Fprintf(w, "Temperature\t%.1f degC\n", res.Temperature)
	fmt.Fprintf(w, "Permeate flow\t%.3f m3/h\n", res.PermeateFlow)
	fmt.Fprintf(w, "Recovery\t%.2f %%\n", res.RecoveryPct)
	fmt.Fprintf(w, "Permeate TDS\t%.2f mg/L\n", res.PermeateTDS)
	fmt.Fprintf(w, "Concentrate flow\t%.3f m3/h\n", res.ConcentrateFlow)
	fmt.Fprintf(w, "Concentrate TDS\t%.1f mg/L\n", res.ConcentrateTDS)
	fmt.Fprintf(w, "Final pressure\t%.2f bar\n", res.FinalPressure)
	w.Flush()
}

// openHistory opens the configured history backend, creating the history
// directory if needed.
func openHistory() (ports.HistoryStore, error) {
	if err := os.MkdirAll(cfg.HistoryDir, 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	store, err := history.Open(cfg.HistoryFormat, cfg.HistoryDir)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return store, nil
}

// closeHistory closes backends that hold resources, such as sqlite.
func closeHistory(store ports.HistoryStore) {
	if c, ok := store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			logger.Warn("close history store", log.Err(err))
		}
	}
}

func formatTimestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}
