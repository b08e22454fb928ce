package history

import (
	"fmt"
	"time"

	"github.com/osmoflow/rosim/internal/domain"
	"github.com/osmoflow/rosim/internal/ports"
)

// Supported backend formats.
const (
	FormatCSV    = "csv"
	FormatJSON   = "json"
	FormatSQLite = "sqlite"
)

// timestampLayout is the persisted timestamp encoding for all backends.
const timestampLayout = time.RFC3339Nano

// Open returns the history store for the given format, storing its data
// under dir. Stores that hold resources implement io.Closer.
func Open(format, dir string) (ports.HistoryStore, error) {
	switch format {
	case FormatCSV:
		return NewCSVStore(dir), nil
	case FormatJSON:
		return NewJSONStore(dir), nil
	case FormatSQLite:
		return OpenSQLiteStore(dir)
	default:
		return nil, fmt.Errorf("%w: unknown history format %q", domain.ErrInvalidConfig, format)
	}
}

// recordDoc is the wire form of a history record. The key names are the
// stable field set consumed by the presentation layer and shared by all
// backends (the CSV header uses the same names in the same order).
type recordDoc struct {
	Timestamp       string  `json:"Timestamp"`
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

func toDoc(rec domain.HistoryRecord) recordDoc {
	return recordDoc{
		Timestamp:       rec.Timestamp.Format(timestampLayout),
		Product:         rec.Result.Product,
		FeedFlow:        rec.Result.FeedFlow,
		FeedTDS:         rec.Result.FeedTDS,
		Temperature:     rec.Result.Temperature,
		NumElements:     rec.Result.NumElements,
		PermeateFlow:    rec.Result.PermeateFlow,
		RecoveryPct:     rec.Result.RecoveryPct,
		PermeateTDS:     rec.Result.PermeateTDS,
		ConcentrateFlow: rec.Result.ConcentrateFlow,
		ConcentrateTDS:  rec.Result.ConcentrateTDS,
		FinalPressure:   rec.Result.FinalPressure,
	}
}

func (d recordDoc) toRecord() (domain.HistoryRecord, error) {
	ts, err := time.Parse(timestampLayout, d.Timestamp)
	if err != nil {
		return domain.HistoryRecord{}, fmt.Errorf("parse history timestamp %q: %w", d.Timestamp, err)
	}
	return domain.HistoryRecord{
		Timestamp: ts,
		Result: domain.SimulationResult{
			Product:         d.Product,
			FeedFlow:        d.FeedFlow,
			FeedTDS:         d.FeedTDS,
			Temperature:     d.Temperature,
			NumElements:     d.NumElements,
			PermeateFlow:    d.PermeateFlow,
			RecoveryPct:     d.RecoveryPct,
			PermeateTDS:     d.PermeateTDS,
			ConcentrateFlow: d.ConcentrateFlow,
			ConcentrateTDS:  d.ConcentrateTDS,
			FinalPressure:   d.FinalPressure,
		},
	}, nil
}
