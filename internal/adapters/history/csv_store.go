package history

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/osmoflow/rosim/internal/domain"
)

const csvFileName = "calculation_history.csv"

// csvHeader is the fixed column set, a leading timestamp followed by the
// result fields in wire order.
var csvHeader = []string{
	"Timestamp",
	"Selected_Product",
	"FeedFlow_m3/h",
	"FeedTDS_mg/L",
	"Temperature_degC",
	"Number_of_Elements",
	"PermeateFlow_m3/h",
	"Recovery_%",
	"PermeateTDS_mg/L",
	"ConcentrateFlow_m3/h",
	"ConcentrateTDS_mg/L",
	"FinalPressure_bar",
}

// CSVStore appends history rows to a CSV file, writing the header on first
// use. Prior rows are never touched by an append.
type CSVStore struct {
	mu   sync.Mutex
	path string
}

// NewCSVStore creates a CSVStore storing its file under dir.
func NewCSVStore(dir string) *CSVStore {
	return &CSVStore{path: filepath.Join(dir, csvFileName)}
}

// Append adds one record to the end of the file.
func (s *CSVStore) Append(ctx context.Context, rec domain.HistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	_, statErr := os.Stat(s.path)
	isNew := os.IsNotExist(statErr)

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if isNew {
		if err := w.Write(csvHeader); err != nil {
			return err
		}
	}
	if err := w.Write(recordToRow(rec)); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// Load returns all stored records in file order.
// Returns an empty slice if the file does not exist yet.
func (s *CSVStore) Load(ctx context.Context) ([]domain.HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.HistoryRecord{}, nil
		}
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []domain.HistoryRecord{}, nil
	}

	// Skip the header row.
	records := make([]domain.HistoryRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec, err := rowToRecord(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Path returns the CSV file path.
func (s *CSVStore) Path() string { return s.path }

func recordToRow(rec domain.HistoryRecord) []string {
	d := toDoc(rec)
	return []string{
		d.Timestamp,
		d.Product,
		formatFloat(d.FeedFlow),
		formatFloat(d.FeedTDS),
		formatFloat(d.Temperature),
		strconv.Itoa(d.NumElements),
		formatFloat(d.PermeateFlow),
		formatFloat(d.RecoveryPct),
		formatFloat(d.PermeateTDS),
		formatFloat(d.ConcentrateFlow),
		formatFloat(d.ConcentrateTDS),
		formatFloat(d.FinalPressure),
	}
}

func rowToRecord(row []string) (domain.HistoryRecord, error) {
	if len(row) != len(csvHeader) {
		return domain.HistoryRecord{}, fmt.Errorf("history row has %d columns, want %d", len(row), len(csvHeader))
	}

	var d recordDoc
	var err error
	d.Timestamp = row[0]
	d.Product = row[1]
	if d.FeedFlow, err = strconv.ParseFloat(row[2], 64); err != nil {
		return domain.HistoryRecord{}, err
	}
	if d.FeedTDS, err = strconv.ParseFloat(row[3], 64); err != nil {
		return domain.HistoryRecord{}, err
	}
	if d.Temperature, err = strconv.ParseFloat(row[4], 64); err != nil {
		return domain.HistoryRecord{}, err
	}
	if d.NumElements, err = strconv.Atoi(row[5]); err != nil {
		return domain.HistoryRecord{}, err
	}
	if d.PermeateFlow, err = strconv.ParseFloat(row[6], 64); err != nil {
		return domain.HistoryRecord{}, err
	}
	if d.RecoveryPct, err = strconv.ParseFloat(row[7], 64); err != nil {
		return domain.HistoryRecord{}, err
	}
	if d.PermeateTDS, err = strconv.ParseFloat(row[8], 64); err != nil {
		return domain.HistoryRecord{}, err
	}
	if d.ConcentrateFlow, err = strconv.ParseFloat(row[9], 64); err != nil {
		return domain.HistoryRecord{}, err
	}
	if d.ConcentrateTDS, err = strconv.ParseFloat(row[10], 64); err != nil {
		return domain.HistoryRecord{}, err
	}
	if d.FinalPressure, err = strconv.ParseFloat(row[11], 64); err != nil {
		return domain.HistoryRecord{}, err
	}
	return d.toRecord()
}

// formatFloat renders a float so that parsing it back yields the identical
// value.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
