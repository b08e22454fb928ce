package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	// SQLite driver registration.
	_ "github.com/mattn/go-sqlite3"

	"github.com/osmoflow/rosim/internal/domain"
)

const sqliteFileName = "calculation_history.sqlite3"

const createHistoryTable = `
	CREATE TABLE IF NOT EXISTS history
	(
		timestamp        TEXT NOT NULL,
		product          TEXT NOT NULL,
		feed_flow        REAL NOT NULL,
		feed_tds         REAL NOT NULL,
		temperature      REAL NOT NULL,
		num_elements     INTEGER NOT NULL,
		permeate_flow    REAL NOT NULL,
		recovery_pct     REAL NOT NULL,
		permeate_tds     REAL NOT NULL,
		concentrate_flow REAL NOT NULL,
		concentrate_tds  REAL NOT NULL,
		final_pressure   REAL NOT NULL
	);
`

const insertHistoryRow = `
	INSERT INTO history (
		timestamp, product, feed_flow, feed_tds, temperature, num_elements,
		permeate_flow, recovery_pct, permeate_tds, concentrate_flow,
		concentrate_tds, final_pressure
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const selectHistoryRows = `
	SELECT
		timestamp, product, feed_flow, feed_tds, temperature, num_elements,
		permeate_flow, recovery_pct, permeate_tds, concentrate_flow,
		concentrate_tds, final_pressure
	FROM history
	ORDER BY rowid
`

// SQLiteStore keeps history in a SQLite database. Insertion order is the
// rowid order.
type SQLiteStore struct {
	mu sync.Mutex
	db *sql.DB
}

// OpenSQLiteStore opens (or creates) the history database under dir.
func OpenSQLiteStore(dir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, sqliteFileName))
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(createHistoryTable); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Append inserts one record.
func (s *SQLiteStore) Append(ctx context.Context, rec domain.HistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := toDoc(rec)
	_, err := s.db.ExecContext(ctx, insertHistoryRow,
		d.Timestamp,
		d.Product,
		d.FeedFlow,
		d.FeedTDS,
		d.Temperature,
		d.NumElements,
		d.PermeateFlow,
		d.RecoveryPct,
		d.PermeateTDS,
		d.ConcentrateFlow,
		d.ConcentrateTDS,
		d.FinalPressure,
	)
	return err
}

// Load returns all stored records in insertion order.
func (s *SQLiteStore) Load(ctx context.Context) ([]domain.HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, selectHistoryRows)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []domain.HistoryRecord{}
	for rows.Next() {
		var d recordDoc
		if err := rows.Scan(
			&d.Timestamp,
			&d.Product,
			&d.FeedFlow,
			&d.FeedTDS,
			&d.Temperature,
			&d.NumElements,
			&d.PermeateFlow,
			&d.RecoveryPct,
			&d.PermeateTDS,
			&d.ConcentrateFlow,
			&d.ConcentrateTDS,
			&d.FinalPressure,
		); err != nil {
			return nil, err
		}
		rec, err := d.toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
