package ports

import (
	"context"

	"github.com/osmoflow/rosim/internal/domain"
)

// HistoryStore persists simulation results as an append-only log.
//
// Implementations serialize concurrent appends from the same process with an
// internal mutex. Concurrent writers from different processes are not
// coordinated; the history file is single-writer across processes.
type HistoryStore interface {
	// Append adds one record, preserving all prior records unmodified.
	// Records are stored in insertion order.
	Append(ctx context.Context, rec domain.HistoryRecord) error

	// Load returns all stored records in insertion order.
	// Returns an empty slice and nil error if no history exists yet.
	Load(ctx context.Context) ([]domain.HistoryRecord, error)
}
