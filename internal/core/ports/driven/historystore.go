package driven

import (
	"context"

	"github.com/custodia-labs/courtcheck/internal/core/domain"
)

// HistoryStore persists the local search audit trail. Optional: when nil,
// no history is recorded. Only terminal outcomes are written; the jobs
// themselves stay in memory.
type HistoryStore interface {
	// Record appends one entry to the audit trail.
	Record(ctx context.Context, entry domain.HistoryEntry) error

	// List returns the most recent entries, newest first.
	List(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Close releases the underlying storage.
	Close() error
}
