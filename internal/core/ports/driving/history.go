package driving

import (
	"context"

	"github.com/custodia-labs/courtcheck/internal/core/domain"
)

// HistoryService exposes the local search audit trail.
type HistoryService interface {
	// Recent returns the most recent search entries, newest first.
	Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error)
}
