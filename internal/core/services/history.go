package services

import (
	"context"

	"github.com/custodia-labs/courtcheck/internal/core/domain"
	"github.com/custodia-labs/courtcheck/internal/core/ports/driven"
	"github.com/custodia-labs/courtcheck/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// defaultHistoryLimit bounds an unspecified Recent query.
const defaultHistoryLimit = 20

// HistoryService exposes the local search audit trail.
type HistoryService struct {
	store driven.HistoryStore
}

// NewHistoryService creates a history service. The store may be nil, in
// which case Recent always returns an empty list.
func NewHistoryService(store driven.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// Recent returns the most recent search entries, newest first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if s.store == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.store.List(ctx, limit)
}
