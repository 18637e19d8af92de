package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/tutor/internal/core/domain"
	"github.com/custodia-labs/tutor/internal/core/ports/driven"
	"github.com/custodia-labs/tutor/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// DefaultRecentLimit is used when a caller asks for a non-positive count.
const DefaultRecentLimit = 20

// errNoStore is returned when history is requested without a store.
var errNoStore = errors.New("interaction store not configured")

// HistoryService reads recorded interactions.
type HistoryService struct {
	store driven.InteractionStore
}

// NewHistoryService creates a history service.
func NewHistoryService(store driven.InteractionStore) *HistoryService {
	return &HistoryService{store: store}
}

// Recent returns up to n records, newest first.
func (s *HistoryService) Recent(ctx context.Context, n int) ([]domain.InteractionRecord, error) {
	if s.store == nil {
		return nil, errNoStore
	}
	if n <= 0 {
		n = DefaultRecentLimit
	}
	records, err := s.store.ListRecent(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("list recent interactions: %w", err)
	}
	return records, nil
}

// All returns the full history, oldest first.
func (s *HistoryService) All(ctx context.Context) ([]domain.InteractionRecord, error) {
	if s.store == nil {
		return nil, errNoStore
	}
	records, err := s.store.ExportAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("export interactions: %w", err)
	}
	return records, nil
}
