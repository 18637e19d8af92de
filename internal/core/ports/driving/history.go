package driving

import (
	"context"

	"github.com/custodia-labs/tutor/internal/core/domain"
)

// HistoryService reads the interaction log for audit and export.
type HistoryService interface {
	// Recent returns up to n records, newest first.
	Recent(ctx context.Context, n int) ([]domain.InteractionRecord, error)

	// All returns every record, oldest first.
	All(ctx context.Context) ([]domain.InteractionRecord, error)
}
