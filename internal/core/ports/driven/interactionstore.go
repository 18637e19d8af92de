package driven

import (
	"context"

	"github.com/custodia-labs/tutor/internal/core/domain"
)

// InteractionStore durably records answered questions.
// Backed by SQLite for audit and export. Implementations create their
// schema on first use and must be safe for concurrent appends.
type InteractionStore interface {
	// Append stores one record, assigning its ID and, when zero, its Timestamp.
	Append(ctx context.Context, record *domain.InteractionRecord) error

	// ListRecent returns up to n records, newest first.
	ListRecent(ctx context.Context, n int) ([]domain.InteractionRecord, error)

	// ExportAll returns every record, oldest first.
	ExportAll(ctx context.Context) ([]domain.InteractionRecord, error)
}
