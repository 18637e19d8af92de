package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/tutor/internal/core/domain"
	"github.com/custodia-labs/tutor/internal/core/ports/driven"
)

// Ensure InteractionStore implements the interface.
var _ driven.InteractionStore = (*InteractionStore)(nil)

// InteractionStore is an in-memory implementation of driven.InteractionStore.
// Records are lost when the process exits.
type InteractionStore struct {
	mu      sync.RWMutex
	records []domain.InteractionRecord
	nextID  int64
	now     func() time.Time
}

// NewInteractionStore creates a new in-memory interaction store.
func NewInteractionStore() *InteractionStore {
	return &InteractionStore{nextID: 1, now: time.Now}
}

// Append stores a record and assigns its ID and, when zero, its timestamp.
func (s *InteractionStore) Append(ctx context.Context, record *domain.InteractionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	record.ID = s.nextID
	s.nextID++
	if record.Timestamp.IsZero() {
		record.Timestamp = s.now()
	}
	record.Timestamp = record.Timestamp.UTC()
	s.records = append(s.records, *record)
	return nil
}

// ListRecent returns up to n records, newest first.
func (s *InteractionStore) ListRecent(_ context.Context, n int) ([]domain.InteractionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 {
		return []domain.InteractionRecord{}, nil
	}
	if n > len(s.records) {
		n = len(s.records)
	}
	out := make([]domain.InteractionRecord, 0, n)
	for i := len(s.records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.records[i])
	}
	return out, nil
}

// ExportAll returns every record, oldest first.
func (s *InteractionStore) ExportAll(_ context.Context) ([]domain.InteractionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.InteractionRecord{}, s.records...), nil
}

// Len returns the number of stored records.
func (s *InteractionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
