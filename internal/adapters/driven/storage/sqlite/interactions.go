package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/custodia-labs/tutor/internal/core/domain"
	"github.com/custodia-labs/tutor/internal/core/ports/driven"
)

// interactionStore implements driven.InteractionStore.
type interactionStore struct {
	store *Store
}

var _ driven.InteractionStore = (*interactionStore)(nil)

const selectInteractions = `
	SELECT id, username, question, answer, context, prompt_type, created_at
	FROM interactions`

// Append inserts one record.
func (s *interactionStore) Append(ctx context.Context, record *domain.InteractionRecord) error {
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	record.Timestamp = record.Timestamp.UTC()

	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO interactions (username, question, answer, context, prompt_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, record.Username, record.Question, record.Answer, record.ContextSnippet, record.PromptType,
		record.Timestamp.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("inserting interaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading interaction id: %w", err)
	}
	record.ID = id
	return nil
}

// ListRecent returns up to n records, newest first.
func (s *interactionStore) ListRecent(ctx context.Context, n int) ([]domain.InteractionRecord, error) {
	if n <= 0 {
		return []domain.InteractionRecord{}, nil
	}
	rows, err := s.store.db.QueryContext(ctx, selectInteractions+" ORDER BY id DESC LIMIT ?", n)
	if err != nil {
		return nil, fmt.Errorf("querying interactions: %w", err)
	}
	return scanInteractions(rows)
}

// ExportAll returns every record, oldest first.
func (s *interactionStore) ExportAll(ctx context.Context) ([]domain.InteractionRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, selectInteractions+" ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("querying interactions: %w", err)
	}
	return scanInteractions(rows)
}

func scanInteractions(rows *sql.Rows) ([]domain.InteractionRecord, error) {
	defer rows.Close()

	records := []domain.InteractionRecord{}
	for rows.Next() {
		var (
			rec       domain.InteractionRecord
			createdAt string
		)
		if err := rows.Scan(&rec.ID, &rec.Username, &rec.Question, &rec.Answer,
			&rec.ContextSnippet, &rec.PromptType, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning interaction: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp of interaction %d: %w", rec.ID, err)
		}
		rec.Timestamp = ts.UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating interactions: %w", err)
	}
	return records, nil
}
