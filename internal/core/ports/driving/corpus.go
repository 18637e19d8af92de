package driving

import (
	"context"

	"github.com/custodia-labs/tutor/internal/core/domain"
)

// CorpusService owns the current transcript snapshot.
type CorpusService interface {
	// Load reads and segments the corpus. An unreadable or empty corpus is an error.
	Load(ctx context.Context) error

	// Reload rebuilds the snapshot and swaps it in atomically.
	// On failure the previous snapshot stays in place.
	Reload(ctx context.Context) error

	// Snapshot returns the current corpus, or nil before Load.
	Snapshot() *domain.Corpus

	// Stats summarises the current corpus.
	Stats() domain.CorpusStats
}
