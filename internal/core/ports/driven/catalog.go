package driven

import "github.com/custodia-labs/tutor/internal/core/domain"

// CatalogStore loads the canonical-answer table and the prompt-type keyword table.
type CatalogStore interface {
	// Load returns the catalog. It is called once at start-up.
	Load() (domain.Catalog, error)
}
