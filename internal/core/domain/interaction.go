package domain

import "time"

// InteractionRecord is one answered question as persisted for audit.
// Records are appended once and never mutated.
type InteractionRecord struct {
	ID             int64
	Username       string
	Question       string
	Answer         string
	ContextSnippet string
	PromptType     string
	Timestamp      time.Time
}
