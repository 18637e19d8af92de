package driving

import "context"

// SummaryService condenses supplementary course material.
// Input is plain text already extracted from its original format.
type SummaryService interface {
	// Summarise returns a summary of at most maxLength characters.
	Summarise(ctx context.Context, text string, maxLength int) (string, error)
}
