package driving

import (
	"context"

	"github.com/custodia-labs/tutor/internal/core/domain"
)

// ChatService answers student questions.
type ChatService interface {
	// Ask classifies, retrieves and composes a reply, then records the turn.
	// Generation and logging failures never surface here: the reply degrades
	// to a safe default instead. Only invalid input returns an error.
	Ask(ctx context.Context, q domain.Question) (*domain.Answer, error)

	// Classify reports how a question would be routed, without answering it.
	Classify(question string) domain.ClassificationResult

	// Retrieve returns the ranked blocks and the context string for a question.
	Retrieve(question string) ([]domain.ScoredBlock, string)
}
