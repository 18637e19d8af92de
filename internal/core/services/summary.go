package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/tutor/internal/core/domain"
	"github.com/custodia-labs/tutor/internal/core/ports/driving"
	"github.com/custodia-labs/tutor/internal/logger"
)

// Ensure SummaryService implements the interface.
var _ driving.SummaryService = (*SummaryService)(nil)

// DefaultSummaryLength is used when no maximum is given.
const DefaultSummaryLength = 500

// SummaryService condenses supplementary material through the model chain.
type SummaryService struct {
	chain *ModelChain
}

// NewSummaryService creates a summary service.
func NewSummaryService(chain *ModelChain) *SummaryService {
	return &SummaryService{chain: chain}
}

// Summarise returns a summary of text no longer than maxLength runes.
func (s *SummaryService) Summarise(ctx context.Context, text string, maxLength int) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: nothing to summarise", domain.ErrInvalidInput)
	}
	if maxLength <= 0 {
		maxLength = DefaultSummaryLength
	}

	summary, model, err := s.chain.Summarise(ctx, text, maxLength)
	if err != nil {
		return "", fmt.Errorf("summarise: %w", err)
	}
	logger.Debug("summary by %s: %d chars", model, len(summary))
	return truncateRunes(strings.TrimSpace(summary), maxLength), nil
}
