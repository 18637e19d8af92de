package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/tutor/internal/core/domain"
	"github.com/custodia-labs/tutor/internal/core/ports/driven"
	"github.com/custodia-labs/tutor/internal/logger"
)

var errEmptyCompletion = errors.New("empty completion")

// ChainModel is one named tier of a ModelChain.
type ChainModel struct {
	Tier    domain.ModelTier
	Service driven.LLMService
}

// ModelChain tries model tiers in order until one produces text.
// All attempts share one budget; each attempt also has its own timeout.
type ModelChain struct {
	models         []ChainModel
	attemptTimeout time.Duration
	budget         time.Duration
}

// NewModelChain creates a chain. Tiers with a nil service are skipped.
// A zero timeout or budget means no limit beyond the caller's context.
func NewModelChain(models []ChainModel, attemptTimeout, budget time.Duration) *ModelChain {
	kept := make([]ChainModel, 0, len(models))
	for _, m := range models {
		if m.Service != nil {
			kept = append(kept, m)
		}
	}
	return &ModelChain{
		models:         kept,
		attemptTimeout: attemptTimeout,
		budget:         budget,
	}
}

// Len returns the number of usable tiers.
func (c *ModelChain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.models)
}

// Tiers lists the tier names in attempt order.
func (c *ModelChain) Tiers() []domain.ModelTier {
	if c == nil {
		return nil
	}
	tiers := make([]domain.ModelTier, len(c.models))
	for i, m := range c.models {
		tiers[i] = m.Tier
	}
	return tiers
}

// Chat sends the conversation to each tier in turn and returns the first
// non-empty reply with the name of the model that produced it.
func (c *ModelChain) Chat(
	ctx context.Context,
	messages []driven.ChatMessage,
	opts driven.ChatOptions,
) (text, model string, err error) {
	return c.run(ctx, func(ctx context.Context, svc driven.LLMService) (string, error) {
		return svc.Chat(ctx, messages, opts)
	})
}

// Summarise asks each tier in turn to summarise content.
func (c *ModelChain) Summarise(ctx context.Context, content string, maxLength int) (text, model string, err error) {
	return c.run(ctx, func(ctx context.Context, svc driven.LLMService) (string, error) {
		return svc.Summarise(ctx, content, maxLength)
	})
}

// Close releases every tier.
func (c *ModelChain) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	for _, m := range c.models {
		if err := m.Service.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", m.Tier, err))
		}
	}
	return errors.Join(errs...)
}

func (c *ModelChain) run(
	ctx context.Context,
	attempt func(context.Context, driven.LLMService) (string, error),
) (string, string, error) {
	if c.Len() == 0 {
		return "", "", fmt.Errorf("%w: %w", domain.ErrGenerationFailed, domain.ErrLLMUnavailable)
	}

	if c.budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.budget)
		defer cancel()
	}

	var lastErr error
	for _, m := range c.models {
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}

		start := time.Now()
		text, err := c.attempt(ctx, m.Service, attempt)
		if err == nil {
			logger.Debug("tier %s (%s) answered in %v", m.Tier, m.Service.ModelName(), time.Since(start))
			return text, m.Service.ModelName(), nil
		}

		logger.Warn("tier %s (%s) failed after %v: %v", m.Tier, m.Service.ModelName(), time.Since(start), err)
		lastErr = err
	}

	return "", "", fmt.Errorf("%w: %w", domain.ErrGenerationFailed, lastErr)
}

func (c *ModelChain) attempt(
	ctx context.Context,
	svc driven.LLMService,
	call func(context.Context, driven.LLMService) (string, error),
) (string, error) {
	if c.attemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.attemptTimeout)
		defer cancel()
	}

	text, err := call(ctx, svc)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", errEmptyCompletion
	}
	return text, nil
}
