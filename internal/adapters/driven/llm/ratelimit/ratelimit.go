// Package ratelimit throttles calls to a language model provider.
package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/tutor/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// LLMService wraps another LLMService with a token bucket.
// Ping and Close are not throttled.
type LLMService struct {
	next    driven.LLMService
	limiter *rate.Limiter
}

// Wrap returns next throttled to perMinute requests per minute.
// A non-positive rate returns next unchanged.
func Wrap(next driven.LLMService, perMinute int) driven.LLMService {
	if next == nil || perMinute <= 0 {
		return next
	}
	return &LLMService{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(float64(perMinute)/60), 1),
	}
}

func (s *LLMService) wait(ctx context.Context) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit %s: %w", s.next.ModelName(), err)
	}
	return nil
}

// Generate waits for a token, then delegates.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	if err := s.wait(ctx); err != nil {
		return "", err
	}
	return s.next.Generate(ctx, prompt, opts)
}

// Chat waits for a token, then delegates.
func (s *LLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	if err := s.wait(ctx); err != nil {
		return "", err
	}
	return s.next.Chat(ctx, messages, opts)
}

// Summarise waits for a token, then delegates.
func (s *LLMService) Summarise(ctx context.Context, content string, maxLength int) (string, error) {
	if err := s.wait(ctx); err != nil {
		return "", err
	}
	return s.next.Summarise(ctx, content, maxLength)
}

// ModelName returns the wrapped model name.
func (s *LLMService) ModelName() string {
	return s.next.ModelName()
}

// Ping delegates without throttling.
func (s *LLMService) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

// Close closes the wrapped service.
func (s *LLMService) Close() error {
	return s.next.Close()
}

// SetPromptStore forwards the store when the wrapped service accepts one.
func (s *LLMService) SetPromptStore(store driven.PromptStore) {
	if setter, ok := s.next.(interface{ SetPromptStore(driven.PromptStore) }); ok {
		setter.SetPromptStore(store)
	}
}
