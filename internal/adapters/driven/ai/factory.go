// Package ai provides factory functions for creating language model adapters.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	anthropicllm "github.com/custodia-labs/tutor/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/custodia-labs/tutor/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/tutor/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/tutor/internal/adapters/driven/llm/ratelimit"
	"github.com/custodia-labs/tutor/internal/core/domain"
	"github.com/custodia-labs/tutor/internal/core/ports/driven"
	"github.com/custodia-labs/tutor/internal/logger"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// Tier is a constructed model service for one position of the fallback chain.
type Tier struct {
	Name    domain.ModelTier
	Service driven.LLMService
}

// InitResult contains the result of model tier initialisation.
type InitResult struct {
	Tiers       []Tier
	PromptStore driven.PromptStore // User-customisable prompt templates.
	Warnings    []string           // Non-fatal issues; the tier was skipped.
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() error {
	var errs []error
	for _, t := range r.Tiers {
		if err := t.Service.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CreateTiers builds the primary and fallback services in attempt order.
// Unconfigured tiers are skipped silently; tiers that fail to construct are
// skipped with a warning so that one bad key does not take the other down.
// Connectivity is not checked here; a down provider fails at call time and
// the chain moves on.
func CreateTiers(settings *domain.LLMSettings, prompts driven.PromptStore) *InitResult {
	result := &InitResult{PromptStore: prompts}
	if settings == nil {
		return result
	}

	candidates := []struct {
		name  domain.ModelTier
		model domain.ModelSettings
	}{
		{domain.ModelTierPrimary, settings.Primary},
		{domain.ModelTierFallback, settings.Fallback},
	}

	for _, c := range candidates {
		if !c.model.IsConfigured() {
			continue
		}
		svc, err := CreateLLMService(&c.model, settings.AttemptTimeout)
		if err != nil {
			msg := fmt.Sprintf("%s tier skipped: %v", c.name, err)
			logger.Warn("%s", msg)
			result.Warnings = append(result.Warnings, msg)
			continue
		}
		if prompts != nil {
			if setter, ok := svc.(interface{ SetPromptStore(driven.PromptStore) }); ok {
				setter.SetPromptStore(prompts)
			}
		}
		result.Tiers = append(result.Tiers, Tier{
			Name:    c.name,
			Service: ratelimit.Wrap(svc, settings.RatePerMinute),
		})
	}

	return result
}

// CreateAndValidateLLMService creates an LLM service and validates connectivity.
// Returns the service if successful, or an error with guidance.
func CreateAndValidateLLMService(settings *domain.ModelSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	svc, err := CreateLLMService(settings, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'tutor settings llm' to fix",
			domain.ErrLLMUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'tutor settings llm' to fix",
			domain.ErrLLMUnavailable, err)
	}

	return svc, nil
}

// ValidateModelConfig validates a model tier by creating a service and pinging it.
// This is intended for use by the settings command to validate credentials on configuration.
func ValidateModelConfig(settings *domain.ModelSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	svc, err := CreateLLMService(settings, 0)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// CreateLLMService creates the appropriate LLM service based on settings.
// A zero timeout uses the provider default.
func CreateLLMService(settings *domain.ModelSettings, timeout time.Duration) (driven.LLMService, error) {
	if settings == nil {
		return nil, fmt.Errorf("%w: no model settings", domain.ErrInvalidInput)
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: timeout,
		}), nil

	case domain.AIProviderOpenAI:
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: timeout,
		})

	case domain.AIProviderAnthropic:
		return anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: timeout,
		})

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", settings.Provider)
	}
}
