// Package llm holds helpers shared by the language model adapters.
// Provider adapters live in the anthropic, ollama and openai subpackages.
package llm

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/custodia-labs/tutor/internal/core/ports/driven"
)

// DefaultSummarisePrompt is used when no PromptStore is configured.
const DefaultSummarisePrompt = `Resuma o conteúdo abaixo em no máximo %d caracteres, em português do Brasil.

Conteúdo:
%s

Resumo:`

// maxErrorBody bounds how much of a failed response is quoted in errors.
const maxErrorBody = 512

// SummarisePrompt renders the summarise template for content.
func SummarisePrompt(store driven.PromptStore, content string, maxLength int) string {
	template := LoadPrompt(store, driven.PromptSummarise, DefaultSummarisePrompt)
	if strings.Count(template, "%") < 2 {
		template = DefaultSummarisePrompt
	}
	return fmt.Sprintf(template, maxLength, content)
}

// SummaryTokens estimates the token budget for a summary of maxLength characters.
func SummaryTokens(maxLength int) int {
	// Roughly four characters per token, with a floor for short summaries.
	if tokens := maxLength / 4; tokens > 64 {
		return tokens
	}
	return 64
}

// LoadPrompt loads a prompt from the store, falling back when unavailable.
func LoadPrompt(store driven.PromptStore, name, fallback string) string {
	if store == nil {
		return fallback
	}
	prompt, err := store.Load(name)
	if err != nil || strings.TrimSpace(prompt) == "" {
		return fallback
	}
	return prompt
}

// StatusError builds an error for a non-2xx provider response.
func StatusError(provider string, resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fmt.Errorf("%s: API returned status %d (failed to read body: %w)", provider, resp.StatusCode, err)
	}
	return fmt.Errorf("%s: API returned status %d: %s", provider, resp.StatusCode, strings.TrimSpace(string(body)))
}
