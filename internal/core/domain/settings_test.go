package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAIProvider_IsValid(t *testing.T) {
	tests := []struct {
		provider AIProvider
		valid    bool
	}{
		{AIProviderOllama, true},
		{AIProviderOpenAI, true},
		{AIProviderAnthropic, true},
		{AIProvider("gemini"), false},
		{AIProvider(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.provider), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.provider.IsValid())
		})
	}
}

func TestAIProvider_RequiresAPIKey(t *testing.T) {
	assert.True(t, AIProviderOpenAI.RequiresAPIKey())
	assert.True(t, AIProviderAnthropic.RequiresAPIKey())
	assert.False(t, AIProviderOllama.RequiresAPIKey())
}

func TestAIProvider_Description(t *testing.T) {
	assert.Equal(t, "Ollama (local)", AIProviderOllama.Description())
	assert.Equal(t, unknownDescription, AIProvider("other").Description())
}

func TestModelSettings_IsConfigured(t *testing.T) {
	assert.False(t, ModelSettings{}.IsConfigured())
	assert.False(t, ModelSettings{Provider: AIProviderOpenAI}.IsConfigured())
	assert.True(t, ModelSettings{Provider: AIProviderOpenAI, APIKey: "sk-test"}.IsConfigured())
	assert.True(t, ModelSettings{Provider: AIProviderOllama}.IsConfigured())
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, DefaultMaxBlocks, s.Retrieval.MaxBlocks)
	assert.Equal(t, DefaultMaxLength, s.Retrieval.MaxLength)
	assert.Equal(t, DefaultCorpusFile, s.Corpus.Path)
	assert.Equal(t, DefaultServerAddr, s.Server.Addr)
	assert.NotNil(t, s.Server.Tokens)
	assert.False(t, s.LLM.Primary.IsConfigured())
	assert.False(t, s.LLM.Fallback.IsConfigured())
	assert.Greater(t, s.LLM.Budget, s.LLM.AttemptTimeout)
}

func TestAllLLMProviders_HaveDefaultModels(t *testing.T) {
	models := DefaultLLMModels()
	for _, p := range AllLLMProviders() {
		assert.NotEmpty(t, models[p], "provider %s", p)
	}
}
