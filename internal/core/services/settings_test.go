package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tutor/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tutor/internal/core/domain"
)

func newTestSettings(values map[string]any, env map[string]string) (*SettingsService, *memory.ConfigStore) {
	store := memory.NewConfigStoreWith(values)
	service := NewSettingsService(store, nil)
	service.getenv = func(key string) string { return env[key] }
	return service, store
}

func TestNewSettingsService(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service, _ := newTestSettings(nil, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Corpus.Path, settings.Corpus.Path)
	assert.False(t, settings.Corpus.Watch)
	assert.Equal(t, defaults.Retrieval, settings.Retrieval)
	assert.InDelta(t, defaults.LLM.Temperature, settings.LLM.Temperature, 1e-9)
	assert.Equal(t, defaults.LLM.MaxTokens, settings.LLM.MaxTokens)
	assert.Equal(t, defaults.LLM.AttemptTimeout, settings.LLM.AttemptTimeout)
	assert.Equal(t, defaults.LLM.Budget, settings.LLM.Budget)
	assert.Equal(t, defaults.Server.Addr, settings.Server.Addr)
	assert.Empty(t, settings.Server.Tokens)
	assert.Equal(t, domain.AIProvider(""), settings.LLM.Primary.Provider)
	assert.False(t, settings.LLM.Primary.IsConfigured())
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	service, _ := newTestSettings(map[string]any{
		"corpus.path":              "/srv/curso/transcricao.txt",
		"corpus.watch":             true,
		"retrieval.max_blocks":     int64(5),
		"llm.temperature":          0.1,
		"llm.attempt_timeout_secs": int64(10),
		"llm.primary.provider":     "openai",
		"llm.primary.api_key":      "sk-file",
		"llm.fallback.provider":    "ollama",
		"llm.fallback.model":       "qwen2.5",
		"server.tokens":            []any{"tok-a=ana", "tok-b = bruno"},
	}, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "/srv/curso/transcricao.txt", settings.Corpus.Path)
	assert.True(t, settings.Corpus.Watch)
	assert.Equal(t, 5, settings.Retrieval.MaxBlocks)
	assert.InDelta(t, 0.1, settings.LLM.Temperature, 1e-9)
	assert.Equal(t, 10*time.Second, settings.LLM.AttemptTimeout)

	assert.Equal(t, domain.AIProviderOpenAI, settings.LLM.Primary.Provider)
	assert.Equal(t, "gpt-4o-mini", settings.LLM.Primary.Model, "provider default model")
	assert.Equal(t, "sk-file", settings.LLM.Primary.APIKey)
	assert.True(t, settings.LLM.Primary.IsConfigured())

	assert.Equal(t, "qwen2.5", settings.LLM.Fallback.Model)
	assert.Equal(t, defaultOllamaURL, settings.LLM.Fallback.BaseURL)

	assert.Equal(t, map[string]string{"tok-a": "ana", "tok-b": "bruno"}, settings.Server.Tokens)
}

func TestSettingsService_Get_InvalidProviderIgnored(t *testing.T) {
	service, _ := newTestSettings(map[string]any{"llm.primary.provider": "gemini"}, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.AIProvider(""), settings.LLM.Primary.Provider)
}

func TestSettingsService_Get_InvalidTokens(t *testing.T) {
	for _, entry := range []string{"no-separator", "=ana", "tok="} {
		t.Run(entry, func(t *testing.T) {
			service, _ := newTestSettings(map[string]any{"server.tokens": []string{entry}}, nil)

			_, err := service.Get()

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_Get_APIKeyFromEnvironment(t *testing.T) {
	service, _ := newTestSettings(map[string]any{
		"llm.primary.provider":    "anthropic",
		"llm.primary.api_key_env": "TUTOR_ANTHROPIC_KEY",
	}, map[string]string{"TUTOR_ANTHROPIC_KEY": "sk-env"})

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "sk-env", settings.LLM.Primary.APIKey)
	assert.True(t, settings.LLM.Primary.IsConfigured())
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	service, store := newTestSettings(nil, map[string]string{"KEY_ENV": "sk-env"})

	settings := domain.DefaultAppSettings()
	settings.Corpus.Path = "aulas.txt"
	settings.Corpus.Watch = true
	settings.Corpus.CatalogPath = "catalogo.yaml"
	settings.LLM.Primary = domain.ModelSettings{Provider: domain.AIProviderOpenAI, Model: "gpt-4o", APIKey: "sk-file"}
	settings.LLM.Fallback = domain.ModelSettings{Provider: domain.AIProviderAnthropic, APIKeyEnv: "KEY_ENV", APIKey: "sk-env"}
	settings.LLM.Budget = 45 * time.Second
	settings.LLM.RatePerMinute = 30
	settings.Server.Tokens = map[string]string{"t2": "bruno", "t1": "ana"}
	settings.Storage.DataDir = "/var/lib/tutor"

	require.NoError(t, service.Save(&settings))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "aulas.txt", got.Corpus.Path)
	assert.True(t, got.Corpus.Watch)
	assert.Equal(t, "catalogo.yaml", got.Corpus.CatalogPath)
	assert.Equal(t, settings.LLM.Primary, got.LLM.Primary)
	assert.Equal(t, "sk-env", got.LLM.Fallback.APIKey)
	assert.Equal(t, 45*time.Second, got.LLM.Budget)
	assert.Equal(t, 30, got.LLM.RatePerMinute)
	assert.Equal(t, settings.Server.Tokens, got.Server.Tokens)
	assert.Equal(t, "/var/lib/tutor", got.Storage.DataDir)

	assert.Equal(t, []string{"t1=ana", "t2=bruno"}, store.GetStringSlice("server.tokens"))
	_, written := store.Get("llm.fallback.api_key")
	assert.False(t, written, "environment keys are not persisted")
}

func TestSettingsService_SetModelTier(t *testing.T) {
	t.Run("ollama gets defaults", func(t *testing.T) {
		service, _ := newTestSettings(nil, nil)

		require.NoError(t, service.SetModelTier(domain.ModelTierFallback, domain.AIProviderOllama, "", ""))

		settings, err := service.Get()
		require.NoError(t, err)
		assert.Equal(t, domain.AIProviderOllama, settings.LLM.Fallback.Provider)
		assert.Equal(t, "llama3.2", settings.LLM.Fallback.Model)
		assert.Equal(t, defaultOllamaURL, settings.LLM.Fallback.BaseURL)
	})

	t.Run("cloud provider with key", func(t *testing.T) {
		service, _ := newTestSettings(map[string]any{"llm.primary.base_url": "http://old"}, nil)

		require.NoError(t, service.SetModelTier(domain.ModelTierPrimary, domain.AIProviderOpenAI, "gpt-4o", "sk-1"))

		settings, err := service.Get()
		require.NoError(t, err)
		assert.Equal(t, "gpt-4o", settings.LLM.Primary.Model)
		assert.Equal(t, "sk-1", settings.LLM.Primary.APIKey)
		assert.Empty(t, settings.LLM.Primary.BaseURL)
	})

	t.Run("cloud provider with key in environment", func(t *testing.T) {
		service, _ := newTestSettings(
			map[string]any{"llm.primary.api_key_env": "OPENAI_API_KEY"},
			map[string]string{"OPENAI_API_KEY": "sk-env"},
		)

		assert.NoError(t, service.SetModelTier(domain.ModelTierPrimary, domain.AIProviderOpenAI, "", ""))
	})

	errorCases := []struct {
		name     string
		tier     domain.ModelTier
		provider domain.AIProvider
	}{
		{"unknown tier", "tertiary", domain.AIProviderOllama},
		{"invalid provider", domain.ModelTierPrimary, "gemini"},
		{"missing key", domain.ModelTierPrimary, domain.AIProviderAnthropic},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			service, _ := newTestSettings(nil, nil)

			err := service.SetModelTier(tc.tier, tc.provider, "", "")

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_SetCorpusPath(t *testing.T) {
	service, store := newTestSettings(nil, nil)

	assert.ErrorIs(t, service.SetCorpusPath("  "), domain.ErrInvalidInput)
	require.NoError(t, service.SetCorpusPath(" /srv/aulas.txt "))
	assert.Equal(t, "/srv/aulas.txt", store.GetString("corpus.path"))
}

func TestSettingsService_Validate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		service, _ := newTestSettings(nil, nil)
		assert.NoError(t, service.Validate())
	})

	t.Run("half configured tier", func(t *testing.T) {
		service, _ := newTestSettings(map[string]any{"llm.primary.provider": "openai"}, nil)

		err := service.Validate()

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.ErrorContains(t, err, "llm.primary")
	})
}

type mockAIConfigValidator struct {
	err  error
	seen *domain.ModelSettings
}

func (m *mockAIConfigValidator) ValidateModel(config *domain.ModelSettings) error {
	m.seen = config
	return m.err
}

func TestSettingsService_ValidateModelTier(t *testing.T) {
	store := memory.NewConfigStoreWith(map[string]any{
		"llm.primary.provider":  "ollama",
		"llm.fallback.provider": "openai",
		"llm.fallback.api_key":  "sk",
	})

	assert.NoError(t, NewSettingsService(store, nil).ValidateModelTier(domain.ModelTierPrimary))

	validator := &mockAIConfigValidator{}
	service := NewSettingsService(store, validator)
	require.NoError(t, service.ValidateModelTier(domain.ModelTierFallback))
	require.NotNil(t, validator.seen)
	assert.Equal(t, domain.AIProviderOpenAI, validator.seen.Provider)

	validator.err = errors.New("unreachable")
	assert.Error(t, service.ValidateModelTier(domain.ModelTierPrimary))
	assert.Equal(t, domain.AIProviderOllama, validator.seen.Provider)
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service, _ := newTestSettings(nil, nil)

	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}
