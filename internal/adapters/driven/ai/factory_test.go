package ai

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tutor/internal/adapters/driven/llm/ratelimit"
	"github.com/custodia-labs/tutor/internal/core/domain"
)

func TestInitResult_Close(t *testing.T) {
	t.Run("close with no tiers", func(t *testing.T) {
		result := &InitResult{}
		assert.NoError(t, result.Close())
	})
}

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name        string
		settings    *domain.ModelSettings
		wantModel   string
		wantErr     bool
		errContains string
	}{
		{
			name:     "nil settings returns error",
			settings: nil,
			wantErr:  true,
		},
		{
			name: "ollama provider creates service",
			settings: &domain.ModelSettings{
				Provider: domain.AIProviderOllama,
				BaseURL:  "http://localhost:11434",
				Model:    "llama3.2",
			},
			wantModel: "llama3.2",
		},
		{
			name: "openai provider creates service",
			settings: &domain.ModelSettings{
				Provider: domain.AIProviderOpenAI,
				APIKey:   "test-key",
				Model:    "gpt-4o-mini",
			},
			wantModel: "gpt-4o-mini",
		},
		{
			name: "anthropic provider creates service",
			settings: &domain.ModelSettings{
				Provider: domain.AIProviderAnthropic,
				APIKey:   "test-key",
			},
			wantModel: "claude-3-5-haiku-latest",
		},
		{
			name: "openai without key returns error",
			settings: &domain.ModelSettings{
				Provider: domain.AIProviderOpenAI,
			},
			wantErr:     true,
			errContains: "API key is required",
		},
		{
			name: "unsupported provider returns error",
			settings: &domain.ModelSettings{
				Provider: "gemini",
			},
			wantErr:     true,
			errContains: "unsupported LLM provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(tt.settings, 0)

			if tt.wantErr {
				require.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
			require.NotNil(t, svc)
			assert.Equal(t, tt.wantModel, svc.ModelName())
			assert.NoError(t, svc.Close())
		})
	}
}

func TestCreateTiers(t *testing.T) {
	t.Run("nil settings yields no tiers", func(t *testing.T) {
		result := CreateTiers(nil, nil)

		assert.Empty(t, result.Tiers)
		assert.Empty(t, result.Warnings)
	})

	t.Run("both tiers in order", func(t *testing.T) {
		settings := &domain.LLMSettings{
			Primary:        domain.ModelSettings{Provider: domain.AIProviderOpenAI, APIKey: "k", Model: "gpt-4o"},
			Fallback:       domain.ModelSettings{Provider: domain.AIProviderOllama, Model: "llama3.2"},
			AttemptTimeout: 10 * time.Second,
		}

		result := CreateTiers(settings, nil)
		defer result.Close()

		require.Len(t, result.Tiers, 2)
		assert.Equal(t, domain.ModelTierPrimary, result.Tiers[0].Name)
		assert.Equal(t, "gpt-4o", result.Tiers[0].Service.ModelName())
		assert.Equal(t, domain.ModelTierFallback, result.Tiers[1].Name)
		assert.Equal(t, "llama3.2", result.Tiers[1].Service.ModelName())
	})

	t.Run("unconfigured primary is skipped", func(t *testing.T) {
		settings := &domain.LLMSettings{
			Primary:  domain.ModelSettings{Provider: domain.AIProviderAnthropic},
			Fallback: domain.ModelSettings{Provider: domain.AIProviderOllama},
		}

		result := CreateTiers(settings, nil)

		require.Len(t, result.Tiers, 1)
		assert.Equal(t, domain.ModelTierFallback, result.Tiers[0].Name)
	})

	t.Run("rate limit wraps services", func(t *testing.T) {
		settings := &domain.LLMSettings{
			Primary:       domain.ModelSettings{Provider: domain.AIProviderOllama},
			RatePerMinute: 30,
		}

		result := CreateTiers(settings, nil)

		require.Len(t, result.Tiers, 1)
		_, wrapped := result.Tiers[0].Service.(*ratelimit.LLMService)
		assert.True(t, wrapped)
	})
}

func TestCreateAndValidateLLMService(t *testing.T) {
	t.Run("unconfigured returns nil", func(t *testing.T) {
		svc, err := CreateAndValidateLLMService(&domain.ModelSettings{})

		assert.NoError(t, err)
		assert.Nil(t, svc)
	})

	t.Run("reachable ollama", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"models":[]}`))
		}))
		defer server.Close()

		svc, err := CreateAndValidateLLMService(&domain.ModelSettings{
			Provider: domain.AIProviderOllama,
			BaseURL:  server.URL,
		})

		require.NoError(t, err)
		require.NotNil(t, svc)
		assert.NoError(t, svc.Close())
	})

	t.Run("unreachable ollama", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		svc, err := CreateAndValidateLLMService(&domain.ModelSettings{
			Provider: domain.AIProviderOllama,
			BaseURL:  server.URL,
		})

		assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
		assert.Nil(t, svc)
	})
}
