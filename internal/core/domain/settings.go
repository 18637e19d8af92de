package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies a language model provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API or a compatible endpoint.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// ModelTier names a position in the model fallback chain.
type ModelTier string

// Model tiers, in the order they are attempted.
const (
	ModelTierPrimary  ModelTier = "primary"
	ModelTierFallback ModelTier = "fallback"
)

// ModelSettings holds the configuration of one model tier.
type ModelSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (Ollama, or an OpenAI-compatible server).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string

	// APIKeyEnv names an environment variable holding the API key.
	// Used when APIKey is empty.
	APIKeyEnv string
}

// IsConfigured returns true if the tier has a usable provider.
func (m ModelSettings) IsConfigured() bool {
	if !m.Provider.IsValid() {
		return false
	}
	if m.Provider.RequiresAPIKey() && m.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds language model configuration for answer generation.
type LLMSettings struct {
	Primary  ModelSettings
	Fallback ModelSettings

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// MaxTokens bounds the generated answer length.
	MaxTokens int

	// AttemptTimeout bounds a single model call.
	AttemptTimeout time.Duration

	// Budget bounds all attempts of one answer, fallback included.
	Budget time.Duration

	// RatePerMinute throttles calls per tier. Zero disables throttling.
	RatePerMinute int
}

// CorpusSettings locates the transcript and the fixed tables.
type CorpusSettings struct {
	// Path is the transcript file.
	Path string

	// Watch enables hot reload when the transcript changes on disk.
	Watch bool

	// CatalogPath is the canonical/keyword table file (.toml or .yaml).
	// Empty uses the embedded defaults.
	CatalogPath string
}

// RetrievalSettings bounds the context shown to the model.
type RetrievalSettings struct {
	MaxBlocks int
	MaxLength int
}

// ServerSettings configures the HTTP surface.
type ServerSettings struct {
	// Addr is the listen address.
	Addr string

	// Tokens maps bearer tokens to usernames. Empty disables authentication.
	Tokens map[string]string
}

// StorageSettings configures the interaction log location.
type StorageSettings struct {
	// DataDir holds the SQLite database. Empty uses ~/.tutor/data.
	DataDir string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Corpus    CorpusSettings
	Retrieval RetrievalSettings
	LLM       LLMSettings
	Server    ServerSettings
	Storage   StorageSettings
}

// Defaults used when a setting is absent.
const (
	DefaultMaxBlocks      = 3
	DefaultMaxLength      = 3000
	DefaultTemperature    = 0.4
	DefaultMaxTokens      = 800
	DefaultAttemptTimeout = 25 * time.Second
	DefaultBudget         = 60 * time.Second
	DefaultServerAddr     = ":8080"
	DefaultCorpusFile     = "transcricao.txt"
)

// DefaultAppSettings returns settings with sensible defaults.
// Model tiers are left unconfigured; canned and out-of-scope replies work without them.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Corpus: CorpusSettings{
			Path: DefaultCorpusFile,
		},
		Retrieval: RetrievalSettings{
			MaxBlocks: DefaultMaxBlocks,
			MaxLength: DefaultMaxLength,
		},
		LLM: LLMSettings{
			Temperature:    DefaultTemperature,
			MaxTokens:      DefaultMaxTokens,
			AttemptTimeout: DefaultAttemptTimeout,
			Budget:         DefaultBudget,
		},
		Server: ServerSettings{
			Addr:   DefaultServerAddr,
			Tokens: map[string]string{},
		},
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-haiku-latest",
	}
}
