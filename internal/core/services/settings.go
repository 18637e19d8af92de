package services

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/tutor/internal/core/domain"
	"github.com/custodia-labs/tutor/internal/core/ports/driven"
	"github.com/custodia-labs/tutor/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyCorpusPath      = "corpus.path"
	keyCorpusWatch     = "corpus.watch"
	keyCatalogPath     = "catalog.path"
	keyMaxBlocks       = "retrieval.max_blocks"
	keyMaxLength       = "retrieval.max_length"
	keyTemperature     = "llm.temperature"
	keyMaxTokens       = "llm.max_tokens"
	keyAttemptTimeout  = "llm.attempt_timeout_secs"
	keyBudget          = "llm.budget_secs"
	keyRatePerMinute   = "llm.rate_per_minute"
	keyServerAddr      = "server.addr"
	keyServerTokens    = "server.tokens"
	keyStorageDataDir  = "storage.data_dir"
	tierKeyProvider    = "provider"
	tierKeyModel       = "model"
	tierKeyBaseURL     = "base_url"
	tierKeyAPIKey      = "api_key"
	tierKeyAPIKeyEnv   = "api_key_env"
	defaultOllamaURL   = "http://localhost:11434"
	tokenPairSeparator = "="
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
// aiValidator may be nil to skip connectivity checks.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		getenv:      os.Getenv,
	}
}

// Get retrieves current application settings.
// API keys named by api_key_env are resolved from the environment.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	tokens, err := parseTokens(s.configStore.GetStringSlice(keyServerTokens))
	if err != nil {
		return nil, err
	}

	settings := &domain.AppSettings{
		Corpus: domain.CorpusSettings{
			Path:        s.getString(keyCorpusPath, defaults.Corpus.Path),
			Watch:       s.getBool(keyCorpusWatch, defaults.Corpus.Watch),
			CatalogPath: s.configStore.GetString(keyCatalogPath),
		},
		Retrieval: domain.RetrievalSettings{
			MaxBlocks: s.getInt(keyMaxBlocks, defaults.Retrieval.MaxBlocks),
			MaxLength: s.getInt(keyMaxLength, defaults.Retrieval.MaxLength),
		},
		LLM: domain.LLMSettings{
			Primary:        s.getModel(domain.ModelTierPrimary),
			Fallback:       s.getModel(domain.ModelTierFallback),
			Temperature:    s.getFloat(keyTemperature, defaults.LLM.Temperature),
			MaxTokens:      s.getInt(keyMaxTokens, defaults.LLM.MaxTokens),
			AttemptTimeout: s.getSeconds(keyAttemptTimeout, defaults.LLM.AttemptTimeout),
			Budget:         s.getSeconds(keyBudget, defaults.LLM.Budget),
			RatePerMinute:  s.configStore.GetInt(keyRatePerMinute),
		},
		Server: domain.ServerSettings{
			Addr:   s.getString(keyServerAddr, defaults.Server.Addr),
			Tokens: tokens,
		},
		Storage: domain.StorageSettings{
			DataDir: s.configStore.GetString(keyStorageDataDir),
		},
	}

	return settings, nil
}

// Save persists application settings.
// Keys resolved from the environment are not written back.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyCorpusPath, settings.Corpus.Path},
		{keyCorpusWatch, settings.Corpus.Watch},
		{keyCatalogPath, settings.Corpus.CatalogPath},
		{keyMaxBlocks, settings.Retrieval.MaxBlocks},
		{keyMaxLength, settings.Retrieval.MaxLength},
		{keyTemperature, settings.LLM.Temperature},
		{keyMaxTokens, settings.LLM.MaxTokens},
		{keyAttemptTimeout, int(settings.LLM.AttemptTimeout / time.Second)},
		{keyBudget, int(settings.LLM.Budget / time.Second)},
		{keyRatePerMinute, settings.LLM.RatePerMinute},
		{keyServerAddr, settings.Server.Addr},
		{keyServerTokens, formatTokens(settings.Server.Tokens)},
		{keyStorageDataDir, settings.Storage.DataDir},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	if err := s.saveModel(domain.ModelTierPrimary, &settings.LLM.Primary); err != nil {
		return err
	}
	return s.saveModel(domain.ModelTierFallback, &settings.LLM.Fallback)
}

// SetModelTier configures the provider of one model tier.
func (s *SettingsService) SetModelTier(tier domain.ModelTier, provider domain.AIProvider, model, apiKey string) error {
	if tier != domain.ModelTierPrimary && tier != domain.ModelTierFallback {
		return fmt.Errorf("%w: unknown model tier %q", domain.ErrInvalidInput, tier)
	}
	if !provider.IsValid() {
		return fmt.Errorf("%w: invalid LLM provider: %s", domain.ErrInvalidInput, provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	target := &settings.LLM.Primary
	if tier == domain.ModelTierFallback {
		target = &settings.LLM.Fallback
	}

	if provider.RequiresAPIKey() && apiKey == "" && s.getenv(target.APIKeyEnv) == "" {
		return fmt.Errorf("%w: API key required for %s", domain.ErrInvalidInput, provider)
	}

	target.Provider = provider

	// Set model - use provided or default
	if model != "" {
		target.Model = model
	} else if defaultModel, ok := domain.DefaultLLMModels()[provider]; ok {
		target.Model = defaultModel
	}

	// Local providers need a base URL; cloud providers use their own endpoint.
	if provider.IsLocal() {
		if target.BaseURL == "" {
			target.BaseURL = defaultOllamaURL
		}
	} else {
		target.BaseURL = ""
	}

	if apiKey != "" {
		target.APIKey = apiKey
		target.APIKeyEnv = ""
	}

	return s.Save(settings)
}

// SetCorpusPath points the tutor at a transcript file.
func (s *SettingsService) SetCorpusPath(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("%w: corpus path is empty", domain.ErrInvalidInput)
	}
	if err := s.configStore.Set(keyCorpusPath, path); err != nil {
		return fmt.Errorf("save %s: %w", keyCorpusPath, err)
	}
	return nil
}

// Validate checks that the current settings can start the tutor.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	var errs []error
	if settings.Corpus.Path == "" {
		errs = append(errs, errors.New("corpus.path is not set"))
	}
	if settings.Retrieval.MaxBlocks <= 0 || settings.Retrieval.MaxLength <= 0 {
		errs = append(errs, errors.New("retrieval.max_blocks and retrieval.max_length must be positive"))
	}
	for _, tier := range []struct {
		name  domain.ModelTier
		model domain.ModelSettings
	}{
		{domain.ModelTierPrimary, settings.LLM.Primary},
		{domain.ModelTierFallback, settings.LLM.Fallback},
	} {
		if tier.model.Provider == "" {
			continue
		}
		if !tier.model.IsConfigured() {
			errs = append(errs, fmt.Errorf("llm.%s: provider %q is not fully configured", tier.name, tier.model.Provider))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
	}
	return nil
}

// ValidateModelTier pings the provider of one tier.
func (s *SettingsService) ValidateModelTier(tier domain.ModelTier) error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	model := settings.LLM.Primary
	if tier == domain.ModelTierFallback {
		model = settings.LLM.Fallback
	}
	return s.aiValidator.ValidateModel(&model)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func tierKey(tier domain.ModelTier, field string) string {
	return "llm." + string(tier) + "." + field
}

func (s *SettingsService) getModel(tier domain.ModelTier) domain.ModelSettings {
	m := domain.ModelSettings{
		Provider:  s.getProvider(tierKey(tier, tierKeyProvider)),
		Model:     s.configStore.GetString(tierKey(tier, tierKeyModel)),
		BaseURL:   s.configStore.GetString(tierKey(tier, tierKeyBaseURL)),
		APIKey:    s.configStore.GetString(tierKey(tier, tierKeyAPIKey)),
		APIKeyEnv: s.configStore.GetString(tierKey(tier, tierKeyAPIKeyEnv)),
	}
	if m.Provider != "" && m.Model == "" {
		m.Model = domain.DefaultLLMModels()[m.Provider]
	}
	if m.Provider.IsLocal() && m.BaseURL == "" {
		m.BaseURL = defaultOllamaURL
	}
	if m.APIKey == "" && m.APIKeyEnv != "" {
		m.APIKey = s.getenv(m.APIKeyEnv)
	}
	return m
}

func (s *SettingsService) saveModel(tier domain.ModelTier, m *domain.ModelSettings) error {
	fields := []struct {
		key   string
		value string
	}{
		{tierKeyProvider, m.Provider.String()},
		{tierKeyModel, m.Model},
		{tierKeyBaseURL, m.BaseURL},
		{tierKeyAPIKeyEnv, m.APIKeyEnv},
	}
	if m.APIKeyEnv == "" {
		fields = append(fields, struct {
			key   string
			value string
		}{tierKeyAPIKey, m.APIKey})
	}
	for _, f := range fields {
		key := tierKey(tier, f.key)
		if err := s.configStore.Set(key, f.value); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return nil
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	secs := s.configStore.GetInt(key)
	if secs <= 0 {
		return defaultVal
	}
	return time.Duration(secs) * time.Second
}

func (s *SettingsService) getProvider(key string) domain.AIProvider {
	provider := domain.AIProvider(s.configStore.GetString(key))
	if !provider.IsValid() {
		return ""
	}
	return provider
}

// parseTokens reads "token=username" pairs.
func parseTokens(pairs []string) (map[string]string, error) {
	tokens := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		token, user, ok := strings.Cut(pair, tokenPairSeparator)
		token, user = strings.TrimSpace(token), strings.TrimSpace(user)
		if !ok || token == "" || user == "" {
			return nil, fmt.Errorf("%w: %s entries must look like token=username", domain.ErrInvalidInput, keyServerTokens)
		}
		tokens[token] = user
	}
	return tokens, nil
}

func formatTokens(tokens map[string]string) []string {
	pairs := make([]string, 0, len(tokens))
	for token, user := range tokens {
		pairs = append(pairs, token+tokenPairSeparator+user)
	}
	sort.Strings(pairs)
	return pairs
}
