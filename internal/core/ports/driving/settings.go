package driving

import "github.com/custodia-labs/tutor/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetModelTier configures the provider of one model tier.
	SetModelTier(tier domain.ModelTier, provider domain.AIProvider, model, apiKey string) error

	// SetCorpusPath points the tutor at a transcript file.
	SetCorpusPath(path string) error

	// Validate checks that the current settings can start the tutor.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
