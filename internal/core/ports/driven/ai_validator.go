package driven

import "github.com/custodia-labs/tutor/internal/core/domain"

// AIConfigValidator checks model tier configurations against the live provider.
type AIConfigValidator interface {
	// ValidateModel pings the provider described by config.
	// Returns nil if the tier is valid or not configured.
	ValidateModel(config *domain.ModelSettings) error
}
