package driving

import "github.com/custodia-labs/refdesk/internal/core/domain"

// SettingsService exposes typed application settings.
type SettingsService interface {
	// Get returns the effective settings (file values, then environment overrides).
	Get() domain.Settings

	// Set persists a single configuration key.
	Set(key string, value any) error

	// SetLLMProvider stores provider, model and API key together.
	// An empty model selects the provider default.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// ConfigPath returns the configuration file path.
	ConfigPath() string
}
