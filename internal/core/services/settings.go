package services

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/refdesk/internal/core/domain"
	"github.com/custodia-labs/refdesk/internal/core/ports/driven"
	"github.com/custodia-labs/refdesk/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyServerAddr       = "server.addr"
	KeyServerOrigins    = "server.allowed_origins"
	KeyStorageBackend   = "storage.backend"
	KeyStoragePath      = "storage.path"
	KeyLibraryDir       = "library.dir"
	KeyLLMProvider      = "llm.provider"
	KeyLLMModel         = "llm.model"
	KeyLLMBaseURL       = "llm.base_url"
	KeyLLMAPIKey        = "llm.api_key"
	KeyLLMMaxTokens     = "llm.max_tokens"
	KeyLLMTimeoutSecs   = "llm.timeout_secs"
	KeyRetrievalTopK    = "retrieval.top_k"
	KeyExcerptChars     = "retrieval.excerpt_chars"
	KeyContextChars     = "retrieval.context_chars"
	KeyIngestWorkers    = "ingest.workers"
	KeyFetchRatePerSec  = "fetch.rate_per_sec"
	KeyAdminPassword    = "admin.password"
	defaultRedisAddress = "localhost:6379"
	defaultOllamaURL    = "http://localhost:11434"
)

// Environment variables that override stored secrets.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvAnthropicKey  = "ANTHROPIC_API_KEY"
	EnvOpenAIKey     = "OPENAI_API_KEY"
	EnvAdminPassword = "ADMIN_PASSWORD"
)

// SettingsService builds typed settings from the config store and environment.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
// lookupEnv may be nil, in which case os.LookupEnv is used.
func NewSettingsService(configStore driven.ConfigStore, lookupEnv func(string) (string, bool)) *SettingsService {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	return &SettingsService{configStore: configStore, lookupEnv: lookupEnv}
}

// Get returns the effective settings.
// Relative defaults are resolved against the directory holding the config file.
func (s *SettingsService) Get() domain.Settings {
	defaults := domain.DefaultSettings()
	home := filepath.Dir(s.configStore.Path())

	settings := domain.Settings{
		Server: domain.ServerSettings{
			Addr:           s.getString(KeyServerAddr, defaults.Server.Addr),
			AllowedOrigins: s.configStore.GetStringSlice(KeyServerOrigins),
		},
		Storage: domain.StorageSettings{
			Backend: s.getBackend(defaults.Storage.Backend),
		},
		Library: domain.LibrarySettings{
			Dir: s.getString(KeyLibraryDir, filepath.Join(home, "library")),
		},
		LLM: domain.LLMSettings{
			Provider:  s.getProvider(defaults.LLM.Provider),
			BaseURL:   s.configStore.GetString(KeyLLMBaseURL), // No default - empty uses the provider endpoint
			APIKey:    s.configStore.GetString(KeyLLMAPIKey),
			MaxTokens: s.getInt(KeyLLMMaxTokens, defaults.LLM.MaxTokens),
			Timeout:   time.Duration(s.getInt(KeyLLMTimeoutSecs, int(defaults.LLM.Timeout/time.Second))) * time.Second,
		},
		Retrieval: domain.RetrievalSettings{
			TopK:         s.getInt(KeyRetrievalTopK, defaults.Retrieval.TopK),
			ExcerptChars: s.getInt(KeyExcerptChars, defaults.Retrieval.ExcerptChars),
			ContextChars: s.getInt(KeyContextChars, defaults.Retrieval.ContextChars),
		},
		Ingest: domain.IngestSettings{
			Workers:         s.getInt(KeyIngestWorkers, defaults.Ingest.Workers),
			FetchRatePerSec: s.getFloat(KeyFetchRatePerSec, defaults.Ingest.FetchRatePerSec),
		},
		Admin: domain.AdminSettings{
			Password: s.configStore.GetString(KeyAdminPassword),
		},
	}

	settings.Storage.Path = s.getString(KeyStoragePath, defaultStoragePath(settings.Storage.Backend, home))
	settings.LLM.Model = s.getString(KeyLLMModel, domain.DefaultLLMModels()[settings.LLM.Provider])
	if settings.LLM.Provider.IsLocal() && settings.LLM.BaseURL == "" {
		settings.LLM.BaseURL = defaultOllamaURL
	}

	s.applyEnv(&settings)
	return settings
}

// Set persists a single configuration key.
func (s *SettingsService) Set(key string, value any) error {
	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		if _, ok := s.lookupEnv(envKeyFor(provider)); !ok {
			return fmt.Errorf("API key required for %s", provider)
		}
	}

	if model == "" {
		model = domain.DefaultLLMModels()[provider]
	}

	if err := s.Set(KeyLLMProvider, provider.String()); err != nil {
		return err
	}
	if err := s.Set(KeyLLMModel, model); err != nil {
		return err
	}
	if apiKey != "" {
		if err := s.Set(KeyLLMAPIKey, apiKey); err != nil {
			return err
		}
	}
	return nil
}

// ConfigPath returns the configuration file path.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

func (s *SettingsService) applyEnv(settings *domain.Settings) {
	if name := envKeyFor(settings.LLM.Provider); name != "" {
		if key, ok := s.lookupEnv(name); ok && key != "" {
			settings.LLM.APIKey = key
		}
	}
	if pw, ok := s.lookupEnv(EnvAdminPassword); ok && pw != "" {
		settings.Admin.Password = pw
	}
}

func envKeyFor(provider domain.AIProvider) string {
	switch provider {
	case domain.AIProviderAnthropic:
		return EnvAnthropicKey
	case domain.AIProviderOpenAI:
		return EnvOpenAIKey
	default:
		return ""
	}
}

func defaultStoragePath(backend domain.StorageBackend, home string) string {
	switch backend {
	case domain.StorageSQLite:
		return filepath.Join(home, "corpus.db")
	case domain.StorageRedis:
		return defaultRedisAddress
	case domain.StorageMemory:
		return ""
	default:
		return filepath.Join(home, "corpus.json")
	}
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	raw, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	switch v := raw.(type) {
	case float64:
		if v > 0 {
			return v
		}
	case int64:
		if v > 0 {
			return float64(v)
		}
	case int:
		if v > 0 {
			return float64(v)
		}
	}
	return defaultVal
}

func (s *SettingsService) getProvider(defaultVal domain.AIProvider) domain.AIProvider {
	provider := domain.AIProvider(s.configStore.GetString(KeyLLMProvider))
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	backend := domain.StorageBackend(s.configStore.GetString(KeyStorageBackend))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
