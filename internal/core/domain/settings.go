package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies an LLM service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
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

// StorageBackend identifies where the corpus is persisted.
type StorageBackend string

// Available corpus backends.
const (
	StorageFile   StorageBackend = "file"
	StorageSQLite StorageBackend = "sqlite"
	StorageRedis  StorageBackend = "redis"
	StorageMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageFile, StorageSQLite, StorageRedis, StorageMemory:
		return true
	default:
		return false
	}
}

// ServerSettings holds HTTP server configuration.
type ServerSettings struct {
	// Addr is the listen address, e.g. ":5000".
	Addr string

	// AllowedOrigins feeds the CORS middleware. Empty allows all.
	AllowedOrigins []string
}

// StorageSettings holds corpus store configuration.
type StorageSettings struct {
	Backend StorageBackend

	// Path is the file or database path, or the redis address.
	Path string
}

// LibrarySettings holds the local PDF folder location.
type LibrarySettings struct {
	Dir string
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint. Empty uses the provider default.
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string

	// MaxTokens caps the answer length.
	MaxTokens int

	// Timeout bounds one streaming request.
	Timeout time.Duration
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// RetrievalSettings holds search and context bounds.
// ExcerptChars and ContextChars are distinct bounds: hits carry up to
// ExcerptChars while the prompt renders only ContextChars of each.
type RetrievalSettings struct {
	TopK         int
	ExcerptChars int
	ContextChars int
}

// IngestSettings holds ingestion pipeline configuration.
type IngestSettings struct {
	// Workers bounds concurrent document extraction.
	Workers int

	// FetchRatePerSec throttles remote source downloads.
	FetchRatePerSec float64
}

// AdminSettings holds the admin capability.
type AdminSettings struct {
	Password string
}

// Settings holds all application settings.
type Settings struct {
	Server    ServerSettings
	Storage   StorageSettings
	Library   LibrarySettings
	LLM       LLMSettings
	Retrieval RetrievalSettings
	Ingest    IngestSettings
	Admin     AdminSettings
}

// DefaultSettings returns settings with sensible defaults.
// Paths are left empty; the settings service resolves them under the data dir.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			Addr: ":5000",
		},
		Storage: StorageSettings{
			Backend: StorageFile,
		},
		LLM: LLMSettings{
			Provider:  AIProviderAnthropic,
			Model:     DefaultLLMModels()[AIProviderAnthropic],
			MaxTokens: DefaultMaxTokens,
			Timeout:   120 * time.Second,
		},
		Retrieval: RetrievalSettings{
			TopK:         DefaultTopK,
			ExcerptChars: DefaultExcerptChars,
			ContextChars: DefaultContextChars,
		},
		Ingest: IngestSettings{
			Workers:         4,
			FetchRatePerSec: 2,
		},
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderAnthropic,
		AIProviderOpenAI,
		AIProviderOllama,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-sonnet-4-20250514",
	}
}
