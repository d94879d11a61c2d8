package driven

// ConfigStore persists flat dot-notation settings such as "llm.provider".
// Typed getters return the zero value when a key is missing or has another type.
type ConfigStore interface {
	// Get returns the raw value and whether the key is set.
	Get(key string) (any, bool)

	GetString(key string) string
	GetInt(key string) int
	GetStringSlice(key string) []string

	// Set stores a value and persists it before returning.
	Set(key string, value any) error

	// Path returns where the settings live. Relative defaults such as the
	// library folder are resolved against its directory.
	Path() string
}
