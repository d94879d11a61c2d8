// Package file provides file-based configuration adapters.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - PromptStore: user-editable prompt templates with built-in defaults
//   - LoadEnv: .env loading for secrets
package file
