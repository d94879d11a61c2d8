// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Extractor: Turns PDF bytes into ordered pages
//   - CorpusStore: Bulk corpus persistence (LoadAll / ReplaceAll)
//   - DocumentLibrary: Local folder of PDFs awaiting ingestion
//   - SourceStore: Remote share link list persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Streaming chat. Without it, search works but questions fail.
//   - Fetcher: Downloads remote sources. Without it, link sources are skipped.
//   - PromptStore: Customised prompts. Without it, built-in defaults are used.
//   - Ranker: Page matching. Without it, the substring ranker is used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
