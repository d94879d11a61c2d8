// Package domain defines the core business entities for refdesk.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document and Page: extracted text of one ingested file
//   - Corpus: every ingested document's page-tagged text, kept in insertion order
//   - SearchHit: a page excerpt that matched a query
//   - ConversationTurn and Prompt: the messages sent to the language model
//   - StreamEvent: one incremental answer event delivered to a caller
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
