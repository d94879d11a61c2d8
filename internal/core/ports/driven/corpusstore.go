package driven

import (
	"context"

	"github.com/custodia-labs/refdesk/internal/core/domain"
)

// CorpusStore persists the corpus as a single unit.
// There is no incremental update: every ingestion replaces the whole corpus.
type CorpusStore interface {
	// LoadAll returns the persisted corpus.
	// Missing or unreadable backing data yields an empty corpus, never an error.
	LoadAll(ctx context.Context) domain.Corpus

	// ReplaceAll atomically overwrites the persisted corpus.
	// Concurrent readers observe either the old or the new corpus.
	ReplaceAll(ctx context.Context, corpus domain.Corpus) error

	// Close releases resources held by the store.
	Close() error
}
