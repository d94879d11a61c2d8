package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/refdesk/internal/core/domain"
	"github.com/custodia-labs/refdesk/internal/core/ports/driven"
)

// Ensure CorpusStore implements the interface.
var _ driven.CorpusStore = (*CorpusStore)(nil)

// CorpusStore keeps the corpus in process memory.
// Contents are lost on exit.
type CorpusStore struct {
	mu     sync.RWMutex
	corpus domain.Corpus
	writes int
}

// NewCorpusStore creates a new in-memory corpus store.
func NewCorpusStore() *CorpusStore {
	return &CorpusStore{corpus: domain.NewCorpus()}
}

// LoadAll returns a copy of the stored corpus.
func (s *CorpusStore) LoadAll(_ context.Context) domain.Corpus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCorpus(s.corpus)
}

// ReplaceAll swaps in a copy of corpus.
func (s *CorpusStore) ReplaceAll(_ context.Context, corpus domain.Corpus) error {
	next := cloneCorpus(corpus)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.corpus = next
	s.writes++
	return nil
}

// Writes returns how many times ReplaceAll has been called.
func (s *CorpusStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// Close is a no-op.
func (s *CorpusStore) Close() error {
	return nil
}

func cloneCorpus(c domain.Corpus) domain.Corpus {
	out := domain.NewCorpus()
	for name, text := range c.All() {
		out.Put(name, text)
	}
	return out
}
