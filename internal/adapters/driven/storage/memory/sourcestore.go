package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/refdesk/internal/core/domain"
	"github.com/custodia-labs/refdesk/internal/core/ports/driven"
)

// Ensure SourceStore implements the interface.
var _ driven.SourceStore = (*SourceStore)(nil)

// SourceStore is an in-memory implementation of driven.SourceStore.
type SourceStore struct {
	mu      sync.RWMutex
	sources []domain.Source
}

// NewSourceStore creates a new in-memory source store seeded with sources.
func NewSourceStore(sources ...domain.Source) *SourceStore {
	return &SourceStore{sources: slices.Clone(sources)}
}

// List returns sources in insertion order.
func (s *SourceStore) List(_ context.Context) ([]domain.Source, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.sources)
	if out == nil {
		out = []domain.Source{}
	}
	return out, nil
}

// Save replaces the stored list.
func (s *SourceStore) Save(_ context.Context, sources []domain.Source) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources = slices.Clone(sources)
	return nil
}
