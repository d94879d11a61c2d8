package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/custodia-labs/refdesk/internal/core/domain"
	"github.com/custodia-labs/refdesk/internal/core/ports/driven"
)

// Ensure SourceStore implements the interface.
var _ driven.SourceStore = (*SourceStore)(nil)

// SourceStore persists remote sources as a JSON array of {name, link}.
type SourceStore struct {
	path string
	mu   sync.Mutex
}

// NewSourceStore creates a store backed by the JSON file at path.
func NewSourceStore(path string) *SourceStore {
	return &SourceStore{path: path}
}

// List returns the stored sources. A missing file is an empty list.
func (s *SourceStore) List(_ context.Context) ([]domain.Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []domain.Source{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading sources: %w", err)
	}

	sources := []domain.Source{}
	if err := json.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("parsing sources %s: %w", s.path, err)
	}
	return sources, nil
}

// Save replaces the stored list.
func (s *SourceStore) Save(_ context.Context, sources []domain.Source) error {
	if sources == nil {
		sources = []domain.Source{}
	}
	data, err := json.MarshalIndent(sources, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding sources: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return writeFileAtomic(s.path, data)
}
