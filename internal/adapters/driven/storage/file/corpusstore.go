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
	"github.com/custodia-labs/refdesk/internal/logger"
)

// Ensure CorpusStore implements the interface.
var _ driven.CorpusStore = (*CorpusStore)(nil)

// CorpusStore persists the corpus as a single JSON file.
type CorpusStore struct {
	path string
	mu   sync.Mutex // serialises writers; readers rely on rename atomicity
}

// NewCorpusStore creates a store backed by the JSON file at path.
// The file is created on the first ReplaceAll.
func NewCorpusStore(path string) *CorpusStore {
	return &CorpusStore{path: path}
}

// Path returns the backing file path.
func (s *CorpusStore) Path() string {
	return s.path
}

// LoadAll reads the corpus file.
// A missing or unparsable file yields an empty corpus.
func (s *CorpusStore) LoadAll(_ context.Context) domain.Corpus {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("Reading corpus %s: %v", s.path, err)
		}
		return domain.NewCorpus()
	}

	var corpus domain.Corpus
	if err := json.Unmarshal(data, &corpus); err != nil {
		logger.Warn("Parsing corpus %s: %v", s.path, err)
		return domain.NewCorpus()
	}
	return corpus
}

// ReplaceAll writes the whole corpus through a temp file and rename.
func (s *CorpusStore) ReplaceAll(ctx context.Context, corpus domain.Corpus) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(corpus, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding corpus: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("saving corpus: %w", err)
	}
	logger.Debug("Saved %d documents to %s", corpus.Len(), s.path)
	return nil
}

// Close is a no-op.
func (s *CorpusStore) Close() error {
	return nil
}
