package services

import (
	"context"
	"fmt"
	"iter"

	"github.com/custodia-labs/refdesk/internal/core/domain"
	"github.com/custodia-labs/refdesk/internal/core/ports/driven"
	"github.com/custodia-labs/refdesk/internal/core/ports/driving"
	"github.com/custodia-labs/refdesk/internal/logger"
)

// Ensure AskService implements the interface.
var _ driving.AskService = (*AskService)(nil)

// AskService runs the question pipeline: load corpus, retrieve, compose, stream.
type AskService struct {
	store     driven.CorpusStore
	retriever *Retriever
	composer  *Composer
	bridge    *StreamBridge
}

// NewAskService creates a new ask service.
func NewAskService(store driven.CorpusStore, retriever *Retriever, composer *Composer, bridge *StreamBridge) *AskService {
	return &AskService{
		store:     store,
		retriever: retriever,
		composer:  composer,
		bridge:    bridge,
	}
}

// Ask validates the question, loads the corpus and returns the answer stream.
// It returns domain.ErrInvalidInput for malformed questions,
// domain.ErrLLMUnavailable when no LLM is configured and
// domain.ErrNoReferenceMaterial when the corpus is empty. In these cases the
// LLM is never contacted.
func (s *AskService) Ask(ctx context.Context, q domain.Question) (iter.Seq[domain.StreamEvent], error) {
	logger.Section("Ask")

	if err := q.Validate(); err != nil {
		return nil, err
	}
	if !s.bridge.Available() {
		return nil, domain.ErrLLMUnavailable
	}
	if s.store == nil {
		return nil, fmt.Errorf("ask: corpus store not configured: %w", domain.ErrNoReferenceMaterial)
	}

	corpus := s.store.LoadAll(ctx)
	if corpus.IsEmpty() {
		logger.Info("Corpus is empty, not contacting the LLM")
		return nil, domain.ErrNoReferenceMaterial
	}
	logger.Debug("Loaded corpus with %d documents", corpus.Len())

	hits := s.retriever.Search(q.Text, corpus, domain.SearchOptions{Limit: s.composer.topK})
	logger.Info("Retrieved %d hits for %q", len(hits), q.Text)

	prompt := s.composer.Compose(q.Text, q.History, hits)
	return s.bridge.Stream(ctx, prompt), nil
}
