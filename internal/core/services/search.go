package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/refdesk/internal/core/domain"
	"github.com/custodia-labs/refdesk/internal/core/ports/driven"
	"github.com/custodia-labs/refdesk/internal/core/ports/driving"
	"github.com/custodia-labs/refdesk/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService exposes retrieval on its own, without the LLM.
type SearchService struct {
	store        driven.CorpusStore
	retriever    *Retriever
	defaultLimit int
}

// NewSearchService creates a new search service.
func NewSearchService(store driven.CorpusStore, retriever *Retriever, defaultLimit int) *SearchService {
	if defaultLimit <= 0 {
		defaultLimit = domain.DefaultTopK
	}
	return &SearchService{store: store, retriever: retriever, defaultLimit: defaultLimit}
}

// Search loads the corpus and returns the ranked hits for query.
func (s *SearchService) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchHit, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	// Return empty for empty query
	if strings.TrimSpace(query) == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchHit{}, nil
	}

	if opts.Limit <= 0 {
		opts.Limit = s.defaultLimit
	}

	corpus := s.store.LoadAll(ctx)
	return s.retriever.Search(query, corpus, opts), nil
}
