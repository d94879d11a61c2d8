package services

import (
	"github.com/custodia-labs/refdesk/internal/core/domain"
	"github.com/custodia-labs/refdesk/internal/core/ports/driven"
	"github.com/custodia-labs/refdesk/internal/logger"
)

// Retriever selects page excerpts for a query.
// Ranking is delegated to a driven.Ranker; the retriever applies defaults
// and the caller-side top-K cap.
type Retriever struct {
	ranker       driven.Ranker
	excerptChars int
}

// NewRetriever creates a retriever. A nil ranker uses SubstringRanker.
// A non-positive excerptChars uses domain.DefaultExcerptChars.
func NewRetriever(ranker driven.Ranker, excerptChars int) *Retriever {
	if ranker == nil {
		ranker = SubstringRanker{}
	}
	if excerptChars <= 0 {
		excerptChars = domain.DefaultExcerptChars
	}
	return &Retriever{ranker: ranker, excerptChars: excerptChars}
}

// Search ranks the corpus for query and caps the result at opts.Limit.
// No match returns an empty, non-nil slice.
func (r *Retriever) Search(query string, corpus domain.Corpus, opts domain.SearchOptions) []domain.SearchHit {
	if opts.ExcerptChars <= 0 {
		opts.ExcerptChars = r.excerptChars
	}

	hits := r.ranker.Rank(query, corpus, opts)
	if hits == nil {
		hits = []domain.SearchHit{}
	}
	logger.Debug("Ranked %d hits across %d documents", len(hits), corpus.Len())

	if opts.Limit > 0 && len(hits) > opts.Limit {
		hits = hits[:opts.Limit]
	}
	return hits
}
