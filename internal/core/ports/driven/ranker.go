package driven

import "github.com/custodia-labs/refdesk/internal/core/domain"

// Ranker decides which pages of a corpus match a query and in what order.
type Ranker interface {
	// Rank returns hits for query across the corpus.
	// No match yields an empty slice. Limit in opts is applied by the caller.
	Rank(query string, corpus domain.Corpus, opts domain.SearchOptions) []domain.SearchHit
}
