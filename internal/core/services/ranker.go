package services

import (
	"strings"

	"github.com/custodia-labs/refdesk/internal/core/domain"
	"github.com/custodia-labs/refdesk/internal/core/ports/driven"
)

// Ensure SubstringRanker implements the interface.
var _ driven.Ranker = SubstringRanker{}

// SubstringRanker matches pages that contain the query as a literal,
// case-insensitive substring. Hits follow corpus insertion order, then
// page order. There is no score.
type SubstringRanker struct{}

// Rank returns every matching page with its excerpt cut to opts.ExcerptChars.
func (SubstringRanker) Rank(query string, corpus domain.Corpus, opts domain.SearchOptions) []domain.SearchHit {
	excerptChars := opts.ExcerptChars
	if excerptChars <= 0 {
		excerptChars = domain.DefaultExcerptChars
	}

	needle := strings.ToLower(query)
	hits := []domain.SearchHit{}

	for name, text := range corpus.All() {
		for _, page := range domain.SplitPages(text) {
			if !strings.Contains(strings.ToLower(page.Text), needle) {
				continue
			}
			hits = append(hits, domain.SearchHit{
				Document: name,
				Page:     page.Label,
				Excerpt:  domain.Truncate(page.Text, excerptChars),
			})
		}
	}

	return hits
}
