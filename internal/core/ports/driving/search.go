package driving

import (
	"context"

	"github.com/custodia-labs/refdesk/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search returns pages containing the query, in corpus order.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchHit, error)
}
