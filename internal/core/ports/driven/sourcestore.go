package driven

import (
	"context"

	"github.com/custodia-labs/refdesk/internal/core/domain"
)

// SourceStore persists the ordered list of remote sources.
type SourceStore interface {
	// List returns sources in insertion order.
	List(ctx context.Context) ([]domain.Source, error)

	// Save replaces the stored list.
	Save(ctx context.Context, sources []domain.Source) error
}
