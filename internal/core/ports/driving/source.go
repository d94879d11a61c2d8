package driving

import (
	"context"

	"github.com/custodia-labs/refdesk/internal/core/domain"
)

// SourceService manages remote share link sources.
type SourceService interface {
	// List returns all sources in insertion order.
	List(ctx context.Context) ([]domain.Source, error)

	// Add validates and appends a source.
	// Returns domain.ErrAlreadyExists if the name is taken.
	Add(ctx context.Context, src domain.Source) error

	// Remove deletes a source by name.
	Remove(ctx context.Context, name string) error
}
