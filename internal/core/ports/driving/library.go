package driving

import (
	"context"

	"github.com/custodia-labs/refdesk/internal/core/domain"
)

// LibraryService manages the local PDF folder.
type LibraryService interface {
	// List returns library files sorted by name.
	List(ctx context.Context) ([]domain.LibraryFile, error)

	// Upload stores a PDF and returns its sanitised name.
	Upload(ctx context.Context, name string, data []byte) (string, error)

	// Delete removes a PDF from the library.
	Delete(ctx context.Context, name string) error
}
