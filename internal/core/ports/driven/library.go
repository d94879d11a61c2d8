package driven

import (
	"context"

	"github.com/custodia-labs/refdesk/internal/core/domain"
)

// DocumentLibrary is the local folder of PDFs awaiting ingestion.
type DocumentLibrary interface {
	// List returns the PDFs in the library, sorted by name.
	List(ctx context.Context) ([]domain.LibraryFile, error)

	// Read returns the bytes of a library file.
	// Returns domain.ErrNotFound if the file does not exist.
	Read(ctx context.Context, name string) ([]byte, error)

	// Save writes data under a sanitised form of name and returns the stored name.
	Save(ctx context.Context, name string, data []byte) (string, error)

	// Delete removes a library file.
	// Returns domain.ErrNotFound if the file does not exist.
	Delete(ctx context.Context, name string) error

	// Dir returns the folder path.
	Dir() string
}
