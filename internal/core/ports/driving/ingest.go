package driving

import (
	"context"

	"github.com/custodia-labs/refdesk/internal/core/domain"
)

// IngestService rebuilds the corpus from every configured source.
type IngestService interface {
	// Ingest extracts all library files and remote sources and replaces the corpus.
	// Returns domain.ErrIngestInProgress if another run is active.
	Ingest(ctx context.Context) (domain.IngestReport, error)

	// Documents lists the names currently held in the corpus.
	Documents(ctx context.Context) []string
}
