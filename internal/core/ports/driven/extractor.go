package driven

import (
	"context"

	"github.com/custodia-labs/refdesk/internal/core/domain"
)

// Extractor turns raw document bytes into ordered page text.
type Extractor interface {
	// Extract returns every page in physical order.
	// A page that cannot be read yields empty text and extraction continues.
	// When the whole document is unreadable it returns an error wrapping
	// domain.ErrExtractionFailed and no pages.
	Extract(ctx context.Context, data []byte) ([]domain.Page, error)
}
