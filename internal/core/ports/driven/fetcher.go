package driven

import "context"

// Fetcher downloads a remote document.
type Fetcher interface {
	// Fetch resolves link to a direct-download URL and returns the body.
	// Failures wrap domain.ErrFetchFailed.
	Fetch(ctx context.Context, link string) ([]byte, error)
}
