package link

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/refdesk/internal/core/domain"
	"github.com/custodia-labs/refdesk/internal/core/ports/driven"
	"github.com/custodia-labs/refdesk/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.Fetcher = (*Fetcher)(nil)

// Default configuration values.
const (
	DefaultRatePerSec = 2.0
	DefaultTimeout    = 60 * time.Second
	DefaultMaxBytes   = domain.MaxUploadBytes
)

// Config holds configuration for the link fetcher.
type Config struct {
	// RatePerSec caps request starts per second. Zero uses DefaultRatePerSec,
	// a negative value disables throttling.
	RatePerSec float64

	// Timeout bounds one download (default: 60s).
	Timeout time.Duration

	// MaxBytes caps the downloaded size (default: 50MB).
	MaxBytes int64

	// Client overrides the HTTP client.
	Client *http.Client
}

// Fetcher downloads documents from share links.
type Fetcher struct {
	client   *http.Client
	limiter  *rate.Limiter
	maxBytes int64
}

// New creates a link fetcher.
func New(cfg Config) *Fetcher {
	if cfg.RatePerSec == 0 {
		cfg.RatePerSec = DefaultRatePerSec
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}

	limit := rate.Limit(cfg.RatePerSec)
	if cfg.RatePerSec < 0 {
		limit = rate.Inf
	}

	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &Fetcher{
		client:   client,
		limiter:  rate.NewLimiter(limit, 1),
		maxBytes: cfg.MaxBytes,
	}
}

// Fetch resolves link and downloads the body.
func (f *Fetcher) Fetch(ctx context.Context, link string) ([]byte, error) {
	target, err := Resolve(link)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: waiting for rate limit: %w", domain.ErrFetchFailed, err)
	}

	logger.Debug("Fetching %s", target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", domain.ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", "refdesk")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", domain.ErrFetchFailed, target, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", domain.ErrFetchFailed, err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", domain.ErrFetchFailed, target, f.maxBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s returned an empty body", domain.ErrFetchFailed, target)
	}

	return data, nil
}
