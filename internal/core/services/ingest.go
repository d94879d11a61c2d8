package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/refdesk/internal/core/domain"
	"github.com/custodia-labs/refdesk/internal/core/ports/driven"
	"github.com/custodia-labs/refdesk/internal/core/ports/driving"
	"github.com/custodia-labs/refdesk/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// DefaultIngestWorkers bounds concurrent extraction when unset.
const DefaultIngestWorkers = 4

// ingestItem is one document to fetch and extract.
type ingestItem struct {
	name string
	kind domain.SourceKind
	link string
}

// ingestResult holds the outcome for the item at the same index.
type ingestResult struct {
	text string
	err  error
}

// IngestService rebuilds the corpus from the library folder and remote sources.
type IngestService struct {
	store     driven.CorpusStore
	extractor driven.Extractor
	library   driven.DocumentLibrary
	sources   driven.SourceStore
	fetcher   driven.Fetcher
	workers   int

	// mu serialises runs; a second caller fails fast.
	mu sync.Mutex
}

// NewIngestService creates a new ingest service.
// sources and fetcher are optional; without them only the library is ingested.
func NewIngestService(
	store driven.CorpusStore,
	extractor driven.Extractor,
	library driven.DocumentLibrary,
	sources driven.SourceStore,
	fetcher driven.Fetcher,
	workers int,
) *IngestService {
	if workers <= 0 {
		workers = DefaultIngestWorkers
	}
	return &IngestService{
		store:     store,
		extractor: extractor,
		library:   library,
		sources:   sources,
		fetcher:   fetcher,
		workers:   workers,
	}
}

// Ingest extracts every source and replaces the corpus in one write.
// Per-document failures are recorded in the report and never fail the run.
func (s *IngestService) Ingest(ctx context.Context) (domain.IngestReport, error) {
	if !s.mu.TryLock() {
		return domain.IngestReport{}, domain.ErrIngestInProgress
	}
	defer s.mu.Unlock()

	logger.Section("Ingest")

	items, err := s.collect(ctx)
	if err != nil {
		return domain.IngestReport{}, err
	}
	logger.Info("Ingesting %d documents with %d workers", len(items), s.workers)

	results := make([]ingestResult, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, item := range items {
		g.Go(func() error {
			text, err := s.extract(gctx, item)
			results[i] = ingestResult{text: text, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.IngestReport{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.IngestReport{}, fmt.Errorf("ingest: %w", err)
	}

	corpus := domain.NewCorpus()
	report := domain.IngestReport{}
	for i, item := range items {
		res := results[i]
		if res.err != nil {
			report.Skipped++
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", item.name, res.err))
			logger.Warn("Skipped %s: %v", item.name, res.err)
			continue
		}
		corpus.Put(item.name, res.text)
	}
	report.Documents = corpus.Len()

	if err := s.store.ReplaceAll(ctx, corpus); err != nil {
		return report, fmt.Errorf("replace corpus: %w", err)
	}

	logger.Info("Ingest finished: %d documents, %d skipped", report.Documents, report.Skipped)
	return report, nil
}

// Documents lists the names currently held in the corpus.
func (s *IngestService) Documents(ctx context.Context) []string {
	return s.store.LoadAll(ctx).Names()
}

// collect lists library files (sorted by name) followed by remote sources in list order.
func (s *IngestService) collect(ctx context.Context) ([]ingestItem, error) {
	var items []ingestItem

	if s.library != nil {
		files, err := s.library.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list library: %w", err)
		}
		for _, f := range files {
			items = append(items, ingestItem{name: f.Name, kind: domain.SourceKindLibrary})
		}
	}

	if s.sources != nil {
		sources, err := s.sources.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list sources: %w", err)
		}
		for _, src := range sources {
			items = append(items, ingestItem{name: src.Name, kind: domain.SourceKindLink, link: src.Link})
		}
	}

	return items, nil
}

func (s *IngestService) extract(ctx context.Context, item ingestItem) (string, error) {
	data, err := s.read(ctx, item)
	if err != nil {
		return "", err
	}

	pages, err := s.extractor.Extract(ctx, data)
	if err != nil {
		return "", err
	}
	if len(pages) == 0 {
		return "", fmt.Errorf("%w: no pages", domain.ErrExtractionFailed)
	}

	logger.Debug("Extracted %s: %d pages", item.name, len(pages))
	return domain.JoinPages(pages), nil
}

func (s *IngestService) read(ctx context.Context, item ingestItem) ([]byte, error) {
	switch item.kind {
	case domain.SourceKindLibrary:
		return s.library.Read(ctx, item.name)
	case domain.SourceKindLink:
		if s.fetcher == nil {
			return nil, errors.New("no fetcher configured for remote sources")
		}
		return s.fetcher.Fetch(ctx, item.link)
	default:
		return nil, fmt.Errorf("%w: source kind %q", domain.ErrUnsupportedType, item.kind)
	}
}
