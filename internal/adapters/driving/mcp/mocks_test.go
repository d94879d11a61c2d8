package mcp

import (
	"context"
	"iter"

	"github.com/custodia-labs/refdesk/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results   []domain.SearchHit
	err       error
	lastLimit int
}

func (m *mockSearchService) Search(
	_ context.Context,
	_ string,
	opts domain.SearchOptions,
) ([]domain.SearchHit, error) {
	m.lastLimit = opts.Limit
	return m.results, m.err
}

// mockAskService is a mock implementation of driving.AskService.
type mockAskService struct {
	events []domain.StreamEvent
	err    error
	last   domain.Question
}

func (m *mockAskService) Ask(_ context.Context, q domain.Question) (iter.Seq[domain.StreamEvent], error) {
	m.last = q
	if m.err != nil {
		return nil, m.err
	}
	return func(yield func(domain.StreamEvent) bool) {
		for _, ev := range m.events {
			if !yield(ev) {
				return
			}
		}
	}, nil
}

// mockSourceService is a mock implementation of driving.SourceService.
type mockSourceService struct {
	sources []domain.Source
	err     error
}

func (m *mockSourceService) List(_ context.Context) ([]domain.Source, error) {
	return m.sources, m.err
}

func (m *mockSourceService) Add(_ context.Context, _ domain.Source) error {
	return m.err
}

func (m *mockSourceService) Remove(_ context.Context, _ string) error {
	return m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	docs []string
}

func (m *mockIngestService) Ingest(_ context.Context) (domain.IngestReport, error) {
	return domain.IngestReport{Documents: len(m.docs)}, nil
}

func (m *mockIngestService) Documents(_ context.Context) []string {
	return m.docs
}
