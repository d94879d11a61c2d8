package httpapi

import (
	"context"
	"errors"
	"iter"
	"sync"

	"github.com/custodia-labs/refdesk/internal/core/domain"
)

// mockAskService returns canned events or a canned error.
type mockAskService struct {
	mu     sync.Mutex
	events []domain.StreamEvent
	err    error
	last   domain.Question
}

func (m *mockAskService) Ask(_ context.Context, q domain.Question) (iter.Seq[domain.StreamEvent], error) {
	m.mu.Lock()
	m.last = q
	m.mu.Unlock()

	if err := q.Validate(); err != nil {
		return nil, err
	}
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

// mockIngestService reports a fixed result.
type mockIngestService struct {
	report domain.IngestReport
	err    error
	docs   []string
}

func (m *mockIngestService) Ingest(_ context.Context) (domain.IngestReport, error) {
	return m.report, m.err
}

func (m *mockIngestService) Documents(_ context.Context) []string {
	return m.docs
}

var errBoom = errors.New("boom")
