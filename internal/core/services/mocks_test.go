package services

import (
	"bytes"
	"context"
	"errors"
	"iter"
	"sync"

	"github.com/custodia-labs/refdesk/internal/core/domain"
	"github.com/custodia-labs/refdesk/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockLLM implements driven.LLMService for testing.
// It yields fragments in order, then err if set.
type mockLLM struct {
	mu        sync.Mutex
	fragments []string
	err       error
	block     bool
	calls     int
	lastReq   driven.ChatRequest
	lastCtx   context.Context
}

func (m *mockLLM) StreamChat(ctx context.Context, req driven.ChatRequest) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		m.mu.Lock()
		m.calls++
		m.lastReq = req
		m.lastCtx = ctx
		m.mu.Unlock()

		if m.block {
			<-ctx.Done()
			yield("", ctx.Err())
			return
		}
		for _, f := range m.fragments {
			if !yield(f, nil) {
				return
			}
		}
		if m.err != nil {
			yield("", m.err)
		}
	}
}

func (m *mockLLM) ModelName() string            { return "mock-model" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

func (m *mockLLM) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockExtractor implements driven.Extractor for testing.
// Documents are plain text with pages separated by form feeds.
// Content starting with "BROKEN" fails as a whole.
type mockExtractor struct {
	mu    sync.Mutex
	calls int
}

func (m *mockExtractor) Extract(_ context.Context, data []byte) ([]domain.Page, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if bytes.HasPrefix(data, []byte("BROKEN")) {
		return nil, errors.Join(domain.ErrExtractionFailed, errors.New("corrupt xref table"))
	}
	if len(data) == 0 {
		return nil, nil
	}
	var pages []domain.Page
	for i, part := range bytes.Split(data, []byte("\f")) {
		pages = append(pages, domain.Page{Number: i + 1, Text: string(part)})
	}
	return pages, nil
}

// mockFetcher implements driven.Fetcher for testing.
type mockFetcher struct {
	bodies map[string][]byte
}

func (m *mockFetcher) Fetch(_ context.Context, link string) ([]byte, error) {
	body, ok := m.bodies[link]
	if !ok {
		return nil, errors.Join(domain.ErrFetchFailed, errors.New("404 Not Found"))
	}
	return body, nil
}

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	prompts map[string]string
	err     error
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.prompts[name], nil
}

func (m *mockPromptStore) Reload() {}

// collect drains an event sequence.
func collect(events iter.Seq[domain.StreamEvent]) []domain.StreamEvent {
	var out []domain.StreamEvent
	for e := range events {
		out = append(out, e)
	}
	return out
}

func kinds(events []domain.StreamEvent) []domain.StreamEventKind {
	out := make([]domain.StreamEventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

// feverCorpus is a two-page reference document.
func feverCorpus() domain.Corpus {
	c := domain.NewCorpus()
	c.Put("doc1", "--- Page 1 ---\nAspirin reduces fever.\n--- Page 2 ---\nIbuprofen reduces inflammation.")
	return c
}
