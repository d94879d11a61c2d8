package cli

import (
	"bytes"
	"context"
	"iter"
	"strings"
	"time"

	"github.com/custodia-labs/refdesk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/refdesk/internal/core/domain"
	"github.com/custodia-labs/refdesk/internal/core/services"
)

// mockAskService replays a fixed event list.
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

// mockIngestService returns a fixed report.
type mockIngestService struct {
	report domain.IngestReport
	err    error
	calls  int
}

func (m *mockIngestService) Ingest(_ context.Context) (domain.IngestReport, error) {
	m.calls++
	return m.report, m.err
}

func (m *mockIngestService) Documents(_ context.Context) []string {
	return nil
}

// mockWatcher delivers the queued notifications, then closes.
type mockWatcher struct {
	changes int
	err     error
}

func (m *mockWatcher) Watch(_ context.Context, _ time.Duration) (<-chan struct{}, error) {
	if m.err != nil {
		return nil, m.err
	}
	ch := make(chan struct{}, m.changes)
	for range m.changes {
		ch <- struct{}{}
	}
	close(ch)
	return ch, nil
}

// testServices exposes the fakes behind the package-level services.
type testServices struct {
	ask      *mockAskService
	ingest   *mockIngestService
	watcher  *mockWatcher
	corpus   *memory.CorpusStore
	library  *memory.Library
	sources  *memory.SourceStore
	config   *memory.ConfigStore
	settings *services.SettingsService

	validated []domain.LLMSettings
}

var testEnv *testServices

// setupTestServices wires in-memory services and returns a cleanup func
// that restores the previous configuration.
func setupTestServices() func() {
	oldAsk, oldSearch, oldIngest := askService, searchService, ingestService
	oldLibrary, oldSource, oldSettings := libraryService, sourceService, settingsService
	oldWatcher, oldValidate := libraryWatcher, validateLLM

	env := &testServices{
		ask:     &mockAskService{events: []domain.StreamEvent{domain.TextEvent("Aspirin "), domain.TextEvent("reduces fever."), domain.DoneEvent()}},
		ingest:  &mockIngestService{report: domain.IngestReport{Documents: 2}},
		watcher: &mockWatcher{},
		corpus:  memory.NewCorpusStore(),
		library: memory.NewLibrary(),
		sources: memory.NewSourceStore(),
		config:  memory.NewConfigStore("/tmp/refdesk-test/config.toml"),
	}
	env.settings = services.NewSettingsService(env.config, func(string) (string, bool) { return "", false })

	c := domain.NewCorpus()
	c.Put("doc1", domain.JoinPages([]domain.Page{{Number: 1, Text: "Aspirin reduces fever."}}))
	_ = env.corpus.ReplaceAll(context.Background(), c) //nolint:errcheck // memory store never fails

	Configure(&Config{
		Ask:      env.ask,
		Search:   services.NewSearchService(env.corpus, services.NewRetriever(nil, 0), 0),
		Ingest:   env.ingest,
		Library:  services.NewLibraryService(env.library),
		Source:   services.NewSourceService(env.sources),
		Settings: env.settings,
		Watcher:  env.watcher,
		ValidateLLM: func(_ context.Context, s domain.LLMSettings) error {
			env.validated = append(env.validated, s)
			return nil
		},
	})
	testEnv = env

	return func() {
		askService, searchService, ingestService = oldAsk, oldSearch, oldIngest
		libraryService, sourceService, settingsService = oldLibrary, oldSource, oldSettings
		libraryWatcher, validateLLM = oldWatcher, oldValidate
		testEnv = nil
	}
}

// execute runs the root command with args and returns combined output.
func execute(args ...string) (string, error) {
	return executeWithInput("", args...)
}

func executeWithInput(input string, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
