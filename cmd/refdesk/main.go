// Command refdesk answers questions from a library of reference PDFs.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/refdesk/internal/adapters/driven/ai"
	"github.com/custodia-labs/refdesk/internal/adapters/driven/config/file"
	"github.com/custodia-labs/refdesk/internal/adapters/driven/extractor/pdf"
	"github.com/custodia-labs/refdesk/internal/adapters/driven/fetcher/link"
	"github.com/custodia-labs/refdesk/internal/adapters/driven/library/folder"
	filestore "github.com/custodia-labs/refdesk/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/refdesk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/refdesk/internal/adapters/driven/storage/redis"
	"github.com/custodia-labs/refdesk/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/refdesk/internal/adapters/driving/cli"
	"github.com/custodia-labs/refdesk/internal/core/domain"
	"github.com/custodia-labs/refdesk/internal/core/ports/driven"
	"github.com/custodia-labs/refdesk/internal/core/services"
	"github.com/custodia-labs/refdesk/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	dir, err := file.DefaultDir()
	if err != nil {
		logger.Error("resolving data directory: %v", err)
		return err
	}
	if loaded, err := file.LoadEnv(dir); err != nil {
		logger.Warn("loading .env: %v", err)
	} else if len(loaded) > 0 {
		logger.Debug("Loaded environment from %v", loaded)
	}

	configStore, err := file.NewConfigStore(dir)
	if err != nil {
		logger.Error("loading config: %v", err)
		return err
	}
	settingsService := services.NewSettingsService(configStore, nil)
	settings := settingsService.Get()

	corpusStore, sourceStore, closer, err := openStorage(ctx, settings.Storage)
	if err != nil {
		logger.Error("opening %s storage: %v", settings.Storage.Backend, err)
		return err
	}
	defer closer.Close() //nolint:errcheck // best effort on exit

	library, err := folder.New(settings.Library.Dir)
	if err != nil {
		logger.Error("opening library: %v", err)
		return err
	}

	prompts, err := file.NewPromptStore(filepath.Join(dir, "prompts"))
	if err != nil {
		logger.Error("loading prompts: %v", err)
		return err
	}

	// A missing or broken LLM config still lets search, ingest and setup run.
	llm, err := ai.CreateLLMService(settings.LLM)
	if err != nil {
		logger.Warn("LLM unavailable: %v", err)
		llm = nil
	}
	if llm != nil {
		defer llm.Close() //nolint:errcheck // best effort on exit
	}

	retriever := services.NewRetriever(nil, settings.Retrieval.ExcerptChars)
	composer := services.NewComposer(prompts, settings.Retrieval.TopK, settings.Retrieval.ContextChars)
	bridge := services.NewStreamBridge(llm, services.BridgeConfig{
		Model:     settings.LLM.Model,
		MaxTokens: settings.LLM.MaxTokens,
		Timeout:   settings.LLM.Timeout,
	})
	fetcher := link.New(link.Config{RatePerSec: settings.Ingest.FetchRatePerSec})

	cli.SetVersion(version)
	cli.Configure(&cli.Config{
		Ask:         services.NewAskService(corpusStore, retriever, composer, bridge),
		Search:      services.NewSearchService(corpusStore, retriever, settings.Retrieval.TopK),
		Ingest:      services.NewIngestService(corpusStore, pdf.New(), library, sourceStore, fetcher, settings.Ingest.Workers),
		Library:     services.NewLibraryService(library),
		Source:      services.NewSourceService(sourceStore),
		Settings:    settingsService,
		Watcher:     library,
		ValidateLLM: ai.ValidateLLMConfig,
	})

	return cli.Execute(ctx)
}

// openStorage opens the corpus and source stores for the configured backend.
// The returned closer releases whatever connection the backend holds.
func openStorage(ctx context.Context, cfg domain.StorageSettings) (driven.CorpusStore, driven.SourceStore, io.Closer, error) {
	switch cfg.Backend {
	case domain.StorageSQLite:
		store, err := sqlite.NewStore(cfg.Path)
		if err != nil {
			return nil, nil, nil, err
		}
		return store.CorpusStore(), store.SourceStore(), store, nil

	case domain.StorageRedis:
		store, err := redis.NewStore(ctx, cfg.Path)
		if err != nil {
			return nil, nil, nil, err
		}
		return store.CorpusStore(), store.SourceStore(), store, nil

	case domain.StorageMemory:
		corpus := memory.NewCorpusStore()
		return corpus, memory.NewSourceStore(), corpus, nil

	case domain.StorageFile, "":
		corpus := filestore.NewCorpusStore(cfg.Path)
		sources := filestore.NewSourceStore(filepath.Join(filepath.Dir(cfg.Path), "sources.json"))
		return corpus, sources, corpus, nil

	default:
		return nil, nil, nil, fmt.Errorf("%w: storage backend %q", domain.ErrUnsupportedType, cfg.Backend)
	}
}
