// Package cli provides the refdesk command line interface.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/refdesk/internal/core/domain"
	"github.com/custodia-labs/refdesk/internal/core/ports/driving"
	"github.com/custodia-labs/refdesk/internal/logger"
)

// version is set at build time or by SetVersion.
var version = "dev"

var verbose bool

// Services injected by Configure. Commands report "not configured" when
// the one they need is missing.
var (
	askService      driving.AskService
	searchService   driving.SearchService
	ingestService   driving.IngestService
	libraryService  driving.LibraryService
	sourceService   driving.SourceService
	settingsService driving.SettingsService
	libraryWatcher  LibraryWatcher
	validateLLM     func(ctx context.Context, settings domain.LLMSettings) error
)

// LibraryWatcher reports settled changes to the library folder.
type LibraryWatcher interface {
	Watch(ctx context.Context, settle time.Duration) (<-chan struct{}, error)
}

// Config holds the services the commands drive.
type Config struct {
	Ask      driving.AskService
	Search   driving.SearchService
	Ingest   driving.IngestService
	Library  driving.LibraryService
	Source   driving.SourceService
	Settings driving.SettingsService

	// Watcher backs "ingest --watch". Optional.
	Watcher LibraryWatcher

	// ValidateLLM checks provider settings during setup. Optional.
	ValidateLLM func(ctx context.Context, settings domain.LLMSettings) error
}

var rootCmd = &cobra.Command{
	Use:   "refdesk",
	Short: "Ask questions about a library of reference PDFs",
	Long: `refdesk answers questions from a curated set of PDF documents.

PDFs are added to a local library folder or listed as remote share links,
extracted page by page into a corpus, and searched for each question. The
matching pages are sent to an LLM, which streams back an answer that cites
the document and page it came from.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Configure injects the services used by every command.
func Configure(cfg *Config) {
	askService = cfg.Ask
	searchService = cfg.Search
	ingestService = cfg.Ingest
	libraryService = cfg.Library
	sourceService = cfg.Source
	settingsService = cfg.Settings
	libraryWatcher = cfg.Watcher
	validateLLM = cfg.ValidateLLM
}

// SetVersion sets the version reported by the version command and /health.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
