package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/refdesk/internal/core/domain"
)

var (
	ingestWatch  bool
	ingestSettle time.Duration
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Rebuild the corpus from the library and remote sources",
	Long: `Extracts every PDF in the library folder and every remote source and
replaces the stored corpus in one write. Documents that fail to extract are
skipped and reported; they never abort the run.

With --watch the command keeps running and rebuilds the corpus whenever PDFs
are added to or removed from the library folder.`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVarP(&ingestWatch, "watch", "w", false, "rebuild when the library folder changes")
	ingestCmd.Flags().DurationVar(&ingestSettle, "settle", 2*time.Second, "quiet period before a watched change triggers a rebuild")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx := cmd.Context()
	if err := ingestOnce(ctx, cmd); err != nil {
		return err
	}
	if !ingestWatch {
		return nil
	}

	if libraryWatcher == nil {
		return errors.New("library watcher not configured")
	}
	changes, err := libraryWatcher.Watch(ctx, ingestSettle)
	if err != nil {
		return fmt.Errorf("watching library: %w", err)
	}

	cmd.Println("Watching the library folder. Press Ctrl+C to stop.")
	for range changes {
		cmd.Println("Library changed, rebuilding...")
		if err := ingestOnce(ctx, cmd); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			cmd.PrintErrf("ingest: %v\n", err)
		}
	}
	return nil
}

func ingestOnce(ctx context.Context, cmd *cobra.Command) error {
	report, err := ingestService.Ingest(ctx)
	if errors.Is(err, domain.ErrIngestInProgress) {
		return errors.New("another ingestion is already running")
	}
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %d document(s)", report.Documents)
	if report.Skipped > 0 {
		cmd.Printf(", skipped %d", report.Skipped)
	}
	cmd.Println(".")
	for _, msg := range report.Errors {
		cmd.Printf("  - %s\n", msg)
	}
	return nil
}
