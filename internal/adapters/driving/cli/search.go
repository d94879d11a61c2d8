package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/refdesk/internal/core/domain"
)

// previewChars bounds the excerpt printed per hit in table output.
const previewChars = 200

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the reference corpus",
	Long: `Lists the pages that contain the query, in corpus order.
Matching is a case-insensitive substring test on page text.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultTopK, "maximum number of pages")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output hits as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	hits, err := searchService.Search(cmd.Context(), args[0], domain.SearchOptions{Limit: searchLimit})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, hits)
	}
	outputSearchTable(cmd, hits)
	return nil
}

func outputSearchJSON(cmd *cobra.Command, hits []domain.SearchHit) error {
	if hits == nil {
		hits = []domain.SearchHit{}
	}
	data, err := json.MarshalIndent(hits, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal hits: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, hits []domain.SearchHit) {
	if len(hits) == 0 {
		cmd.Println("No matching pages.")
		return
	}

	for i, hit := range hits {
		preview := strings.Join(strings.Fields(hit.Excerpt), " ")
		if len([]rune(preview)) > previewChars {
			preview = domain.Truncate(preview, previewChars) + "..."
		}
		cmd.Printf("[%d] %s, Page %s\n", i+1, hit.Document, hit.Page)
		cmd.Printf("    %s\n", preview)
	}
	cmd.Printf("\n%d page(s)\n", len(hits))
}
