package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/refdesk/internal/core/domain"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question and stream the answer",
	Long: `Searches the corpus for the question, sends the matching pages to the
configured LLM and prints the answer as it is generated.

With --json every event is printed on its own line in the same form the
HTTP API streams: {"text":...}, {"done":true} or {"error":...}.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print raw stream events as JSON lines")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if askService == nil {
		return errors.New("ask service not configured")
	}

	question := domain.Question{Text: strings.TrimSpace(strings.Join(args, " "))}
	events, err := askService.Ask(cmd.Context(), question)
	switch {
	case errors.Is(err, domain.ErrNoReferenceMaterial):
		return errors.New("no reference material available yet: add PDFs and run 'refdesk ingest'")
	case errors.Is(err, domain.ErrLLMUnavailable):
		return errors.New("LLM not configured: run 'refdesk setup'")
	case err != nil:
		return fmt.Errorf("ask failed: %w", err)
	}

	for ev := range events {
		if askJSON {
			data, err := json.Marshal(ev)
			if err != nil {
				return fmt.Errorf("encoding event: %w", err)
			}
			cmd.Println(string(data))
		}

		switch ev.Kind {
		case domain.StreamText:
			if !askJSON {
				cmd.Print(ev.Text)
			}
		case domain.StreamDone:
			if !askJSON {
				cmd.Println()
			}
			return nil
		case domain.StreamError:
			if !askJSON {
				cmd.Println()
			}
			return fmt.Errorf("answer failed: %s", ev.Err)
		}
	}
	return nil
}
