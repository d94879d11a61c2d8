package driving

import (
	"context"
	"iter"

	"github.com/custodia-labs/refdesk/internal/core/domain"
)

// AskService answers questions from the reference corpus.
type AskService interface {
	// Ask validates the question, retrieves context and streams the answer.
	// Input and empty-corpus failures are returned before any event is produced;
	// everything after that is reported through the event stream.
	Ask(ctx context.Context, q domain.Question) (iter.Seq[domain.StreamEvent], error)
}
