package driven

import (
	"context"
	"iter"

	"github.com/custodia-labs/refdesk/internal/core/domain"
)

// ChatMessage represents a message in a conversation.
type ChatMessage struct {
	Role    string // "user" or "assistant"
	Content string
}

// ChatRequest is one streaming completion request.
type ChatRequest struct {
	// Model overrides the service's configured model when set.
	Model string

	// System is the system instruction.
	System string

	// Messages is the ordered conversation.
	Messages []ChatMessage

	// MaxTokens caps the generated output.
	MaxTokens int
}

// MessagesFromTurns converts domain turns to provider messages.
func MessagesFromTurns(turns []domain.ConversationTurn) []ChatMessage {
	out := make([]ChatMessage, len(turns))
	for i, t := range turns {
		out[i] = ChatMessage{Role: t.Role.String(), Content: t.Text}
	}
	return out
}

// LLMService provides language model operations.
// Implementations: Anthropic, OpenAI, Ollama.
type LLMService interface {
	// StreamChat sends the request and yields text fragments as they arrive.
	// Each pair carries either a fragment or an error. An error is terminal:
	// nothing is yielded after it. Normal exhaustion means the provider
	// signalled the end of the answer. Breaking out of the loop cancels
	// the underlying request.
	StreamChat(ctx context.Context, req ChatRequest) iter.Seq2[string, error]

	// ModelName returns the model being used.
	ModelName() string

	// Ping validates the LLM service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
