package domain

import "fmt"

// Role identifies the author of a conversation turn.
type Role string

// Conversation roles understood by every LLM provider.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}

// String returns the string representation.
func (r Role) String() string {
	return string(r)
}

// ConversationTurn is one prior message supplied by the caller.
// Turns are passed to the model verbatim and never persisted.
type ConversationTurn struct {
	Role Role   `json:"role"`
	Text string `json:"content"`
}

// Prompt is the fully assembled model input.
type Prompt struct {
	// System is the fixed system instruction.
	System string

	// Messages is the history followed by the composed user turn.
	Messages []ConversationTurn
}

// Question is a caller's request to the ask pipeline.
type Question struct {
	Text    string
	History []ConversationTurn
}

// Validate checks the question before any pipeline stage runs.
func (q Question) Validate() error {
	if q.Text == "" {
		return fmt.Errorf("%w: question is required", ErrInvalidInput)
	}
	for i, turn := range q.History {
		if !turn.Role.IsValid() {
			return fmt.Errorf("%w: history[%d] has role %q", ErrInvalidInput, i, turn.Role)
		}
	}
	return nil
}
