package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/refdesk/internal/core/domain"
	"github.com/custodia-labs/refdesk/internal/core/ports/driven"
	"github.com/custodia-labs/refdesk/internal/logger"
)

const contextHeader = "Available reference materials:\n\n"

// Composer assembles the model prompt from hits, history and the question.
type Composer struct {
	prompts      driven.PromptStore
	topK         int
	contextChars int
}

// NewComposer creates a composer. prompts may be nil.
// Non-positive bounds fall back to the domain defaults.
func NewComposer(prompts driven.PromptStore, topK, contextChars int) *Composer {
	if topK <= 0 {
		topK = domain.DefaultTopK
	}
	if contextChars <= 0 {
		contextChars = domain.DefaultContextChars
	}
	return &Composer{prompts: prompts, topK: topK, contextChars: contextChars}
}

// Compose renders at most topK hits into a context block and returns the
// system instruction plus history followed by one new user turn.
// Zero hits still yields a valid prompt holding only the context header.
func (c *Composer) Compose(question string, history []domain.ConversationTurn, hits []domain.SearchHit) domain.Prompt {
	if len(hits) > c.topK {
		hits = hits[:c.topK]
	}

	userTurn := fmt.Sprintf(c.load(driven.PromptAnswerUser), c.RenderContext(hits), question)

	messages := make([]domain.ConversationTurn, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, domain.ConversationTurn{Role: domain.RoleUser, Text: userTurn})

	logger.Debug("Composed prompt: %d sources, %d history turns", len(hits), len(history))

	return domain.Prompt{
		System:   c.load(driven.PromptAnswerSystem),
		Messages: messages,
	}
}

// RenderContext renders hits as labelled, truncated entries under the context header.
func (c *Composer) RenderContext(hits []domain.SearchHit) string {
	var b strings.Builder
	b.WriteString(contextHeader)
	for i, hit := range hits {
		fmt.Fprintf(&b, "[Source %d: %s, Page %s]\n", i+1, hit.Document, hit.Page)
		b.WriteString(domain.Truncate(hit.Excerpt, c.contextChars))
		b.WriteString("...\n\n")
	}
	return b.String()
}

func (c *Composer) load(name string) string {
	fallback := driven.DefaultPrompt(name)
	if c.prompts == nil {
		return fallback
	}
	prompt, err := c.prompts.Load(name)
	if err != nil || prompt == "" {
		if err != nil {
			logger.Warn("Prompt %q unavailable, using default: %v", name, err)
		}
		return fallback
	}
	return prompt
}
