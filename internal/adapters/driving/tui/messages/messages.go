// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/refdesk/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewChat is the question and answer view.
	ViewChat ViewType = iota
	// ViewSearch is the page search view.
	ViewSearch
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewChat:
		return "chat"
	case ViewSearch:
		return "search"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// AskStarted carries a pull handle over a freshly opened answer stream.
// Next returns the following event; Stop releases the stream early.
type AskStarted struct {
	Question string
	Next     func() (domain.StreamEvent, bool)
	Stop     func()
}

// AskRejected reports a question refused before any event was produced,
// such as an empty corpus or a missing LLM.
type AskRejected struct {
	Question string
	Err      error
}

// StreamEventReceived carries one event pulled from the answer stream.
type StreamEventReceived struct {
	Event domain.StreamEvent
}

// SearchCompleted carries search hits back to the model.
type SearchCompleted struct {
	Query string
	Hits  []domain.SearchHit
	Err   error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
