package domain

import (
	"encoding/json"
	"fmt"
)

// DefaultMaxTokens is the output token ceiling for one answer.
const DefaultMaxTokens = 2000

// StreamEventKind tags the variant held by a StreamEvent.
type StreamEventKind int

// Stream event kinds. Done and Error are terminal.
const (
	StreamText StreamEventKind = iota
	StreamDone
	StreamError
)

// String returns the string representation.
func (k StreamEventKind) String() string {
	switch k {
	case StreamText:
		return "text"
	case StreamDone:
		return "done"
	case StreamError:
		return "error"
	default:
		return unknownDescription
	}
}

// StreamEvent is one incremental answer event delivered to a caller.
// A stream carries zero or more text events followed by exactly one
// terminal event (done or error).
type StreamEvent struct {
	Kind StreamEventKind

	// Text is the fragment for StreamText.
	Text string

	// Err is the failure message for StreamError.
	Err string
}

// TextEvent creates a fragment event.
func TextEvent(text string) StreamEvent {
	return StreamEvent{Kind: StreamText, Text: text}
}

// DoneEvent creates the normal terminal event.
func DoneEvent() StreamEvent {
	return StreamEvent{Kind: StreamDone}
}

// ErrorEvent creates the failure terminal event.
func ErrorEvent(err error) StreamEvent {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return StreamEvent{Kind: StreamError, Err: msg}
}

// IsTerminal reports whether the event ends the stream.
func (e StreamEvent) IsTerminal() bool {
	return e.Kind == StreamDone || e.Kind == StreamError
}

type streamEventJSON struct {
	Text  *string `json:"text,omitempty"`
	Done  bool    `json:"done,omitempty"`
	Error *string `json:"error,omitempty"`
}

// MarshalJSON renders exactly one of the fields text, done or error.
func (e StreamEvent) MarshalJSON() ([]byte, error) {
	var out streamEventJSON
	switch e.Kind {
	case StreamText:
		out.Text = &e.Text
	case StreamDone:
		out.Done = true
	case StreamError:
		out.Error = &e.Err
	default:
		return nil, fmt.Errorf("stream event: unknown kind %d", e.Kind)
	}
	return json.Marshal(out)
}

// UnmarshalJSON parses the single-field wire form.
func (e *StreamEvent) UnmarshalJSON(data []byte) error {
	var in streamEventJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	switch {
	case in.Error != nil:
		*e = StreamEvent{Kind: StreamError, Err: *in.Error}
	case in.Done:
		*e = DoneEvent()
	case in.Text != nil:
		*e = TextEvent(*in.Text)
	default:
		return fmt.Errorf("stream event: %w: no field set", ErrInvalidInput)
	}
	return nil
}

// StreamState is the lifecycle of one answer stream.
type StreamState int

// Stream states. Completed and Failed are final.
const (
	StreamIdle StreamState = iota
	StreamStreaming
	StreamCompleted
	StreamFailed
)

// String returns the string representation.
func (s StreamState) String() string {
	switch s {
	case StreamIdle:
		return "idle"
	case StreamStreaming:
		return "streaming"
	case StreamCompleted:
		return "completed"
	case StreamFailed:
		return "failed"
	default:
		return unknownDescription
	}
}
