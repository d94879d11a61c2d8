package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBar(t *testing.T) {
	b := NewBar(nil, nil, ModeChat)

	require.NotNil(t, b)
	assert.Equal(t, StateReady, b.State())
	assert.Contains(t, b.View(), "Ready")
}

func TestBar_States(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		message  string
		count    int
		expected string
	}{
		{"streaming", StateStreaming, "", 0, "Answering..."},
		{"searching", StateSearching, "", 0, "Searching..."},
		{"error with message", StateError, "LLM not configured", 0, "Error: LLM not configured"},
		{"error without message", StateError, "", 0, "Error"},
		{"results", StateResults, "", 3, "3 pages"},
		{"ready with message", StateReady, "Answer complete", 0, "Answer complete"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBar(nil, nil, ModeChat)
			b.SetWidth(200)
			b.SetState(tt.state)
			b.SetMessage(tt.message)
			b.SetResultCount(tt.count)

			assert.Contains(t, b.View(), tt.expected)
		})
	}
}

func TestBar_HintsFollowModeAndState(t *testing.T) {
	chat := NewBar(nil, nil, ModeChat)
	chat.SetWidth(200)
	assert.Contains(t, chat.View(), "new chat")

	chat.SetState(StateStreaming)
	assert.Contains(t, chat.View(), "stop")

	search := NewBar(nil, nil, ModeSearch)
	search.SetWidth(200)
	assert.Contains(t, search.View(), "down")
	assert.NotContains(t, search.View(), "new chat")
}

func TestBar_Clear(t *testing.T) {
	b := NewBar(nil, nil, ModeSearch)
	b.SetState(StateError)
	b.SetMessage("boom")
	b.SetResultCount(4)

	b.Clear()

	assert.Equal(t, StateReady, b.State())
	assert.Equal(t, "", b.Message())
}
