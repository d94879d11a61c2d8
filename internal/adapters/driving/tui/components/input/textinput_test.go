package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/refdesk/internal/adapters/driving/tui/styles"
)

func TestNewPromptInput(t *testing.T) {
	in := NewPromptInput(styles.DefaultStyles(), "Ask", "Type a question...")

	require.NotNil(t, in)
	assert.Equal(t, "", in.Value())
	assert.True(t, in.Focused())
}

func TestNewPromptInput_NilStyles(t *testing.T) {
	in := NewPromptInput(nil, "Ask", "")

	require.NotNil(t, in)
	assert.NotNil(t, in.styles)
}

func TestPromptInput_Init(t *testing.T) {
	in := NewPromptInput(nil, "Ask", "")

	assert.NotNil(t, in.Init())
}

func TestPromptInput_Update(t *testing.T) {
	in := NewPromptInput(nil, "Ask", "")

	updated, _ := in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})

	assert.Equal(t, in, updated)
	assert.Equal(t, "a", in.Value())
}

func TestPromptInput_ViewShowsLabel(t *testing.T) {
	in := NewPromptInput(nil, "Search", "")

	assert.Contains(t, in.View(), "Search")
}

func TestPromptInput_SetValueAndReset(t *testing.T) {
	in := NewPromptInput(nil, "Ask", "")

	in.SetValue("what reduces fever?")
	assert.Equal(t, "what reduces fever?", in.Value())

	in.Reset()
	assert.Equal(t, "", in.Value())
}

func TestPromptInput_FocusBlur(t *testing.T) {
	in := NewPromptInput(nil, "Ask", "")

	in.Blur()
	assert.False(t, in.Focused())

	in.Focus()
	assert.True(t, in.Focused())
}

func TestPromptInput_SetWidth(t *testing.T) {
	in := NewPromptInput(nil, "Ask", "")

	in.SetWidth(100)
	assert.Equal(t, 100, in.Width())

	in.SetWidth(5)
	assert.Equal(t, 5, in.Width())
	assert.Equal(t, 20, in.textinput.Width)
}
