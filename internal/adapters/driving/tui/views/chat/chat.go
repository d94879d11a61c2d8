// Package chat provides the question and answer view for the TUI.
package chat

import (
	"context"
	"errors"
	"iter"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/refdesk/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/refdesk/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/refdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/refdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/refdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/refdesk/internal/core/domain"
	"github.com/custodia-labs/refdesk/internal/core/ports/driving"
)

// ErrNoAskService indicates that no ask service was provided.
var ErrNoAskService = errors.New("ask service is required")

// Messages shown when a question is refused before streaming.
const (
	msgNoMaterial     = "No reference material available yet. Run 'refdesk ingest' first."
	msgLLMUnavailable = "LLM not configured. Run 'refdesk setup' to fix."
	msgStopped        = "(stopped)"
)

var citationPattern = regexp.MustCompile(`\[Source \d+: [^\]]+\]`)

// entry is one rendered transcript block.
type entry struct {
	role domain.Role
	text string
	// note marks a system line such as an error; it is never sent as history.
	note bool
}

// View holds the conversation transcript and drives one answer stream at a time.
// Only completed exchanges are added to the history sent with later questions.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.PromptInput
	viewport  viewport.Model
	statusbar *status.Bar

	askService driving.AskService
	ctx        context.Context

	transcript []entry
	history    []domain.ConversationTurn

	// Current stream. next is only called from commands, one at a time.
	question string
	answer   strings.Builder
	state    domain.StreamState
	next     func() (domain.StreamEvent, bool)
	stop     func()
	cancel   context.CancelFunc
	stopped  bool

	width  int
	height int
}

// NewView creates a new chat view.
func NewView(s *styles.Styles, km *keymap.KeyMap, askService driving.AskService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewPromptInput(s, "Ask", "Ask a question about the reference material..."),
		viewport:   viewport.New(80, 16),
		statusbar:  status.NewBar(s, km, status.ModeChat),
		askService: askService,
		ctx:        context.Background(),
		width:      80,
		height:     24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AskStarted:
		v.next, v.stop = msg.Next, msg.Stop
		return v, waitForEvent(v.next)

	case messages.AskRejected:
		v.finishRejected(msg.Err)
		return v, nil

	case messages.StreamEventReceived:
		return v, v.handleEvent(msg.Event)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	if keymap.Matches(key, v.keymap.PageUp) || keymap.Matches(key, v.keymap.PageDown) {
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd
	}

	if v.Streaming() {
		if keymap.Matches(key, v.keymap.Cancel) && v.cancel != nil {
			v.stopped = true
			v.cancel()
			v.statusbar.SetMessage("Stopping...")
		}
		return v, nil
	}

	switch {
	case keymap.Matches(key, v.keymap.Submit):
		question := strings.TrimSpace(v.input.Value())
		if question == "" {
			return v, nil
		}
		v.input.Reset()
		return v, v.startAsk(question)
	case keymap.Matches(key, v.keymap.Clear):
		v.Reset()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// startAsk opens a stream for question. The history snapshot is taken here
// so later transcript edits never race the command goroutine.
func (v *View) startAsk(question string) tea.Cmd {
	v.question = question
	v.answer.Reset()
	v.stopped = false
	v.state = domain.StreamStreaming
	v.transcript = append(v.transcript, entry{role: domain.RoleUser, text: question})
	v.statusbar.SetMessage("")
	v.statusbar.SetState(status.StateStreaming)
	v.refresh()

	svc := v.askService
	ctx, cancel := context.WithCancel(v.ctx)
	v.cancel = cancel
	q := domain.Question{Text: question, History: append([]domain.ConversationTurn(nil), v.history...)}

	return func() tea.Msg {
		if svc == nil {
			return messages.AskRejected{Question: question, Err: ErrNoAskService}
		}
		events, err := svc.Ask(ctx, q)
		if err != nil {
			return messages.AskRejected{Question: question, Err: err}
		}
		next, stop := iter.Pull(events)
		return messages.AskStarted{Question: question, Next: next, Stop: stop}
	}
}

func waitForEvent(next func() (domain.StreamEvent, bool)) tea.Cmd {
	return func() tea.Msg {
		ev, ok := next()
		if !ok {
			return messages.StreamEventReceived{Event: domain.ErrorEvent(errors.New("stream closed"))}
		}
		return messages.StreamEventReceived{Event: ev}
	}
}

func (v *View) handleEvent(ev domain.StreamEvent) tea.Cmd {
	switch ev.Kind {
	case domain.StreamText:
		v.answer.WriteString(ev.Text)
		v.refresh()
		return waitForEvent(v.next)

	case domain.StreamDone:
		answer := v.answer.String()
		v.transcript = append(v.transcript, entry{role: domain.RoleAssistant, text: answer})
		v.history = append(v.history,
			domain.ConversationTurn{Role: domain.RoleUser, Text: v.question},
			domain.ConversationTurn{Role: domain.RoleAssistant, Text: answer},
		)
		v.endStream(domain.StreamCompleted)
		v.statusbar.SetState(status.StateReady)

	case domain.StreamError:
		if partial := v.answer.String(); partial != "" {
			v.transcript = append(v.transcript, entry{role: domain.RoleAssistant, text: partial})
		}
		if v.stopped {
			v.transcript = append(v.transcript, entry{text: msgStopped, note: true})
			v.endStream(domain.StreamFailed)
			v.statusbar.SetState(status.StateReady)
			break
		}
		v.transcript = append(v.transcript, entry{text: "Error: " + ev.Err, note: true})
		v.endStream(domain.StreamFailed)
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(ev.Err)
	}

	v.refresh()
	return nil
}

func (v *View) finishRejected(err error) {
	text := err.Error()
	switch {
	case errors.Is(err, domain.ErrNoReferenceMaterial):
		text = msgNoMaterial
	case errors.Is(err, domain.ErrLLMUnavailable):
		text = msgLLMUnavailable
	}
	v.transcript = append(v.transcript, entry{text: text, note: true})
	v.endStream(domain.StreamFailed)
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(text)
	v.refresh()
}

func (v *View) endStream(state domain.StreamState) {
	if v.stop != nil {
		v.stop()
	}
	if v.cancel != nil {
		v.cancel()
	}
	v.next, v.stop, v.cancel = nil, nil, nil
	v.state = state
	v.answer.Reset()
}

// refresh re-renders the transcript into the viewport and follows the tail.
func (v *View) refresh() {
	v.viewport.SetContent(v.renderTranscript())
	v.viewport.GotoBottom()
}

func (v *View) renderTranscript() string {
	wrap := lipgloss.NewStyle().Width(max(v.width-2, 20))
	blocks := make([]string, 0, len(v.transcript)+1)

	for _, e := range v.transcript {
		blocks = append(blocks, v.renderEntry(wrap, e))
	}
	if v.Streaming() {
		blocks = append(blocks, v.renderEntry(wrap, entry{role: domain.RoleAssistant, text: v.answer.String() + "▍"}))
	}
	if len(blocks) == 0 {
		return v.styles.Muted.Render("Ask anything about the documents in the reference library.")
	}
	return strings.Join(blocks, "\n\n")
}

func (v *View) renderEntry(wrap lipgloss.Style, e entry) string {
	if e.note {
		return v.styles.Warning.Render(wrap.Render(e.text))
	}
	label := v.styles.UserLabel.Render("You")
	if e.role == domain.RoleAssistant {
		label = v.styles.AssistantLabel.Render("Assistant")
	}
	body := citationPattern.ReplaceAllStringFunc(wrap.Render(e.text), func(c string) string {
		return v.styles.Citation.Render(c)
	})
	return label + "\n" + body
}

// View renders the chat view.
func (v *View) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Title.Render("refdesk"),
		"",
		v.viewport.View(),
		"",
		v.input.View(),
		v.statusbar.View(),
	)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height

	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
	// Title, spacers, bordered input and status bar take seven lines.
	v.viewport.Width = width
	v.viewport.Height = max(height-7, 3)
	v.refresh()
}

// Reset starts a new conversation.
func (v *View) Reset() {
	v.transcript = nil
	v.history = nil
	v.state = domain.StreamIdle
	v.statusbar.Clear()
	v.refresh()
}

// Streaming reports whether an answer is in flight.
func (v *View) Streaming() bool {
	return v.state == domain.StreamStreaming
}

// State returns the lifecycle state of the latest answer.
func (v *View) State() domain.StreamState {
	return v.state
}

// History returns the completed exchanges sent with the next question.
func (v *View) History() []domain.ConversationTurn {
	return v.history
}

// Transcript returns the rendered conversation without styling.
func (v *View) Transcript() string {
	var b strings.Builder
	for _, e := range v.transcript {
		b.WriteString(e.text)
		b.WriteString("\n")
	}
	return b.String()
}

// Cancel aborts a running stream.
func (v *View) Cancel() {
	if v.cancel != nil {
		v.stopped = true
		v.cancel()
	}
}

// Focus gives the question input focus.
func (v *View) Focus() tea.Cmd {
	return v.input.Focus()
}

// Blur removes focus from the question input.
func (v *View) Blur() {
	v.input.Blur()
}
