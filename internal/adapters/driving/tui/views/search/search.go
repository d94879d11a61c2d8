// Package search provides the page search view for the TUI.
package search

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/refdesk/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/refdesk/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/refdesk/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/refdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/refdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/refdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/refdesk/internal/core/domain"
	"github.com/custodia-labs/refdesk/internal/core/ports/driving"
)

// View lists the corpus pages that contain a query, with the selected
// hit's excerpt shown in full below the list.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.PromptInput
	list      *list.HitList
	statusbar *status.Bar

	searchService driving.SearchService
	ctx           context.Context

	width  int
	height int
	err    error
}

// NewView creates a new search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, searchService driving.SearchService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewPromptInput(s, "Search", "Words to find in the reference pages..."),
		list:          list.NewHitList(s),
		statusbar:     status.NewBar(s, km, status.ModeSearch),
		searchService: searchService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
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

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(msg.String(), v.keymap.Submit):
		query := strings.TrimSpace(v.input.Value())
		if query == "" {
			return v, nil
		}
		v.statusbar.SetState(status.StateSearching)
		return v, v.performSearch(query)
	case keymap.Matches(msg.String(), v.keymap.Up):
		v.list.MoveUp()
		return v, nil
	case keymap.Matches(msg.String(), v.keymap.Down):
		v.list.MoveDown()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) performSearch(query string) tea.Cmd {
	svc, ctx := v.searchService, v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.SearchCompleted{Query: query, Err: ErrNoSearchService}
		}
		hits, err := svc.Search(ctx, query, domain.SearchOptions{})
		return messages.SearchCompleted{Query: query, Hits: hits, Err: err}
	}
}

func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.list.SetHits(msg.Hits)
	v.statusbar.SetMessage("")
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(len(msg.Hits))
}

// View renders the search view.
func (v *View) View() string {
	sections := []string{
		v.styles.Title.Render("refdesk search"),
		"",
		v.input.View(),
		"",
		v.list.View(),
	}

	if hit := v.list.SelectedHit(); hit != nil {
		excerpt := lipgloss.NewStyle().Width(max(v.width-4, 20)).Render(hit.Excerpt)
		sections = append(sections, "", v.styles.Border.Padding(0, 1).Render(excerpt))
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height

	v.input.SetWidth(width)
	// Header, input and status take about a third; the excerpt box takes the rest.
	v.list.SetDimensions(width, height/3)
	v.statusbar.SetWidth(width)
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the search query.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Hits returns the current hits.
func (v *View) Hits() []domain.SearchHit {
	return v.list.Hits()
}

// SelectedHit returns the highlighted hit, or nil.
func (v *View) SelectedHit() *domain.SearchHit {
	return v.list.SelectedHit()
}

// Err returns the last search error, if any.
func (v *View) Err() error {
	return v.err
}

// Focus gives the query input focus.
func (v *View) Focus() tea.Cmd {
	return v.input.Focus()
}

// Blur removes focus from the query input.
func (v *View) Blur() {
	v.input.Blur()
}
