// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/refdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/refdesk/internal/core/domain"
)

// linesPerHit is the rendered height of one hit: header and preview.
const linesPerHit = 2

// HitList displays search hits in a navigable list.
type HitList struct {
	hits     []domain.SearchHit
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewHitList creates a new hit list component.
func NewHitList(s *styles.Styles) *HitList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &HitList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the hit list.
func (l *HitList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *HitList) Update(msg tea.Msg) (*HitList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			l.MoveUp()
		case tea.KeyDown:
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the hit list.
func (l *HitList) View() string {
	if len(l.hits) == 0 {
		return l.styles.Muted.Render("No matching pages")
	}

	lines := make([]string, 0, len(l.hits)*linesPerHit+2)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("Pages (%d)", len(l.hits))), "")

	visible := (l.height - 2) / linesPerHit
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.hits))

	for i := start; i < end; i++ {
		lines = append(lines, l.renderHit(i, &l.hits[i]))
	}

	return strings.Join(lines, "\n")
}

// renderHit formats one hit as a citation header and a single-line preview.
func (l *HitList) renderHit(index int, hit *domain.SearchHit) string {
	header := fmt.Sprintf("%s, Page %s", hit.Document, hit.Page)
	if index == l.selected {
		header = l.styles.Selected.Render("> " + header)
	} else {
		header = l.styles.Citation.Render("  " + header)
	}

	preview := strings.Join(strings.Fields(hit.Excerpt), " ")
	maxPreview := l.width - 6
	if maxPreview < 20 {
		maxPreview = 20
	}
	if len([]rune(preview)) > maxPreview {
		preview = domain.Truncate(preview, maxPreview-3) + "..."
	}

	return header + "\n" + l.styles.Muted.Render("    "+preview)
}

// SetHits replaces the list contents and resets the selection.
func (l *HitList) SetHits(hits []domain.SearchHit) {
	l.hits = hits
	l.selected = 0
}

// Hits returns the current hits.
func (l *HitList) Hits() []domain.SearchHit {
	return l.hits
}

// Selected returns the index of the selected hit.
func (l *HitList) Selected() int {
	return l.selected
}

// SelectedHit returns the currently selected hit, or nil if none.
func (l *HitList) SelectedHit() *domain.SearchHit {
	if len(l.hits) == 0 {
		return nil
	}
	return &l.hits[l.selected]
}

// MoveUp moves selection up.
func (l *HitList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *HitList) MoveDown() {
	if l.selected < len(l.hits)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *HitList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of hits.
func (l *HitList) Count() int {
	return len(l.hits)
}
