package components

import (
	"github.com/charmbracelet/lipgloss"
)

const loadingIndicator = "◌"

// EmptyState renders what a list shows when it has no items. The view is
// cached and rebuilt only when the loading flag, a text or a style changes.
type EmptyState struct {
	loading     bool
	emptyText   string
	loadingText string

	textStyle      lipgloss.Style
	indicatorStyle lipgloss.Style

	cached  string
	valid   bool
	renders int
}

// NewEmptyState creates an empty-state view with unstyled text.
func NewEmptyState(emptyText, loadingText string) *EmptyState {
	return &EmptyState{
		emptyText:      emptyText,
		loadingText:    loadingText,
		textStyle:      lipgloss.NewStyle(),
		indicatorStyle: lipgloss.NewStyle(),
	}
}

// SetLoading switches between the loading and the empty view.
func (e *EmptyState) SetLoading(loading bool) {
	if e.loading != loading {
		e.loading = loading
		e.valid = false
	}
}

// Loading reports the current loading flag.
func (e *EmptyState) Loading() bool { return e.loading }

// SetTexts replaces the empty and loading texts.
func (e *EmptyState) SetTexts(emptyText, loadingText string) {
	if e.emptyText != emptyText || e.loadingText != loadingText {
		e.emptyText = emptyText
		e.loadingText = loadingText
		e.valid = false
	}
}

// SetStyles replaces the text and indicator styles.
func (e *EmptyState) SetStyles(text, indicator lipgloss.Style) {
	e.textStyle = text
	e.indicatorStyle = indicator
	e.valid = false
}

// View returns the cached view, rebuilding it if an input changed.
func (e *EmptyState) View() string {
	if e.valid {
		return e.cached
	}

	if e.loading {
		e.cached = lipgloss.JoinHorizontal(lipgloss.Center,
			e.indicatorStyle.Render(loadingIndicator),
			" ",
			e.textStyle.Render(e.loadingText),
		)
	} else {
		e.cached = e.textStyle.Render(e.emptyText)
	}
	e.valid = true
	e.renders++
	return e.cached
}
