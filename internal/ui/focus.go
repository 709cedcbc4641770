package ui

import "github.com/haryoiro/orderdesk/internal/constants"

// FocusPane represents which pane currently has focus
type FocusPane int

const (
	FocusList FocusPane = iota
	FocusSearch
	FocusDetail
)

func (f FocusPane) String() string {
	switch f {
	case FocusSearch:
		return "search"
	case FocusDetail:
		return "detail"
	default:
		return "list"
	}
}

// canNavigate returns true if list navigation keys apply in the current focus
func (m *Model) canNavigate() bool {
	return m.focus != FocusSearch
}

// showDetailBeside reports whether the detail pane fits next to the list.
func (m *Model) showDetailBeside() bool {
	return m.focus != FocusDetail && m.width >= constants.MinWidthForDetail
}
