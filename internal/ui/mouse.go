package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/haryoiro/orderdesk/internal/constants"
)

// handleMouseEvent scrolls the list with the wheel and selects rows on click
func (m *Model) handleMouseEvent(mouse tea.MouseMsg) tea.Cmd {
	if mouse.Action != tea.MouseActionPress || m.focus == FocusDetail {
		return nil
	}

	switch mouse.Button {
	case tea.MouseButtonLeft:
		return m.handleMouseClick(mouse.X, mouse.Y)
	case tea.MouseButtonWheelUp:
		if m.scrollAllowed() {
			return m.list.MoveUp()
		}
	case tea.MouseButtonWheelDown:
		if m.scrollAllowed() {
			return m.list.MoveDown()
		}
	}
	return nil
}

// handleMouseClick selects the clicked row. Clicks outside the list body
// are ignored.
func (m *Model) handleMouseClick(x, y int) tea.Cmd {
	row := y - constants.DefaultSearchHeight
	if x >= m.listWidth() || row < 0 || row >= m.bodyHeight() {
		return nil
	}

	start, end := m.list.Window().Visible()
	index := start + row
	if index >= end {
		return nil
	}

	if m.focus == FocusSearch {
		m.focus = FocusList
		m.search.Blur()
	}
	return m.list.Select(index)
}

// scrollAllowed throttles wheel events
func (m *Model) scrollAllowed() bool {
	now := time.Now()
	if now.Sub(m.lastScrollTime) < m.scrollCooldown {
		return false
	}
	m.lastScrollTime = now
	return true
}
