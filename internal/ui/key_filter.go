package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// getKeyString converts a tea.KeyMsg to a unique string identifier
func getKeyString(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyUp:
		return "up"
	case tea.KeyDown:
		return "down"
	case tea.KeyPgUp:
		return "pgup"
	case tea.KeyPgDown:
		return "pgdown"
	case tea.KeyHome:
		return "home"
	case tea.KeyEnd:
		return "end"
	case tea.KeyEnter:
		return "enter"
	case tea.KeyBackspace:
		return "backspace"
	case tea.KeyEsc:
		return "esc"
	default:
		return msg.String()
	}
}

// shouldProcessKey applies the flood guard to held navigation keys. Typing
// into the search box is never rate-limited.
func (m *Model) shouldProcessKey(keyStr string, msg tea.KeyMsg) bool {
	if m.focus == FocusSearch && msg.Type == tea.KeyRunes {
		return true
	}

	switch keyStr {
	case "up", "down", "pgup", "pgdown":
		return m.keyDebouncer.ShouldProcess(keyStr)
	}
	return true
}
