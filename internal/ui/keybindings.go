package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/haryoiro/orderdesk/internal/logger"
)

// isKey checks if the pressed key matches the configured keybinding
func (m *Model) isKey(msg tea.KeyMsg, key string) bool {
	if key == "" {
		return false
	}

	switch key {
	case "ctrl+c":
		return msg.Type == tea.KeyCtrlC
	case "ctrl+d":
		return msg.Type == tea.KeyCtrlD
	case "enter":
		return msg.Type == tea.KeyEnter
	case "esc":
		// Only accept actual ESC key type, not string matches
		return msg.Type == tea.KeyEsc
	case "backspace":
		return msg.Type == tea.KeyBackspace
	case "up":
		return msg.Type == tea.KeyUp
	case "down":
		return msg.Type == tea.KeyDown
	case "pgup":
		return msg.Type == tea.KeyPgUp
	case "pgdown":
		return msg.Type == tea.KeyPgDown
	case "home":
		return msg.Type == tea.KeyHome
	case "end":
		return msg.Type == tea.KeyEnd
	default:
		return msg.Type == tea.KeyRunes && msg.String() == key
	}
}

// isKeyInList checks if the pressed key matches any of the configured keybindings
func (m *Model) isKeyInList(msg tea.KeyMsg, bindings []string) bool {
	key := msg.String()

	// Filter out mouse event escape sequences that might be mistaken for keys
	if len(key) > 1 && (key[0] == '[' || key[0] == 27) {
		logger.Debug("Ignoring potential mouse escape sequence: %s", key)
		return false
	}

	for _, binding := range bindings {
		if m.isKey(msg, binding) {
			return true
		}
	}
	return false
}

// handleKeyPress processes keyboard input and delegates to the focused pane
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC || m.isKey(msg, m.config.KeyBindings.Quit) {
		m.Close()
		return tea.Quit
	}

	if !m.shouldProcessKey(getKeyString(msg), msg) {
		return nil
	}

	switch m.focus {
	case FocusSearch:
		return m.handleSearchKeys(msg)
	case FocusDetail:
		return m.handleDetailKeys(msg)
	default:
		return m.handleListKeys(msg)
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) tea.Cmd {
	kb := m.config.KeyBindings

	switch {
	case m.isKeyInList(msg, kb.MoveUp):
		return m.list.MoveUp()
	case m.isKeyInList(msg, kb.MoveDown):
		return m.list.MoveDown()
	case m.isKey(msg, kb.PageUp):
		return m.list.PageUp()
	case m.isKey(msg, kb.PageDown):
		return m.list.PageDown()
	case m.isKey(msg, kb.Top), msg.Type == tea.KeyHome:
		return m.list.Top()
	case m.isKey(msg, kb.Bottom), msg.Type == tea.KeyEnd:
		return m.list.Bottom()
	case m.isKey(msg, kb.Search):
		return m.startSearch()
	case m.isKeyInList(msg, kb.Select):
		if _, ok := m.list.Selected(); ok {
			m.focus = FocusDetail
		}
		return nil
	case m.isKeyInList(msg, kb.Back):
		if m.search.Value() != "" {
			return m.clearSearch()
		}
		return nil
	case m.isKey(msg, kb.Reload):
		return m.reload()
	}
	return nil
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) tea.Cmd {
	kb := m.config.KeyBindings
	if m.isKeyInList(msg, kb.Back) || m.isKeyInList(msg, kb.Select) {
		m.focus = FocusList
	}
	return nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyEnter:
		// Apply right away instead of waiting for the debounce
		m.focus = FocusList
		m.search.Blur()
		if m.query.Flush() {
			return m.runQuery(m.query.Settled())
		}
		return nil
	case m.isKeyInList(msg, m.config.KeyBindings.Back):
		m.focus = FocusList
		m.search.Blur()
		return nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return tea.Batch(cmd, m.query.Write(m.search.Value()))
}

func (m *Model) startSearch() tea.Cmd {
	m.focus = FocusSearch
	return m.search.Focus()
}

func (m *Model) clearSearch() tea.Cmd {
	m.search.SetValue("")
	m.query.Write("")
	m.query.Flush()
	return m.runQuery("")
}
