package ui

import (
	"fmt"
	"strings"

	"github.com/haryoiro/orderdesk/internal/structures"
)

// ShortcutHint represents a single keyboard shortcut hint
type ShortcutHint struct {
	Key    string
	Action string
}

// ShortcutFormatter handles formatting of keyboard shortcuts for display
type ShortcutFormatter struct {
	bindings   structures.KeyBindings
	styleCache map[string]string
}

// NewShortcutFormatter creates a new shortcut formatter for the given bindings
func NewShortcutFormatter(bindings structures.KeyBindings) *ShortcutFormatter {
	return &ShortcutFormatter{
		bindings:   bindings,
		styleCache: make(map[string]string),
	}
}

// SetBindings swaps the bindings after a config reload.
func (sf *ShortcutFormatter) SetBindings(bindings structures.KeyBindings) {
	sf.bindings = bindings
}

// formatKey formats a key binding for display
func (sf *ShortcutFormatter) formatKey(key string) string {
	if formatted, ok := sf.styleCache[key]; ok {
		return formatted
	}

	formatted := key
	switch key {
	case "enter":
		formatted = "Enter"
	case "esc":
		formatted = "Esc"
	case "backspace":
		formatted = "Back"
	case "up":
		formatted = "↑"
	case "down":
		formatted = "↓"
	case "pgup":
		formatted = "PgUp"
	case "pgdown":
		formatted = "PgDn"
	default:
		if strings.HasPrefix(key, "ctrl+") {
			formatted = "Ctrl+" + strings.ToUpper(strings.TrimPrefix(key, "ctrl+"))
		} else if strings.HasPrefix(key, "alt+") {
			formatted = "Alt+" + strings.ToUpper(strings.TrimPrefix(key, "alt+"))
		}
	}

	sf.styleCache[key] = formatted
	return formatted
}

// formatKeys formats multiple key bindings (e.g., ["down", "j"] -> "↓/j")
func (sf *ShortcutFormatter) formatKeys(keys []string) string {
	if len(keys) == 0 {
		return ""
	}

	// Arrow keys first, then the rest in configured order
	var arrows, others []string
	for _, key := range keys {
		if isArrowKey(key) {
			arrows = append(arrows, sf.formatKey(key))
		} else {
			others = append(others, sf.formatKey(key))
		}
	}
	return strings.Join(append(arrows, others...), "/")
}

func isArrowKey(key string) bool {
	return key == "up" || key == "down" || key == "left" || key == "right"
}

// FormatHint formats a single shortcut hint
func (sf *ShortcutFormatter) FormatHint(hint ShortcutHint) string {
	return fmt.Sprintf("[%s: %s]", hint.Key, hint.Action)
}

// FormatHints formats multiple shortcut hints with consistent styling
func (sf *ShortcutFormatter) FormatHints(hints []ShortcutHint) string {
	formatted := make([]string, 0, len(hints))
	for _, hint := range hints {
		if hint.Key == "" {
			continue
		}
		formatted = append(formatted, sf.FormatHint(hint))
	}
	return strings.Join(formatted, " ")
}

// GetListHints returns shortcuts for the order list
func (sf *ShortcutFormatter) GetListHints() []ShortcutHint {
	kb := sf.bindings
	return []ShortcutHint{
		{Key: sf.formatKeys(append(append([]string{}, kb.MoveUp...), kb.MoveDown...)), Action: "Move"},
		{Key: sf.formatKey(kb.Search), Action: "Search"},
		{Key: sf.formatKeys(kb.Select), Action: "Details"},
		{Key: sf.formatKey(kb.Reload), Action: "Reload"},
		{Key: sf.formatKey(kb.Quit), Action: "Quit"},
	}
}

// GetSearchHints returns shortcuts while typing a query
func (sf *ShortcutFormatter) GetSearchHints() []ShortcutHint {
	return []ShortcutHint{
		{Key: sf.formatKey("enter"), Action: "Apply"},
		{Key: sf.formatKeys(sf.bindings.Back), Action: "Done"},
	}
}

// GetDetailHints returns shortcuts for the expanded detail pane
func (sf *ShortcutFormatter) GetDetailHints() []ShortcutHint {
	kb := sf.bindings
	return []ShortcutHint{
		{Key: sf.formatKeys(kb.Back), Action: "Back"},
		{Key: sf.formatKey(kb.Quit), Action: "Quit"},
	}
}

// GetContextualHints returns the hint line for the focused pane
func (sf *ShortcutFormatter) GetContextualHints(focus FocusPane) string {
	switch focus {
	case FocusSearch:
		return sf.FormatHints(sf.GetSearchHints())
	case FocusDetail:
		return sf.FormatHints(sf.GetDetailHints())
	default:
		return sf.FormatHints(sf.GetListHints())
	}
}
