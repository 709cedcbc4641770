package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

func init() {
	runewidth.DefaultCondition.EastAsianWidth = false
}

const ellipsis = "..."

var ellipsisWidth = runewidth.StringWidth(ellipsis)

// truncate cuts plain text to maxWidth cells, ending with "..." when there
// is room for it.
func truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= ellipsisWidth {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, ellipsis)
}

// padToWidth right-pads s with spaces to width cells.
func padToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// padLeft left-pads s with spaces to width cells.
func padLeft(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}

// fitToWidth truncates then pads so every cell of the column is used.
func fitToWidth(s string, width int) string {
	return padToWidth(truncate(s, width), width)
}
