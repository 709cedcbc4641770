package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/haryoiro/orderdesk/internal/structures"
)

// ThemeManager manages UI styles based on the configured theme
type ThemeManager struct {
	theme structures.Theme

	// Cached styles
	baseStyle     lipgloss.Style
	selectedStyle lipgloss.Style
	mutedStyle    lipgloss.Style
	warningStyle  lipgloss.Style
	borderStyle   lipgloss.Style
	titleStyle    lipgloss.Style
	helpStyle     lipgloss.Style
	errorStyle    lipgloss.Style
}

// NewThemeManager creates a new theme manager with the given theme
func NewThemeManager(theme structures.Theme) *ThemeManager {
	tm := &ThemeManager{theme: theme}
	tm.initStyles()
	return tm
}

func (tm *ThemeManager) initStyles() {
	// Foreground only, no background, so rows are not partially colored
	tm.baseStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(tm.theme.Foreground))

	tm.selectedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(tm.theme.Selected)).
		Bold(true)

	tm.mutedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(tm.theme.Muted))

	tm.warningStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(tm.theme.Warning)).
		Bold(true)

	// Detail pane separator
	tm.borderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color(tm.theme.Border)).
		PaddingLeft(1)

	tm.titleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(tm.theme.Foreground)).
		Bold(true)

	tm.helpStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(tm.theme.Muted)).
		Italic(true)

	tm.errorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f7768e")).
		Bold(true)
}

// Update updates the theme and reinitializes styles
func (tm *ThemeManager) Update(theme structures.Theme) {
	tm.theme = theme
	tm.initStyles()
}

func (tm *ThemeManager) BaseStyle() lipgloss.Style {
	return tm.baseStyle
}

func (tm *ThemeManager) SelectedStyle() lipgloss.Style {
	return tm.selectedStyle
}

func (tm *ThemeManager) MutedStyle() lipgloss.Style {
	return tm.mutedStyle
}

func (tm *ThemeManager) WarningStyle() lipgloss.Style {
	return tm.warningStyle
}

func (tm *ThemeManager) BorderStyle() lipgloss.Style {
	return tm.borderStyle
}

func (tm *ThemeManager) TitleStyle() lipgloss.Style {
	return tm.titleStyle
}

func (tm *ThemeManager) HelpStyle() lipgloss.Style {
	return tm.helpStyle
}

func (tm *ThemeManager) ErrorStyle() lipgloss.Style {
	return tm.errorStyle
}

// Helper methods for common styling patterns

func (tm *ThemeManager) RenderTitle(text string) string {
	return tm.titleStyle.Render(text)
}

func (tm *ThemeManager) RenderMuted(text string) string {
	return tm.mutedStyle.Render(text)
}

func (tm *ThemeManager) RenderSelected(text string) string {
	return tm.selectedStyle.Render(text)
}

func (tm *ThemeManager) RenderWarning(text string) string {
	return tm.warningStyle.Render(text)
}

func (tm *ThemeManager) RenderHelp(text string) string {
	return tm.helpStyle.Render(text)
}
