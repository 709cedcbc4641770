package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/haryoiro/orderdesk/internal/constants"
	"github.com/haryoiro/orderdesk/internal/format"
	"github.com/haryoiro/orderdesk/internal/structures"
)

// renderOrderRow renders one list row as
// "> 1f3c9a2b  Ada Lovelace        shipped       $1,234.50".
func (m *Model) renderOrderRow(o structures.Order, _ int, selected bool, width int) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}

	total := format.MustCurrencyMinor(o.TotalMinor, o.Currency)
	fixed := 2 + constants.ShortIDWidth + 1 + 1 + constants.StatusColumnWidth + 1 + constants.TotalColumnWidth
	customerWidth := width - fixed

	var b strings.Builder
	b.WriteString(cursor)
	b.WriteString(fitToWidth(shortID(o.OrderID), constants.ShortIDWidth))
	b.WriteString(" ")
	if customerWidth > 0 {
		b.WriteString(fitToWidth(o.Customer, customerWidth))
	}
	b.WriteString(" ")
	b.WriteString(fitToWidth(string(o.Status), constants.StatusColumnWidth))
	b.WriteString(" ")
	b.WriteString(padLeft(total, constants.TotalColumnWidth))

	row := b.String()
	if selected && m.focus != FocusSearch {
		return m.themeManager.RenderSelected(row)
	}
	return m.themeManager.BaseStyle().Render(row)
}

// renderDetail renders the detail pane body for one order.
func (m *Model) renderDetail(o structures.Order, width int) string {
	tm := m.themeManager
	line := func(label, value string) string {
		return tm.RenderMuted(padToWidth(label, 9)) + truncate(value, width-9)
	}

	lines := []string{
		tm.RenderTitle(truncate("Order "+o.OrderID, width)),
		"",
		line("Customer", o.Customer),
		line("Email", o.Email),
		line("Status", string(o.Status)),
		line("Placed", o.CreatedAt.Local().Format("2006-01-02 15:04")),
		"",
	}

	for _, it := range o.Items {
		price := format.MustCurrencyMinor(it.PriceMinor*int64(it.Quantity), o.Currency)
		label := fmt.Sprintf("%d × %s", it.Quantity, it.Name)
		nameWidth := width - lipgloss.Width(price) - 1
		lines = append(lines, fitToWidth(label, nameWidth)+" "+price)
	}

	lines = append(lines, "", line("Total", format.MustCurrencyMinor(o.TotalMinor, o.Currency)))
	return strings.Join(lines, "\n")
}

// renderHeader renders the search box or the list title.
func (m *Model) renderHeader() string {
	if m.focus == FocusSearch || m.search.Value() != "" {
		return m.search.View()
	}

	loader := m.systems.Loader
	title := fmt.Sprintf("Orders %d/%d", m.list.Len(), loader.Total())
	if loader.Exhausted() {
		title = fmt.Sprintf("Orders %d", m.list.Len())
	}
	return m.themeManager.RenderTitle(truncate(title, m.width))
}

// renderStatus renders the bottom bar: hints on the left, counters and the
// last error on the right.
func (m *Model) renderStatus() string {
	tm := m.themeManager
	hints := tm.RenderHelp(m.shortcuts.GetContextualHints(m.focus))

	var right []string
	if m.err != nil {
		right = append(right, tm.ErrorStyle().Render(truncate(m.err.Error(), m.width/2)))
	}
	if m.query.Pending() {
		right = append(right, tm.RenderMuted("searching..."))
	}
	if n := m.systems.Reporter.Warnings(); n > 0 {
		right = append(right, tm.RenderWarning(fmt.Sprintf("slow renders: %d", n)))
	}
	status := strings.Join(right, "  ")

	gap := m.width - lipgloss.Width(hints) - lipgloss.Width(status)
	if gap < 1 {
		return status
	}
	return hints + strings.Repeat(" ", gap) + status
}

// renderBody lays out the list and the detail pane.
func (m *Model) renderBody() string {
	if m.focus == FocusDetail {
		return m.detailView()
	}

	listView := lipgloss.NewStyle().
		Width(m.listWidth()).
		Height(m.bodyHeight()).
		Render(m.list.View())

	if !m.showDetailBeside() {
		return listView
	}

	detail := m.themeManager.BorderStyle().
		Width(constants.DefaultDetailWidth).
		Height(m.bodyHeight()).
		Render(m.detailView())

	return lipgloss.JoinHorizontal(lipgloss.Top, listView, detail)
}

func (m *Model) detailView() string {
	if m.detail == nil {
		return m.themeManager.RenderMuted("No order selected")
	}
	return m.detail.View()
}

func shortID(id string) string {
	if len(id) > constants.ShortIDWidth {
		return id[:constants.ShortIDWidth]
	}
	return id
}
