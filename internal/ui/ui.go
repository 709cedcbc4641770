package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/haryoiro/orderdesk/internal/constants"
	"github.com/haryoiro/orderdesk/internal/logger"
	"github.com/haryoiro/orderdesk/internal/structures"
	"github.com/haryoiro/orderdesk/internal/systems"
	"github.com/haryoiro/orderdesk/internal/ui/components"
)

// Model is the orders screen.
type Model struct {
	systems      *systems.Systems
	config       *structures.Config
	themeManager *ThemeManager
	shortcuts    *ShortcutFormatter
	keyDebouncer *KeyDebouncer
	focus        FocusPane
	width        int
	height       int

	list   *components.WindowedList[structures.Order]
	search textinput.Model
	query  *components.Debounced[string]

	detail   *components.DeferredMount
	detailID string

	searching bool
	err       error
	closed    bool
	initCmd   tea.Cmd

	// Mouse wheel throttling
	lastScrollTime time.Time
	scrollCooldown time.Duration
}

type ordersLoadedMsg struct {
	orders []structures.Order
	err    error
}

type searchResultsMsg struct {
	query  string
	orders []structures.Order
	err    error
}

type configUpdatedMsg struct {
	config *structures.Config
}

// NewModel builds the orders screen over already started systems.
func NewModel(sys *systems.Systems, config *structures.Config) *Model {
	m := &Model{
		systems:        sys,
		config:         config,
		themeManager:   NewThemeManager(config.Theme),
		shortcuts:      NewShortcutFormatter(config.KeyBindings),
		keyDebouncer:   NewKeyDebouncer(),
		scrollCooldown: constants.MouseScrollCooldown,
	}

	m.list = components.NewWindowedList("orders", components.ListOptions[structures.Order]{
		Render:       m.renderOrderRow,
		Key:          func(o structures.Order) string { return o.OrderID },
		Config:       config.List,
		OnEndReached: m.loadMore,
		Timers:       sys.Timers,
		Reporter:     sys.Reporter,
		EmptyText:    emptyText,
		LoadingText:  loadingText,
	})
	m.applyEmptyStyles()

	m.search = textinput.New()
	m.search.Prompt = "/ "
	m.search.Placeholder = "order id, customer or email"
	m.search.CharLimit = 64

	m.query = components.NewDebounced("", config.Performance.SearchDebounce())

	m.initCmd = m.list.SetItems(sys.Loader.Orders())
	return m
}

// RunSimple runs the orders screen until the user quits.
func RunSimple(systems *systems.Systems, config *structures.Config) error {
	m := NewModel(systems, config)
	defer m.Close()

	opts := []tea.ProgramOption{
		tea.WithMouseCellMotion(),
	}
	if !config.DisableAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	p := tea.NewProgram(m, opts...)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	cmd := m.initCmd
	m.initCmd = nil
	return tea.Batch(
		cmd,
		m.syncDetail(),
		m.listenForConfig(),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.closed {
		return m, nil
	}

	wasSearching := m.focus == FocusSearch

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cmd = m.layout()

	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.MouseMsg:
		cmd = m.handleMouseEvent(msg)

	case ordersLoadedMsg:
		cmd = m.handleOrdersLoaded(msg)

	case searchResultsMsg:
		cmd = m.handleSearchResults(msg)

	case configUpdatedMsg:
		m.applyConfig(msg.config)
		cmd = m.listenForConfig()

	default:
		cmd = m.updateComponents(msg)
	}

	// The selected row is highlighted only outside the search box
	if wasSearching != (m.focus == FocusSearch) {
		m.list.Invalidate()
	}

	return m, tea.Batch(cmd, m.syncDetail())
}

// updateComponents routes timer messages to the components that own them.
func (m *Model) updateComponents(msg tea.Msg) tea.Cmd {
	cmds := []tea.Cmd{m.list.Update(msg)}
	if m.detail != nil {
		cmds = append(cmds, m.detail.Update(msg))
	}
	if m.query.Update(msg) {
		cmds = append(cmds, m.runQuery(m.query.Settled()))
	}
	if m.focus == FocusSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.renderBody(),
		m.renderStatus(),
	)

	// Keep the frame inside the terminal even if a pane overflowed
	lines := strings.Split(content, "\n")
	if len(lines) > m.height {
		lines = lines[:m.height]
	}
	return strings.Join(lines, "\n")
}

// Close stops every timer the screen owns. Safe to call more than once.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.list.Close()
	m.query.Close()
	if m.detail != nil {
		m.detail.Close()
	}
	logger.Debug("Orders screen closed, %d slow renders reported", m.systems.Reporter.Warnings())
}

func (m *Model) layout() tea.Cmd {
	m.search.Width = max(1, m.width-lipgloss.Width(m.search.Prompt)-1)
	return m.list.SetSize(m.listWidth(), m.bodyHeight())
}

func (m *Model) bodyHeight() int {
	h := m.height - constants.DefaultSearchHeight - constants.DefaultStatusHeight
	return max(constants.MinVisibleItems, h)
}

func (m *Model) listWidth() int {
	if m.width >= constants.MinWidthForDetail {
		return m.width - constants.DefaultDetailWidth - 2
	}
	return m.width
}

func (m *Model) detailWidth() int {
	if m.focus == FocusDetail {
		return m.width
	}
	return constants.DefaultDetailWidth
}

// syncDetail remounts the detail pane when the selected order changed.
func (m *Model) syncDetail() tea.Cmd {
	if m.closed {
		return nil
	}

	order, ok := m.list.Selected()
	id := ""
	if ok {
		id = order.OrderID
	}
	if id == m.detailID && (m.detail != nil || !ok) {
		return nil
	}

	if m.detail != nil {
		m.detail.Close()
		m.detail = nil
	}
	m.detailID = id
	if !ok {
		return nil
	}

	m.detail = components.NewDeferredMount(m.config.Performance.DetailMount(), func() string {
		return m.renderDetail(order, m.detailWidth())
	})
	return m.detail.Init()
}

func (m *Model) applyConfig(cfg *structures.Config) {
	m.config = cfg
	m.themeManager.Update(cfg.Theme)
	m.shortcuts.SetBindings(cfg.KeyBindings)
	m.applyEmptyStyles()
	m.list.Invalidate()
}

func (m *Model) applyEmptyStyles() {
	m.list.EmptyState().SetStyles(m.themeManager.MutedStyle(), m.themeManager.SelectedStyle())
}
