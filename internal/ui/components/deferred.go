package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type mountMsg struct {
	id  int
	tag int
}

// DeferredMount shows a placeholder until delay has passed since Init, then
// shows its content for good.
type DeferredMount struct {
	id    int
	tag   int
	delay time.Duration
	tick  tickFunc

	content     func() string
	placeholder string
	spinner     spinner.Model

	armed   bool
	mounted bool
	closed  bool
}

// NewDeferredMount creates a pending mount. Content is only called once
// mounted.
func NewDeferredMount(delay time.Duration, content func() string) *DeferredMount {
	return &DeferredMount{
		id:      nextID(),
		delay:   delay,
		tick:    tea.Tick,
		content: content,
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot)),
	}
}

// WithPlaceholder replaces the default spinner with static text.
func (m *DeferredMount) WithPlaceholder(s string) *DeferredMount {
	m.placeholder = s
	return m
}

// Init arms the mount timer. Calling it again has no effect.
func (m *DeferredMount) Init() tea.Cmd {
	if m.armed || m.closed {
		return nil
	}
	m.armed = true

	if m.delay <= 0 {
		m.mounted = true
		return nil
	}

	m.tag++
	id, tag := m.id, m.tag
	mount := m.tick(m.delay, func(time.Time) tea.Msg {
		return mountMsg{id: id, tag: tag}
	})
	if m.placeholder != "" {
		return mount
	}
	return tea.Batch(mount, m.spinner.Tick)
}

// Update handles the mount tick and animates the default placeholder.
func (m *DeferredMount) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case mountMsg:
		if msg.id == m.id && msg.tag == m.tag && m.armed && !m.closed {
			m.mounted = true
		}
	case spinner.TickMsg:
		if m.mounted || m.closed || m.placeholder != "" {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	}
	return nil
}

// View renders the placeholder or the mounted content.
func (m *DeferredMount) View() string {
	if !m.mounted {
		if m.placeholder != "" {
			return m.placeholder
		}
		return m.spinner.View()
	}
	if m.content == nil {
		return ""
	}
	return m.content()
}

// Mounted reports whether the content is shown.
func (m *DeferredMount) Mounted() bool { return m.mounted }

// Close cancels a pending mount. Safe to call more than once.
func (m *DeferredMount) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.tag++
}
