package components

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/haryoiro/orderdesk/internal/constants"
	"github.com/haryoiro/orderdesk/internal/perf"
	"github.com/haryoiro/orderdesk/internal/structures"
	"github.com/haryoiro/orderdesk/internal/ui/vlist"
	"github.com/muesli/reflow/truncate"
)

// RenderFunc renders one row. The result is truncated to width.
type RenderFunc[T any] func(item T, index int, selected bool, width int) string

// KeyFunc returns a stable identity for an item.
type KeyFunc[T any] func(item T) string

// ListOptions configures a WindowedList.
type ListOptions[T any] struct {
	Render RenderFunc[T]
	Key    KeyFunc[T]
	Config structures.ListConfig

	// OnEndReached is called when the viewport comes within
	// Config.OnEndReachedThreshold viewport heights of the end. It can be
	// called again for the same data, so it must be idempotent.
	OnEndReached func() tea.Cmd

	Timers   *perf.Registry
	Reporter *perf.Reporter

	EmptyText   string
	LoadingText string
}

type batchMsg struct {
	id  int
	tag int
}

// WindowedList renders only the rows around the viewport. Rows in the
// window's rendered range are rendered once per batch and cached, so
// scrolling within the range reuses them. Every data change starts the
// timer "list:<name>"; the next data change or Close stops it and reports
// the elapsed time under name.
type WindowedList[T any] struct {
	name string
	id   int
	opts ListOptions[T]
	cfg  structures.ListConfig
	tick tickFunc

	items    []T
	rows     map[int]string // cached output for the rendered range
	window   *vlist.Window
	empty    *EmptyState
	selected int
	width    int

	tag      int
	batching bool
	closed   bool
}

// NewWindowedList creates an empty list. Zero config values fall back to
// the process-wide windowing defaults.
func NewWindowedList[T any](name string, opts ListOptions[T]) *WindowedList[T] {
	cfg := WithListDefaults(opts.Config)
	return &WindowedList[T]{
		name: name,
		id:   nextID(),
		opts: opts,
		cfg:  cfg,
		tick: tea.Tick,
		window: vlist.New(vlist.Config{
			InitialNumToRender:  cfg.InitialNumToRender,
			WindowSize:          cfg.WindowSize,
			MaxToRenderPerBatch: cfg.MaxToRenderPerBatch,
			EndReachedThreshold: cfg.OnEndReachedThreshold,
		}),
		empty: NewEmptyState(opts.EmptyText, opts.LoadingText),
		rows:  make(map[int]string),
	}
}

// WithListDefaults fills zero values from internal/constants.
func WithListDefaults(c structures.ListConfig) structures.ListConfig {
	if c.InitialNumToRender <= 0 {
		c.InitialNumToRender = constants.ListInitialItems
	}
	if c.WindowSize <= 0 {
		c.WindowSize = constants.ListWindowSize
	}
	if c.MaxToRenderPerBatch <= 0 {
		c.MaxToRenderPerBatch = constants.BatchSize
	}
	if c.UpdateCellsBatchingPeriodMs <= 0 {
		c.UpdateCellsBatchingPeriodMs = int(constants.ListBatchingPeriod.Milliseconds())
	}
	if c.OnEndReachedThreshold <= 0 {
		c.OnEndReachedThreshold = constants.ListEndReachedFraction
	}
	return c
}

// Name returns the list identifier used for timing.
func (l *WindowedList[T]) Name() string { return l.name }

// TimerName returns the registry key of this list's render timer.
func (l *WindowedList[T]) TimerName() string {
	return constants.ListTimerPrefix + l.name
}

// Config returns the effective windowing configuration.
func (l *WindowedList[T]) Config() structures.ListConfig { return l.cfg }

// Window exposes the windowing state.
func (l *WindowedList[T]) Window() *vlist.Window { return l.window }

// EmptyState exposes the cached empty-state view for styling.
func (l *WindowedList[T]) EmptyState() *EmptyState { return l.empty }

// SetItems replaces the data. The selection follows the selected item's
// key when it is still present.
func (l *WindowedList[T]) SetItems(items []T) tea.Cmd {
	if l.closed {
		return nil
	}

	prevKey, hadKey := l.selectedKey()

	l.stopTimer()
	l.items = items
	if l.opts.Timers != nil {
		l.opts.Timers.Start(l.TimerName())
	}

	l.window.SetLength(len(items))
	l.selected = l.indexAfterChange(prevKey, hadKey)
	l.window.EnsureVisible(l.selected)
	clear(l.rows)
	l.fillRows()

	return l.afterScroll()
}

// SetSize updates the row width and the viewport height.
func (l *WindowedList[T]) SetSize(width, height int) tea.Cmd {
	if width != l.width {
		clear(l.rows)
	}
	l.width = width
	l.window.SetHeight(height)
	l.window.EnsureVisible(l.selected)
	l.fillRows()
	return l.afterScroll()
}

// Invalidate drops every cached row, for when the row renderer's output
// changes without a data change, such as a new theme.
func (l *WindowedList[T]) Invalidate() {
	clear(l.rows)
	l.fillRows()
}

// SetLoading toggles the loading flag of the empty state.
func (l *WindowedList[T]) SetLoading(loading bool) {
	l.empty.SetLoading(loading)
}

// Update advances render batches.
func (l *WindowedList[T]) Update(msg tea.Msg) tea.Cmd {
	m, ok := msg.(batchMsg)
	if !ok || m.id != l.id || m.tag != l.tag || l.closed {
		return nil
	}
	l.batching = false
	l.window.Step()
	l.fillRows()
	return l.scheduleBatch()
}

// MoveUp moves the selection up by one row.
func (l *WindowedList[T]) MoveUp() tea.Cmd { return l.Select(l.selected - 1) }

// MoveDown moves the selection down by one row.
func (l *WindowedList[T]) MoveDown() tea.Cmd { return l.Select(l.selected + 1) }

// PageUp moves the selection up by one viewport.
func (l *WindowedList[T]) PageUp() tea.Cmd {
	return l.Select(l.selected - l.window.Height())
}

// PageDown moves the selection down by one viewport.
func (l *WindowedList[T]) PageDown() tea.Cmd {
	return l.Select(l.selected + l.window.Height())
}

// Top selects the first row.
func (l *WindowedList[T]) Top() tea.Cmd { return l.Select(0) }

// Bottom selects the last row.
func (l *WindowedList[T]) Bottom() tea.Cmd { return l.Select(len(l.items) - 1) }

// Select moves the selection to index, clamped to the list.
func (l *WindowedList[T]) Select(index int) tea.Cmd {
	if len(l.items) == 0 {
		return nil
	}
	prev := l.selected
	l.selected = max(0, min(index, len(l.items)-1))
	if prev != l.selected {
		delete(l.rows, prev)
		delete(l.rows, l.selected)
	}
	l.window.EnsureVisible(l.selected)
	l.fillRows()
	return l.afterScroll()
}

// Selected returns the selected item.
func (l *WindowedList[T]) Selected() (T, bool) {
	var zero T
	if l.selected < 0 || l.selected >= len(l.items) {
		return zero, false
	}
	return l.items[l.selected], true
}

// SelectedIndex returns the selected row.
func (l *WindowedList[T]) SelectedIndex() int { return l.selected }

// Items returns the current data.
func (l *WindowedList[T]) Items() []T { return l.items }

// Len returns the number of items.
func (l *WindowedList[T]) Len() int { return len(l.items) }

// View joins the cached visible rows. Visible rows outside the rendered
// range are left blank until their batch arrives.
func (l *WindowedList[T]) View() string {
	if len(l.items) == 0 {
		return l.empty.View()
	}

	start, end := l.window.Visible()
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, l.rows[i])
	}
	return strings.Join(rows, "\n")
}

// Close stops the render timer, reports it and cancels pending batches.
// Safe to call more than once.
func (l *WindowedList[T]) Close() {
	if l.closed {
		return
	}
	l.closed = true
	l.tag++
	l.batching = false
	l.stopTimer()
}

func (l *WindowedList[T]) stopTimer() {
	timers := l.opts.Timers
	if timers == nil || !timers.Running(l.TimerName()) {
		return
	}
	elapsed := timers.End(l.TimerName())
	l.opts.Reporter.Report(l.name, elapsed)
}

func (l *WindowedList[T]) afterScroll() tea.Cmd {
	return tea.Batch(l.scheduleBatch(), l.checkEndReached())
}

func (l *WindowedList[T]) scheduleBatch() tea.Cmd {
	if l.closed || l.batching || !l.window.Pending() {
		return nil
	}

	l.batching = true
	l.tag++
	id, tag := l.id, l.tag
	return l.tick(l.cfg.BatchingPeriod(), func(time.Time) tea.Msg {
		return batchMsg{id: id, tag: tag}
	})
}

func (l *WindowedList[T]) checkEndReached() tea.Cmd {
	if l.opts.OnEndReached == nil || l.closed {
		return nil
	}
	if !l.window.EndReached() {
		return nil
	}
	return l.opts.OnEndReached()
}

// fillRows renders rows that entered the rendered range and drops the
// ones that left it.
func (l *WindowedList[T]) fillRows() {
	first, last := l.window.Rendered()
	for i := range l.rows {
		if i < first || i >= last {
			delete(l.rows, i)
		}
	}
	if l.opts.Render == nil {
		return
	}
	for i := first; i < last && i < len(l.items); i++ {
		if _, ok := l.rows[i]; ok {
			continue
		}
		row := l.opts.Render(l.items[i], i, i == l.selected, l.width)
		if l.width > 0 && lipgloss.Width(row) > l.width {
			row = truncate.StringWithTail(row, uint(l.width), "…")
		}
		l.rows[i] = row
	}
}

func (l *WindowedList[T]) selectedKey() (string, bool) {
	if l.opts.Key == nil {
		return "", false
	}
	item, ok := l.Selected()
	if !ok {
		return "", false
	}
	return l.opts.Key(item), true
}

func (l *WindowedList[T]) indexAfterChange(prevKey string, hadKey bool) int {
	if hadKey {
		for i, item := range l.items {
			if l.opts.Key(item) == prevKey {
				return i
			}
		}
	}
	if len(l.items) == 0 {
		return 0
	}
	return max(0, min(l.selected, len(l.items)-1))
}
