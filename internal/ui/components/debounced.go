package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type settleMsg struct {
	id  int
	tag int
}

// Debounced holds a value that settles once writes stop for delay.
//
// Immediate follows every Write. Settled catches up with Immediate when the
// settle tick armed by the last Write is delivered to Update.
type Debounced[T any] struct {
	id    int
	delay time.Duration
	tick  tickFunc

	immediate T
	settled   T
	tag       int
	pending   bool
	closed    bool
}

// NewDebounced creates a quiescent holder with both values set to initial.
func NewDebounced[T any](initial T, delay time.Duration) *Debounced[T] {
	return &Debounced[T]{
		id:        nextID(),
		delay:     delay,
		tick:      tea.Tick,
		immediate: initial,
		settled:   initial,
	}
}

// Write sets the immediate value and re-arms the settle tick.
func (d *Debounced[T]) Write(v T) tea.Cmd {
	d.immediate = v
	if d.closed {
		return nil
	}

	d.tag++
	d.pending = true

	id, tag := d.id, d.tag
	return d.tick(d.delay, func(time.Time) tea.Msg {
		return settleMsg{id: id, tag: tag}
	})
}

// Update settles the value on its current tick and reports whether it did.
func (d *Debounced[T]) Update(msg tea.Msg) bool {
	m, ok := msg.(settleMsg)
	if !ok || m.id != d.id || m.tag != d.tag {
		return false
	}
	if !d.pending || d.closed {
		return false
	}

	d.settled = d.immediate
	d.pending = false
	return true
}

// Flush settles immediately and reports whether a write was pending.
func (d *Debounced[T]) Flush() bool {
	if !d.pending || d.closed {
		return false
	}
	d.tag++
	d.settled = d.immediate
	d.pending = false
	return true
}

// Cancel drops the pending settle without touching Settled.
func (d *Debounced[T]) Cancel() {
	if d.pending {
		d.tag++
		d.pending = false
	}
}

// Close cancels and stops arming new ticks. Safe to call more than once.
func (d *Debounced[T]) Close() {
	d.Cancel()
	d.closed = true
}

// Immediate returns the last written value.
func (d *Debounced[T]) Immediate() T { return d.immediate }

// Settled returns the last settled value.
func (d *Debounced[T]) Settled() T { return d.settled }

// Pending reports whether a settle tick is armed.
func (d *Debounced[T]) Pending() bool { return d.pending }
