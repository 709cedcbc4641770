// Package components holds reusable bubbletea building blocks: a windowed
// list, an empty-state view, a debounced value and a deferred mount.
//
// Every timer is a tea.Tick whose message carries the component id and a
// tag. Cancelling bumps the tag, so a tick that fires after cancellation
// or Close is ignored.
package components

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type tickFunc func(time.Duration, func(time.Time) tea.Msg) tea.Cmd

var lastID atomic.Int64

func nextID() int {
	return int(lastID.Add(1))
}
