package components

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestMount(loop *fakeLoop, delay time.Duration) (*DeferredMount, *int) {
	calls := 0
	m := NewDeferredMount(delay, func() string {
		calls++
		return "details"
	}).WithPlaceholder("loading…")
	m.tick = loop.tick
	return m, &calls
}

func TestDeferredMountTransitionsOnce(t *testing.T) {
	loop := &fakeLoop{}
	m, calls := newTestMount(loop, 100*ms)
	transitions := 0
	deliver := func(msg tea.Msg) {
		before := m.Mounted()
		m.Update(msg)
		if !before && m.Mounted() {
			transitions++
		}
	}

	m.Init()
	m.Init()
	for _, at := range []time.Duration{0, 50 * ms, 99 * ms} {
		loop.advance(at, deliver)
		if got := m.View(); got != "loading…" {
			t.Fatalf("at %v View = %q, want placeholder", at, got)
		}
	}
	if *calls != 0 {
		t.Fatalf("content rendered before mount")
	}

	for _, at := range []time.Duration{100 * ms, 200 * ms, time.Second} {
		loop.advance(at, deliver)
		if got := m.View(); got != "details" {
			t.Fatalf("at %v View = %q, want content", at, got)
		}
	}
	if transitions != 1 {
		t.Fatalf("transitions = %d, want 1", transitions)
	}
}

func TestDeferredMountCloseCancels(t *testing.T) {
	loop := &fakeLoop{}
	m, calls := newTestMount(loop, 100*ms)
	deliver := func(msg tea.Msg) { m.Update(msg) }

	m.Init()
	loop.advance(40*ms, deliver)
	m.Close()
	m.Close()
	loop.advance(time.Second, deliver)

	if m.Mounted() {
		t.Fatalf("mounted after Close")
	}
	if m.View() != "loading…" || *calls != 0 {
		t.Fatalf("content rendered after Close")
	}
	if m.Init() != nil {
		t.Fatalf("Init after Close armed a timer")
	}
}

func TestDeferredMountNeedsInit(t *testing.T) {
	m := NewDeferredMount(10*ms, func() string { return "x" })
	if m.Update(mountMsg{id: m.id, tag: m.tag}) != nil || m.Mounted() {
		t.Fatalf("mounted without Init")
	}
}

func TestDeferredMountZeroDelayMountsImmediately(t *testing.T) {
	m := NewDeferredMount(0, func() string { return "now" })
	if cmd := m.Init(); cmd != nil {
		t.Fatalf("zero delay should not schedule")
	}
	if m.View() != "now" {
		t.Fatalf("View = %q", m.View())
	}
}

func TestDeferredMountDefaultSpinnerPlaceholder(t *testing.T) {
	m := NewDeferredMount(time.Hour, func() string { return "content" })
	if cmd := m.Init(); cmd == nil {
		t.Fatalf("expected mount and spinner commands")
	}
	if m.View() == "" || m.View() == "content" {
		t.Fatalf("expected spinner placeholder, got %q", m.View())
	}
}
