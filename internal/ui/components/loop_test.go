package components

import (
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// fakeLoop stands in for the bubbletea runtime: ticks are queued at
// now+delay and delivered in due order by advance.
type fakeLoop struct {
	now   time.Duration
	seq   int
	queue []scheduledTick
}

type scheduledTick struct {
	due time.Duration
	seq int
	fn  func(time.Time) tea.Msg
}

func (f *fakeLoop) tick(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	f.queue = append(f.queue, scheduledTick{due: f.now + d, seq: f.seq, fn: fn})
	f.seq++
	return func() tea.Msg { return nil }
}

// advance moves time forward to t, delivering every due tick to deliver.
// Ticks scheduled while delivering are honoured if they fall due by t.
func (f *fakeLoop) advance(t time.Duration, deliver func(tea.Msg)) {
	for {
		sort.Slice(f.queue, func(i, j int) bool {
			if f.queue[i].due != f.queue[j].due {
				return f.queue[i].due < f.queue[j].due
			}
			return f.queue[i].seq < f.queue[j].seq
		})
		if len(f.queue) == 0 || f.queue[0].due > t {
			break
		}
		next := f.queue[0]
		f.queue = f.queue[1:]
		f.now = next.due
		deliver(next.fn(time.Unix(0, 0).Add(next.due)))
	}
	f.now = t
}
