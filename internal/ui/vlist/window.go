// Package vlist computes which rows of a long list are rendered.
//
// A Window tracks the viewport over a list of one-row items and keeps a
// contiguous rendered range around it. The range starts at
// InitialNumToRender rows, then grows toward the target window in batches
// of at most MaxToRenderPerBatch rows per Step. Rows outside the target
// window are dropped immediately, and a viewport that moves clear of the
// rendered range restarts it at the viewport.
package vlist

// Config holds the windowing parameters. Non-positive values are raised
// to the smallest sensible value by New.
type Config struct {
	InitialNumToRender  int
	WindowSize          int     // total rendered height, in viewport heights
	MaxToRenderPerBatch int
	EndReachedThreshold float64 // in viewport heights from the end
}

// Window is not safe for concurrent use; it lives on the UI loop.
type Window struct {
	cfg Config

	length int
	height int
	offset int

	first, last int // rendered range [first, last)
	laidOut     bool
	endArmed    bool
}

// New creates a window for an empty list and a one-row viewport.
func New(cfg Config) *Window {
	if cfg.InitialNumToRender < 1 {
		cfg.InitialNumToRender = 1
	}
	if cfg.WindowSize < 1 {
		cfg.WindowSize = 1
	}
	if cfg.MaxToRenderPerBatch < 1 {
		cfg.MaxToRenderPerBatch = 1
	}
	if cfg.EndReachedThreshold < 0 {
		cfg.EndReachedThreshold = 0
	}
	return &Window{cfg: cfg, height: 1, endArmed: true}
}

// Config returns the effective configuration.
func (w *Window) Config() Config { return w.cfg }

// Len returns the item count.
func (w *Window) Len() int { return w.length }

// Height returns the viewport height in rows.
func (w *Window) Height() int { return w.height }

// Offset returns the index of the first visible row.
func (w *Window) Offset() int { return w.offset }

// SetLength updates the item count. Growing the list re-arms the
// end-reached signal.
func (w *Window) SetLength(n int) {
	if n < 0 {
		n = 0
	}
	if n > w.length {
		w.endArmed = true
	}
	w.length = n

	if !w.laidOut && n > 0 {
		w.first = 0
		w.last = min(n, w.cfg.InitialNumToRender)
		w.laidOut = true
	}
	w.first = min(w.first, n)
	w.last = min(w.last, n)
	w.clampOffset()
}

// SetHeight updates the viewport height.
func (w *Window) SetHeight(h int) {
	if h < 1 {
		h = 1
	}
	w.height = h
	w.clampOffset()
}

// ScrollTo moves the viewport so that offset is the first visible row.
func (w *Window) ScrollTo(offset int) {
	w.offset = offset
	w.clampOffset()
}

// ScrollBy moves the viewport by delta rows.
func (w *Window) ScrollBy(delta int) {
	w.ScrollTo(w.offset + delta)
}

// EnsureVisible scrolls the minimum distance that brings index into view.
func (w *Window) EnsureVisible(index int) {
	switch {
	case index < w.offset:
		w.ScrollTo(index)
	case index >= w.offset+w.height:
		w.ScrollTo(index - w.height + 1)
	}
}

// Visible returns the visible range [start, end).
func (w *Window) Visible() (start, end int) {
	return w.offset, min(w.offset+w.height, w.length)
}

// Target returns the range the window converges to.
func (w *Window) Target() (start, end int) {
	margin := (w.cfg.WindowSize - 1) * w.height / 2
	vs, ve := w.Visible()
	return max(0, vs-margin), min(w.length, ve+margin)
}

// Rendered returns the rendered range [first, last).
func (w *Window) Rendered() (first, last int) {
	return w.first, w.last
}

// IsRendered reports whether row index has been rendered.
func (w *Window) IsRendered(index int) bool {
	return index >= w.first && index < w.last
}

// Pending reports whether Step still has rows to add.
func (w *Window) Pending() bool {
	if !w.laidOut {
		return false
	}
	ts, te := w.Target()
	return w.first > ts || w.last < te
}

// Step runs one render batch and reports whether more batches are needed.
// Rows in the visible range are added before the rest of the window.
func (w *Window) Step() bool {
	if !w.laidOut || w.length == 0 {
		return false
	}

	ts, te := w.Target()
	vs, ve := w.Visible()

	w.first = max(w.first, ts)
	w.last = min(w.last, te)
	// Restart at the viewport when it does not touch the kept range, so
	// the batch budget goes to visible rows before the margin.
	if w.first >= w.last || vs >= w.last || ve <= w.first {
		w.first, w.last = vs, vs
	}

	budget := w.cfg.MaxToRenderPerBatch
	for w.first > vs && budget > 0 {
		w.first--
		budget--
	}
	for w.last < ve && budget > 0 {
		w.last++
		budget--
	}
	for w.last < te && budget > 0 {
		w.last++
		budget--
	}
	for w.first > ts && budget > 0 {
		w.first--
		budget--
	}

	return w.first > ts || w.last < te
}

// EndReached reports true once each time the distance from the bottom of
// the viewport to the end of the list drops within the threshold.
func (w *Window) EndReached() bool {
	if w.length == 0 {
		return false
	}

	distance := max(0, w.length-(w.offset+w.height))
	within := float64(distance) <= w.cfg.EndReachedThreshold*float64(w.height)

	if !within {
		w.endArmed = true
		return false
	}
	if !w.endArmed {
		return false
	}
	w.endArmed = false
	return true
}

func (w *Window) clampOffset() {
	maxOffset := max(0, w.length-w.height)
	w.offset = max(0, min(w.offset, maxOffset))
}
