package vlist

import "testing"

func newTestWindow(length int) *Window {
	w := New(Config{
		InitialNumToRender:  10,
		WindowSize:          3,
		MaxToRenderPerBatch: 5,
		EndReachedThreshold: 0.5,
	})
	w.SetHeight(10)
	w.SetLength(length)
	return w
}

func assertRendered(t *testing.T, w *Window, first, last int) {
	t.Helper()
	f, l := w.Rendered()
	if f != first || l != last {
		t.Fatalf("Rendered() = [%d,%d), want [%d,%d)", f, l, first, last)
	}
}

func TestInitialRenderCount(t *testing.T) {
	w := newTestWindow(100)
	assertRendered(t, w, 0, 10)

	short := newTestWindow(4)
	assertRendered(t, short, 0, 4)
}

func TestStepGrowsByBatch(t *testing.T) {
	w := newTestWindow(100)

	if !w.Pending() {
		t.Fatalf("expected pending batches")
	}
	if !w.Step() {
		t.Fatalf("first step should need another")
	}
	assertRendered(t, w, 0, 15)
	if w.Step() {
		t.Fatalf("second step should complete the window")
	}
	assertRendered(t, w, 0, 20)
	if w.Pending() {
		t.Fatalf("window should be complete")
	}
}

func TestScrollRendersVisibleRowsFirst(t *testing.T) {
	w := newTestWindow(100)
	for w.Step() {
	}

	w.ScrollTo(50)
	ts, te := w.Target()
	if ts != 40 || te != 70 {
		t.Fatalf("Target() = [%d,%d), want [40,70)", ts, te)
	}

	steps := [][2]int{{50, 55}, {50, 60}, {50, 65}, {50, 70}, {45, 70}, {40, 70}}
	for i, want := range steps {
		more := w.Step()
		assertRendered(t, w, want[0], want[1])
		if more != (i < len(steps)-1) {
			t.Fatalf("step %d: more = %v", i, more)
		}
	}
}

func TestScrollPastOverlappingRangeRendersVisibleRowsFirst(t *testing.T) {
	w := New(Config{InitialNumToRender: 20, WindowSize: 5, MaxToRenderPerBatch: 10})
	w.SetHeight(20)
	w.SetLength(500)
	for w.Step() {
	}
	assertRendered(t, w, 0, 60)

	// The new target [30,130) overlaps [0,60) but the viewport [70,90)
	// lies past it.
	w.ScrollTo(70)

	w.Step()
	assertRendered(t, w, 70, 80)
	w.Step()
	assertRendered(t, w, 70, 90)
	for i := 70; i < 90; i++ {
		if !w.IsRendered(i) {
			t.Fatalf("visible row %d blank after two batches", i)
		}
	}

	for w.Step() {
	}
	assertRendered(t, w, 30, 130)
}

func TestWindowSizeOneRendersOnlyViewport(t *testing.T) {
	w := New(Config{InitialNumToRender: 1, WindowSize: 1, MaxToRenderPerBatch: 100})
	w.SetHeight(8)
	w.SetLength(50)
	w.ScrollTo(20)
	w.Step()
	assertRendered(t, w, 20, 28)
}

func TestScrollClamps(t *testing.T) {
	w := newTestWindow(25)

	w.ScrollTo(100)
	if w.Offset() != 15 {
		t.Fatalf("Offset = %d, want 15", w.Offset())
	}
	w.ScrollBy(-100)
	if w.Offset() != 0 {
		t.Fatalf("Offset = %d, want 0", w.Offset())
	}

	w.EnsureVisible(12)
	if w.Offset() != 3 {
		t.Fatalf("Offset = %d, want 3", w.Offset())
	}
	w.EnsureVisible(1)
	if w.Offset() != 1 {
		t.Fatalf("Offset = %d, want 1", w.Offset())
	}
}

func TestShrinkingListClampsRanges(t *testing.T) {
	w := newTestWindow(100)
	for w.Step() {
	}
	w.ScrollTo(80)

	w.SetLength(12)
	f, l := w.Rendered()
	if f > 12 || l > 12 {
		t.Fatalf("Rendered() = [%d,%d) beyond length", f, l)
	}
	if w.Offset() != 2 {
		t.Fatalf("Offset = %d, want 2", w.Offset())
	}
	vs, ve := w.Visible()
	if vs != 2 || ve != 12 {
		t.Fatalf("Visible() = [%d,%d)", vs, ve)
	}
}

func TestEndReachedOncePerCrossing(t *testing.T) {
	w := newTestWindow(100)

	w.ScrollTo(80)
	if w.EndReached() {
		t.Fatalf("10 rows left is outside the threshold")
	}
	w.ScrollTo(85)
	if !w.EndReached() {
		t.Fatalf("5 rows left should trigger")
	}
	w.ScrollTo(90)
	if w.EndReached() {
		t.Fatalf("must not trigger twice in the same crossing")
	}

	w.ScrollTo(70)
	if w.EndReached() {
		t.Fatalf("outside threshold")
	}
	w.ScrollTo(90)
	if !w.EndReached() {
		t.Fatalf("second crossing should trigger")
	}
}

func TestEndReachedRearmsWhenListGrows(t *testing.T) {
	w := newTestWindow(100)
	w.ScrollTo(90)
	if !w.EndReached() {
		t.Fatalf("expected trigger at the end")
	}

	w.SetLength(103)
	if !w.EndReached() {
		t.Fatalf("grown list still within threshold should trigger again")
	}

	w.SetLength(200)
	if w.EndReached() {
		t.Fatalf("far from the end after growth")
	}
}

func TestEndReachedShortList(t *testing.T) {
	w := newTestWindow(3)
	if !w.EndReached() {
		t.Fatalf("list shorter than the viewport is at its end")
	}
	if w.EndReached() {
		t.Fatalf("only once")
	}

	empty := newTestWindow(0)
	if empty.EndReached() {
		t.Fatalf("empty list never reaches its end")
	}
}

func TestNewSanitizesConfig(t *testing.T) {
	w := New(Config{EndReachedThreshold: -1})
	cfg := w.Config()
	if cfg.InitialNumToRender != 1 || cfg.WindowSize != 1 || cfg.MaxToRenderPerBatch != 1 || cfg.EndReachedThreshold != 0 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}
