package perf

import (
	"sync/atomic"
	"time"
)

// Sink receives render warnings. *logger.Logger satisfies it.
type Sink interface {
	Warn(format string, args ...interface{})
}

// Reporter emits a warning for every measured duration above the
// process-wide threshold.
type Reporter struct {
	threshold atomic.Int64
	enabled   atomic.Bool
	warnings  atomic.Int64
	sink      Sink
}

// NewReporter creates an enabled reporter.
func NewReporter(threshold time.Duration, sink Sink) *Reporter {
	r := &Reporter{sink: sink}
	r.threshold.Store(int64(threshold))
	r.enabled.Store(true)
	return r
}

// Report emits a warning when d is strictly greater than the threshold
// and returns whether it did. A duration equal to the threshold is fine.
func (r *Reporter) Report(component string, d time.Duration) bool {
	if r == nil || !r.enabled.Load() {
		return false
	}

	threshold := time.Duration(r.threshold.Load())
	if d <= threshold {
		return false
	}

	r.warnings.Add(1)
	if r.sink != nil {
		r.sink.Warn("[perf] %s took %dms to render (threshold %dms)",
			component, d.Milliseconds(), threshold.Milliseconds())
	}
	return true
}

// SetThreshold replaces the threshold used by subsequent reports.
func (r *Reporter) SetThreshold(d time.Duration) {
	if r == nil {
		return
	}
	r.threshold.Store(int64(d))
}

// Threshold returns the current threshold.
func (r *Reporter) Threshold() time.Duration {
	if r == nil {
		return 0
	}
	return time.Duration(r.threshold.Load())
}

// SetEnabled turns reporting on or off.
func (r *Reporter) SetEnabled(enabled bool) {
	if r == nil {
		return
	}
	r.enabled.Store(enabled)
}

// Warnings returns how many warnings have been emitted.
func (r *Reporter) Warnings() int64 {
	if r == nil {
		return 0
	}
	return r.warnings.Load()
}
