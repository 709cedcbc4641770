// Package perf measures render passes and reports the slow ones.
package perf

import (
	"sync"
	"time"
)

// Registry holds named running timers. Names are the only isolation
// between callers: starting a name that is already running restarts it.
type Registry struct {
	mu      sync.Mutex
	started map[string]time.Time
	now     func() time.Time
}

// NewRegistry creates an empty timer registry.
func NewRegistry() *Registry {
	return &Registry{
		started: make(map[string]time.Time),
		now:     time.Now,
	}
}

// NewRegistryWithClock creates a registry reading time from now.
func NewRegistryWithClock(now func() time.Time) *Registry {
	r := NewRegistry()
	r.now = now
	return r
}

// Start records the current time under name, replacing any running entry.
func (r *Registry) Start(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started[name] = r.now()
}

// End returns the time elapsed since the matching Start and forgets the
// entry. It returns 0 when name is not running.
func (r *Registry) End(name string) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	start, ok := r.started[name]
	if !ok {
		return 0
	}
	delete(r.started, name)

	elapsed := r.now().Sub(start)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Running reports whether name has been started and not yet ended.
func (r *Registry) Running(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.started[name]
	return ok
}

// Len returns the number of running timers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.started)
}

// Reset drops every running timer.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = make(map[string]time.Time)
}
