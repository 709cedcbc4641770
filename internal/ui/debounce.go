package ui

import (
	"sync"
	"time"

	"github.com/haryoiro/orderdesk/internal/constants"
)

// KeyDebouncer helps prevent key repeat flooding.
type KeyDebouncer struct {
	mu              sync.Mutex
	now             func() time.Time
	lastKeyTime     map[string]time.Time
	repeatDelay     time.Duration
	initialDelay    time.Duration
	resetAfter      time.Duration
	consecutiveKeys map[string]int
}

// NewKeyDebouncer creates a new key debouncer.
func NewKeyDebouncer() *KeyDebouncer {
	return &KeyDebouncer{
		now:             time.Now,
		lastKeyTime:     make(map[string]time.Time),
		repeatDelay:     constants.KeyRepeatDelay,
		initialDelay:    constants.KeyInitialDelay,
		resetAfter:      constants.KeyRepeatResetDelay,
		consecutiveKeys: make(map[string]int),
	}
}

// ShouldProcess returns true if the key event should be processed.
// The first presses of a held key wait initialDelay, later ones repeatDelay.
func (kd *KeyDebouncer) ShouldProcess(key string) bool {
	kd.mu.Lock()
	defer kd.mu.Unlock()

	now := kd.now()
	lastTime, exists := kd.lastKeyTime[key]

	if !exists || now.Sub(lastTime) > kd.resetAfter {
		kd.lastKeyTime[key] = now
		kd.consecutiveKeys[key] = 1
		return true
	}

	requiredDelay := kd.repeatDelay
	if kd.consecutiveKeys[key] < 3 {
		requiredDelay = kd.initialDelay
	}

	if now.Sub(lastTime) >= requiredDelay {
		kd.consecutiveKeys[key]++
		kd.lastKeyTime[key] = now
		return true
	}

	// Too soon, skip this key press
	return false
}

// Reset clears the debouncer state for a specific key.
func (kd *KeyDebouncer) Reset(key string) {
	kd.mu.Lock()
	defer kd.mu.Unlock()
	delete(kd.lastKeyTime, key)
	delete(kd.consecutiveKeys, key)
}

// ResetAll clears all debouncer state.
func (kd *KeyDebouncer) ResetAll() {
	kd.mu.Lock()
	defer kd.mu.Unlock()
	kd.lastKeyTime = make(map[string]time.Time)
	kd.consecutiveKeys = make(map[string]int)
}
