package constants

import "time"

// List windowing defaults
const (
	ListInitialItems       = 10 // LIST_INITIAL_ITEMS
	ListWindowSize         = 5  // LIST_WINDOW_SIZE, in viewport heights
	BatchSize              = 10 // BATCH_SIZE
	ListBatchingPeriod     = 50 * time.Millisecond
	ListEndReachedFraction = 0.5
)

// Performance constants
const (
	RenderThreshold = 16 * time.Millisecond // RENDER_THRESHOLD, ~one frame at 60 FPS
	ListTimerPrefix = "list:"
)

// Timing constants
const (
	SearchDebounceDelay  = 300 * time.Millisecond
	DetailMountDelay     = 150 * time.Millisecond
	ConfigReloadDebounce = 200 * time.Millisecond
	KeyRepeatDelay       = 50 * time.Millisecond
	KeyInitialDelay      = 300 * time.Millisecond
	KeyRepeatResetDelay  = 500 * time.Millisecond
	MouseScrollCooldown  = 20 * time.Millisecond
	StoreQueryTimeout    = 10 * time.Second
)

// UI constants
const (
	DefaultStatusHeight = 1
	DefaultSearchHeight = 1
	DefaultDetailWidth  = 38
	MinVisibleItems     = 3
	MinWidthForDetail   = 80
	ShortIDWidth        = 8
	StatusColumnWidth   = 10
	TotalColumnWidth    = 14
)

// Order cache constants
const (
	DefaultPageSize  = 50
	MaxSearchResults = 50
	DefaultCacheSize = 10000
)

// Log rotation defaults
const (
	DefaultLogMaxSizeMB  = 20
	DefaultLogMaxBackups = 5
	DefaultLogMaxAgeDays = 7
)
