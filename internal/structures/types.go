package structures

import (
	"time"
)

// OrderStatus represents the fulfilment state of an order
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderItem is a single line of an order
type OrderItem struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	PriceMinor int64  `json:"price_minor"` // unit price in minor currency units
}

// Order represents an order as cached from the backend
type Order struct {
	OrderID    string      `json:"order_id"`
	Customer   string      `json:"customer"`
	Email      string      `json:"email"`
	Status     OrderStatus `json:"status"`
	Currency   string      `json:"currency"`
	TotalMinor int64       `json:"total_minor"`
	Items      []OrderItem `json:"items"`
	CreatedAt  time.Time   `json:"created_at"`
}

// ListConfig holds the windowing knobs of a list render pass.
// Zero values mean "use the process-wide default".
type ListConfig struct {
	InitialNumToRender          int     `toml:"initial_num_to_render" yaml:"initial_num_to_render"`
	WindowSize                  int     `toml:"window_size" yaml:"window_size"`
	MaxToRenderPerBatch         int     `toml:"max_to_render_per_batch" yaml:"max_to_render_per_batch"`
	UpdateCellsBatchingPeriodMs int     `toml:"update_cells_batching_period_ms" yaml:"update_cells_batching_period_ms"`
	OnEndReachedThreshold       float64 `toml:"on_end_reached_threshold" yaml:"on_end_reached_threshold"`
}

// BatchingPeriod returns the batching period as a duration
func (c ListConfig) BatchingPeriod() time.Duration {
	return time.Duration(c.UpdateCellsBatchingPeriodMs) * time.Millisecond
}

// PerformanceConfig controls render instrumentation
type PerformanceConfig struct {
	Enabled           bool `toml:"enabled" yaml:"enabled"`
	RenderThresholdMs int  `toml:"render_threshold_ms" yaml:"render_threshold_ms"`
	SearchDebounceMs  int  `toml:"search_debounce_ms" yaml:"search_debounce_ms"`
	DetailMountMs     int  `toml:"detail_mount_ms" yaml:"detail_mount_ms"`
}

// RenderThreshold returns the diagnostic threshold as a duration
func (c PerformanceConfig) RenderThreshold() time.Duration {
	return time.Duration(c.RenderThresholdMs) * time.Millisecond
}

// SearchDebounce returns the search debounce delay as a duration
func (c PerformanceConfig) SearchDebounce() time.Duration {
	return time.Duration(c.SearchDebounceMs) * time.Millisecond
}

// DetailMount returns the detail pane mount delay as a duration
func (c PerformanceConfig) DetailMount() time.Duration {
	return time.Duration(c.DetailMountMs) * time.Millisecond
}

// StoreConfig controls the local order cache
type StoreConfig struct {
	Path     string `toml:"path" yaml:"path"`
	PageSize int    `toml:"page_size" yaml:"page_size"`
	Currency string `toml:"currency" yaml:"currency"`
}

// LogConfig controls the log file
type LogConfig struct {
	Level      string `toml:"level" yaml:"level"`
	MaxSizeMB  int    `toml:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days" yaml:"max_age_days"`
	Compress   bool   `toml:"compress" yaml:"compress"`
}

// Config represents the application configuration
type Config struct {
	Theme       Theme             `toml:"theme" yaml:"theme"`
	KeyBindings KeyBindings       `toml:"key_bindings" yaml:"key_bindings"`
	List        ListConfig        `toml:"list" yaml:"list"`
	Performance PerformanceConfig `toml:"performance" yaml:"performance"`
	Store       StoreConfig       `toml:"store" yaml:"store"`
	Log         LogConfig         `toml:"log" yaml:"log"`

	// UI Configuration
	DisableAltScreen bool `toml:"disable_alt_screen" yaml:"disable_alt_screen"`
}

// Theme represents the UI theme configuration
type Theme struct {
	Foreground string `toml:"foreground" yaml:"foreground"` // Default text color
	Selected   string `toml:"selected" yaml:"selected"`     // Selected row color
	Muted      string `toml:"muted" yaml:"muted"`           // Placeholder and hint color
	Warning    string `toml:"warning" yaml:"warning"`       // Status bar warning color
	Border     string `toml:"border" yaml:"border"`         // Border color
}

// KeyBindings represents configurable keyboard shortcuts
type KeyBindings struct {
	Quit     string   `toml:"quit" yaml:"quit"`
	MoveUp   []string `toml:"move_up" yaml:"move_up"`
	MoveDown []string `toml:"move_down" yaml:"move_down"`
	PageUp   string   `toml:"page_up" yaml:"page_up"`
	PageDown string   `toml:"page_down" yaml:"page_down"`
	Top      string   `toml:"top" yaml:"top"`
	Bottom   string   `toml:"bottom" yaml:"bottom"`
	Search   string   `toml:"search" yaml:"search"`
	Select   []string `toml:"select" yaml:"select"`
	Back     []string `toml:"back" yaml:"back"`
	Reload   string   `toml:"reload" yaml:"reload"`
}
