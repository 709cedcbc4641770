package systems

import (
	"context"
	"fmt"
	"sync"

	"github.com/haryoiro/orderdesk/internal/constants"
	"github.com/haryoiro/orderdesk/internal/database"
	"github.com/haryoiro/orderdesk/internal/logger"
	"github.com/haryoiro/orderdesk/internal/structures"
	"golang.org/x/sync/singleflight"
)

// OrderLoader pages orders out of the store for the orders list.
// Concurrent LoadMore calls for the same offset share one query.
type OrderLoader struct {
	store    database.OrderSource
	pageSize int
	group    singleflight.Group

	mu         sync.RWMutex
	orders     []structures.Order
	total      int
	exhausted  bool
	generation int
}

// NewOrderLoader creates a loader fetching pageSize orders per page.
func NewOrderLoader(store database.OrderSource, pageSize int) *OrderLoader {
	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}
	return &OrderLoader{
		store:    store,
		pageSize: pageSize,
	}
}

// LoadMore fetches the page after the orders loaded so far and returns a
// snapshot of everything loaded. Once a short page has arrived the loader is
// exhausted and LoadMore stops querying.
func (l *OrderLoader) LoadMore(ctx context.Context) ([]structures.Order, error) {
	l.mu.RLock()
	offset := len(l.orders)
	gen := l.generation
	exhausted := l.exhausted
	l.mu.RUnlock()

	if exhausted {
		return l.Orders(), nil
	}

	key := fmt.Sprintf("%d:%d", gen, offset)
	_, err, shared := l.group.Do(key, func() (interface{}, error) {
		page, err := l.store.Page(ctx, offset, l.pageSize)
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		defer l.mu.Unlock()

		// A reset or another page landed while we were querying.
		if gen != l.generation || len(l.orders) != offset {
			return nil, nil
		}
		l.orders = append(l.orders, page...)
		if len(page) < l.pageSize {
			l.exhausted = true
		}
		logger.Debug("Loaded %d orders at offset %d", len(page), offset)
		return nil, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load orders at offset %d: %w", offset, err)
	}
	if shared {
		logger.Debug("Shared in-flight page at offset %d", offset)
	}

	return l.Orders(), nil
}

// Refresh counts the store and reloads the first page.
func (l *OrderLoader) Refresh(ctx context.Context) ([]structures.Order, error) {
	l.Reset()
	if _, err := l.Count(ctx); err != nil {
		return nil, err
	}
	return l.LoadMore(ctx)
}

// Count queries the store size and remembers it for Total.
func (l *OrderLoader) Count(ctx context.Context) (int, error) {
	n, err := l.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	l.mu.Lock()
	l.total = n
	l.mu.Unlock()
	return n, nil
}

// Search runs a store search; results are not merged into the paged set.
func (l *OrderLoader) Search(ctx context.Context, query string) ([]structures.Order, error) {
	v, err, _ := l.group.Do("search:"+query, func() (interface{}, error) {
		return l.store.Search(ctx, query, constants.MaxSearchResults)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search orders for %q: %w", query, err)
	}
	return v.([]structures.Order), nil
}

// Reset drops everything loaded so far. In-flight pages are discarded.
func (l *OrderLoader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.orders = nil
	l.exhausted = false
	l.generation++
}

// Orders returns a copy of the loaded orders.
func (l *OrderLoader) Orders() []structures.Order {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]structures.Order, len(l.orders))
	copy(out, l.orders)
	return out
}

// Exhausted reports whether the last page has been loaded.
func (l *OrderLoader) Exhausted() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.exhausted
}

// Total returns the store size seen by the last Count.
func (l *OrderLoader) Total() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.total
}
