package database

import (
	"context"
	"errors"

	"github.com/haryoiro/orderdesk/internal/structures"
)

// ErrNotFound is returned by Get when no order has the requested ID.
var ErrNotFound = errors.New("order not found")

// OrderSource is the paged order store behind the orders screen.
// Pages are ordered newest first.
type OrderSource interface {
	Page(ctx context.Context, offset, limit int) ([]structures.Order, error)
	Search(ctx context.Context, query string, limit int) ([]structures.Order, error)
	Get(ctx context.Context, orderID string) (*structures.Order, error)
	Add(ctx context.Context, orders ...structures.Order) error
	Count(ctx context.Context) (int, error)
	Close() error
}
