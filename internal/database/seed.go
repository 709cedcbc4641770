package database

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/haryoiro/orderdesk/internal/structures"
)

var (
	seedFirstNames = []string{"Ada", "Grace", "Linus", "Ken", "Barbara", "Dennis", "Radia", "Edsger", "Frances", "Niklaus", "Yukihiro", "Rob"}
	seedLastNames  = []string{"Lovelace", "Hopper", "Torvalds", "Thompson", "Liskov", "Ritchie", "Perlman", "Dijkstra", "Allen", "Wirth", "Matsumoto", "Pike"}
	seedProducts   = []struct {
		name  string
		price int64
	}{
		{"Mechanical keyboard", 12900},
		{"USB-C cable", 1299},
		{"27\" monitor", 32900},
		{"Laptop stand", 4550},
		{"Noise cancelling headphones", 24999},
		{"Webcam", 6900},
		{"Desk mat", 2500},
		{"Trackball", 8999},
	}
	seedStatuses = []structures.OrderStatus{
		structures.OrderPending,
		structures.OrderPaid,
		structures.OrderShipped,
		structures.OrderDelivered,
		structures.OrderCancelled,
	}
)

// GenerateOrders builds n pseudo-random orders. The same seed always yields
// the same orders, IDs included.
func GenerateOrders(n int, seed int64, currency string, now time.Time) ([]structures.Order, error) {
	rng := rand.New(rand.NewSource(seed))
	orders := make([]structures.Order, 0, n)

	for i := 0; i < n; i++ {
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return nil, fmt.Errorf("failed to generate order id: %w", err)
		}

		first := seedFirstNames[rng.Intn(len(seedFirstNames))]
		last := seedLastNames[rng.Intn(len(seedLastNames))]

		o := structures.Order{
			OrderID:   id.String(),
			Customer:  first + " " + last,
			Email:     strings.ToLower(first+"."+last) + "@example.com",
			Status:    seedStatuses[rng.Intn(len(seedStatuses))],
			Currency:  currency,
			CreatedAt: now.Add(-time.Duration(i) * 17 * time.Minute),
		}

		for j, lines := 0, 1+rng.Intn(4); j < lines; j++ {
			p := seedProducts[rng.Intn(len(seedProducts))]
			item := structures.OrderItem{
				ProductID:  fmt.Sprintf("SKU-%04d", rng.Intn(10000)),
				Name:       p.name,
				Quantity:   1 + rng.Intn(3),
				PriceMinor: p.price,
			}
			o.Items = append(o.Items, item)
			o.TotalMinor += item.PriceMinor * int64(item.Quantity)
		}

		orders = append(orders, o)
	}

	return orders, nil
}

// Seed fills the store with n generated orders.
func Seed(ctx context.Context, store OrderSource, n int, seed int64, currency string) error {
	orders, err := GenerateOrders(n, seed, currency, time.Now())
	if err != nil {
		return err
	}
	return store.Add(ctx, orders...)
}
