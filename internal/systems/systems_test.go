package systems

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/haryoiro/orderdesk/internal/config"
	"github.com/haryoiro/orderdesk/internal/database"
	"github.com/haryoiro/orderdesk/internal/structures"
)

type memStore struct {
	mu        sync.Mutex
	orders    []structures.Order
	pageCalls int
	failPage  error
	closed    bool
}

func newMemStore(n int) *memStore {
	s := &memStore{}
	for i := 0; i < n; i++ {
		s.orders = append(s.orders, structures.Order{OrderID: fmt.Sprintf("o-%03d", i), Customer: "c"})
	}
	return s
}

func (s *memStore) Page(_ context.Context, offset, limit int) ([]structures.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pageCalls++
	if s.failPage != nil {
		return nil, s.failPage
	}
	if offset >= len(s.orders) {
		return nil, nil
	}
	end := min(offset+limit, len(s.orders))
	return append([]structures.Order(nil), s.orders[offset:end]...), nil
}

func (s *memStore) Search(_ context.Context, query string, limit int) ([]structures.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []structures.Order
	for _, o := range s.orders {
		if strings.Contains(o.OrderID, query) && len(out) < limit {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *memStore) Get(_ context.Context, id string) (*structures.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.OrderID == id {
			return &o, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *memStore) Add(_ context.Context, orders ...structures.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, orders...)
	return nil
}

func (s *memStore) Count(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders), nil
}

func (s *memStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *memStore) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageCalls
}

func TestOrderLoaderPagesUntilExhausted(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(7)
	l := NewOrderLoader(store, 3)

	for _, want := range []int{3, 6, 7} {
		got, err := l.LoadMore(ctx)
		if err != nil {
			t.Fatalf("LoadMore: %v", err)
		}
		if len(got) != want {
			t.Fatalf("loaded %d, want %d", len(got), want)
		}
	}
	if !l.Exhausted() {
		t.Fatalf("short page should exhaust the loader")
	}

	calls := store.calls()
	if _, err := l.LoadMore(ctx); err != nil {
		t.Fatalf("LoadMore: %v", err)
	}
	if store.calls() != calls {
		t.Fatalf("exhausted loader queried the store again")
	}
}

func TestOrderLoaderConcurrentLoadMoreKeepsOrder(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(100)
	l := NewOrderLoader(store, 10)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.LoadMore(ctx); err != nil {
				t.Errorf("LoadMore: %v", err)
			}
		}()
	}
	wg.Wait()

	got := l.Orders()
	if len(got) == 0 || len(got)%10 != 0 {
		t.Fatalf("loaded %d orders, want whole pages", len(got))
	}
	for i, o := range got {
		if o.OrderID != fmt.Sprintf("o-%03d", i) {
			t.Fatalf("order %d = %s, pages duplicated or reordered", i, o.OrderID)
		}
	}
}

func TestOrderLoaderResetAndErrors(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(5)
	l := NewOrderLoader(store, 2)

	if _, err := l.LoadMore(ctx); err != nil {
		t.Fatalf("LoadMore: %v", err)
	}
	got, err := l.Refresh(ctx)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(got) != 2 || l.Total() != 5 || l.Exhausted() {
		t.Fatalf("after refresh: %d orders, total %d", len(got), l.Total())
	}

	boom := errors.New("disk on fire")
	store.mu.Lock()
	store.failPage = boom
	store.mu.Unlock()

	if _, err := l.LoadMore(ctx); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
	if len(l.Orders()) != 2 {
		t.Fatalf("failed page changed the loaded set")
	}
}

func TestOrderLoaderSearch(t *testing.T) {
	l := NewOrderLoader(newMemStore(30), 10)
	got, err := l.Search(context.Background(), "o-01")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("Search returned %d orders, want 10", len(got))
	}
	if len(l.Orders()) != 0 {
		t.Fatalf("search results leaked into the paged set")
	}
}

func TestSystemsStartWarmsLoader(t *testing.T) {
	cfg := config.Default()
	cfg.Store.PageSize = 4
	store := newMemStore(10)

	s := New(cfg, store, "")
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.Loader.Total() != 10 || len(s.Loader.Orders()) != 4 {
		t.Fatalf("total %d, loaded %d", s.Loader.Total(), len(s.Loader.Orders()))
	}

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if !store.closed {
		t.Fatalf("Stop did not close the store")
	}
}

func TestSystemsApplyConfigKeepsNewest(t *testing.T) {
	cfg := config.Default()
	s := New(cfg, newMemStore(0), "")

	first := config.Default()
	first.Performance.RenderThresholdMs = 40
	second := config.Default()
	second.Performance.RenderThresholdMs = 80
	second.Performance.Enabled = false

	s.ApplyConfig(first)
	s.ApplyConfig(second)

	if s.Reporter.Threshold() != 80*time.Millisecond {
		t.Fatalf("threshold = %v", s.Reporter.Threshold())
	}
	select {
	case got := <-s.Updates():
		if got != second {
			t.Fatalf("stale config delivered")
		}
	default:
		t.Fatalf("no update delivered")
	}
	select {
	case <-s.Updates():
		t.Fatalf("more than one pending update")
	default:
	}
}

func TestSystemsStopClosesUpdates(t *testing.T) {
	s := New(config.Default(), newMemStore(0), "")
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	select {
	case cfg, ok := <-s.Updates():
		if ok {
			t.Fatalf("received %v from a stopped container", cfg)
		}
	case <-time.After(time.Second):
		t.Fatalf("Updates still open after Stop")
	}

	// Late reloads after shutdown are dropped, not sent on a closed channel.
	s.ApplyConfig(config.Default())
}

func TestSystemsHotReloadsThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := config.Default()
	if err := config.Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s := New(cfg, newMemStore(3), path)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	// Let the watcher goroutine register before writing.
	time.Sleep(50 * time.Millisecond)

	updated := config.Default()
	updated.Performance.RenderThresholdMs = 99
	if err := config.Save(updated, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	select {
	case got := <-s.Updates():
		if got.Performance.RenderThresholdMs != 99 {
			t.Fatalf("reloaded threshold = %d", got.Performance.RenderThresholdMs)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("config change not picked up")
	}
	if s.Reporter.Threshold() != 99*time.Millisecond {
		t.Fatalf("reporter threshold = %v", s.Reporter.Threshold())
	}
}
