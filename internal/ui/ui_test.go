package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/haryoiro/orderdesk/internal/config"
	"github.com/haryoiro/orderdesk/internal/database"
	"github.com/haryoiro/orderdesk/internal/structures"
	"github.com/haryoiro/orderdesk/internal/systems"
)

type memStore struct {
	mu     sync.Mutex
	orders []structures.Order
}

func newMemStore(n int) *memStore {
	s := &memStore{}
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		s.orders = append(s.orders, structures.Order{
			OrderID:    fmt.Sprintf("ord-%05d", i),
			Customer:   fmt.Sprintf("Customer %d", i),
			Email:      fmt.Sprintf("c%d@example.com", i),
			Status:     structures.OrderPaid,
			Currency:   "USD",
			TotalMinor: int64(1000 + i),
			Items:      []structures.OrderItem{{ProductID: "SKU-1", Name: "Desk mat", Quantity: 1, PriceMinor: int64(1000 + i)}},
			CreatedAt:  base.Add(-time.Duration(i) * time.Minute),
		})
	}
	return s
}

func (s *memStore) Page(_ context.Context, offset, limit int) ([]structures.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
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
	return nil, database.ErrNotFound
}

func (s *memStore) Add(context.Context, ...structures.Order) error { return nil }

func (s *memStore) Count(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders), nil
}

func (s *memStore) Close() error { return nil }

func newTestModel(t *testing.T, n int) (*Model, *systems.Systems) {
	t.Helper()
	cfg := config.Default()
	cfg.Store.PageSize = 50
	cfg.Performance.DetailMountMs = 0

	sys := systems.New(cfg, newMemStore(n), "")
	if err := sys.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { sys.Stop() })

	m := NewModel(sys, cfg)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 20})
	t.Cleanup(m.Close)
	return m, sys
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelShowsFirstPage(t *testing.T) {
	m, _ := newTestModel(t, 120)

	view := m.View()
	if !strings.Contains(view, "Orders 50/120") {
		t.Fatalf("header missing from view:\n%s", view)
	}
	if !strings.Contains(view, "ord-0000") {
		t.Fatalf("first row missing from view:\n%s", view)
	}
	if lines := strings.Count(view, "\n") + 1; lines > 20 {
		t.Fatalf("view has %d lines, terminal has 20", lines)
	}
}

func TestModelLoadsMoreAtEnd(t *testing.T) {
	m, sys := newTestModel(t, 120)

	m.Update(runes("G"))
	if !m.list.EmptyState().Loading() {
		t.Fatalf("reaching the end did not start loading")
	}

	msg := m.loadMore()()
	m.Update(msg)
	if m.list.Len() != 100 || sys.Loader.Exhausted() {
		t.Fatalf("after load more: %d rows, exhausted %v", m.list.Len(), sys.Loader.Exhausted())
	}

	m.Update(m.loadMore()())
	if m.list.Len() != 120 || !sys.Loader.Exhausted() {
		t.Fatalf("after last page: %d rows, exhausted %v", m.list.Len(), sys.Loader.Exhausted())
	}
	if m.loadMore() != nil {
		t.Fatalf("exhausted loader still loads")
	}
}

func TestModelSearchFlow(t *testing.T) {
	m, _ := newTestModel(t, 120)

	m.Update(runes("/"))
	if m.focus != FocusSearch {
		t.Fatalf("focus = %v, want search", m.focus)
	}

	m.Update(runes("ord-0001"))
	if m.query.Immediate() != "ord-0001" || !m.query.Pending() {
		t.Fatalf("query not pending: %q", m.query.Immediate())
	}
	if m.list.Len() != 50 {
		t.Fatalf("list changed before the query settled")
	}

	cmd := m.handleKeyPress(tea.KeyMsg{Type: tea.KeyEnter})
	if m.focus != FocusList || m.query.Settled() != "ord-0001" {
		t.Fatalf("enter did not apply the query")
	}
	m.Update(cmd())

	if m.list.Len() != 10 {
		t.Fatalf("search rows = %d, want 10", m.list.Len())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.searching || m.list.Len() != 50 || m.search.Value() != "" {
		t.Fatalf("esc did not clear the search: %d rows", m.list.Len())
	}
}

func TestModelPageLoadKeepsSearchLoading(t *testing.T) {
	m, _ := newTestModel(t, 120)
	page := m.loadMore()

	m.Update(runes("/"))
	m.Update(runes("ord-0001"))
	search := m.handleKeyPress(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.list.EmptyState().Loading() {
		t.Fatalf("search did not start loading")
	}

	m.Update(page())
	if !m.list.EmptyState().Loading() {
		t.Fatalf("page load cleared the search's loading state")
	}
	if m.list.Len() != 50 {
		t.Fatalf("page load replaced the list during a search: %d rows", m.list.Len())
	}

	m.Update(search())
	if m.list.EmptyState().Loading() || m.list.Len() != 10 {
		t.Fatalf("search results: loading %v, %d rows", m.list.EmptyState().Loading(), m.list.Len())
	}
}

func TestModelConfigListenerEndsOnStop(t *testing.T) {
	m, sys := newTestModel(t, 5)
	listen := m.listenForConfig()
	if err := sys.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if msg := listen(); msg != nil {
		t.Fatalf("listener delivered %T after Stop", msg)
	}
}

func TestModelDropsStaleSearchResults(t *testing.T) {
	m, _ := newTestModel(t, 20)

	m.Update(runes("/"))
	m.Update(runes("ord-0001"))
	cmd := m.handleKeyPress(tea.KeyMsg{Type: tea.KeyEnter})
	stale := cmd()

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m.Update(stale)

	if m.list.Len() != 20 {
		t.Fatalf("stale results replaced the list: %d rows", m.list.Len())
	}
}

func TestModelSearchWithoutMatches(t *testing.T) {
	m, _ := newTestModel(t, 20)

	m.Update(runes("/"))
	m.Update(runes("nothing"))
	m.Update(m.handleKeyPress(tea.KeyMsg{Type: tea.KeyEnter})())

	if got := m.list.View(); !strings.Contains(got, `No orders match "nothing"`) {
		t.Fatalf("empty view = %q", got)
	}
}

func TestModelDetailFollowsSelection(t *testing.T) {
	m, _ := newTestModel(t, 10)
	m.Init()

	if m.detail == nil || !m.detail.Mounted() || m.detailID != "ord-00000" {
		t.Fatalf("detail not mounted for the first order")
	}
	first := m.detail

	m.Update(runes("j"))
	if m.detailID != "ord-00001" || m.detail == first {
		t.Fatalf("detail did not follow selection, id %q", m.detailID)
	}
	if !strings.Contains(m.View(), "Customer 1") {
		t.Fatalf("detail pane missing from view")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.focus != FocusDetail {
		t.Fatalf("select did not expand the detail pane")
	}
	if !strings.Contains(m.View(), "c1@example.com") {
		t.Fatalf("expanded detail missing email")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.focus != FocusList {
		t.Fatalf("back did not return to the list")
	}
}

func TestModelCloseStopsTimers(t *testing.T) {
	m, sys := newTestModel(t, 10)

	if !sys.Timers.Running("list:orders") {
		t.Fatalf("list timer not running after the first data change")
	}

	cmd := m.handleKeyPress(tea.KeyMsg{Type: tea.KeyCtrlD})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("quit key did not quit")
	}
	if sys.Timers.Running("list:orders") {
		t.Fatalf("Close left the list timer running")
	}

	if _, cmd := m.Update(runes("j")); cmd != nil {
		t.Fatalf("closed model still produces commands")
	}
	m.Close()
}

func TestModelAppliesReloadedConfig(t *testing.T) {
	m, _ := newTestModel(t, 10)

	cfg := config.Default()
	cfg.KeyBindings.Search = "?"
	m.Update(configUpdatedMsg{config: cfg})

	m.Update(runes("/"))
	if m.focus == FocusSearch {
		t.Fatalf("old search key still bound")
	}
	m.Update(runes("?"))
	if m.focus != FocusSearch {
		t.Fatalf("new search key not bound")
	}
}

func TestModelMouseSelectsRow(t *testing.T) {
	m, _ := newTestModel(t, 10)

	m.Update(tea.MouseMsg{X: 2, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.list.SelectedIndex() != 3 {
		t.Fatalf("SelectedIndex = %d, want 3", m.list.SelectedIndex())
	}
}

func TestRenderOrderRowFillsWidth(t *testing.T) {
	m, _ := newTestModel(t, 1)
	o := structures.Order{
		OrderID:    "0f8fad5b-d9cb-469f-a165-70867728950e",
		Customer:   "Grace Hopper",
		Status:     structures.OrderShipped,
		Currency:   "USD",
		TotalMinor: 123450,
	}

	row := m.renderOrderRow(o, 0, false, 80)
	if lipgloss.Width(row) != 80 {
		t.Fatalf("row width = %d, want 80: %q", lipgloss.Width(row), row)
	}
	for _, want := range []string{"0f8fad5b", "Grace Hopper", "shipped", "$1,234.50"} {
		if !strings.Contains(row, want) {
			t.Fatalf("row %q lacks %q", row, want)
		}
	}
}
