package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/haryoiro/orderdesk/internal/constants"
	"github.com/haryoiro/orderdesk/internal/logger"
)

const (
	emptyText   = "No orders in the local cache"
	loadingText = "Loading orders"
)

// loadMore fetches the next page. Repeated calls while a page is in flight
// share the same query in the loader.
func (m *Model) loadMore() tea.Cmd {
	loader := m.systems.Loader
	if m.searching || loader.Exhausted() {
		return nil
	}

	m.list.SetLoading(true)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.StoreQueryTimeout)
		defer cancel()
		orders, err := loader.LoadMore(ctx)
		return ordersLoadedMsg{orders: orders, err: err}
	}
}

// reload drops the paged orders and loads the first page again.
func (m *Model) reload() tea.Cmd {
	loader := m.systems.Loader
	m.list.SetLoading(true)

	refresh := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.StoreQueryTimeout)
		defer cancel()
		orders, err := loader.Refresh(ctx)
		return ordersLoadedMsg{orders: orders, err: err}
	}
	if m.searching {
		return tea.Batch(refresh, m.runQuery(m.query.Settled()))
	}
	return refresh
}

// runQuery switches the list to search results for query, or back to the
// paged orders when query is blank.
func (m *Model) runQuery(query string) tea.Cmd {
	query = strings.TrimSpace(query)
	if query == "" {
		m.searching = false
		m.list.SetLoading(false)
		m.list.EmptyState().SetTexts(emptyText, loadingText)
		return m.list.SetItems(m.systems.Loader.Orders())
	}

	m.searching = true
	m.list.SetLoading(true)
	loader := m.systems.Loader
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.StoreQueryTimeout)
		defer cancel()
		orders, err := loader.Search(ctx, query)
		return searchResultsMsg{query: query, orders: orders, err: err}
	}
}

func (m *Model) handleOrdersLoaded(msg ordersLoadedMsg) tea.Cmd {
	if msg.err != nil {
		logger.Error("Failed to load orders: %v", msg.err)
		m.err = msg.err
		if !m.searching {
			m.list.SetLoading(false)
		}
		return nil
	}
	m.err = nil
	// The search owns the list and its loading state
	if m.searching {
		return nil
	}
	m.list.SetLoading(false)
	return m.list.SetItems(msg.orders)
}

func (m *Model) handleSearchResults(msg searchResultsMsg) tea.Cmd {
	// Results for a query the user already moved away from
	if !m.searching || msg.query != strings.TrimSpace(m.query.Settled()) {
		return nil
	}

	m.list.SetLoading(false)
	if msg.err != nil {
		logger.Error("Search failed: %v", msg.err)
		m.err = msg.err
		return nil
	}
	m.err = nil
	m.list.EmptyState().SetTexts(fmt.Sprintf("No orders match %q", msg.query), loadingText)
	return m.list.SetItems(msg.orders)
}

// listenForConfig waits for the next hot-reloaded config.
func (m *Model) listenForConfig() tea.Cmd {
	updates := m.systems.Updates()
	return func() tea.Msg {
		cfg, ok := <-updates
		if !ok {
			return nil
		}
		return configUpdatedMsg{config: cfg}
	}
}
