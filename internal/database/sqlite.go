package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/haryoiro/orderdesk/internal/constants"
	"github.com/haryoiro/orderdesk/internal/structures"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps the local order cache in a single SQLite file.
type SQLiteStore struct {
	mu   sync.RWMutex
	db   *sql.DB
	path string
}

var _ OrderSource = (*SQLiteStore)(nil)

// OpenSQLite opens or creates the order cache at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		fmt.Sprintf("PRAGMA cache_size = %d", constants.DefaultCacheSize),
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	store := &SQLiteStore{
		db:   db,
		path: path,
	}

	if err := store.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			order_id TEXT PRIMARY KEY,
			customer TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			currency TEXT NOT NULL,
			total_minor INTEGER NOT NULL DEFAULT 0,
			items TEXT NOT NULL, -- JSON array
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

const orderColumns = `order_id, customer, email, status, currency, total_minor, items, created_at`

// Path returns the file the store was opened from.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Page returns up to limit orders starting at offset, newest first.
func (s *SQLiteStore) Page(ctx context.Context, offset, limit int) ([]structures.Order, error) {
	if offset < 0 || limit <= 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_at DESC, order_id
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query page: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// Search matches query as a case-insensitive substring of the order ID,
// customer or email. An empty query behaves like the first page.
func (s *SQLiteStore) Search(ctx context.Context, query string, limit int) ([]structures.Order, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.Page(ctx, 0, limit)
	}
	if limit <= 0 {
		return nil, nil
	}

	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE lower(order_id) LIKE ? ESCAPE '\'
		   OR lower(customer) LIKE ? ESCAPE '\'
		   OR lower(email) LIKE ? ESCAPE '\'
		ORDER BY created_at DESC, order_id
		LIMIT ?
	`, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search orders: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// Get returns a single order or ErrNotFound.
func (s *SQLiteStore) Get(ctx context.Context, orderID string) (*structures.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_id = ?`, orderID)
	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, orderID)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Add inserts or replaces orders in one transaction.
func (s *SQLiteStore) Add(ctx context.Context, orders ...structures.Order) error {
	if len(orders) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO orders (`+orderColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, o := range orders {
		if o.OrderID == "" {
			return errors.New("order without ID")
		}
		items := o.Items
		if items == nil {
			items = []structures.OrderItem{}
		}
		itemsJSON, err := json.Marshal(items)
		if err != nil {
			return fmt.Errorf("failed to marshal items of %s: %w", o.OrderID, err)
		}
		created := o.CreatedAt
		if created.IsZero() {
			created = time.Now()
		}
		if _, err := stmt.ExecContext(ctx,
			o.OrderID,
			o.Customer,
			o.Email,
			string(o.Status),
			o.Currency,
			o.TotalMinor,
			string(itemsJSON),
			created.UTC(),
		); err != nil {
			return fmt.Errorf("failed to insert %s: %w", o.OrderID, err)
		}
	}

	return tx.Commit()
}

// Count returns the number of cached orders.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (structures.Order, error) {
	var o structures.Order
	var status, itemsJSON string

	err := row.Scan(
		&o.OrderID,
		&o.Customer,
		&o.Email,
		&status,
		&o.Currency,
		&o.TotalMinor,
		&itemsJSON,
		&o.CreatedAt,
	)
	if err != nil {
		return o, err
	}

	o.Status = structures.OrderStatus(status)
	if err := json.Unmarshal([]byte(itemsJSON), &o.Items); err != nil {
		return o, fmt.Errorf("failed to decode items of %s: %w", o.OrderID, err)
	}
	return o, nil
}

func scanOrders(rows *sql.Rows) ([]structures.Order, error) {
	var orders []structures.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
