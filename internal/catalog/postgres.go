package catalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/brewmatch/internal/matcher"
)

// PostgresSource reads the catalog from an inventory database. Expected
// schema:
//
//	product(product_id text primary key, name text, description text)
//	product_stock(product_id text, amount double precision)
type PostgresSource struct {
	db *sql.DB
}

// OpenPostgres connects to the inventory database.
func OpenPostgres(dsn string) (*PostgresSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)

	return &PostgresSource{db: db}, nil
}

// Close closes the database connection.
func (s *PostgresSource) Close() error {
	return s.db.Close()
}

// Entries loads the full product list.
func (s *PostgresSource) Entries(ctx context.Context) ([]matcher.CatalogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product_id, name, COALESCE(description, '')
		FROM product
		ORDER BY product_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var entries []matcher.CatalogEntry
	for rows.Next() {
		var entry matcher.CatalogEntry
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.Description); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Stock loads on-hand quantities keyed by product id.
func (s *PostgresSource) Stock(ctx context.Context) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product_id, SUM(amount)
		FROM product_stock
		GROUP BY product_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock: %w", err)
	}
	defer rows.Close()

	stock := make(map[string]float64)
	for rows.Next() {
		var id string
		var amount float64
		if err := rows.Scan(&id, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan stock row: %w", err)
		}
		stock[id] = amount
	}
	return stock, rows.Err()
}
