package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
)

type seedCustomer struct {
	id         int
	name       string
	signupDate string
}

type seedOrder struct {
	id         int
	customerID int
	amount     float64
	orderDate  string
}

var seedCustomers = []seedCustomer{
	{1, "John Smith", "2025-01-15"},
	{2, "Jane Doe", "2025-02-20"},
	{3, "Bob Johnson", "2025-03-10"},
	{4, "Alice Brown", "2025-04-05"},
	{5, "Charlie Wilson", "2025-05-12"},
	{6, "Diana Davis", "2025-06-18"},
	{7, "Eve Miller", "2025-07-03"},
	{8, "Frank Garcia", "2025-08-25"},
	{9, "Grace Lee", "2025-09-14"},
	{10, "Henry Taylor", "2025-10-30"},
}

var seedOrders = []seedOrder{
	{1, 1, 150.00, "2025-01-20"},
	{2, 1, 75.50, "2025-02-15"},
	{3, 2, 1200.00, "2025-02-25"},
	{4, 3, 89.99, "2025-03-15"},
	{5, 4, 450.00, "2025-04-10"},
	{6, 5, 200.00, "2025-05-20"},
	{7, 6, 1800.00, "2025-06-25"},
	{8, 7, 95.00, "2025-07-08"},
	{9, 8, 320.00, "2025-08-30"},
	{10, 9, 750.00, "2025-09-20"},
	{11, 10, 125.00, "2025-10-05"},
	{12, 1, 300.00, "2025-11-10"},
	{13, 2, 85.00, "2025-11-15"},
	{14, 3, 1200.00, "2025-12-01"},
	{15, 4, 65.00, "2025-12-10"},
}

// Seed creates the database file at path if needed and provisions the fixed
// two-table sample dataset. Inserts use INSERT OR REPLACE, so reseeding an
// existing database is idempotent. With force set, both tables are dropped
// and recreated first.
func Seed(ctx context.Context, path string, force bool) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if force {
		for _, stmt := range []string{"DROP TABLE IF EXISTS orders", "DROP TABLE IF EXISTS customers"} {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("drop tables: %w", err)
			}
		}
	}

	createStatements := []string{
		`CREATE TABLE IF NOT EXISTS customers (
			id INTEGER PRIMARY KEY,
			name TEXT,
			signup_date TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id INTEGER PRIMARY KEY,
			customer_id INTEGER,
			amount REAL,
			order_date TEXT,
			FOREIGN KEY (customer_id) REFERENCES customers (id)
		)`,
	}
	for _, stmt := range createStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, customer := range seedCustomers {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO customers (id, name, signup_date) VALUES (?, ?, ?)",
			customer.id, customer.name, customer.signupDate,
		); err != nil {
			return fmt.Errorf("seed customer %d: %w", customer.id, err)
		}
	}
	for _, order := range seedOrders {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO orders (id, customer_id, amount, order_date) VALUES (?, ?, ?, ?)",
			order.id, order.customerID, order.amount, order.orderDate,
		); err != nil {
			return fmt.Errorf("seed order %d: %w", order.id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}
	return nil
}
