package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaStatements is the idempotent bootstrap DDL. The stores are
// plain upsert/read tables; stocks and transit are keyed by
// (offer_id, warehouse_name), sales holds exactly one aggregation run.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		product_id BIGINT,
		offer_id TEXT UNIQUE NOT NULL,
		sku BIGINT DEFAULT 0,
		name TEXT DEFAULT '',
		price TEXT DEFAULT '0',
		currency_code TEXT DEFAULT 'RUB',
		status TEXT DEFAULT '',
		primary_image TEXT DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS stocks (
		offer_id TEXT NOT NULL,
		warehouse_name TEXT NOT NULL,
		sku BIGINT DEFAULT 0,
		name TEXT DEFAULT '',
		valid_stock_count INT NOT NULL DEFAULT 0,
		waitingdocs_stock_count INT NOT NULL DEFAULT 0,
		expiring_stock_count INT NOT NULL DEFAULT 0,
		defect_stock_count INT NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (offer_id, warehouse_name)
	)`,
	`CREATE TABLE IF NOT EXISTS products_in_transit (
		offer_id TEXT NOT NULL,
		warehouse_name TEXT NOT NULL,
		sku TEXT DEFAULT '',
		name TEXT DEFAULT '',
		reserved_amount INT NOT NULL DEFAULT 0,
		promised_amount INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (offer_id, warehouse_name)
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id BIGSERIAL PRIMARY KEY,
		offer_id TEXT NOT NULL,
		sku BIGINT DEFAULT 0,
		cluster_to TEXT NOT NULL,
		sales_count INT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS update_info (
		id BIGSERIAL PRIMARY KEY,
		last_update TIMESTAMPTZ NOT NULL,
		total_products INT NOT NULL DEFAULT 0
	)`,
}

// ApplySchema creates the tables when missing. It takes a plain
// *sql.DB so the CLI can run it over a driver-level connection.
func ApplySchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("could not apply schema: %w", err)
		}
	}
	return nil
}

// EnsureSchema creates the tables when missing.
func (db *DB) EnsureSchema(ctx context.Context) error {
	return ApplySchema(ctx, db.DB.DB)
}
