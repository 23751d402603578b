package seed

import (
	"context"
	"fmt"
)

// sourceDDL creates the normalized operational schema the seeder populates
// and the extractor reads. Postgres only; the source side of the pipeline
// always speaks pgx.
var sourceDDL = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		company_id   BIGINT PRIMARY KEY,
		cuit         TEXT NOT NULL,
		company_name TEXT NOT NULL,
		company_type TEXT NOT NULL,
		created_at   TIMESTAMP NOT NULL DEFAULT now(),
		updated_at   TIMESTAMP NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS end_customers (
		customer_id     BIGINT PRIMARY KEY,
		document_number TEXT NOT NULL,
		full_name       TEXT NOT NULL,
		date_of_birth   DATE,
		company_id      BIGINT NOT NULL REFERENCES companies (company_id),
		created_at      TIMESTAMP NOT NULL DEFAULT now(),
		updated_at      TIMESTAMP NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		product_id    BIGINT PRIMARY KEY,
		product_name  TEXT NOT NULL,
		supplier_id   BIGINT NOT NULL REFERENCES companies (company_id),
		default_price NUMERIC(12,2) NOT NULL,
		created_at    TIMESTAMP NOT NULL DEFAULT now(),
		updated_at    TIMESTAMP NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS price_lists (
		price_list_id BIGSERIAL PRIMARY KEY,
		company_id    BIGINT NOT NULL REFERENCES companies (company_id),
		product_id    BIGINT NOT NULL REFERENCES products (product_id),
		price         NUMERIC(12,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		order_id     BIGINT PRIMARY KEY,
		company_id   BIGINT NOT NULL REFERENCES companies (company_id),
		customer_id  BIGINT NOT NULL REFERENCES end_customers (customer_id),
		order_date   TIMESTAMP NOT NULL,
		total_amount NUMERIC(12,2) NOT NULL,
		created_at   TIMESTAMP NOT NULL DEFAULT now(),
		updated_at   TIMESTAMP NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		order_item_id BIGINT PRIMARY KEY,
		order_id      BIGINT NOT NULL REFERENCES orders (order_id),
		product_id    BIGINT NOT NULL REFERENCES products (product_id),
		quantity      BIGINT NOT NULL,
		price         NUMERIC(12,2) NOT NULL,
		total         NUMERIC(12,2) NOT NULL,
		created_at    TIMESTAMP NOT NULL DEFAULT now(),
		updated_at    TIMESTAMP NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS marketing_data (
		marketing_id         BIGINT PRIMARY KEY,
		campaign_name        TEXT NOT NULL,
		campaign_start_date  DATE NOT NULL,
		campaign_end_date    DATE NOT NULL,
		target_audience_size BIGINT NOT NULL,
		conversions          BIGINT NOT NULL,
		company_id           BIGINT NOT NULL REFERENCES companies (company_id),
		product_id           BIGINT NOT NULL REFERENCES products (product_id),
		created_at           TIMESTAMP NOT NULL DEFAULT now(),
		updated_at           TIMESTAMP NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS weblog_data (
		weblog_id   BIGINT PRIMARY KEY,
		client_ip   TEXT NOT NULL,
		username    TEXT NOT NULL,
		log_time    TIMESTAMP NOT NULL,
		device_type TEXT NOT NULL,
		user_agent  TEXT NOT NULL,
		customer_id BIGINT NOT NULL REFERENCES end_customers (customer_id),
		company_id  BIGINT NOT NULL REFERENCES companies (company_id),
		created_at  TIMESTAMP NOT NULL DEFAULT now(),
		updated_at  TIMESTAMP NOT NULL DEFAULT now()
	)`,
}

// EnsureTables creates the source tables if they do not exist.
func EnsureTables(ctx context.Context, db DB) error {
	for _, stmt := range sourceDDL {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("seed: create tables: %w", err)
		}
	}
	return nil
}
