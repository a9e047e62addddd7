package main

import (
	"fmt"
	"log"

	"github.com/bargenix/bargaining-api/internal/config"
	"github.com/bargenix/bargaining-api/internal/repository/postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS merchants (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	api_key_hash TEXT NOT NULL,
	is_active BOOLEAN NOT NULL DEFAULT true,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS shopify_credentials (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL UNIQUE REFERENCES merchants(id),
	shop_name TEXT NOT NULL,
	access_token TEXT NOT NULL,
	api_version TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS bargaining_configs (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES merchants(id),
	product_id TEXT NOT NULL,
	min_price DOUBLE PRECISION NOT NULL DEFAULT 0,
	behavior TEXT,
	is_active BOOLEAN NOT NULL DEFAULT true,
	is_available BOOLEAN NOT NULL DEFAULT true,
	deactivation_reason TEXT,
	deactivated_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (user_id, product_id)
);

CREATE TABLE IF NOT EXISTS bargain_requests (
	id UUID PRIMARY KEY,
	product_name TEXT NOT NULL,
	product_id TEXT NOT NULL,
	product_price DOUBLE PRECISION NOT NULL,
	customer_email TEXT NOT NULL,
	shop_name TEXT NOT NULL,
	mark_as_read BOOLEAN NOT NULL DEFAULT false,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_bargain_requests_shop_unread
	ON bargain_requests (shop_name) WHERE mark_as_read = false;
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	fmt.Println("Schema applied successfully")
}
