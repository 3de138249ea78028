package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/ParsimonyGit/shipstation-integration/internal/config"
)

// Open connects to postgres and verifies the connection.
func Open(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Migrate creates the document tables. The partial unique indexes on the
// external-id columns are the concurrency control for overlapping polling
// runs: at most one non-cancelled document of a type per hub id.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	name TEXT PRIMARY KEY,
	enabled BOOLEAN NOT NULL DEFAULT TRUE,
	api_key TEXT NOT NULL,
	api_secret TEXT NOT NULL,
	since_date TIMESTAMPTZ,
	active_warehouse_ids JSONB NOT NULL DEFAULT '[]',
	non_stock_keywords JSONB NOT NULL DEFAULT '[]',
	default_item_group TEXT NOT NULL DEFAULT '',
	carrier_data JSONB NOT NULL DEFAULT '[]',
	stores JSONB NOT NULL DEFAULT '[]',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS customers (
	name TEXT PRIMARY KEY,
	shipstation_customer_id TEXT NOT NULL DEFAULT '',
	customer_type TEXT NOT NULL DEFAULT '',
	customer_group TEXT NOT NULL DEFAULT '',
	territory TEXT NOT NULL DEFAULT '',
	primary_contact TEXT NOT NULL DEFAULT '',
	primary_address TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS contacts (
	name TEXT PRIMARY KEY,
	first_name TEXT NOT NULL DEFAULT '',
	last_name TEXT NOT NULL DEFAULT '',
	email_id TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	customer_link TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_contacts_email ON contacts (email_id);

CREATE TABLE IF NOT EXISTS addresses (
	name TEXT PRIMARY KEY,
	address_type TEXT NOT NULL,
	address_title TEXT NOT NULL DEFAULT '',
	line1 TEXT NOT NULL DEFAULT '',
	line2 TEXT NOT NULL DEFAULT '',
	line3 TEXT NOT NULL DEFAULT '',
	city TEXT NOT NULL DEFAULT '',
	state TEXT NOT NULL DEFAULT '',
	pin_code TEXT NOT NULL DEFAULT '',
	country TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	customer_link TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_addresses_customer ON addresses (customer_link, address_type);

CREATE TABLE IF NOT EXISTS items (
	code TEXT PRIMARY KEY,
	item_name TEXT NOT NULL,
	item_group TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	is_stock_item BOOLEAN NOT NULL DEFAULT TRUE,
	disabled BOOLEAN NOT NULL DEFAULT FALSE,
	weight_per_unit DOUBLE PRECISION NOT NULL DEFAULT 0,
	weight_uom TEXT NOT NULL DEFAULT '',
	defaults JSONB NOT NULL DEFAULT '[]',
	comments JSONB NOT NULL DEFAULT '[]',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_items_name ON items (item_name);

CREATE TABLE IF NOT EXISTS item_aliases (
	sku TEXT PRIMARY KEY,
	item_code TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sales_orders (
	name TEXT PRIMARY KEY,
	status INT NOT NULL DEFAULT 0,
	shipstation_order_id TEXT NOT NULL DEFAULT '',
	marketplace TEXT NOT NULL DEFAULT '',
	marketplace_order_id TEXT NOT NULL DEFAULT '',
	customer TEXT NOT NULL DEFAULT '',
	company TEXT NOT NULL DEFAULT '',
	transaction_date TIMESTAMPTZ,
	delivery_date TIMESTAMPTZ,
	customer_address TEXT NOT NULL DEFAULT '',
	shipping_address TEXT NOT NULL DEFAULT '',
	contact_person TEXT NOT NULL DEFAULT '',
	warehouse_id TEXT NOT NULL DEFAULT '',
	items JSONB NOT NULL DEFAULT '[]',
	charges JSONB NOT NULL DEFAULT '[]',
	has_pii BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS uq_sales_orders_external
	ON sales_orders (shipstation_order_id) WHERE status <> 2 AND shipstation_order_id <> '';

CREATE TABLE IF NOT EXISTS sales_invoices (
	name TEXT PRIMARY KEY,
	status INT NOT NULL DEFAULT 0,
	sales_order TEXT NOT NULL DEFAULT '',
	shipstation_order_id TEXT NOT NULL DEFAULT '',
	shipstation_shipment_id TEXT NOT NULL DEFAULT '',
	customer TEXT NOT NULL DEFAULT '',
	company TEXT NOT NULL DEFAULT '',
	items JSONB NOT NULL DEFAULT '[]',
	charges JSONB NOT NULL DEFAULT '[]',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS uq_sales_invoices_external
	ON sales_invoices (shipstation_shipment_id) WHERE status <> 2 AND shipstation_shipment_id <> '';

CREATE TABLE IF NOT EXISTS delivery_notes (
	name TEXT PRIMARY KEY,
	status INT NOT NULL DEFAULT 0,
	sales_invoice TEXT NOT NULL DEFAULT '',
	sales_order TEXT NOT NULL DEFAULT '',
	shipstation_order_id TEXT NOT NULL DEFAULT '',
	shipstation_shipment_id TEXT NOT NULL DEFAULT '',
	customer TEXT NOT NULL DEFAULT '',
	carrier TEXT NOT NULL DEFAULT '',
	carrier_service TEXT NOT NULL DEFAULT '',
	tracking_number TEXT NOT NULL DEFAULT '',
	items JSONB NOT NULL DEFAULT '[]',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS uq_delivery_notes_external
	ON delivery_notes (shipstation_shipment_id) WHERE status <> 2 AND shipstation_shipment_id <> '';

CREATE TABLE IF NOT EXISTS shipments (
	name TEXT PRIMARY KEY,
	status INT NOT NULL DEFAULT 0,
	delivery_note TEXT NOT NULL DEFAULT '',
	shipstation_order_id TEXT NOT NULL DEFAULT '',
	shipstation_shipment_id TEXT NOT NULL DEFAULT '',
	carrier TEXT NOT NULL DEFAULT '',
	carrier_service TEXT NOT NULL DEFAULT '',
	tracking_number TEXT NOT NULL DEFAULT '',
	pickup_date TIMESTAMPTZ,
	parcels JSONB NOT NULL DEFAULT '[]',
	description TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS uq_shipments_external
	ON shipments (shipstation_shipment_id) WHERE status <> 2 AND shipstation_shipment_id <> '';

CREATE TABLE IF NOT EXISTS warehouses (
	name TEXT PRIMARY KEY,
	warehouse_name TEXT NOT NULL,
	shipstation_warehouse_id TEXT NOT NULL DEFAULT '',
	parent_warehouse TEXT NOT NULL DEFAULT '',
	is_group BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE INDEX IF NOT EXISTS idx_warehouses_external ON warehouses (shipstation_warehouse_id);

CREATE TABLE IF NOT EXISTS attachments (
	name TEXT PRIMARY KEY,
	file_name TEXT NOT NULL,
	content BYTEA NOT NULL,
	attached_to_type TEXT NOT NULL DEFAULT '',
	attached_to_name TEXT NOT NULL DEFAULT '',
	folder TEXT NOT NULL DEFAULT '',
	is_private BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_attachments_doc ON attachments (attached_to_type, attached_to_name);

CREATE TABLE IF NOT EXISTS countries (
	code TEXT PRIMARY KEY,
	country_name TEXT NOT NULL UNIQUE
);
`
