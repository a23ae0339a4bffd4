package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS shipping_categories (
    id   INTEGER PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS variants (
    id                   INTEGER PRIMARY KEY,
    name                 TEXT NOT NULL,
    sku                  TEXT,
    price                TEXT NOT NULL DEFAULT '0',
    currency             TEXT NOT NULL DEFAULT 'AUD',
    weight               REAL NOT NULL DEFAULT 0,
    shipping_category_id INTEGER REFERENCES shipping_categories(id),
    deleted_at           DATETIME
);

CREATE TABLE IF NOT EXISTS stock_locations (
    id       INTEGER PRIMARY KEY,
    name     TEXT NOT NULL,
    priority INTEGER NOT NULL DEFAULT 0,
    active   INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS stock_items (
    stock_location_id INTEGER NOT NULL REFERENCES stock_locations(id),
    variant_id        INTEGER NOT NULL REFERENCES variants(id),
    count_on_hand     INTEGER NOT NULL DEFAULT 0,
    backorderable     INTEGER NOT NULL DEFAULT 1,
    PRIMARY KEY (stock_location_id, variant_id)
);

CREATE TABLE IF NOT EXISTS enterprises (
    id   INTEGER PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS shipping_methods (
    id               INTEGER PRIMARY KEY,
    name             TEXT NOT NULL,
    display_on       TEXT NOT NULL DEFAULT 'both' CHECK (display_on IN ('both', 'front_end', 'back_end')),
    calculator_type  TEXT NOT NULL DEFAULT 'flat_rate',
    calculator_prefs TEXT NOT NULL DEFAULT '{}',
    deleted_at       DATETIME
);

CREATE TABLE IF NOT EXISTS shipping_method_categories (
    shipping_method_id   INTEGER NOT NULL REFERENCES shipping_methods(id),
    shipping_category_id INTEGER NOT NULL REFERENCES shipping_categories(id),
    PRIMARY KEY (shipping_method_id, shipping_category_id)
);

CREATE TABLE IF NOT EXISTS shipping_method_distributors (
    shipping_method_id INTEGER NOT NULL REFERENCES shipping_methods(id),
    enterprise_id      INTEGER NOT NULL REFERENCES enterprises(id),
    PRIMARY KEY (shipping_method_id, enterprise_id)
);

CREATE TABLE IF NOT EXISTS orders (
    id            INTEGER PRIMARY KEY,
    number        TEXT NOT NULL UNIQUE,
    enterprise_id INTEGER REFERENCES enterprises(id),
    currency      TEXT NOT NULL DEFAULT 'AUD',
    state         TEXT NOT NULL DEFAULT 'cart' CHECK (state IN ('cart', 'complete', 'canceled')),
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS line_items (
    id         INTEGER PRIMARY KEY,
    order_id   INTEGER NOT NULL REFERENCES orders(id),
    variant_id INTEGER NOT NULL REFERENCES variants(id),
    quantity   INTEGER NOT NULL CHECK (quantity > 0),
    price      TEXT NOT NULL DEFAULT '0'
);

CREATE TABLE IF NOT EXISTS shipments (
    id                 INTEGER PRIMARY KEY,
    order_id           INTEGER NOT NULL REFERENCES orders(id),
    stock_location_id  INTEGER NOT NULL REFERENCES stock_locations(id),
    number             TEXT NOT NULL UNIQUE,
    shipping_method_id INTEGER REFERENCES shipping_methods(id),
    cost               TEXT NOT NULL DEFAULT '0',
    state              TEXT NOT NULL DEFAULT 'pending' CHECK (state IN ('pending', 'shipped')),
    created_at         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS inventory_units (
    id          INTEGER PRIMARY KEY,
    shipment_id INTEGER NOT NULL REFERENCES shipments(id),
    variant_id  INTEGER NOT NULL REFERENCES variants(id),
    quantity    INTEGER NOT NULL CHECK (quantity > 0),
    state       TEXT NOT NULL DEFAULT 'pending' CHECK (state IN ('pending', 'backordered'))
);

CREATE TABLE IF NOT EXISTS shipping_rates (
    id                 INTEGER PRIMARY KEY,
    shipment_id        INTEGER NOT NULL REFERENCES shipments(id),
    shipping_method_id INTEGER NOT NULL REFERENCES shipping_methods(id),
    cost               TEXT NOT NULL DEFAULT '0',
    selected           INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS schedules (
    id   INTEGER PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS order_cycles (
    id              INTEGER PRIMARY KEY,
    name            TEXT NOT NULL,
    orders_open_at  DATETIME NOT NULL,
    orders_close_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS schedule_order_cycles (
    schedule_id    INTEGER NOT NULL REFERENCES schedules(id),
    order_cycle_id INTEGER NOT NULL REFERENCES order_cycles(id),
    PRIMARY KEY (schedule_id, order_cycle_id)
);

CREATE TABLE IF NOT EXISTS subscriptions (
    id             INTEGER PRIMARY KEY,
    enterprise_id  INTEGER NOT NULL REFERENCES enterprises(id),
    schedule_id    INTEGER NOT NULL REFERENCES schedules(id),
    customer_email TEXT NOT NULL,
    begins_at      DATETIME NOT NULL,
    ends_at        DATETIME,
    paused_at      DATETIME,
    canceled_at    DATETIME,
    created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS subscription_line_items (
    id              INTEGER PRIMARY KEY,
    subscription_id INTEGER NOT NULL REFERENCES subscriptions(id),
    variant_id      INTEGER NOT NULL REFERENCES variants(id),
    quantity        INTEGER NOT NULL CHECK (quantity > 0),
    price_estimate  TEXT NOT NULL DEFAULT '0'
);

CREATE TABLE IF NOT EXISTS proxy_orders (
    id              INTEGER PRIMARY KEY,
    subscription_id INTEGER NOT NULL REFERENCES subscriptions(id),
    order_cycle_id  INTEGER NOT NULL REFERENCES order_cycles(id),
    order_id        INTEGER REFERENCES orders(id),
    placed_at       DATETIME,
    canceled_at     DATETIME,
    UNIQUE (subscription_id, order_cycle_id)
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
