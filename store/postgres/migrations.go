package postgres

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the storefront store.
var Migrations = migrate.NewGroup("storefront")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_storefront_products",
			Version: "20240101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS storefront_products (
    id                      TEXT PRIMARY KEY,
    name                    TEXT NOT NULL DEFAULT '',
    slug                    TEXT NOT NULL DEFAULT '',
    description             TEXT NOT NULL DEFAULT '',
    price_cents             BIGINT NOT NULL DEFAULT 0,
    price_currency          TEXT NOT NULL DEFAULT 'brl',
    original_price_cents    BIGINT NOT NULL DEFAULT 0,
    original_price_currency TEXT NOT NULL DEFAULT '',
    images                  JSONB NOT NULL DEFAULT '[]',
    category                TEXT NOT NULL DEFAULT '',
    subcategory             TEXT NOT NULL DEFAULT '',
    sizes                   JSONB NOT NULL DEFAULT '[]',
    colors                  JSONB NOT NULL DEFAULT '[]',
    stock                   BIGINT NOT NULL DEFAULT 0,
    sku                     TEXT NOT NULL DEFAULT '',
    tags                    JSONB NOT NULL DEFAULT '[]',
    badges                  JSONB NOT NULL DEFAULT '[]',
    rating_average          DOUBLE PRECISION NOT NULL DEFAULT 0,
    rating_count            INT NOT NULL DEFAULT 0,
    featured                BOOLEAN NOT NULL DEFAULT FALSE,
    is_active               BOOLEAN NOT NULL DEFAULT TRUE,
    views                   BIGINT NOT NULL DEFAULT 0,
    sold                    BIGINT NOT NULL DEFAULT 0,
    metadata                JSONB NOT NULL DEFAULT '{}',
    created_at              TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at              TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_storefront_products_slug ON storefront_products (slug);
CREATE INDEX IF NOT EXISTS idx_storefront_products_category ON storefront_products (category, is_active);
CREATE INDEX IF NOT EXISTS idx_storefront_products_featured ON storefront_products (featured, is_active);
CREATE INDEX IF NOT EXISTS idx_storefront_products_sold ON storefront_products (sold DESC);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS storefront_products`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_storefront_promotions",
			Version: "20240101000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS storefront_promotions (
    id                    TEXT PRIMARY KEY,
    title                 TEXT NOT NULL DEFAULT '',
    description           TEXT NOT NULL DEFAULT '',
    kind                  TEXT NOT NULL DEFAULT 'percentage',
    value                 BIGINT NOT NULL DEFAULT 0,
    code                  TEXT NOT NULL DEFAULT '',
    min_purchase_cents    BIGINT NOT NULL DEFAULT 0,
    min_purchase_currency TEXT NOT NULL DEFAULT '',
    max_discount_cents    BIGINT NOT NULL DEFAULT 0,
    max_discount_currency TEXT NOT NULL DEFAULT '',
    usage_limit           BIGINT NOT NULL DEFAULT 0,
    used_count            BIGINT NOT NULL DEFAULT 0,
    applicable_categories JSONB NOT NULL DEFAULT '[]',
    applicable_products   JSONB NOT NULL DEFAULT '[]',
    start_date            TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    end_date              TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    banner                JSONB,
    show_on_homepage      BOOLEAN NOT NULL DEFAULT FALSE,
    show_countdown        BOOLEAN NOT NULL DEFAULT FALSE,
    is_active             BOOLEAN NOT NULL DEFAULT TRUE,
    created_at            TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at            TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_storefront_promotions_code ON storefront_promotions (code) WHERE code != '';
CREATE INDEX IF NOT EXISTS idx_storefront_promotions_window ON storefront_promotions (is_active, start_date, end_date);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS storefront_promotions`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_storefront_orders",
			Version: "20240101000003",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS storefront_orders (
    id             TEXT PRIMARY KEY,
    number         TEXT NOT NULL DEFAULT '',
    customer       JSONB NOT NULL DEFAULT '{}',
    shipping       JSONB NOT NULL DEFAULT '{}',
    lines          JSONB NOT NULL DEFAULT '[]',
    subtotal_cents BIGINT NOT NULL DEFAULT 0,
    shipping_cents BIGINT NOT NULL DEFAULT 0,
    discount_cents BIGINT NOT NULL DEFAULT 0,
    total_cents    BIGINT NOT NULL DEFAULT 0,
    currency       TEXT NOT NULL DEFAULT 'brl',
    coupon_code    TEXT NOT NULL DEFAULT '',
    payment_method TEXT NOT NULL DEFAULT '',
    status         TEXT NOT NULL DEFAULT 'pending',
    status_history JSONB NOT NULL DEFAULT '[]',
    tracking_code  TEXT NOT NULL DEFAULT '',
    notes          TEXT NOT NULL DEFAULT '',
    source         TEXT NOT NULL DEFAULT 'site',
    created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_storefront_orders_number ON storefront_orders (number);
CREATE INDEX IF NOT EXISTS idx_storefront_orders_status ON storefront_orders (status, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_storefront_orders_created ON storefront_orders (created_at DESC);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS storefront_orders`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_storefront_settings",
			Version: "20240101000004",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS storefront_settings (
    id         TEXT PRIMARY KEY,
    payload    JSONB NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS storefront_settings`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_storefront_sequences",
			Version: "20240101000005",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS storefront_sequences (
    id    TEXT PRIMARY KEY,
    value BIGINT NOT NULL DEFAULT 0
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS storefront_sequences`)
				return err
			},
		},
	)
}
