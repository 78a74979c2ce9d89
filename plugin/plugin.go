// Package plugin provides an extensible plugin system for the storefront.
// Plugins can hook into various lifecycle events to extend functionality.
package plugin

import (
	"context"
	"time"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the plugin is initialized.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, engine interface{}) error
}

// OnShutdown is called when the plugin is shutting down.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Catalog lifecycle hooks
// ──────────────────────────────────────────────────

// OnProductCreated is called when a new product is created.
type OnProductCreated interface {
	Plugin
	OnProductCreated(ctx context.Context, product interface{}) error
}

// OnProductUpdated is called when a product is updated.
type OnProductUpdated interface {
	Plugin
	OnProductUpdated(ctx context.Context, product interface{}) error
}

// OnProductDeleted is called when a product is deleted.
type OnProductDeleted interface {
	Plugin
	OnProductDeleted(ctx context.Context, productID string) error
}

// OnStockDepleted is called when an order drains a product's stock to zero
// or below.
type OnStockDepleted interface {
	Plugin
	OnStockDepleted(ctx context.Context, productID string, name string) error
}

// OnViewsFlushed is called when buffered product view counts are flushed
// to the store.
type OnViewsFlushed interface {
	Plugin
	OnViewsFlushed(ctx context.Context, products int, views int64, elapsed time.Duration) error
}

// ──────────────────────────────────────────────────
// Promotion lifecycle hooks
// ──────────────────────────────────────────────────

// OnPromotionCreated is called when a new promotion is created.
type OnPromotionCreated interface {
	Plugin
	OnPromotionCreated(ctx context.Context, promo interface{}) error
}

// OnPromotionRedeemed is called when a coupon is redeemed at checkout.
type OnPromotionRedeemed interface {
	Plugin
	OnPromotionRedeemed(ctx context.Context, promo interface{}, orderNumber string) error
}

// ──────────────────────────────────────────────────
// Order lifecycle hooks
// ──────────────────────────────────────────────────

// OnOrderCreated is called when an order has been placed.
type OnOrderCreated interface {
	Plugin
	OnOrderCreated(ctx context.Context, ord interface{}) error
}

// OnOrderStatusChanged is called when an order moves between statuses.
type OnOrderStatusChanged interface {
	Plugin
	OnOrderStatusChanged(ctx context.Context, ord interface{}, oldStatus, newStatus string) error
}

// ──────────────────────────────────────────────────
// Checkout extension points
// ──────────────────────────────────────────────────

// CouponValidator provides custom coupon validation logic on top of the
// built-in checks. Returning an error rejects the coupon.
type CouponValidator interface {
	Plugin
	ValidateCoupon(ctx context.Context, promo interface{}, subtotal interface{}) error
}

// OrderNotifier delivers order notifications to an external channel
// (email, push, chat). Notifiers run after the order is persisted.
type OrderNotifier interface {
	Plugin
	NotifyOrder(ctx context.Context, ord interface{}) error
}
