// Package observability provides a metrics extension for Storefront that
// records lifecycle event counts via go-utils MetricFactory.
package observability

import (
	"context"
	"time"

	"github.com/lojix/storefront/order"
	"github.com/lojix/storefront/plugin"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin               = (*MetricsExtension)(nil)
	_ plugin.OnInit               = (*MetricsExtension)(nil)
	_ plugin.OnProductCreated     = (*MetricsExtension)(nil)
	_ plugin.OnProductUpdated     = (*MetricsExtension)(nil)
	_ plugin.OnProductDeleted     = (*MetricsExtension)(nil)
	_ plugin.OnStockDepleted      = (*MetricsExtension)(nil)
	_ plugin.OnViewsFlushed       = (*MetricsExtension)(nil)
	_ plugin.OnPromotionCreated   = (*MetricsExtension)(nil)
	_ plugin.OnPromotionRedeemed  = (*MetricsExtension)(nil)
	_ plugin.OnOrderCreated       = (*MetricsExtension)(nil)
	_ plugin.OnOrderStatusChanged = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide lifecycle metrics.
// Register it as a Storefront plugin to automatically track shop metrics.
type MetricsExtension struct {
	factory MetricFactory

	// Product metrics
	ProductCreated Counter
	ProductUpdated Counter
	ProductDeleted Counter
	StockDepleted  Counter

	// View metrics
	ViewsFlushed     Counter
	ViewBatchSize    Histogram
	ViewFlushLatency Histogram

	// Promotion metrics
	PromotionCreated  Counter
	PromotionRedeemed Counter

	// Order metrics
	OrderCreated   Counter
	OrderDelivered Counter
	OrderCancelled Counter
	OrderTotal     Histogram

	// Error metrics
	StoreErrors  Counter
	PluginErrors Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Product metrics
		ProductCreated: factory.Counter("storefront.product.created"),
		ProductUpdated: factory.Counter("storefront.product.updated"),
		ProductDeleted: factory.Counter("storefront.product.deleted"),
		StockDepleted:  factory.Counter("storefront.stock.depleted"),

		// View metrics
		ViewsFlushed:     factory.Counter("storefront.views.flushed"),
		ViewBatchSize:    factory.Histogram("storefront.views.batch.size"),
		ViewFlushLatency: factory.Histogram("storefront.views.flush.latency_ms"),

		// Promotion metrics
		PromotionCreated:  factory.Counter("storefront.promotion.created"),
		PromotionRedeemed: factory.Counter("storefront.promotion.redeemed"),

		// Order metrics
		OrderCreated:   factory.Counter("storefront.order.created"),
		OrderDelivered: factory.Counter("storefront.order.delivered"),
		OrderCancelled: factory.Counter("storefront.order.cancelled"),
		OrderTotal:     factory.Histogram("storefront.order.total_cents"),

		// Error metrics
		StoreErrors:  factory.Counter("storefront.store.errors"),
		PluginErrors: factory.Counter("storefront.plugin.errors"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// ──────────────────────────────────────────────────
// Catalog lifecycle hooks
// ──────────────────────────────────────────────────

// OnProductCreated implements plugin.OnProductCreated.
func (m *MetricsExtension) OnProductCreated(_ context.Context, _ interface{}) error {
	m.ProductCreated.Inc()
	return nil
}

// OnProductUpdated implements plugin.OnProductUpdated.
func (m *MetricsExtension) OnProductUpdated(_ context.Context, _ interface{}) error {
	m.ProductUpdated.Inc()
	return nil
}

// OnProductDeleted implements plugin.OnProductDeleted.
func (m *MetricsExtension) OnProductDeleted(_ context.Context, _ string) error {
	m.ProductDeleted.Inc()
	return nil
}

// OnStockDepleted implements plugin.OnStockDepleted.
func (m *MetricsExtension) OnStockDepleted(_ context.Context, _, _ string) error {
	m.StockDepleted.Inc()
	return nil
}

// OnViewsFlushed implements plugin.OnViewsFlushed.
func (m *MetricsExtension) OnViewsFlushed(_ context.Context, products int, views int64, elapsed time.Duration) error {
	m.ViewsFlushed.Add(float64(views))
	m.ViewBatchSize.Observe(float64(products))
	m.ViewFlushLatency.Observe(float64(elapsed.Milliseconds()))
	return nil
}

// ──────────────────────────────────────────────────
// Promotion lifecycle hooks
// ──────────────────────────────────────────────────

// OnPromotionCreated implements plugin.OnPromotionCreated.
func (m *MetricsExtension) OnPromotionCreated(_ context.Context, _ interface{}) error {
	m.PromotionCreated.Inc()
	return nil
}

// OnPromotionRedeemed implements plugin.OnPromotionRedeemed.
func (m *MetricsExtension) OnPromotionRedeemed(_ context.Context, _ interface{}, _ string) error {
	m.PromotionRedeemed.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Order lifecycle hooks
// ──────────────────────────────────────────────────

// OnOrderCreated implements plugin.OnOrderCreated.
func (m *MetricsExtension) OnOrderCreated(_ context.Context, ord interface{}) error {
	m.OrderCreated.Inc()
	if o, ok := ord.(*order.Order); ok {
		m.OrderTotal.Observe(float64(o.Total.Amount))
	}
	return nil
}

// OnOrderStatusChanged implements plugin.OnOrderStatusChanged.
func (m *MetricsExtension) OnOrderStatusChanged(_ context.Context, _ interface{}, _, newStatus string) error {
	switch order.Status(newStatus) {
	case order.StatusDelivered:
		m.OrderDelivered.Inc()
	case order.StatusCancelled:
		m.OrderCancelled.Inc()
	}
	return nil
}
