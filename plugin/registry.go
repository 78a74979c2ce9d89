package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"
)

// Registry manages all registered plugins and provides efficient dispatch.
// It uses type-cached discovery for O(1) dispatch performance.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	// Type-cached plugin lists for efficient dispatch
	onInit               []OnInit
	onShutdown           []OnShutdown
	onProductCreated     []OnProductCreated
	onProductUpdated     []OnProductUpdated
	onProductDeleted     []OnProductDeleted
	onStockDepleted      []OnStockDepleted
	onViewsFlushed       []OnViewsFlushed
	onPromotionCreated   []OnPromotionCreated
	onPromotionRedeemed  []OnPromotionRedeemed
	onOrderCreated       []OnOrderCreated
	onOrderStatusChanged []OnOrderStatusChanged
	couponValidators     []CouponValidator
	orderNotifiers       []OrderNotifier
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger: slog.Default(),
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnProductCreated); ok {
		r.onProductCreated = append(r.onProductCreated, v)
	}
	if v, ok := p.(OnProductUpdated); ok {
		r.onProductUpdated = append(r.onProductUpdated, v)
	}
	if v, ok := p.(OnProductDeleted); ok {
		r.onProductDeleted = append(r.onProductDeleted, v)
	}
	if v, ok := p.(OnStockDepleted); ok {
		r.onStockDepleted = append(r.onStockDepleted, v)
	}
	if v, ok := p.(OnViewsFlushed); ok {
		r.onViewsFlushed = append(r.onViewsFlushed, v)
	}
	if v, ok := p.(OnPromotionCreated); ok {
		r.onPromotionCreated = append(r.onPromotionCreated, v)
	}
	if v, ok := p.(OnPromotionRedeemed); ok {
		r.onPromotionRedeemed = append(r.onPromotionRedeemed, v)
	}
	if v, ok := p.(OnOrderCreated); ok {
		r.onOrderCreated = append(r.onOrderCreated, v)
	}
	if v, ok := p.(OnOrderStatusChanged); ok {
		r.onOrderStatusChanged = append(r.onOrderStatusChanged, v)
	}
	if v, ok := p.(CouponValidator); ok {
		r.couponValidators = append(r.couponValidators, v)
	}
	if v, ok := p.(OrderNotifier); ok {
		r.orderNotifiers = append(r.orderNotifiers, v)
	}

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"interfaces", r.getImplementedInterfaces(p),
	)

	return nil
}

// getImplementedInterfaces returns a list of interfaces implemented by the plugin.
func (r *Registry) getImplementedInterfaces(p Plugin) []string {
	var interfaces []string
	v := reflect.TypeOf(p)

	// Check each interface
	checkInterface := func(iface reflect.Type, name string) {
		if v.Implements(iface) {
			interfaces = append(interfaces, name)
		}
	}

	// List all interfaces to check
	checkInterface(reflect.TypeOf((*OnInit)(nil)).Elem(), "OnInit")
	checkInterface(reflect.TypeOf((*OnShutdown)(nil)).Elem(), "OnShutdown")
	checkInterface(reflect.TypeOf((*OnProductCreated)(nil)).Elem(), "OnProductCreated")
	checkInterface(reflect.TypeOf((*OnStockDepleted)(nil)).Elem(), "OnStockDepleted")
	checkInterface(reflect.TypeOf((*OnPromotionRedeemed)(nil)).Elem(), "OnPromotionRedeemed")
	checkInterface(reflect.TypeOf((*OnOrderCreated)(nil)).Elem(), "OnOrderCreated")
	checkInterface(reflect.TypeOf((*OnOrderStatusChanged)(nil)).Elem(), "OnOrderStatusChanged")
	checkInterface(reflect.TypeOf((*CouponValidator)(nil)).Elem(), "CouponValidator")
	checkInterface(reflect.TypeOf((*OrderNotifier)(nil)).Elem(), "OrderNotifier")

	return interfaces
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, engine interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, engine)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitProductCreated emits a product created event.
func (r *Registry) EmitProductCreated(ctx context.Context, product interface{}) {
	r.mu.RLock()
	plugins := r.onProductCreated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnProductCreated(ctx, product)
		}); err != nil {
			r.logger.Warn("plugin OnProductCreated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitProductUpdated emits a product updated event.
func (r *Registry) EmitProductUpdated(ctx context.Context, product interface{}) {
	r.mu.RLock()
	plugins := r.onProductUpdated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnProductUpdated(ctx, product)
		}); err != nil {
			r.logger.Warn("plugin OnProductUpdated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitProductDeleted emits a product deleted event.
func (r *Registry) EmitProductDeleted(ctx context.Context, productID string) {
	r.mu.RLock()
	plugins := r.onProductDeleted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnProductDeleted(ctx, productID)
		}); err != nil {
			r.logger.Warn("plugin OnProductDeleted failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitStockDepleted emits a stock depleted event.
func (r *Registry) EmitStockDepleted(ctx context.Context, productID, name string) {
	r.mu.RLock()
	plugins := r.onStockDepleted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnStockDepleted(ctx, productID, name)
		}); err != nil {
			r.logger.Warn("plugin OnStockDepleted failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitViewsFlushed emits a views flushed event.
func (r *Registry) EmitViewsFlushed(ctx context.Context, products int, views int64, elapsed time.Duration) {
	r.mu.RLock()
	plugins := r.onViewsFlushed
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnViewsFlushed(ctx, products, views, elapsed)
		}); err != nil {
			r.logger.Warn("plugin OnViewsFlushed failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitPromotionCreated emits a promotion created event.
func (r *Registry) EmitPromotionCreated(ctx context.Context, promo interface{}) {
	r.mu.RLock()
	plugins := r.onPromotionCreated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPromotionCreated(ctx, promo)
		}); err != nil {
			r.logger.Warn("plugin OnPromotionCreated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitPromotionRedeemed emits a promotion redeemed event.
func (r *Registry) EmitPromotionRedeemed(ctx context.Context, promo interface{}, orderNumber string) {
	r.mu.RLock()
	plugins := r.onPromotionRedeemed
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPromotionRedeemed(ctx, promo, orderNumber)
		}); err != nil {
			r.logger.Warn("plugin OnPromotionRedeemed failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitOrderCreated emits an order created event and runs order notifiers.
func (r *Registry) EmitOrderCreated(ctx context.Context, ord interface{}) {
	r.mu.RLock()
	plugins := r.onOrderCreated
	notifiers := r.orderNotifiers
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnOrderCreated(ctx, ord)
		}); err != nil {
			r.logger.Warn("plugin OnOrderCreated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}

	for _, n := range notifiers {
		if err := r.callWithTimeout(ctx, n.Name(), func() error {
			return n.NotifyOrder(ctx, ord)
		}); err != nil {
			r.logger.Warn("plugin NotifyOrder failed",
				"plugin", n.Name(),
				"error", err,
			)
		}
	}
}

// EmitOrderStatusChanged emits an order status changed event.
func (r *Registry) EmitOrderStatusChanged(ctx context.Context, ord interface{}, oldStatus, newStatus string) {
	r.mu.RLock()
	plugins := r.onOrderStatusChanged
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnOrderStatusChanged(ctx, ord, oldStatus, newStatus)
		}); err != nil {
			r.logger.Warn("plugin OnOrderStatusChanged failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// ValidateCoupon runs all registered coupon validators. The first error
// rejects the coupon.
func (r *Registry) ValidateCoupon(ctx context.Context, promo interface{}, subtotal interface{}) error {
	r.mu.RLock()
	validators := r.couponValidators
	r.mu.RUnlock()

	for _, v := range validators {
		if err := r.callWithTimeout(ctx, v.Name(), func() error {
			return v.ValidateCoupon(ctx, promo, subtotal)
		}); err != nil {
			return err
		}
	}
	return nil
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block the checkout pipeline.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
