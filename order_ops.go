package storefront

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lojix/storefront/catalog"
	"github.com/lojix/storefront/id"
	"github.com/lojix/storefront/order"
	"github.com/lojix/storefront/promotion"
	"github.com/lojix/storefront/types"
)

// ──────────────────────────────────────────────────
// Order Management
// ──────────────────────────────────────────────────

// GetOrder retrieves an order by ID.
func (sf *Storefront) GetOrder(ctx context.Context, orderID id.OrderID) (*order.Order, error) {
	return sf.store.GetOrder(ctx, orderID)
}

// GetOrderByNumber retrieves an order by its sequential number, e.g.
// "PED260100042". Lookup is case-insensitive.
func (sf *Storefront) GetOrderByNumber(ctx context.Context, number string) (*order.Order, error) {
	return sf.store.GetOrderByNumber(ctx, strings.ToUpper(strings.TrimSpace(number)))
}

// ListOrders returns a filtered, paginated order listing along with the
// total number of matches.
func (sf *Storefront) ListOrders(ctx context.Context, opts order.ListOpts) ([]*order.Order, int64, error) {
	if opts.Status != "" && !opts.Status.IsKnown() {
		return nil, 0, fmt.Errorf("%w: %s", ErrInvalidStatus, opts.Status)
	}
	return sf.store.ListOrders(ctx, opts)
}

// UpdateOrderStatus moves an order to a new status, appending a history
// entry. Orders in a terminal status (delivered, cancelled) cannot move
// again. An optional tracking code is recorded alongside the change.
func (sf *Storefront) UpdateOrderStatus(ctx context.Context, orderID id.OrderID, newStatus order.Status, note, trackingCode string) (*order.Order, error) {
	if !newStatus.IsKnown() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, newStatus)
	}

	ord, err := sf.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	oldStatus := ord.Status
	if oldStatus.IsTerminal() {
		return nil, fmt.Errorf("%w: %s", ErrStatusTerminal, oldStatus)
	}

	now := time.Now()
	if err := ord.Transition(newStatus, note, now); err != nil {
		return nil, err
	}
	if trackingCode != "" {
		ord.TrackingCode = trackingCode
	}

	entry := ord.StatusHistory[len(ord.StatusHistory)-1]
	if err := sf.store.UpdateOrderStatus(ctx, orderID, newStatus, entry, trackingCode); err != nil {
		return nil, err
	}

	sf.plugins.EmitOrderStatusChanged(ctx, ord, string(oldStatus), string(newStatus))

	sf.logger.Info("order status changed",
		"number", ord.Number,
		"from", oldStatus,
		"to", newStatus,
	)

	return ord, nil
}

// ──────────────────────────────────────────────────
// Dashboard aggregates
// ──────────────────────────────────────────────────

// Stats is the admin dashboard snapshot.
type Stats struct {
	TotalProducts    int64                  `json:"total_products"`
	ActiveProducts   int64                  `json:"active_products"`
	TotalOrders      int64                  `json:"total_orders"`
	PendingOrders    int64                  `json:"pending_orders"`
	TodayOrders      int64                  `json:"today_orders"`
	ActivePromotions int64                  `json:"active_promotions"`
	MonthRevenue     types.Money            `json:"month_revenue"`
	LastMonthRevenue types.Money            `json:"last_month_revenue"`
	OrdersByStatus   map[order.Status]int64 `json:"orders_by_status"`
}

// OrderStats aggregates the dashboard numbers: order counts, monthly
// revenue (cancelled orders excluded), and per-status breakdowns.
func (sf *Storefront) OrderStats(ctx context.Context) (*Stats, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonth := thisMonth.AddDate(0, -1, 0)

	stats := &Stats{}

	_, totalProducts, err := sf.store.ListProducts(ctx, catalog.ListOpts{IncludeInactive: true, Limit: 1})
	if err != nil {
		return nil, err
	}
	stats.TotalProducts = totalProducts

	_, activeProducts, err := sf.store.ListProducts(ctx, catalog.ListOpts{Limit: 1})
	if err != nil {
		return nil, err
	}
	stats.ActiveProducts = activeProducts

	if stats.TotalOrders, err = sf.store.CountOrders(ctx, order.CountOpts{}); err != nil {
		return nil, err
	}
	if stats.PendingOrders, err = sf.store.CountOrders(ctx, order.CountOpts{Status: order.StatusPending}); err != nil {
		return nil, err
	}
	if stats.TodayOrders, err = sf.store.CountOrders(ctx, order.CountOpts{Start: today}); err != nil {
		return nil, err
	}

	promos, err := sf.store.ListPromotions(ctx, promotion.ListOpts{ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	stats.ActivePromotions = int64(len(promos))

	if stats.MonthRevenue, err = sf.store.SumOrderTotals(ctx, order.CountOpts{
		Start:         thisMonth,
		ExcludeStatus: order.StatusCancelled,
	}); err != nil {
		return nil, err
	}
	if stats.LastMonthRevenue, err = sf.store.SumOrderTotals(ctx, order.CountOpts{
		Start:         lastMonth,
		End:           thisMonth,
		ExcludeStatus: order.StatusCancelled,
	}); err != nil {
		return nil, err
	}

	if stats.OrdersByStatus, err = sf.store.CountOrdersByStatus(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}
