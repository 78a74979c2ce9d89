package storefront

import (
	"context"
	"fmt"
	"time"

	"github.com/lojix/storefront/catalog"
	"github.com/lojix/storefront/id"
	"github.com/lojix/storefront/order"
	"github.com/lojix/storefront/promotion"
	"github.com/lojix/storefront/whatsapp"
)

// CheckoutItem is one cart line in a checkout request. The product is
// re-priced from the catalog at checkout time; client-supplied prices are
// never trusted.
type CheckoutItem struct {
	ProductID id.ProductID `json:"product_id"`
	Quantity  int64        `json:"quantity"`
	Size      string       `json:"size,omitempty"`
	Color     string       `json:"color,omitempty"`
}

// CheckoutRequest carries everything needed to place an order.
type CheckoutRequest struct {
	Customer      order.Customer        `json:"customer"`
	Shipping      order.ShippingAddress `json:"shipping"`
	Items         []CheckoutItem        `json:"items"`
	CouponCode    string                `json:"coupon_code,omitempty"`
	PaymentMethod order.PaymentMethod   `json:"payment_method"`
	Notes         string                `json:"notes,omitempty"`
	Source        order.Source          `json:"source,omitempty"`
}

// CheckoutResult is the outcome of a successful checkout.
type CheckoutResult struct {
	Order *order.Order `json:"order"`

	// WhatsAppURL is the wa.me handoff link with the order summary
	// pre-filled, ready to open on the customer's device.
	WhatsAppURL string `json:"whatsapp_url"`
}

// Checkout places an order: it snapshots catalog prices into line items,
// evaluates the coupon, computes totals, assigns the next sequential order
// number, redeems the coupon, persists the order, and adjusts stock.
//
// The coupon redemption is a conditional atomic increment; a coupon that
// hits its usage limit between validation and redemption rejects the
// checkout with ErrPromotionExhausted.
func (sf *Storefront) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	if err := validateCheckout(req); err != nil {
		return nil, err
	}

	now := time.Now()

	// Snapshot products into line items
	products, err := sf.fetchProducts(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	lines := make([]order.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		p := products[item.ProductID]
		lines = append(lines, order.LineItem{
			ID:        id.NewLineItemID(),
			ProductID: p.ID,
			Name:      p.Name,
			Image:     p.FirstImage(),
			UnitPrice: p.Price,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Color:     item.Color,
		})
	}

	cfg, err := sf.store.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load store settings: %w", err)
	}

	// Coupon resolution; the subtotal check needs the priced lines
	subtotal := order.Subtotal(lines, cfg.Shipping.DefaultCost.Currency)
	promo, err := sf.resolveCoupon(ctx, req.CouponCode, subtotal)
	if err != nil {
		return nil, err
	}

	totals := order.ComputeTotals(lines, cfg.Shipping, promo, now)

	// Sequential order number, scoped to the current year-month
	seq, err := sf.store.NextOrderSequence(ctx, now.Year(), now.Month())
	if err != nil {
		return nil, fmt.Errorf("allocate order sequence: %w", err)
	}
	number := order.BuildNumber(now.Year(), now.Month(), seq)

	// Redeem before persisting: an exhausted coupon rejects the checkout
	if promo != nil {
		if err := sf.store.RedeemPromotion(ctx, promo.ID); err != nil {
			return nil, fmt.Errorf("redeem coupon %s: %w", promo.Code, err)
		}
	}

	source := req.Source
	if source == "" {
		source = order.SourceSite
	}

	ord := &order.Order{
		Entity:        NewEntity(),
		ID:            id.NewOrderID(),
		Number:        number,
		Customer:      req.Customer,
		Shipping:      req.Shipping,
		Lines:         lines,
		Subtotal:      totals.Subtotal,
		ShippingCost:  totals.ShippingCost,
		Discount:      totals.Discount,
		Total:         totals.Total,
		PaymentMethod: req.PaymentMethod,
		Status:        order.StatusPending,
		StatusHistory: []order.StatusEntry{{Status: order.StatusPending, Timestamp: now}},
		Notes:         req.Notes,
		Source:        source,
	}
	if promo != nil {
		ord.CouponCode = promo.Code
	}

	if err := sf.store.CreateOrder(ctx, ord); err != nil {
		// Give the redemption slot back; no order exists to justify it.
		if promo != nil {
			if relErr := sf.store.ReleasePromotion(ctx, promo.ID); relErr != nil {
				sf.logger.Error("failed to release coupon after aborted checkout",
					"code", promo.Code,
					"error", relErr,
				)
			}
		}
		return nil, fmt.Errorf("create order %s: %w", number, err)
	}

	sf.adjustStock(ctx, products, req.Items)

	if promo != nil {
		sf.plugins.EmitPromotionRedeemed(ctx, promo, number)
	}
	sf.plugins.EmitOrderCreated(ctx, ord)

	sf.logger.Info("order placed",
		"number", number,
		"items", len(lines),
		"total", ord.Total.String(),
		"coupon", ord.CouponCode,
	)

	return &CheckoutResult{
		Order:       ord,
		WhatsAppURL: whatsapp.OrderLink(cfg.WhatsApp, ord),
	}, nil
}

// fetchProducts loads and validates every product referenced by the cart.
func (sf *Storefront) fetchProducts(ctx context.Context, items []CheckoutItem) (map[id.ProductID]*catalog.Product, error) {
	ids := make([]id.ProductID, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, ValidationError{Field: "quantity", Message: "quantity must be at least 1"}
		}
		ids = append(ids, item.ProductID)
	}

	fetched, err := sf.store.GetProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	products := make(map[id.ProductID]*catalog.Product, len(fetched))
	for _, p := range fetched {
		products[p.ID] = p
	}

	for _, item := range items {
		if _, ok := products[item.ProductID]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
		}
	}

	return products, nil
}

// resolveCoupon maps an empty code to no promotion and otherwise runs the
// full coupon validation.
func (sf *Storefront) resolveCoupon(ctx context.Context, code string, subtotal Money) (*promotion.Promotion, error) {
	if code == "" {
		return nil, nil
	}
	return sf.ValidateCoupon(ctx, code, subtotal)
}

// adjustStock decrements stock and increments sold counts for each line.
// Stock adjustment is best-effort after the order is persisted; failures
// are logged, not returned.
func (sf *Storefront) adjustStock(ctx context.Context, products map[id.ProductID]*catalog.Product, items []CheckoutItem) {
	for _, item := range items {
		p := products[item.ProductID]
		if err := sf.store.AdjustStock(ctx, p.ID, -item.Quantity, item.Quantity); err != nil {
			sf.logger.Error("stock adjustment failed",
				"product_id", p.ID.String(),
				"delta", -item.Quantity,
				"error", err,
			)
			continue
		}
		if p.Stock-item.Quantity <= 0 {
			sf.plugins.EmitStockDepleted(ctx, p.ID.String(), p.Name)
		}
	}
}

func validateCheckout(req CheckoutRequest) error {
	if len(req.Items) == 0 {
		return ErrEmptyOrder
	}
	if req.Customer.Name == "" {
		return ValidationError{Field: "customer.name", Message: "customer name is required"}
	}
	if req.Customer.Phone == "" {
		return ValidationError{Field: "customer.phone", Message: "customer phone is required"}
	}
	if !req.PaymentMethod.IsKnown() {
		return ValidationError{Field: "payment_method", Message: fmt.Sprintf("unknown payment method %q", req.PaymentMethod)}
	}
	return nil
}
