// Package audithook bridges Storefront lifecycle events to an audit trail
// backend.
//
// It defines a local Recorder interface so the package does not import
// Chronicle directly. Callers inject a RecorderFunc adapter that bridges
// to Chronicle at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lojix/storefront/catalog"
	"github.com/lojix/storefront/order"
	"github.com/lojix/storefront/plugin"
	"github.com/lojix/storefront/promotion"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin               = (*Extension)(nil)
	_ plugin.OnProductCreated     = (*Extension)(nil)
	_ plugin.OnProductUpdated     = (*Extension)(nil)
	_ plugin.OnProductDeleted     = (*Extension)(nil)
	_ plugin.OnStockDepleted      = (*Extension)(nil)
	_ plugin.OnPromotionCreated   = (*Extension)(nil)
	_ plugin.OnPromotionRedeemed  = (*Extension)(nil)
	_ plugin.OnOrderCreated       = (*Extension)(nil)
	_ plugin.OnOrderStatusChanged = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
// This matches chronicle.Emitter but is defined locally so that the
// audit_hook package does not import Chronicle directly — callers inject
// the concrete *chronicle.Chronicle at wiring time.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
// It mirrors chronicle/audit.Event but avoids a module dependency.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges Storefront lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Catalog lifecycle hooks
// ──────────────────────────────────────────────────

// OnProductCreated implements plugin.OnProductCreated.
func (e *Extension) OnProductCreated(ctx context.Context, product interface{}) error {
	p, _ := product.(*catalog.Product)
	var productID, name string
	if p != nil {
		productID = p.ID.String()
		name = p.Name
	}
	return e.record(ctx, ActionProductCreated, SeverityInfo, OutcomeSuccess,
		ResourceProduct, productID, CategoryCatalog, nil,
		"name", name,
	)
}

// OnProductUpdated implements plugin.OnProductUpdated.
func (e *Extension) OnProductUpdated(ctx context.Context, product interface{}) error {
	p, _ := product.(*catalog.Product)
	var productID string
	if p != nil {
		productID = p.ID.String()
	}
	return e.record(ctx, ActionProductUpdated, SeverityInfo, OutcomeSuccess,
		ResourceProduct, productID, CategoryCatalog, nil,
		"event", "product_updated",
	)
}

// OnProductDeleted implements plugin.OnProductDeleted.
func (e *Extension) OnProductDeleted(ctx context.Context, productID string) error {
	return e.record(ctx, ActionProductDeleted, SeverityInfo, OutcomeSuccess,
		ResourceProduct, productID, CategoryCatalog, nil,
		"product_id", productID,
	)
}

// OnStockDepleted implements plugin.OnStockDepleted.
func (e *Extension) OnStockDepleted(ctx context.Context, productID, name string) error {
	return e.record(ctx, ActionStockDepleted, SeverityWarning, OutcomePartial,
		ResourceProduct, productID, CategoryInventory, nil,
		"product_id", productID,
		"name", name,
	)
}

// ──────────────────────────────────────────────────
// Promotion lifecycle hooks
// ──────────────────────────────────────────────────

// OnPromotionCreated implements plugin.OnPromotionCreated.
func (e *Extension) OnPromotionCreated(ctx context.Context, promo interface{}) error {
	p, _ := promo.(*promotion.Promotion)
	var promoID, code string
	if p != nil {
		promoID = p.ID.String()
		code = p.Code
	}
	return e.record(ctx, ActionPromotionCreated, SeverityInfo, OutcomeSuccess,
		ResourcePromotion, promoID, CategoryMarketing, nil,
		"code", code,
	)
}

// OnPromotionRedeemed implements plugin.OnPromotionRedeemed.
func (e *Extension) OnPromotionRedeemed(ctx context.Context, promo interface{}, orderNumber string) error {
	p, _ := promo.(*promotion.Promotion)
	var promoID, code string
	if p != nil {
		promoID = p.ID.String()
		code = p.Code
	}
	return e.record(ctx, ActionPromotionRedeemed, SeverityInfo, OutcomeSuccess,
		ResourcePromotion, promoID, CategoryMarketing, nil,
		"code", code,
		"order_number", orderNumber,
	)
}

// ──────────────────────────────────────────────────
// Order lifecycle hooks
// ──────────────────────────────────────────────────

// OnOrderCreated implements plugin.OnOrderCreated.
func (e *Extension) OnOrderCreated(ctx context.Context, ord interface{}) error {
	o, _ := ord.(*order.Order)
	var orderID, number string
	var totalCents int64
	if o != nil {
		orderID = o.ID.String()
		number = o.Number
		totalCents = o.Total.Amount
	}
	return e.record(ctx, ActionOrderCreated, SeverityInfo, OutcomeSuccess,
		ResourceOrder, orderID, CategorySales, nil,
		"number", number,
		"total_cents", totalCents,
	)
}

// OnOrderStatusChanged implements plugin.OnOrderStatusChanged.
func (e *Extension) OnOrderStatusChanged(ctx context.Context, ord interface{}, oldStatus, newStatus string) error {
	o, _ := ord.(*order.Order)
	var orderID, number string
	if o != nil {
		orderID = o.ID.String()
		number = o.Number
	}

	severity := SeverityInfo
	if newStatus == string(order.StatusCancelled) {
		severity = SeverityWarning
	}

	return e.record(ctx, ActionOrderStatusChanged, severity, OutcomeSuccess,
		ResourceOrder, orderID, CategorySales, nil,
		"number", number,
		"from", oldStatus,
		"to", newStatus,
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
