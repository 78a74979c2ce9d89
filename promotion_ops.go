package storefront

import (
	"context"
	"fmt"
	"time"

	"github.com/lojix/storefront/id"
	"github.com/lojix/storefront/promotion"
	"github.com/lojix/storefront/types"
)

// ──────────────────────────────────────────────────
// Promotion Management
// ──────────────────────────────────────────────────

// CreatePromotion creates a new promotion. The coupon code, when present,
// is normalized to uppercase.
func (sf *Storefront) CreatePromotion(ctx context.Context, p *promotion.Promotion) error {
	if err := validatePromotion(p); err != nil {
		return err
	}

	if p.ID == (id.PromotionID{}) {
		p.ID = id.NewPromotionID()
	}
	p.Entity = types.NewEntity()
	p.Code = promotion.NormalizeCode(p.Code)

	if err := sf.store.CreatePromotion(ctx, p); err != nil {
		return err
	}

	sf.plugins.EmitPromotionCreated(ctx, p)
	return nil
}

// GetPromotion retrieves a promotion by ID.
func (sf *Storefront) GetPromotion(ctx context.Context, promoID id.PromotionID) (*promotion.Promotion, error) {
	return sf.store.GetPromotion(ctx, promoID)
}

// ListPromotions returns promotions matching the given filters.
func (sf *Storefront) ListPromotions(ctx context.Context, opts promotion.ListOpts) ([]*promotion.Promotion, error) {
	return sf.store.ListPromotions(ctx, opts)
}

// UpdatePromotion updates an existing promotion.
func (sf *Storefront) UpdatePromotion(ctx context.Context, p *promotion.Promotion) error {
	if err := validatePromotion(p); err != nil {
		return err
	}
	if p.ID == (id.PromotionID{}) {
		return fmt.Errorf("%w: missing promotion id", ErrInvalidInput)
	}
	p.Code = promotion.NormalizeCode(p.Code)
	p.Touch()

	return sf.store.UpdatePromotion(ctx, p)
}

// DeletePromotion removes a promotion.
func (sf *Storefront) DeletePromotion(ctx context.Context, promoID id.PromotionID) error {
	return sf.store.DeletePromotion(ctx, promoID)
}

// ValidateCoupon resolves a coupon code against the given cart subtotal.
// Codes are matched case-insensitively. The returned promotion is valid at
// the time of the call; redemption happens at checkout.
func (sf *Storefront) ValidateCoupon(ctx context.Context, code string, subtotal types.Money) (*promotion.Promotion, error) {
	code = promotion.NormalizeCode(code)
	if code == "" {
		return nil, fmt.Errorf("%w: empty coupon code", ErrInvalidInput)
	}

	promo, err := sf.store.GetPromotionByCode(ctx, code)
	if err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrPromotionNotFound, code)
		}
		return nil, err
	}

	now := time.Now()
	if !promo.IsCurrentlyValid(now) {
		if now.After(promo.EndDate) {
			return nil, fmt.Errorf("%w: %s", ErrPromotionExpired, code)
		}
		return nil, fmt.Errorf("%w: %s", ErrPromotionInvalid, code)
	}

	if promo.MinPurchase.IsPositive() && subtotal.LessThan(promo.MinPurchase) {
		return nil, fmt.Errorf("%w: minimum is %s", ErrCouponBelowMinimum, promo.MinPurchase)
	}

	// Custom validators from plugins
	if err := sf.plugins.ValidateCoupon(ctx, promo, subtotal); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPromotionInvalid, err)
	}

	return promo, nil
}

func validatePromotion(p *promotion.Promotion) error {
	if p.Title == "" {
		return ValidationError{Field: "title", Message: "promotion title is required"}
	}
	switch p.Kind {
	case promotion.KindPercentage:
		if p.Value < 0 || p.Value > 100 {
			return ValidationError{Field: "value", Message: "percentage must be between 0 and 100"}
		}
	case promotion.KindFixed:
		if p.Value < 0 {
			return ValidationError{Field: "value", Message: "fixed discount cannot be negative"}
		}
	case promotion.KindFreeShipping, promotion.KindBuyXGetY:
		// No value constraints
	default:
		return ValidationError{Field: "kind", Message: fmt.Sprintf("unknown promotion kind %q", p.Kind)}
	}
	if p.EndDate.Before(p.StartDate) {
		return ValidationError{Field: "end_date", Message: "end date precedes start date"}
	}
	return nil
}
