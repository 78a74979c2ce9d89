// Package promotion defines promotions, coupon codes, and the discount
// evaluation rules applied at checkout.
package promotion

import (
	"strings"
	"time"

	"github.com/lojix/storefront/id"
	"github.com/lojix/storefront/types"
)

// Kind selects how a promotion's Value is interpreted.
type Kind string

const (
	// KindPercentage discounts Value percent of the order subtotal.
	KindPercentage Kind = "percentage"
	// KindFixed discounts a fixed amount; Value is in the smallest
	// currency unit (centavos).
	KindFixed Kind = "fixed"
	// KindFreeShipping waives the shipping cost; Value is ignored.
	KindFreeShipping Kind = "freeShipping"
	// KindBuyXGetY is a recognized kind with no discount computation.
	// It always evaluates to zero; integrators must handle it themselves.
	KindBuyXGetY Kind = "buyXgetY"
)

// IsKnown reports whether k is one of the recognized promotion kinds.
func (k Kind) IsKnown() bool {
	switch k {
	case KindPercentage, KindFixed, KindFreeShipping, KindBuyXGetY:
		return true
	}
	return false
}

// Banner holds the optional homepage banner styling for a promotion.
type Banner struct {
	ID              id.BannerID `json:"id,omitempty"`
	Image           string      `json:"image,omitempty"`
	BackgroundColor string      `json:"background_color,omitempty"`
	TextColor       string      `json:"text_color,omitempty"`
}

// Promotion is a storewide discount campaign, optionally redeemable through
// a coupon code. It is soft-managed: campaigns are switched off via
// IsActive rather than deleted.
type Promotion struct {
	types.Entity
	ID          id.PromotionID `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Kind        Kind           `json:"kind"`

	// Value's meaning depends on Kind: percent points for percentage,
	// centavos for fixed, ignored otherwise.
	Value int64 `json:"value"`

	// Code is the optional coupon token. Stored uppercase; matching is
	// case-insensitive.
	Code string `json:"code,omitempty"`

	MinPurchase types.Money `json:"min_purchase"`

	// MaxDiscount caps the absolute discount when positive; a zero value
	// means no cap.
	MaxDiscount types.Money `json:"max_discount,omitzero"`

	// UsageLimit caps total redemptions when positive; zero means
	// unlimited. UsedCount is maintained by the store's Redeem operation.
	UsageLimit int64 `json:"usage_limit,omitempty"`
	UsedCount  int64 `json:"used_count"`

	ApplicableCategories []string       `json:"applicable_categories,omitempty"`
	ApplicableProducts   []id.ProductID `json:"applicable_products,omitempty"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	Banner         *Banner `json:"banner,omitempty"`
	ShowOnHomepage bool    `json:"show_on_homepage"`
	ShowCountdown  bool    `json:"show_countdown"`
	IsActive       bool    `json:"is_active"`
}

// NormalizeCode uppercases a coupon code for storage and lookup.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsCurrentlyValid reports whether the promotion can be applied at the
// reference time: manually enabled, inside its date window, and under its
// redemption cap. No side effects.
func (p *Promotion) IsCurrentlyValid(now time.Time) bool {
	return p.IsActive &&
		!now.Before(p.StartDate) &&
		!now.After(p.EndDate) &&
		(p.UsageLimit == 0 || p.UsedCount < p.UsageLimit)
}

// Discount is the outcome of evaluating a promotion against a subtotal.
// Either Amount carries a monetary discount, or FreeShipping is set and
// the caller waives the shipping line instead.
type Discount struct {
	Amount       types.Money `json:"amount"`
	FreeShipping bool        `json:"free_shipping"`
}

// IsZero reports whether the discount has no effect.
func (d Discount) IsZero() bool {
	return !d.FreeShipping && !d.Amount.IsPositive()
}

// ComputeDiscount evaluates the promotion against a subtotal at the
// reference time. Invalid or inapplicable promotions yield a zero discount
// rather than an error; the result never exceeds the subtotal. Pure: the
// promotion is not mutated (redemption counting is Store.Redeem).
func (p *Promotion) ComputeDiscount(subtotal types.Money, now time.Time) Discount {
	zero := Discount{Amount: types.Zero(subtotal.Currency)}

	if !p.IsCurrentlyValid(now) {
		return zero
	}
	if p.MinPurchase.IsPositive() && subtotal.LessThan(p.MinPurchase) {
		return zero
	}

	var raw types.Money
	switch p.Kind {
	case KindPercentage:
		raw = subtotal.Percent(p.Value)
	case KindFixed:
		raw = types.Money{Amount: p.Value, Currency: subtotal.Currency}
	case KindFreeShipping:
		// Applied to the shipping line by the caller, not the subtotal.
		return Discount{Amount: types.Zero(subtotal.Currency), FreeShipping: true}
	default:
		// buyXgetY and anything unknown compute no discount.
		return zero
	}

	if p.MaxDiscount.IsPositive() && raw.GreaterThan(p.MaxDiscount) {
		raw = p.MaxDiscount
	}

	return Discount{Amount: raw.Min(subtotal)}
}
