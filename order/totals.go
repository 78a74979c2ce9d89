package order

import (
	"time"

	"github.com/lojix/storefront/promotion"
	"github.com/lojix/storefront/types"
)

// Totals is the monetary breakdown of an order. Every field is exact to
// the smallest currency unit; recomputing the same inputs always yields
// the same values.
type Totals struct {
	Subtotal     types.Money `json:"subtotal"`
	ShippingCost types.Money `json:"shipping_cost"`
	Discount     types.Money `json:"discount"`
	Total        types.Money `json:"total"`
}

// Subtotal sums unit price times quantity over all lines. The fallback
// currency is used when there are no lines.
func Subtotal(lines []LineItem, fallbackCurrency string) types.Money {
	currency := fallbackCurrency
	if len(lines) > 0 {
		currency = lines[0].UnitPrice.Currency
	}
	subtotal := types.Zero(currency)
	for _, li := range lines {
		subtotal = subtotal.Add(li.Total())
	}
	return subtotal
}

// ComputeTotals derives an order's totals from its line snapshots, the
// shipping policy, and an optional promotion:
//
//  1. subtotal is the sum of unit price times quantity over all lines;
//  2. shipping follows the policy's free-shipping threshold, except that a
//     currently valid free-shipping promotion forces it to zero;
//  3. monetary promotions discount the subtotal, capped so the grand
//     total never goes negative.
//
// promo may be nil. The reference time decides promotion validity.
func ComputeTotals(lines []LineItem, policy types.ShippingPolicy, promo *promotion.Promotion, now time.Time) Totals {
	subtotal := Subtotal(lines, policy.DefaultCost.Currency)
	currency := subtotal.Currency

	shippingCost := policy.Quote(subtotal)
	discount := types.Zero(currency)

	if promo != nil {
		d := promo.ComputeDiscount(subtotal, now)
		if d.FreeShipping {
			shippingCost = types.Zero(currency)
		} else {
			discount = d.Amount
		}
	}

	total := subtotal.Add(shippingCost).Subtract(discount)
	if total.IsNegative() {
		total = types.Zero(currency)
	}

	return Totals{
		Subtotal:     subtotal,
		ShippingCost: shippingCost,
		Discount:     discount,
		Total:        total,
	}
}
