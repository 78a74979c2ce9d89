package order

import (
	"testing"
	"time"

	"github.com/lojix/storefront/id"
	"github.com/lojix/storefront/promotion"
	"github.com/lojix/storefront/types"
)

func testLines(prices ...int64) []LineItem {
	lines := make([]LineItem, len(prices))
	for i, p := range prices {
		lines[i] = LineItem{
			ID:        id.NewLineItemID(),
			ProductID: id.NewProductID(),
			UnitPrice: types.BRL(p),
			Quantity:  1,
		}
	}
	return lines
}

func testPromo(kind promotion.Kind, value int64) *promotion.Promotion {
	now := time.Now()
	return &promotion.Promotion{
		ID:        id.NewPromotionID(),
		Kind:      kind,
		Value:     value,
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(time.Hour),
		IsActive:  true,
	}
}

func TestSubtotal(t *testing.T) {
	lines := testLines(10000, 5000)
	lines[1].Quantity = 2

	got := Subtotal(lines, "brl")
	if !got.Equal(types.BRL(20000)) {
		t.Errorf("Subtotal: got %v, want %v", got, types.BRL(20000))
	}

	empty := Subtotal(nil, "brl")
	if !empty.IsZero() || empty.Currency != "brl" {
		t.Errorf("empty Subtotal: got %v", empty)
	}
}

func TestComputeTotalsNoPromo(t *testing.T) {
	policy := types.DefaultShippingPolicy()
	totals := ComputeTotals(testLines(10000), policy, nil, time.Now())

	if !totals.Subtotal.Equal(types.BRL(10000)) {
		t.Errorf("subtotal: got %v", totals.Subtotal)
	}
	if !totals.ShippingCost.Equal(types.BRL(1590)) {
		t.Errorf("shipping: got %v, want flat R$15,90", totals.ShippingCost)
	}
	if !totals.Discount.IsZero() {
		t.Errorf("discount: got %v, want zero", totals.Discount)
	}
	if !totals.Total.Equal(types.BRL(11590)) {
		t.Errorf("total: got %v, want %v", totals.Total, types.BRL(11590))
	}
}

func TestComputeTotalsFreeShippingThreshold(t *testing.T) {
	policy := types.DefaultShippingPolicy()
	totals := ComputeTotals(testLines(29900), policy, nil, time.Now())

	if !totals.ShippingCost.IsZero() {
		t.Errorf("shipping above threshold: got %v, want zero", totals.ShippingCost)
	}
	if !totals.Total.Equal(types.BRL(29900)) {
		t.Errorf("total: got %v, want %v", totals.Total, types.BRL(29900))
	}
}

func TestComputeTotalsPercentagePromo(t *testing.T) {
	policy := types.DefaultShippingPolicy()
	totals := ComputeTotals(testLines(50000), policy, testPromo(promotion.KindPercentage, 30), time.Now())

	if !totals.Discount.Equal(types.BRL(15000)) {
		t.Errorf("discount: got %v, want %v", totals.Discount, types.BRL(15000))
	}
	// Subtotal over threshold, so shipping is already free.
	if !totals.Total.Equal(types.BRL(35000)) {
		t.Errorf("total: got %v, want %v", totals.Total, types.BRL(35000))
	}
}

func TestComputeTotalsFreeShippingPromo(t *testing.T) {
	policy := types.DefaultShippingPolicy()
	totals := ComputeTotals(testLines(10000), policy, testPromo(promotion.KindFreeShipping, 0), time.Now())

	if !totals.ShippingCost.IsZero() {
		t.Errorf("shipping with free-shipping promo: got %v, want zero", totals.ShippingCost)
	}
	if !totals.Discount.IsZero() {
		t.Errorf("discount: got %v, want zero", totals.Discount)
	}
	if !totals.Total.Equal(types.BRL(10000)) {
		t.Errorf("total: got %v, want %v", totals.Total, types.BRL(10000))
	}
}

func TestComputeTotalsInvalidFreeShippingStillCharges(t *testing.T) {
	policy := types.DefaultShippingPolicy()

	expired := testPromo(promotion.KindFreeShipping, 0)
	expired.EndDate = time.Now().Add(-time.Minute)

	belowMin := testPromo(promotion.KindFreeShipping, 0)
	belowMin.MinPurchase = types.BRL(20000)

	for _, promo := range []*promotion.Promotion{expired, belowMin} {
		totals := ComputeTotals(testLines(10000), policy, promo, time.Now())
		if !totals.ShippingCost.Equal(types.BRL(1590)) {
			t.Errorf("shipping with inapplicable free-shipping promo: got %v, want default cost", totals.ShippingCost)
		}
		if !totals.Total.Equal(types.BRL(11590)) {
			t.Errorf("total: got %v, want %v", totals.Total, types.BRL(11590))
		}
	}
}

func TestComputeTotalsExpiredPromoIgnored(t *testing.T) {
	policy := types.DefaultShippingPolicy()
	promo := testPromo(promotion.KindPercentage, 30)
	promo.EndDate = time.Now().Add(-time.Minute)

	totals := ComputeTotals(testLines(50000), policy, promo, time.Now())
	if !totals.Discount.IsZero() {
		t.Errorf("expired promo applied a discount: %v", totals.Discount)
	}
}

func TestComputeTotalsNeverNegative(t *testing.T) {
	policy := types.ShippingPolicy{
		FreeAbove:   types.BRL(29900),
		DefaultCost: types.BRL(0),
	}
	totals := ComputeTotals(testLines(1000), policy, testPromo(promotion.KindFixed, 99999), time.Now())

	if totals.Total.IsNegative() {
		t.Errorf("total went negative: %v", totals.Total)
	}
}

func TestComputeTotalsDeterministic(t *testing.T) {
	policy := types.DefaultShippingPolicy()
	lines := testLines(10101, 20303)
	promo := testPromo(promotion.KindPercentage, 17)
	now := time.Now()

	first := ComputeTotals(lines, policy, promo, now)
	for i := 0; i < 10; i++ {
		if got := ComputeTotals(lines, policy, promo, now); !got.Total.Equal(first.Total) {
			t.Fatalf("run %d: got %v, want %v", i, got.Total, first.Total)
		}
	}
}
