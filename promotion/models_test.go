package promotion

import (
	"testing"
	"time"

	"github.com/lojix/storefront/id"
	"github.com/lojix/storefront/types"
)

func activePromo(kind Kind, value int64) *Promotion {
	now := time.Now()
	return &Promotion{
		ID:        id.NewPromotionID(),
		Title:     "Campanha de teste",
		Kind:      kind,
		Value:     value,
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(time.Hour),
		IsActive:  true,
	}
}

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"promo10", "PROMO10"},
		{"  Promo10  ", "PROMO10"},
		{"PROMO10", "PROMO10"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeCode(tt.input); got != tt.expected {
			t.Errorf("NormalizeCode(%q): got %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestIsCurrentlyValid(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		mod   func(*Promotion)
		valid bool
	}{
		{"active in window", func(*Promotion) {}, true},
		{"disabled", func(p *Promotion) { p.IsActive = false }, false},
		{"not started", func(p *Promotion) { p.StartDate = now.Add(time.Hour) }, false},
		{"expired", func(p *Promotion) { p.EndDate = now.Add(-time.Minute) }, false},
		{"under usage limit", func(p *Promotion) { p.UsageLimit = 10; p.UsedCount = 9 }, true},
		{"usage limit reached", func(p *Promotion) { p.UsageLimit = 10; p.UsedCount = 10 }, false},
		{"unlimited usage", func(p *Promotion) { p.UsageLimit = 0; p.UsedCount = 1000 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := activePromo(KindPercentage, 10)
			tt.mod(p)
			if got := p.IsCurrentlyValid(now); got != tt.valid {
				t.Errorf("IsCurrentlyValid: got %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestComputeDiscountPercentage(t *testing.T) {
	now := time.Now()
	p := activePromo(KindPercentage, 30)

	d := p.ComputeDiscount(types.BRL(50000), now)
	if !d.Amount.Equal(types.BRL(15000)) {
		t.Errorf("30%% of R$500,00: got %v, want %v", d.Amount, types.BRL(15000))
	}
	if d.FreeShipping {
		t.Error("percentage discount should not waive shipping")
	}
}

func TestComputeDiscountPercentageCapped(t *testing.T) {
	now := time.Now()
	p := activePromo(KindPercentage, 30)
	p.MaxDiscount = types.BRL(10000)

	d := p.ComputeDiscount(types.BRL(50000), now)
	if !d.Amount.Equal(types.BRL(10000)) {
		t.Errorf("capped discount: got %v, want %v", d.Amount, types.BRL(10000))
	}
}

func TestComputeDiscountFixed(t *testing.T) {
	now := time.Now()
	p := activePromo(KindFixed, 2000)

	d := p.ComputeDiscount(types.BRL(50000), now)
	if !d.Amount.Equal(types.BRL(2000)) {
		t.Errorf("fixed discount: got %v, want %v", d.Amount, types.BRL(2000))
	}
}

func TestComputeDiscountFixedNeverExceedsSubtotal(t *testing.T) {
	now := time.Now()
	p := activePromo(KindFixed, 99999)

	d := p.ComputeDiscount(types.BRL(5000), now)
	if !d.Amount.Equal(types.BRL(5000)) {
		t.Errorf("discount clamped to subtotal: got %v, want %v", d.Amount, types.BRL(5000))
	}
}

func TestComputeDiscountFreeShipping(t *testing.T) {
	now := time.Now()
	p := activePromo(KindFreeShipping, 0)

	d := p.ComputeDiscount(types.BRL(50000), now)
	if !d.FreeShipping {
		t.Error("expected FreeShipping marker")
	}
	if d.Amount.IsPositive() {
		t.Errorf("free shipping carries no monetary discount, got %v", d.Amount)
	}
}

func TestComputeDiscountBuyXGetY(t *testing.T) {
	now := time.Now()
	p := activePromo(KindBuyXGetY, 1)

	d := p.ComputeDiscount(types.BRL(50000), now)
	if !d.IsZero() {
		t.Errorf("buyXgetY computes no discount, got %+v", d)
	}
}

func TestComputeDiscountBelowMinimum(t *testing.T) {
	now := time.Now()
	p := activePromo(KindPercentage, 10)
	p.MinPurchase = types.BRL(10000)

	d := p.ComputeDiscount(types.BRL(9999), now)
	if !d.IsZero() {
		t.Errorf("below minimum purchase yields zero, got %+v", d)
	}

	d = p.ComputeDiscount(types.BRL(10000), now)
	if d.IsZero() {
		t.Error("at minimum purchase the discount applies")
	}
}

func TestComputeDiscountExpired(t *testing.T) {
	now := time.Now()
	p := activePromo(KindPercentage, 10)
	p.EndDate = now.Add(-time.Minute)

	if d := p.ComputeDiscount(types.BRL(50000), now); !d.IsZero() {
		t.Errorf("expired promotion yields zero, got %+v", d)
	}
}

func TestComputeDiscountDeterministic(t *testing.T) {
	now := time.Now()
	p := activePromo(KindPercentage, 33)

	first := p.ComputeDiscount(types.BRL(10101), now)
	for i := 0; i < 10; i++ {
		if got := p.ComputeDiscount(types.BRL(10101), now); !got.Amount.Equal(first.Amount) {
			t.Fatalf("run %d: got %v, want %v", i, got.Amount, first.Amount)
		}
	}
}

func TestKindIsKnown(t *testing.T) {
	for _, k := range []Kind{KindPercentage, KindFixed, KindFreeShipping, KindBuyXGetY} {
		if !k.IsKnown() {
			t.Errorf("%q should be known", k)
		}
	}
	if Kind("bogo").IsKnown() {
		t.Error("unknown kind accepted")
	}
}
