package types

import (
	"encoding/json"
	"testing"
)

func TestMoneyConstructors(t *testing.T) {
	tests := []struct {
		name     string
		money    Money
		amount   int64
		currency string
		display  string
	}{
		{"BRL", BRL(4990), 4990, "brl", "R$49,90"},
		{"USD", USD(4900), 4900, "usd", "$49.00"},
		{"EUR", EUR(19900), 19900, "eur", "€199,00"},
		{"GBP", GBP(9900), 9900, "gbp", "£99.00"},
		{"Zero BRL", Zero("BRL"), 0, "brl", "R$0,00"},
		{"Zero USD", Zero("USD"), 0, "usd", "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.money.Amount != tt.amount {
				t.Errorf("Amount: got %d, want %d", tt.money.Amount, tt.amount)
			}
			if tt.money.Currency != tt.currency {
				t.Errorf("Currency: got %s, want %s", tt.money.Currency, tt.currency)
			}
			if tt.money.String() != tt.display {
				t.Errorf("Display: got %s, want %s", tt.money.String(), tt.display)
			}
		})
	}
}

func TestMoneyArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		op       func() Money
		expected Money
	}{
		{"Add", func() Money { return BRL(100).Add(BRL(200)) }, BRL(300)},
		{"Subtract", func() Money { return BRL(500).Subtract(BRL(200)) }, BRL(300)},
		{"Multiply", func() Money { return BRL(100).Multiply(3) }, BRL(300)},
		{"Negate", func() Money { return BRL(100).Negate() }, BRL(-100)},
		{"Abs positive", func() Money { return BRL(100).Abs() }, BRL(100)},
		{"Abs negative", func() Money { return BRL(-100).Abs() }, BRL(100)},
		{"Complex", func() Money {
			return BRL(1000).Add(BRL(500)).Multiply(2).Subtract(BRL(1000))
		}, BRL(2000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.op()
			if !result.Equal(tt.expected) {
				t.Errorf("Got %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMoneyPercent(t *testing.T) {
	tests := []struct {
		name     string
		base     Money
		pct      int64
		expected Money
	}{
		{"30% of 50000", BRL(50000), 30, BRL(15000)},
		{"10% of 12990", BRL(12990), 10, BRL(1299)},
		{"Rounds half up", BRL(101), 50, BRL(51)},
		{"Rounds down", BRL(101), 33, BRL(33)},
		{"Zero percent", BRL(50000), 0, BRL(0)},
		{"Full amount", BRL(50000), 100, BRL(50000)},
		{"Negative base", BRL(-101), 50, BRL(-51)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.base.Percent(tt.pct)
			if !result.Equal(tt.expected) {
				t.Errorf("Got %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for currency mismatch")
		}
	}()

	// This should panic
	_ = BRL(100).Add(USD(100))
}

func TestMoneyComparison(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Money
		less    bool
		greater bool
		equal   bool
	}{
		{"Equal", BRL(100), BRL(100), false, false, true},
		{"Less", BRL(50), BRL(100), true, false, false},
		{"Greater", BRL(200), BRL(100), false, true, false},
		{"Zero equal", BRL(0), Zero("brl"), false, false, true},
		{"Negative less", BRL(-100), BRL(100), true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.LessThan(tt.b); got != tt.less {
				t.Errorf("LessThan: got %v, want %v", got, tt.less)
			}
			if got := tt.a.GreaterThan(tt.b); got != tt.greater {
				t.Errorf("GreaterThan: got %v, want %v", got, tt.greater)
			}
			if got := tt.a.Equal(tt.b); got != tt.equal {
				t.Errorf("Equal: got %v, want %v", got, tt.equal)
			}
		})
	}
}

func TestMoneyMinMax(t *testing.T) {
	a, b := BRL(100), BRL(200)
	if got := a.Min(b); !got.Equal(a) {
		t.Errorf("Min: got %v, want %v", got, a)
	}
	if got := a.Max(b); !got.Equal(b) {
		t.Errorf("Max: got %v, want %v", got, b)
	}
}

func TestMoneyFormatMajor(t *testing.T) {
	tests := []struct {
		name     string
		money    Money
		expected string
	}{
		{"BRL comma", BRL(4990), "49,90"},
		{"BRL pads minor", BRL(4905), "49,05"},
		{"USD dot", USD(4900), "49.00"},
		{"Negative", BRL(-4990), "-49,90"},
		{"Zero", BRL(0), "0,00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.money.FormatMajor(); got != tt.expected {
				t.Errorf("Got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestMoneyJSON(t *testing.T) {
	data, err := json.Marshal(BRL(12990))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded["amount"].(float64) != 12990 {
		t.Errorf("amount: got %v, want 12990", decoded["amount"])
	}
	if decoded["currency"] != "brl" {
		t.Errorf("currency: got %v, want brl", decoded["currency"])
	}
	if decoded["display"] != "R$129,90" {
		t.Errorf("display: got %v, want R$129,90", decoded["display"])
	}
}

func TestSum(t *testing.T) {
	got := Sum(BRL(100), BRL(200), BRL(300))
	if !got.Equal(BRL(600)) {
		t.Errorf("Sum: got %v, want %v", got, BRL(600))
	}

	empty := Sum()
	if !empty.IsZero() {
		t.Errorf("Sum of nothing: got %v, want zero", empty)
	}
}
