package id_test

import (
	"strings"
	"testing"

	"github.com/lojix/storefront/id"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		newFn  func() id.ID
		prefix string
	}{
		{"ProductID", id.NewProductID, "prod_"},
		{"OrderID", id.NewOrderID, "ord_"},
		{"LineItemID", id.NewLineItemID, "li_"},
		{"PromotionID", id.NewPromotionID, "promo_"},
		{"BannerID", id.NewBannerID, "bnr_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.newFn().String()
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	i := id.New(id.PrefixProduct)
	if i.IsNil() {
		t.Fatal("expected non-nil ID")
	}
	if i.Prefix() != id.PrefixProduct {
		t.Errorf("expected prefix %q, got %q", id.PrefixProduct, i.Prefix())
	}
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		newFn   func() id.ID
		parseFn func(string) (id.ID, error)
	}{
		{"ProductID", id.NewProductID, id.ParseProductID},
		{"OrderID", id.NewOrderID, id.ParseOrderID},
		{"LineItemID", id.NewLineItemID, id.ParseLineItemID},
		{"PromotionID", id.NewPromotionID, id.ParsePromotionID},
		{"BannerID", id.NewBannerID, id.ParseBannerID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := tt.newFn()
			parsed, err := tt.parseFn(original.String())
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if parsed.String() != original.String() {
				t.Errorf("round-trip mismatch: %q != %q", parsed.String(), original.String())
			}
		})
	}
}

func TestCrossTypeRejection(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		parseFn func(string) (id.ID, error)
	}{
		{"ParseProductID rejects ord_", id.NewOrderID().String(), id.ParseProductID},
		{"ParseOrderID rejects li_", id.NewLineItemID().String(), id.ParseOrderID},
		{"ParseLineItemID rejects promo_", id.NewPromotionID().String(), id.ParseLineItemID},
		{"ParsePromotionID rejects bnr_", id.NewBannerID().String(), id.ParsePromotionID},
		{"ParseBannerID rejects prod_", id.NewProductID().String(), id.ParseBannerID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.parseFn(tt.input)
			if err == nil {
				t.Errorf("expected error for cross-type parse of %q, got nil", tt.input)
			}
		})
	}
}

func TestParseAny(t *testing.T) {
	ids := []id.ID{
		id.NewProductID(),
		id.NewOrderID(),
		id.NewLineItemID(),
		id.NewPromotionID(),
		id.NewBannerID(),
	}

	for _, original := range ids {
		parsed, err := id.ParseAny(original.String())
		if err != nil {
			t.Fatalf("ParseAny(%q) failed: %v", original.String(), err)
		}
		if parsed.String() != original.String() {
			t.Errorf("round-trip mismatch: %q != %q", parsed.String(), original.String())
		}
	}
}

func TestParseInvalid(t *testing.T) {
	for _, input := range []string{"", "not-an-id", "prod_!!!"} {
		if _, err := id.Parse(input); err == nil {
			t.Errorf("Parse(%q): expected error, got nil", input)
		}
	}
}

func TestTextRoundTrip(t *testing.T) {
	original := id.NewProductID()

	data, err := original.MarshalText()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded id.ID
	if err := decoded.UnmarshalText(data); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded.String() != original.String() {
		t.Errorf("round-trip mismatch: %q != %q", decoded.String(), original.String())
	}
}
