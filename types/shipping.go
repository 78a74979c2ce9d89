package types

// ShippingPolicy decides the shipping cost for an order subtotal.
// Orders at or above FreeAbove ship for free; everything else pays
// the flat DefaultCost.
type ShippingPolicy struct {
	FreeAbove   Money `json:"free_above"`
	DefaultCost Money `json:"default_cost"`
}

// DefaultShippingPolicy returns the policy the storefront ships with:
// free delivery from R$299,00, otherwise a flat R$15,90.
func DefaultShippingPolicy() ShippingPolicy {
	return ShippingPolicy{
		FreeAbove:   BRL(29900),
		DefaultCost: BRL(1590),
	}
}

// Quote returns the shipping cost for the given subtotal.
func (p ShippingPolicy) Quote(subtotal Money) Money {
	if subtotal.GreaterOrEqual(p.FreeAbove) {
		return Zero(subtotal.Currency)
	}
	return p.DefaultCost
}
