package storefront

import "github.com/lojix/storefront/types"

// Re-export common types for convenience so users don't have to import types package.

// Money is re-exported from types package.
type Money = types.Money

// Entity is re-exported from types package.
type Entity = types.Entity

// ShippingPolicy is re-exported from types package.
type ShippingPolicy = types.ShippingPolicy

// Re-export Money constructors
var (
	BRL  = types.BRL
	USD  = types.USD
	EUR  = types.EUR
	GBP  = types.GBP
	Zero = types.Zero
	Sum  = types.Sum
)

// Re-export Entity constructor
var NewEntity = types.NewEntity

// Re-export the default shipping policy
var DefaultShippingPolicy = types.DefaultShippingPolicy
