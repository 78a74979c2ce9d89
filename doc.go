// Package storefront provides a composable e-commerce engine for Go applications.
//
// Storefront is designed as a library, not a service. Import it directly into
// your Go application and expose it through whatever transport you run. It
// provides:
//
//   - A product catalog with filtering, search, and category aggregation
//   - Promotions and coupon codes with deterministic discount evaluation
//   - Checkout with sequential order numbers and WhatsApp handoff
//   - An order status state machine with a full audit history
//   - Buffered product view counting with batched flushes
//   - Singleton store settings (branding, shipping policy, homepage banners)
//
// # Quick Start
//
// Create a storefront instance with your preferred store:
//
//	import (
//	    "github.com/lojix/storefront"
//	    "github.com/lojix/storefront/store/mongo"
//	)
//
//	// db is your application's *grove.DB handle (memory.New() needs no DB)
//	sf := storefront.New(mongo.New(db))
//
//	// Start the storefront (begins background workers)
//	if err := sf.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer sf.Stop()
//
// # Core Concepts
//
// Products live in the catalog and carry prices, stock, and variants:
//
//	p := &catalog.Product{
//	    Name:     "Vestido Floral",
//	    Price:    storefront.BRL(12990),
//	    Category: catalog.CategoryDresses,
//	    Stock:    12,
//	}
//
// Promotions discount a cart subtotal and can be exposed as coupon codes:
//
//	promo, err := sf.ValidateCoupon(ctx, "BEMVINDA10", subtotal)
//
// Checkout turns a cart into an order, redeems the coupon, adjusts stock,
// and returns the WhatsApp handoff link:
//
//	result, err := sf.Checkout(ctx, req)
//	// result.Order.Number == "PED260100042"
//	// result.WhatsAppURL  == "https://wa.me/5511999999999?text=..."
//
// All monetary calculations use integer arithmetic to avoid floating-point
// precision issues. The Money type represents amounts in the smallest currency
// unit (centavos for BRL, cents for USD, etc).
//
// # TypeID
//
// All entities use TypeID for globally unique, type-safe identifiers:
//
//	prod_01h2xcejqtf2nbrexx3vqjhp41  // Product ID
//	ord_01h2xcejqtf2nbrexx3vqjhp41   // Order ID
//	promo_01h455vb4pex5vsknk084sn02q // Promotion ID
//
// TypeIDs are K-sortable, making them ideal for database indexes and
// providing natural time-ordering of entities.
package storefront
