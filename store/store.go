package store

import (
	"context"
	"time"

	"github.com/lojix/storefront/catalog"
	"github.com/lojix/storefront/id"
	"github.com/lojix/storefront/order"
	"github.com/lojix/storefront/promotion"
	"github.com/lojix/storefront/settings"
	"github.com/lojix/storefront/types"
)

// Store is the unified storage interface for all storefront entities.
// Instead of embedding the sub-interfaces, we explicitly declare all methods
// to avoid naming conflicts.
type Store interface {
	// Product methods
	CreateProduct(ctx context.Context, p *catalog.Product) error
	GetProduct(ctx context.Context, productID id.ProductID) (*catalog.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*catalog.Product, error)
	GetProducts(ctx context.Context, productIDs []id.ProductID) ([]*catalog.Product, error)
	ListProducts(ctx context.Context, opts catalog.ListOpts) ([]*catalog.Product, int64, error)
	CountByCategory(ctx context.Context) ([]catalog.CategoryCount, error)
	UpdateProduct(ctx context.Context, p *catalog.Product) error
	DeleteProduct(ctx context.Context, productID id.ProductID) error
	AdjustStock(ctx context.Context, productID id.ProductID, stockDelta, soldDelta int64) error
	AddViews(ctx context.Context, counts map[id.ProductID]int64) error

	// Promotion methods
	CreatePromotion(ctx context.Context, p *promotion.Promotion) error
	GetPromotion(ctx context.Context, promoID id.PromotionID) (*promotion.Promotion, error)
	GetPromotionByCode(ctx context.Context, code string) (*promotion.Promotion, error)
	ListPromotions(ctx context.Context, opts promotion.ListOpts) ([]*promotion.Promotion, error)
	UpdatePromotion(ctx context.Context, p *promotion.Promotion) error
	DeletePromotion(ctx context.Context, promoID id.PromotionID) error
	RedeemPromotion(ctx context.Context, promoID id.PromotionID) error
	// ReleasePromotion undoes one redemption, compensating a checkout
	// that failed after its coupon was redeemed. Never goes below zero.
	ReleasePromotion(ctx context.Context, promoID id.PromotionID) error

	// Order methods
	CreateOrder(ctx context.Context, o *order.Order) error
	GetOrder(ctx context.Context, orderID id.OrderID) (*order.Order, error)
	GetOrderByNumber(ctx context.Context, number string) (*order.Order, error)
	ListOrders(ctx context.Context, opts order.ListOpts) ([]*order.Order, int64, error)
	UpdateOrderStatus(ctx context.Context, orderID id.OrderID, status order.Status, entry order.StatusEntry, trackingCode string) error
	CountOrders(ctx context.Context, opts order.CountOpts) (int64, error)
	SumOrderTotals(ctx context.Context, opts order.CountOpts) (types.Money, error)
	CountOrdersByStatus(ctx context.Context) (map[order.Status]int64, error)
	NextOrderSequence(ctx context.Context, year int, month time.Month) (int64, error)

	// Settings methods
	GetSettings(ctx context.Context) (*settings.Settings, error)
	UpdateSettings(ctx context.Context, s *settings.Settings) error

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
