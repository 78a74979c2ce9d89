package catalog

import (
	"context"

	"github.com/lojix/storefront/id"
	"github.com/lojix/storefront/types"
)

// Store is the persistence contract for catalog products.
type Store interface {
	Create(ctx context.Context, p *Product) error
	Get(ctx context.Context, productID id.ProductID) (*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	GetMany(ctx context.Context, productIDs []id.ProductID) ([]*Product, error)
	List(ctx context.Context, opts ListOpts) ([]*Product, int64, error)
	CountByCategory(ctx context.Context) ([]CategoryCount, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, productID id.ProductID) error

	// AdjustStock atomically applies stockDelta and soldDelta to the
	// product's counters. Single atomic update per product.
	AdjustStock(ctx context.Context, productID id.ProductID, stockDelta, soldDelta int64) error

	// AddViews atomically increments view counters for a batch of products.
	AddViews(ctx context.Context, counts map[id.ProductID]int64) error
}

// ListOpts filters and paginates product listings.
type ListOpts struct {
	Category        Category
	Subcategory     string
	MinPrice        types.Money
	MaxPrice        types.Money
	Sizes           []string
	ColorNames      []string
	Tags            []string
	Featured        bool
	Search          string
	IncludeInactive bool
	Sort            SortField
	Limit           int
	Offset          int
}
