// Package catalog defines the product catalog models and storage contract.
package catalog

import (
	"github.com/lojix/storefront/id"
	"github.com/lojix/storefront/types"
)

// Category is the product category enumeration.
type Category string

const (
	CategoryDresses     Category = "vestidos"
	CategoryBlouses     Category = "blusas"
	CategoryPants       Category = "calcas"
	CategorySkirts      Category = "saias"
	CategorySets        Category = "conjuntos"
	CategoryAccessories Category = "acessorios"
	CategoryShoes       Category = "calcados"
	CategoryBags        Category = "bolsas"
)

// Categories lists every known product category.
func Categories() []Category {
	return []Category{
		CategoryDresses,
		CategoryBlouses,
		CategoryPants,
		CategorySkirts,
		CategorySets,
		CategoryAccessories,
		CategoryShoes,
		CategoryBags,
	}
}

// IsKnown reports whether c is one of the known categories.
func (c Category) IsKnown() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Badge is a merchandising label shown on product cards.
type Badge string

const (
	BadgeNew        Badge = "novo"
	BadgeSale       Badge = "promocao"
	BadgeBestSeller Badge = "mais-vendido"
	BadgeLastUnits  Badge = "ultimas-pecas"
	BadgeExclusive  Badge = "exclusivo"
)

// Color is a product color option.
type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// Rating aggregates customer review scores for a product.
type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Product is a live catalog entry. Orders never reference it directly for
// pricing — they carry immutable snapshots taken at checkout time.
type Product struct {
	types.Entity
	ID            id.ProductID      `json:"id"`
	Name          string            `json:"name"`
	Slug          string            `json:"slug"`
	Description   string            `json:"description"`
	Price         types.Money       `json:"price"`
	OriginalPrice types.Money       `json:"original_price,omitzero"`
	Images        []string          `json:"images"`
	Category      Category          `json:"category"`
	Subcategory   string            `json:"subcategory,omitempty"`
	Sizes         []string          `json:"sizes,omitempty"`
	Colors        []Color           `json:"colors,omitempty"`
	Stock         int64             `json:"stock"`
	SKU           string            `json:"sku"`
	Tags          []string          `json:"tags,omitempty"`
	Badges        []Badge           `json:"badges,omitempty"`
	Rating        Rating            `json:"rating"`
	Featured      bool              `json:"featured"`
	IsActive      bool              `json:"is_active"`
	Views         int64             `json:"views"`
	Sold          int64             `json:"sold"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// FirstImage returns the product's primary image, or "" when none is set.
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// InStock reports whether at least qty units are available.
func (p *Product) InStock(qty int64) bool {
	return p.Stock >= qty
}

// SortField selects the list ordering for ListOpts.
type SortField string

const (
	SortNewest    SortField = "newest"
	SortPriceAsc  SortField = "price_asc"
	SortPriceDesc SortField = "price_desc"
	SortBestSell  SortField = "best_selling"
)

// CategoryCount pairs a category with the number of active products in it.
type CategoryCount struct {
	Category Category `json:"category"`
	Count    int64    `json:"count"`
}
