package storefront

import (
	"context"
	"fmt"

	"github.com/lojix/storefront/catalog"
	"github.com/lojix/storefront/id"
	"github.com/lojix/storefront/types"
)

// ──────────────────────────────────────────────────
// Catalog Management
// ──────────────────────────────────────────────────

// CreateProduct creates a new product. A missing slug is derived from the
// name and a missing SKU is generated from the category.
func (sf *Storefront) CreateProduct(ctx context.Context, p *catalog.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}

	if p.ID == (id.ProductID{}) {
		p.ID = id.NewProductID()
	}
	p.Entity = types.NewEntity()
	if p.Slug == "" {
		p.Slug = catalog.Slugify(p.Name)
	}
	if p.SKU == "" {
		p.SKU = catalog.GenerateSKU(p.Category)
	}

	if err := sf.store.CreateProduct(ctx, p); err != nil {
		return err
	}

	sf.plugins.EmitProductCreated(ctx, p)
	return nil
}

// GetProduct retrieves a product by ID.
func (sf *Storefront) GetProduct(ctx context.Context, productID id.ProductID) (*catalog.Product, error) {
	return sf.store.GetProduct(ctx, productID)
}

// GetProductBySlug retrieves a product by its URL slug.
func (sf *Storefront) GetProductBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	return sf.store.GetProductBySlug(ctx, slug)
}

// ListProducts returns a filtered, paginated product listing along with the
// total number of matches.
func (sf *Storefront) ListProducts(ctx context.Context, opts catalog.ListOpts) ([]*catalog.Product, int64, error) {
	if opts.Category != "" && !opts.Category.IsKnown() {
		return nil, 0, fmt.Errorf("%w: %s", ErrInvalidCategory, opts.Category)
	}
	return sf.store.ListProducts(ctx, opts)
}

// ListCategories returns active product counts per category.
func (sf *Storefront) ListCategories(ctx context.Context) ([]catalog.CategoryCount, error) {
	return sf.store.CountByCategory(ctx)
}

// UpdateProduct updates an existing product.
func (sf *Storefront) UpdateProduct(ctx context.Context, p *catalog.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if p.ID == (id.ProductID{}) {
		return fmt.Errorf("%w: missing product id", ErrInvalidInput)
	}
	if p.Slug == "" {
		p.Slug = catalog.Slugify(p.Name)
	}
	p.Touch()

	if err := sf.store.UpdateProduct(ctx, p); err != nil {
		return err
	}

	sf.plugins.EmitProductUpdated(ctx, p)
	return nil
}

// DeleteProduct removes a product from the catalog.
func (sf *Storefront) DeleteProduct(ctx context.Context, productID id.ProductID) error {
	if err := sf.store.DeleteProduct(ctx, productID); err != nil {
		return err
	}

	sf.plugins.EmitProductDeleted(ctx, productID.String())
	return nil
}

func validateProduct(p *catalog.Product) error {
	if p.Name == "" {
		return ValidationError{Field: "name", Message: "product name is required"}
	}
	if !p.Price.IsPositive() {
		return ValidationError{Field: "price", Message: "price must be positive"}
	}
	if !p.Category.IsKnown() {
		return fmt.Errorf("%w: %s", ErrInvalidCategory, p.Category)
	}
	if p.Stock < 0 {
		return ValidationError{Field: "stock", Message: "stock cannot be negative"}
	}
	return nil
}
