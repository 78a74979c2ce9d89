package promotion

import (
	"context"

	"github.com/lojix/storefront/id"
)

// Store is the persistence contract for promotions.
type Store interface {
	Create(ctx context.Context, p *Promotion) error
	Get(ctx context.Context, promoID id.PromotionID) (*Promotion, error)

	// GetByCode looks up a promotion by coupon code. Codes are matched
	// case-insensitively (stored uppercase, lookups normalized).
	GetByCode(ctx context.Context, code string) (*Promotion, error)

	List(ctx context.Context, opts ListOpts) ([]*Promotion, error)
	Update(ctx context.Context, p *Promotion) error
	Delete(ctx context.Context, promoID id.PromotionID) error

	// Redeem increments the promotion's UsedCount by exactly one, as a
	// single conditional atomic update: when the promotion carries a usage
	// limit, the increment only applies while UsedCount < UsageLimit.
	// Returns ErrPromotionExhausted when the cap has been reached, so
	// concurrent checkouts cannot over-redeem.
	Redeem(ctx context.Context, promoID id.PromotionID) error
}

// ListOpts filters promotion listings.
type ListOpts struct {
	// ActiveOnly restricts the list to enabled promotions whose date
	// window contains the current time.
	ActiveOnly bool
	// HomepageOnly restricts the list to promotions flagged for the
	// homepage banner section.
	HomepageOnly bool
	Limit        int
	Offset       int
}
