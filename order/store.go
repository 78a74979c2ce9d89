package order

import (
	"context"
	"time"

	"github.com/lojix/storefront/id"
	"github.com/lojix/storefront/types"
)

// Store is the persistence contract for orders.
type Store interface {
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, orderID id.OrderID) (*Order, error)
	GetByNumber(ctx context.Context, number string) (*Order, error)
	List(ctx context.Context, opts ListOpts) ([]*Order, int64, error)

	// UpdateStatus persists a status change: the new status, the appended
	// history entry, and an optional tracking code (ignored when empty).
	UpdateStatus(ctx context.Context, orderID id.OrderID, status Status, entry StatusEntry, trackingCode string) error

	Count(ctx context.Context, opts CountOpts) (int64, error)

	// SumTotals adds up Order.Total for the matching orders. The result
	// is Zero in the store's currency when nothing matches.
	SumTotals(ctx context.Context, opts CountOpts) (types.Money, error)

	// CountByStatus returns order counts per status.
	CountByStatus(ctx context.Context) (map[Status]int64, error)

	// NextSequence atomically increments and returns the order sequence
	// for the given year-month period. Sequences start at 1 and are
	// collision-free under concurrent checkouts.
	NextSequence(ctx context.Context, year int, month time.Month) (int64, error)
}

// ListOpts filters and paginates order listings.
type ListOpts struct {
	Status Status
	Start  time.Time
	End    time.Time

	// Search matches against order number, customer name, and customer
	// email, case-insensitively.
	Search string

	Limit  int
	Offset int
}

// CountOpts filters order counts for dashboard aggregates.
type CountOpts struct {
	Status Status

	// ExcludeStatus drops orders in the given status. Used by revenue
	// aggregates, which ignore cancelled orders.
	ExcludeStatus Status

	Start time.Time
	End   time.Time
}
