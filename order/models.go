// Package order defines customer orders, their immutable line item
// snapshots, the order status state machine, and total computation.
package order

import (
	"fmt"
	"time"

	"github.com/lojix/storefront/id"
	"github.com/lojix/storefront/types"
)

// Status is the order lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every known order status.
func Statuses() []Status {
	return []Status{
		StatusPending,
		StatusConfirmed,
		StatusPreparing,
		StatusShipped,
		StatusDelivered,
		StatusCancelled,
	}
}

// IsKnown reports whether s is one of the six known statuses.
func (s Status) IsKnown() bool {
	for _, known := range Statuses() {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// PaymentMethod is how the customer settles the order. Payment is
// informational only; settlement happens manually over WhatsApp.
type PaymentMethod string

const (
	PaymentPix      PaymentMethod = "pix"
	PaymentCard     PaymentMethod = "card"
	PaymentBoleto   PaymentMethod = "boleto"
	PaymentWhatsApp PaymentMethod = "whatsapp"
)

// IsKnown reports whether m is a recognized payment method.
func (m PaymentMethod) IsKnown() bool {
	switch m {
	case PaymentPix, PaymentCard, PaymentBoleto, PaymentWhatsApp:
		return true
	}
	return false
}

// Source records which channel originated the order.
type Source string

const (
	SourceSite      Source = "site"
	SourceWhatsApp  Source = "whatsapp"
	SourceInstagram Source = "instagram"
)

// Customer is the buyer's contact information, embedded in the order.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	TaxID string `json:"tax_id,omitempty"` // CPF
}

// ShippingAddress is the delivery destination, embedded in the order.
type ShippingAddress struct {
	Street       string `json:"street"`
	Number       string `json:"number,omitempty"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
}

// LineItem is an immutable snapshot of a product at order time. Name,
// image, and unit price are frozen here and never re-derived from the
// live catalog entry.
type LineItem struct {
	ID        id.LineItemID `json:"id"`
	ProductID id.ProductID  `json:"product_id"`
	Name      string        `json:"name"`
	Image     string        `json:"image,omitempty"`
	UnitPrice types.Money   `json:"unit_price"`
	Quantity  int64         `json:"quantity"`
	Size      string        `json:"size,omitempty"`
	Color     string        `json:"color,omitempty"`
}

// Total returns unit price times quantity.
func (li LineItem) Total() types.Money {
	return li.UnitPrice.Multiply(li.Quantity)
}

// StatusEntry is one append-only record in the order's status history.
type StatusEntry struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

// Order is a placed order. Orders are never physically deleted; they move
// through the status state machine instead.
type Order struct {
	types.Entity
	ID     id.OrderID `json:"id"`
	Number string     `json:"number"`

	Customer Customer        `json:"customer"`
	Shipping ShippingAddress `json:"shipping"`
	Lines    []LineItem      `json:"lines"`

	Subtotal     types.Money `json:"subtotal"`
	ShippingCost types.Money `json:"shipping_cost"`
	Discount     types.Money `json:"discount"`
	Total        types.Money `json:"total"`

	CouponCode    string         `json:"coupon_code,omitempty"`
	PaymentMethod PaymentMethod  `json:"payment_method"`
	Status        Status         `json:"status"`
	StatusHistory []StatusEntry  `json:"status_history"`
	TrackingCode  string         `json:"tracking_code,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	Source        Source         `json:"source"`
}

// Transition moves the order to newStatus and appends exactly one entry to
// the status history, preserving all prior entries. Unknown statuses are
// rejected, as are transitions out of the terminal delivered and cancelled
// states. The six statuses are otherwise an open enumeration: no adjacency
// rules are enforced.
func (o *Order) Transition(newStatus Status, note string, now time.Time) error {
	if !newStatus.IsKnown() {
		return fmt.Errorf("order: unknown status %q", newStatus)
	}
	if o.Status.IsTerminal() {
		return fmt.Errorf("order: status %q is terminal", o.Status)
	}

	o.Status = newStatus
	o.StatusHistory = append(o.StatusHistory, StatusEntry{
		Status:    newStatus,
		Timestamp: now,
		Note:      note,
	})
	o.Touch()
	return nil
}
