// Package whatsapp renders the checkout handoff message and the wa.me
// link the storefront opens after an order is placed.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/lojix/storefront/order"
)

// Link builds a wa.me URL for the given phone number and pre-filled
// message. The number must be the full international form, digits only.
func Link(phone, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(message))
}

// OrderMessage renders the merchant-facing summary for a freshly placed
// order, in the format the store attendant expects.
func OrderMessage(o *order.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🛒 *NOVO PEDIDO %s*\n\n", o.Number)
	fmt.Fprintf(&b, "👤 *Cliente:* %s\n", o.Customer.Name)
	fmt.Fprintf(&b, "📱 *Telefone:* %s\n", o.Customer.Phone)
	if addr := formatAddress(o.Shipping); addr != "" {
		fmt.Fprintf(&b, "📍 *Endereço:* %s\n", addr)
	}

	b.WriteString("\n📦 *Itens:*\n")
	for _, li := range o.Lines {
		b.WriteString("• ")
		b.WriteString(li.Name)
		if variant := formatVariant(li); variant != "" {
			fmt.Fprintf(&b, " (%s)", variant)
		}
		fmt.Fprintf(&b, " x%d - %s\n", li.Quantity, li.Total())
	}

	fmt.Fprintf(&b, "\n💳 *Pagamento:* %s\n", paymentLabel(o.PaymentMethod))
	if o.CouponCode != "" {
		fmt.Fprintf(&b, "🎟️ *Cupom:* %s (-%s)\n", o.CouponCode, o.Discount)
	}
	if o.ShippingCost.IsZero() {
		b.WriteString("🚚 *Frete:* Grátis\n")
	} else {
		fmt.Fprintf(&b, "🚚 *Frete:* %s\n", o.ShippingCost)
	}
	if o.Notes != "" {
		fmt.Fprintf(&b, "📝 *Observações:* %s\n", o.Notes)
	}
	fmt.Fprintf(&b, "\n💰 *Total:* %s", o.Total)

	return b.String()
}

// OrderLink is a convenience for Link(phone, OrderMessage(o)).
func OrderLink(phone string, o *order.Order) string {
	return Link(phone, OrderMessage(o))
}

func formatVariant(li order.LineItem) string {
	switch {
	case li.Size != "" && li.Color != "":
		return li.Size + ", " + li.Color
	case li.Size != "":
		return li.Size
	case li.Color != "":
		return li.Color
	default:
		return ""
	}
}

func formatAddress(a order.ShippingAddress) string {
	if a.Street == "" {
		return ""
	}
	parts := []string{a.Street}
	if a.Number != "" {
		parts[0] = a.Street + ", " + a.Number
	}
	if a.Complement != "" {
		parts = append(parts, a.Complement)
	}
	if a.Neighborhood != "" {
		parts = append(parts, a.Neighborhood)
	}
	if a.City != "" {
		city := a.City
		if a.State != "" {
			city += " - " + a.State
		}
		parts = append(parts, city)
	}
	if a.PostalCode != "" {
		parts = append(parts, "CEP "+a.PostalCode)
	}
	return strings.Join(parts, ", ")
}

func paymentLabel(m order.PaymentMethod) string {
	switch m {
	case order.PaymentPix:
		return "PIX"
	case order.PaymentCard:
		return "Cartão"
	case order.PaymentBoleto:
		return "Boleto"
	case order.PaymentWhatsApp:
		return "Combinar no WhatsApp"
	default:
		return string(m)
	}
}
