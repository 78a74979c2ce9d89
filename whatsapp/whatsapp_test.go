package whatsapp

import (
	"strings"
	"testing"

	"github.com/lojix/storefront/id"
	"github.com/lojix/storefront/order"
	"github.com/lojix/storefront/types"
)

func testOrder() *order.Order {
	return &order.Order{
		ID:     id.NewOrderID(),
		Number: "PED260900042",
		Customer: order.Customer{
			Name:  "Ana Souza",
			Phone: "11987654321",
		},
		Shipping: order.ShippingAddress{
			Street:       "Rua das Flores",
			Number:       "123",
			Neighborhood: "Centro",
			City:         "São Paulo",
			State:        "SP",
			PostalCode:   "01001-000",
		},
		Lines: []order.LineItem{
			{
				Name:      "Vestido Midi Floral",
				UnitPrice: types.BRL(12990),
				Quantity:  2,
				Size:      "M",
				Color:     "Azul",
			},
			{
				Name:      "Blusa Básica",
				UnitPrice: types.BRL(4990),
				Quantity:  1,
			},
		},
		Subtotal:      types.BRL(30970),
		ShippingCost:  types.Zero("brl"),
		Discount:      types.Zero("brl"),
		Total:         types.BRL(30970),
		PaymentMethod: order.PaymentPix,
		Status:        order.StatusPending,
	}
}

func TestOrderMessage(t *testing.T) {
	msg := OrderMessage(testOrder())

	wantLines := []string{
		"🛒 *NOVO PEDIDO PED260900042*",
		"👤 *Cliente:* Ana Souza",
		"📱 *Telefone:* 11987654321",
		"📍 *Endereço:* Rua das Flores, 123, Centro, São Paulo - SP, CEP 01001-000",
		"• Vestido Midi Floral (M, Azul) x2 - R$259,80",
		"• Blusa Básica x1 - R$49,90",
		"💳 *Pagamento:* PIX",
		"🚚 *Frete:* Grátis",
		"💰 *Total:* R$309,70",
	}
	for _, want := range wantLines {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q\n%s", want, msg)
		}
	}
}

func TestOrderMessagePaidShippingAndCoupon(t *testing.T) {
	o := testOrder()
	o.ShippingCost = types.BRL(1590)
	o.CouponCode = "BEMVINDA10"
	o.Discount = types.BRL(3097)
	o.Notes = "entregar após as 18h"

	msg := OrderMessage(o)
	for _, want := range []string{
		"🚚 *Frete:* R$15,90",
		"🎟️ *Cupom:* BEMVINDA10 (-R$30,97)",
		"📝 *Observações:* entregar após as 18h",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "Grátis") {
		t.Error("paid shipping should not render as free")
	}
}

func TestOrderMessageNoAddress(t *testing.T) {
	o := testOrder()
	o.Shipping = order.ShippingAddress{}

	if msg := OrderMessage(o); strings.Contains(msg, "Endereço") {
		t.Errorf("empty address should omit the address line\n%s", msg)
	}
}

func TestPaymentLabels(t *testing.T) {
	tests := []struct {
		method order.PaymentMethod
		want   string
	}{
		{order.PaymentPix, "PIX"},
		{order.PaymentCard, "Cartão"},
		{order.PaymentBoleto, "Boleto"},
		{order.PaymentWhatsApp, "Combinar no WhatsApp"},
		{order.PaymentMethod("outro"), "outro"},
	}
	for _, tt := range tests {
		if got := paymentLabel(tt.method); got != tt.want {
			t.Errorf("paymentLabel(%q): got %q, want %q", tt.method, got, tt.want)
		}
	}
}

func TestLink(t *testing.T) {
	got := Link("5511999998888", "Olá, quero o pedido PED260900042")
	want := "https://wa.me/5511999998888?text=Ol%C3%A1%2C+quero+o+pedido+PED260900042"
	if got != want {
		t.Errorf("Link: got %q, want %q", got, want)
	}
}

func TestOrderLink(t *testing.T) {
	o := testOrder()
	link := OrderLink("5511999998888", o)

	if !strings.HasPrefix(link, "https://wa.me/5511999998888?text=") {
		t.Errorf("unexpected link prefix: %q", link)
	}
	if !strings.Contains(link, "PED260900042") {
		t.Errorf("link missing order number: %q", link)
	}
	if strings.ContainsAny(link, " \n") {
		t.Errorf("link not fully escaped: %q", link)
	}
}
