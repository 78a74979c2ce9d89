package storefront_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lojix/storefront"
	"github.com/lojix/storefront/catalog"
	"github.com/lojix/storefront/id"
	"github.com/lojix/storefront/order"
	"github.com/lojix/storefront/promotion"
	"github.com/lojix/storefront/store"
	"github.com/lojix/storefront/store/memory"
	"github.com/lojix/storefront/types"
)

func newEngine(t *testing.T) *storefront.Storefront {
	t.Helper()

	sf := storefront.New(memory.New())
	if err := sf.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = sf.Stop() //nolint:errcheck // test teardown
	})
	return sf
}

func seedProduct(t *testing.T, sf *storefront.Storefront, name string, priceCents, stock int64) *catalog.Product {
	t.Helper()

	p := &catalog.Product{
		Name:     name,
		Price:    types.BRL(priceCents),
		Category: catalog.CategoryDresses,
		Stock:    stock,
		IsActive: true,
	}
	if err := sf.CreateProduct(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	return p
}

func seedCoupon(t *testing.T, sf *storefront.Storefront, code string, pct int64, usageLimit int64) *promotion.Promotion {
	t.Helper()

	now := time.Now()
	p := &promotion.Promotion{
		Title:      "Campanha " + code,
		Kind:       promotion.KindPercentage,
		Value:      pct,
		Code:       code,
		UsageLimit: usageLimit,
		StartDate:  now.Add(-time.Hour),
		EndDate:    now.Add(time.Hour),
		IsActive:   true,
	}
	if err := sf.CreatePromotion(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	return p
}

func checkoutReq(items ...storefront.CheckoutItem) storefront.CheckoutRequest {
	return storefront.CheckoutRequest{
		Customer:      order.Customer{Name: "Ana Souza", Phone: "11987654321"},
		Items:         items,
		PaymentMethod: order.PaymentPix,
	}
}

func TestCreateProductDefaults(t *testing.T) {
	sf := newEngine(t)

	p := seedProduct(t, sf, "Vestido Festa Longo", 29990, 5)
	if p.Slug != "vestido-festa-longo" {
		t.Errorf("slug: got %q", p.Slug)
	}
	if !strings.HasPrefix(p.SKU, "VES-") {
		t.Errorf("sku: got %q", p.SKU)
	}
	if p.ID.IsNil() {
		t.Error("id was not assigned")
	}
}

func TestCreateProductValidation(t *testing.T) {
	sf := newEngine(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		product catalog.Product
	}{
		{"missing name", catalog.Product{Price: types.BRL(1000), Category: catalog.CategoryDresses}},
		{"zero price", catalog.Product{Name: "Brinde", Category: catalog.CategoryDresses}},
		{"unknown category", catalog.Product{Name: "Notebook", Price: types.BRL(1000), Category: "eletronicos"}},
		{"negative stock", catalog.Product{Name: "Blusa", Price: types.BRL(1000), Category: catalog.CategoryBlouses, Stock: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.product
			if err := sf.CreateProduct(ctx, &p); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCheckout(t *testing.T) {
	sf := newEngine(t)
	ctx := context.Background()

	p := seedProduct(t, sf, "Vestido Midi", 12990, 10)

	res, err := sf.Checkout(ctx, checkoutReq(storefront.CheckoutItem{
		ProductID: p.ID,
		Quantity:  2,
		Size:      "M",
	}))
	if err != nil {
		t.Fatal(err)
	}

	ord := res.Order
	if ord.Status != order.StatusPending {
		t.Errorf("status: got %s, want pending", ord.Status)
	}
	if len(ord.StatusHistory) != 1 {
		t.Errorf("history: got %d entries, want 1", len(ord.StatusHistory))
	}
	if !ord.Subtotal.Equal(types.BRL(25980)) {
		t.Errorf("subtotal: got %v", ord.Subtotal)
	}
	if !ord.ShippingCost.Equal(types.BRL(1590)) {
		t.Errorf("shipping: got %v, want flat cost below threshold", ord.ShippingCost)
	}
	if !ord.Total.Equal(types.BRL(27570)) {
		t.Errorf("total: got %v", ord.Total)
	}

	// Line items snapshot the catalog price.
	if len(ord.Lines) != 1 || !ord.Lines[0].UnitPrice.Equal(p.Price) {
		t.Errorf("line snapshot: %+v", ord.Lines)
	}

	if !strings.HasPrefix(res.WhatsAppURL, "https://wa.me/") {
		t.Errorf("whatsapp url: %q", res.WhatsAppURL)
	}
	if !strings.Contains(res.WhatsAppURL, ord.Number) {
		t.Errorf("whatsapp url missing order number: %q", res.WhatsAppURL)
	}

	// Stock decremented, sold incremented.
	got, err := sf.GetProduct(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Stock != 8 || got.Sold != 2 {
		t.Errorf("stock %d sold %d after checkout", got.Stock, got.Sold)
	}
}

func TestCheckoutOrderNumbersAreSequential(t *testing.T) {
	sf := newEngine(t)
	ctx := context.Background()

	p := seedProduct(t, sf, "Blusa Básica", 4990, 100)

	var numbers []string
	for i := 0; i < 3; i++ {
		res, err := sf.Checkout(ctx, checkoutReq(storefront.CheckoutItem{ProductID: p.ID, Quantity: 1}))
		if err != nil {
			t.Fatal(err)
		}
		numbers = append(numbers, res.Order.Number)
	}

	now := time.Now()
	for i, n := range numbers {
		want := order.BuildNumber(now.Year(), now.Month(), int64(i+1))
		if n != want {
			t.Errorf("order %d: got %s, want %s", i, n, want)
		}
	}
}

func TestCheckoutWithCoupon(t *testing.T) {
	sf := newEngine(t)
	ctx := context.Background()

	p := seedProduct(t, sf, "Conjunto Linho", 50000, 10)
	seedCoupon(t, sf, "DESCONTO30", 30, 0)

	req := checkoutReq(storefront.CheckoutItem{ProductID: p.ID, Quantity: 1})
	req.CouponCode = "desconto30" // lookup is case-insensitive

	res, err := sf.Checkout(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Order.Discount.Equal(types.BRL(15000)) {
		t.Errorf("discount: got %v, want %v", res.Order.Discount, types.BRL(15000))
	}
	if res.Order.CouponCode != "DESCONTO30" {
		t.Errorf("coupon code: got %q", res.Order.CouponCode)
	}

	// Redemption was counted.
	promo, err := sf.ValidateCoupon(ctx, "DESCONTO30", types.BRL(50000))
	if err != nil {
		t.Fatal(err)
	}
	if promo.UsedCount != 1 {
		t.Errorf("used count: got %d, want 1", promo.UsedCount)
	}
}

func TestCheckoutCouponRejections(t *testing.T) {
	sf := newEngine(t)
	ctx := context.Background()

	p := seedProduct(t, sf, "Saia Plissada", 9990, 10)

	expired := seedCoupon(t, sf, "ENCERRADA", 10, 0)
	expired.EndDate = time.Now().Add(-time.Minute)
	if err := sf.UpdatePromotion(ctx, expired); err != nil {
		t.Fatal(err)
	}

	minimum := seedCoupon(t, sf, "ACIMA100", 10, 0)
	minimum.MinPurchase = types.BRL(10000)
	if err := sf.UpdatePromotion(ctx, minimum); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		code string
		want error
	}{
		{"unknown code", "NAOEXISTE", storefront.ErrPromotionNotFound},
		{"expired", "ENCERRADA", storefront.ErrPromotionExpired},
		{"below minimum", "ACIMA100", storefront.ErrCouponBelowMinimum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := checkoutReq(storefront.CheckoutItem{ProductID: p.ID, Quantity: 1})
			req.CouponCode = tt.code

			_, err := sf.Checkout(ctx, req)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
			if !storefront.IsCouponRejection(err) {
				t.Errorf("%v should classify as a coupon rejection", err)
			}

			// A rejected coupon rejects the whole checkout.
			if _, count, _ := sf.ListOrders(ctx, order.ListOpts{}); count != 0 {
				t.Errorf("order was created despite coupon rejection")
			}
		})
	}
}

func TestCheckoutExhaustedCoupon(t *testing.T) {
	sf := newEngine(t)
	ctx := context.Background()

	p := seedProduct(t, sf, "Bolsa Couro", 20000, 10)
	seedCoupon(t, sf, "ULTIMA", 10, 1)

	req := checkoutReq(storefront.CheckoutItem{ProductID: p.ID, Quantity: 1})
	req.CouponCode = "ULTIMA"

	if _, err := sf.Checkout(ctx, req); err != nil {
		t.Fatal(err)
	}

	// The cap is hit, so validation refuses the code on the next attempt.
	_, err := sf.Checkout(ctx, req)
	if !errors.Is(err, storefront.ErrPromotionInvalid) {
		t.Errorf("second use: got %v, want ErrPromotionInvalid", err)
	}
	if !storefront.IsCouponRejection(err) {
		t.Errorf("%v should classify as a coupon rejection", err)
	}
}

// brokenOrderStore fails every order insert, leaving the rest of the
// store intact.
type brokenOrderStore struct {
	store.Store
}

func (s brokenOrderStore) CreateOrder(context.Context, *order.Order) error {
	return errors.New("storage offline")
}

func TestCheckoutReleasesCouponWhenOrderPersistFails(t *testing.T) {
	mem := memory.New()
	sf := storefront.New(brokenOrderStore{mem})
	ctx := context.Background()
	if err := sf.Start(ctx); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = sf.Stop() //nolint:errcheck // test teardown
	})

	p := seedProduct(t, sf, "Vestido Envelope", 25000, 10)
	seedCoupon(t, sf, "VOLTA10", 10, 5)

	req := checkoutReq(storefront.CheckoutItem{ProductID: p.ID, Quantity: 1})
	req.CouponCode = "VOLTA10"

	if _, err := sf.Checkout(ctx, req); err == nil {
		t.Fatal("checkout should fail when the order cannot be persisted")
	}

	// The redemption slot must be given back.
	promo, err := mem.GetPromotionByCode(ctx, "VOLTA10")
	if err != nil {
		t.Fatal(err)
	}
	if promo.UsedCount != 0 {
		t.Errorf("used count after aborted checkout: got %d, want 0", promo.UsedCount)
	}

	// Stock must be untouched too: adjustment only happens after a
	// successful create.
	got, err := mem.GetProduct(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Stock != 10 {
		t.Errorf("stock after aborted checkout: got %d, want 10", got.Stock)
	}
}

func TestCheckoutValidation(t *testing.T) {
	sf := newEngine(t)
	ctx := context.Background()

	p := seedProduct(t, sf, "Calça Alfaiataria", 18990, 10)

	if _, err := sf.Checkout(ctx, checkoutReq()); !errors.Is(err, storefront.ErrEmptyOrder) {
		t.Errorf("empty cart: got %v, want ErrEmptyOrder", err)
	}

	req := checkoutReq(storefront.CheckoutItem{ProductID: p.ID, Quantity: 1})
	req.Customer.Name = ""
	if _, err := sf.Checkout(ctx, req); err == nil {
		t.Error("missing customer name should fail")
	}

	req = checkoutReq(storefront.CheckoutItem{ProductID: p.ID, Quantity: 0})
	if _, err := sf.Checkout(ctx, req); err == nil {
		t.Error("zero quantity should fail")
	}

	req = checkoutReq(storefront.CheckoutItem{ProductID: id.NewProductID(), Quantity: 1})
	if _, err := sf.Checkout(ctx, req); !errors.Is(err, storefront.ErrProductNotFound) {
		t.Errorf("unknown product: got %v, want ErrProductNotFound", err)
	}

	req = checkoutReq(storefront.CheckoutItem{ProductID: p.ID, Quantity: 1})
	req.PaymentMethod = "cheque"
	if _, err := sf.Checkout(ctx, req); err == nil {
		t.Error("unknown payment method should fail")
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	sf := newEngine(t)
	ctx := context.Background()

	p := seedProduct(t, sf, "Vestido Chemise", 15990, 10)
	res, err := sf.Checkout(ctx, checkoutReq(storefront.CheckoutItem{ProductID: p.ID, Quantity: 1}))
	if err != nil {
		t.Fatal(err)
	}

	ord, err := sf.UpdateOrderStatus(ctx, res.Order.ID, order.StatusShipped, "postado nos correios", "BR987654321")
	if err != nil {
		t.Fatal(err)
	}
	if ord.Status != order.StatusShipped || ord.TrackingCode != "BR987654321" {
		t.Errorf("got status %s tracking %q", ord.Status, ord.TrackingCode)
	}
	if len(ord.StatusHistory) != 2 {
		t.Errorf("history: got %d entries, want 2", len(ord.StatusHistory))
	}

	if _, err := sf.UpdateOrderStatus(ctx, res.Order.ID, "extraviado", "", ""); !errors.Is(err, storefront.ErrInvalidStatus) {
		t.Errorf("unknown status: got %v, want ErrInvalidStatus", err)
	}

	if _, err := sf.UpdateOrderStatus(ctx, res.Order.ID, order.StatusDelivered, "", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := sf.UpdateOrderStatus(ctx, res.Order.ID, order.StatusCancelled, "", ""); !errors.Is(err, storefront.ErrStatusTerminal) {
		t.Errorf("transition out of delivered: got %v, want ErrStatusTerminal", err)
	}
}

func TestGetOrderByNumberNormalizes(t *testing.T) {
	sf := newEngine(t)
	ctx := context.Background()

	p := seedProduct(t, sf, "Blusa Cropped", 6990, 10)
	res, err := sf.Checkout(ctx, checkoutReq(storefront.CheckoutItem{ProductID: p.ID, Quantity: 1}))
	if err != nil {
		t.Fatal(err)
	}

	got, err := sf.GetOrderByNumber(ctx, "  "+strings.ToLower(res.Order.Number)+" ")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != res.Order.ID {
		t.Error("lookup returned wrong order")
	}
}

func TestOrderStats(t *testing.T) {
	sf := newEngine(t)
	ctx := context.Background()

	p := seedProduct(t, sf, "Vestido Tubinho", 30000, 100)
	seedCoupon(t, sf, "ATIVA10", 10, 0)

	var orderIDs []id.OrderID
	for i := 0; i < 3; i++ {
		res, err := sf.Checkout(ctx, checkoutReq(storefront.CheckoutItem{ProductID: p.ID, Quantity: 1}))
		if err != nil {
			t.Fatal(err)
		}
		orderIDs = append(orderIDs, res.Order.ID)
	}
	if _, err := sf.UpdateOrderStatus(ctx, orderIDs[2], order.StatusCancelled, "desistência", ""); err != nil {
		t.Fatal(err)
	}

	stats, err := sf.OrderStats(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if stats.TotalProducts != 1 || stats.ActiveProducts != 1 {
		t.Errorf("products: total %d active %d", stats.TotalProducts, stats.ActiveProducts)
	}
	if stats.TotalOrders != 3 {
		t.Errorf("total orders: got %d, want 3", stats.TotalOrders)
	}
	if stats.PendingOrders != 2 {
		t.Errorf("pending orders: got %d, want 2", stats.PendingOrders)
	}
	if stats.TodayOrders != 3 {
		t.Errorf("today orders: got %d, want 3", stats.TodayOrders)
	}
	if stats.ActivePromotions != 1 {
		t.Errorf("active promotions: got %d, want 1", stats.ActivePromotions)
	}
	// Each order is R$300,00 free-shipped; cancelled ones are excluded.
	if !stats.MonthRevenue.Equal(types.BRL(60000)) {
		t.Errorf("month revenue: got %v, want %v", stats.MonthRevenue, types.BRL(60000))
	}
	if stats.OrdersByStatus[order.StatusPending] != 2 || stats.OrdersByStatus[order.StatusCancelled] != 1 {
		t.Errorf("by status: %v", stats.OrdersByStatus)
	}
}

func TestRecordViewFlush(t *testing.T) {
	mem := memory.New()
	sf := storefront.New(mem,
		storefront.WithViewCounterConfig(5, time.Hour),
	)
	ctx := context.Background()
	if err := sf.Start(ctx); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = sf.Stop() //nolint:errcheck // test teardown
	})

	p := &catalog.Product{
		Name:     "Scarpin Nude",
		Price:    types.BRL(19990),
		Category: catalog.CategoryShoes,
		IsActive: true,
	}
	if err := sf.CreateProduct(ctx, p); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		if err := sf.RecordView(ctx, p.ID); err != nil {
			t.Fatal(err)
		}
	}

	// The fifth view fills the batch and triggers a flush.
	deadline := time.Now().Add(2 * time.Second)
	for {
		got, err := mem.GetProduct(ctx, p.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.Views == 5 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("views: got %d, want 5", got.Views)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	sf := storefront.New(memory.New())
	if err := sf.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := sf.Stop(); err != nil {
		t.Fatal(err)
	}
	if err := sf.Stop(); err != nil {
		t.Errorf("second Stop: %v", err)
	}
}

func TestShippingQuote(t *testing.T) {
	sf := newEngine(t)
	ctx := context.Background()

	if got := sf.ShippingQuote(ctx, types.BRL(10000)); !got.Equal(types.BRL(1590)) {
		t.Errorf("below threshold: got %v", got)
	}
	if got := sf.ShippingQuote(ctx, types.BRL(29900)); !got.IsZero() {
		t.Errorf("at threshold: got %v, want free", got)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	sf := newEngine(t)
	ctx := context.Background()

	cfg, err := sf.GetSettings(ctx)
	if err != nil {
		t.Fatal(err)
	}

	cfg.WhatsApp = "5511912345678"
	if err := sf.UpdateSettings(ctx, cfg); err != nil {
		t.Fatal(err)
	}

	cfg.Name = ""
	if err := sf.UpdateSettings(ctx, cfg); err == nil {
		t.Error("empty store name should fail validation")
	}
}
