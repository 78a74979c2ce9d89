package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lojix/storefront"
	"github.com/lojix/storefront/catalog"
	"github.com/lojix/storefront/id"
	"github.com/lojix/storefront/order"
	"github.com/lojix/storefront/promotion"
	"github.com/lojix/storefront/types"
)

func newProduct(name string, priceCents int64, cat catalog.Category) *catalog.Product {
	return &catalog.Product{
		Entity:   types.NewEntity(),
		ID:       id.NewProductID(),
		Name:     name,
		Slug:     catalog.Slugify(name),
		Price:    types.BRL(priceCents),
		Category: cat,
		Stock:    10,
		IsActive: true,
	}
}

func TestProductCRUD(t *testing.T) {
	s := New()
	ctx := context.Background()

	p := newProduct("Vestido Midi Floral", 12990, catalog.CategoryDresses)
	if err := s.CreateProduct(ctx, p); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateProduct(ctx, p); !errors.Is(err, storefront.ErrAlreadyExists) {
		t.Errorf("re-create: got %v, want ErrAlreadyExists", err)
	}

	dup := newProduct("Vestido Midi Floral", 9990, catalog.CategoryDresses)
	if err := s.CreateProduct(ctx, dup); !errors.Is(err, storefront.ErrDuplicateSlug) {
		t.Errorf("duplicate slug: got %v, want ErrDuplicateSlug", err)
	}

	got, err := s.GetProduct(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != p.Name {
		t.Errorf("get: got %q, want %q", got.Name, p.Name)
	}

	bySlug, err := s.GetProductBySlug(ctx, "vestido-midi-floral")
	if err != nil {
		t.Fatal(err)
	}
	if bySlug.ID != p.ID {
		t.Errorf("get by slug returned wrong product")
	}

	if err := s.DeleteProduct(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetProduct(ctx, p.ID); !errors.Is(err, storefront.ErrProductNotFound) {
		t.Errorf("get after delete: got %v, want ErrProductNotFound", err)
	}
	if err := s.DeleteProduct(ctx, p.ID); !errors.Is(err, storefront.ErrProductNotFound) {
		t.Errorf("double delete: got %v, want ErrProductNotFound", err)
	}
}

func TestListProductsFilters(t *testing.T) {
	s := New()
	ctx := context.Background()

	dress := newProduct("Vestido Longo", 19990, catalog.CategoryDresses)
	dress.Sizes = []string{"P", "M"}
	dress.Tags = []string{"festa"}

	blouse := newProduct("Blusa Tricô", 8990, catalog.CategoryBlouses)
	blouse.Featured = true
	blouse.Colors = []catalog.Color{{Name: "Azul", Hex: "#0000ff"}}

	hidden := newProduct("Saia Antiga", 4990, catalog.CategorySkirts)
	hidden.IsActive = false

	for _, p := range []*catalog.Product{dress, blouse, hidden} {
		if err := s.CreateProduct(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		opts catalog.ListOpts
		want int64
	}{
		{"active only by default", catalog.ListOpts{}, 2},
		{"include inactive", catalog.ListOpts{IncludeInactive: true}, 3},
		{"by category", catalog.ListOpts{Category: catalog.CategoryDresses}, 1},
		{"featured", catalog.ListOpts{Featured: true}, 1},
		{"min price", catalog.ListOpts{MinPrice: types.BRL(10000)}, 1},
		{"max price", catalog.ListOpts{MaxPrice: types.BRL(10000)}, 1},
		{"size", catalog.ListOpts{Sizes: []string{"M"}}, 1},
		{"color", catalog.ListOpts{ColorNames: []string{"azul"}}, 1},
		{"tag", catalog.ListOpts{Tags: []string{"festa"}}, 1},
		{"search name", catalog.ListOpts{Search: "tricô"}, 1},
		{"search no match", catalog.ListOpts{Search: "inexistente"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, total, err := s.ListProducts(ctx, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if total != tt.want {
				t.Errorf("total: got %d, want %d", total, tt.want)
			}
		})
	}
}

func TestListProductsPaginationTotal(t *testing.T) {
	s := New()
	ctx := context.Background()

	for i, name := range []string{"Um", "Dois", "Três", "Quatro", "Cinco"} {
		p := newProduct("Produto "+name, int64(1000*(i+1)), catalog.CategoryBags)
		if err := s.CreateProduct(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	page, total, err := s.ListProducts(ctx, catalog.ListOpts{Limit: 2, Offset: 2, Sort: catalog.SortPriceAsc})
	if err != nil {
		t.Fatal(err)
	}
	if total != 5 {
		t.Errorf("total: got %d, want 5 (total counts all matches, not the page)", total)
	}
	if len(page) != 2 {
		t.Fatalf("page size: got %d, want 2", len(page))
	}
	if page[0].Price.Amount != 3000 || page[1].Price.Amount != 4000 {
		t.Errorf("page contents out of order: %d, %d", page[0].Price.Amount, page[1].Price.Amount)
	}

	// Offset past the end yields an empty page, not an error.
	empty, total, err := s.ListProducts(ctx, catalog.ListOpts{Limit: 10, Offset: 99})
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 || total != 5 {
		t.Errorf("past-end page: got %d items, total %d", len(empty), total)
	}
}

func TestCountByCategory(t *testing.T) {
	s := New()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := s.CreateProduct(ctx, newProduct("Vestido "+string(rune('A'+i)), 9990, catalog.CategoryDresses)); err != nil {
			t.Fatal(err)
		}
	}
	inactive := newProduct("Bolsa Fora de Linha", 5990, catalog.CategoryBags)
	inactive.IsActive = false
	if err := s.CreateProduct(ctx, inactive); err != nil {
		t.Fatal(err)
	}

	counts, err := s.CountByCategory(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(counts) != 1 {
		t.Fatalf("got %d categories, want 1 (inactive and empty categories omitted)", len(counts))
	}
	if counts[0].Category != catalog.CategoryDresses || counts[0].Count != 3 {
		t.Errorf("got %+v", counts[0])
	}
}

func TestAdjustStockAndViews(t *testing.T) {
	s := New()
	ctx := context.Background()

	p := newProduct("Calça Jeans", 15990, catalog.CategoryPants)
	if err := s.CreateProduct(ctx, p); err != nil {
		t.Fatal(err)
	}

	if err := s.AdjustStock(ctx, p.ID, -3, 3); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetProduct(ctx, p.ID)
	if got.Stock != 7 || got.Sold != 3 {
		t.Errorf("stock %d sold %d, want 7 and 3", got.Stock, got.Sold)
	}

	if err := s.AdjustStock(ctx, id.NewProductID(), -1, 1); !errors.Is(err, storefront.ErrProductNotFound) {
		t.Errorf("adjust unknown: got %v, want ErrProductNotFound", err)
	}

	if err := s.AddViews(ctx, map[id.ProductID]int64{p.ID: 42, id.NewProductID(): 7}); err != nil {
		t.Fatal(err)
	}
	got, _ = s.GetProduct(ctx, p.ID)
	if got.Views != 42 {
		t.Errorf("views: got %d, want 42", got.Views)
	}
}

func TestPromotionRedemption(t *testing.T) {
	s := New()
	ctx := context.Background()

	now := time.Now()
	p := &promotion.Promotion{
		Entity:     types.NewEntity(),
		ID:         id.NewPromotionID(),
		Title:      "Boas-vindas",
		Kind:       promotion.KindPercentage,
		Value:      10,
		Code:       "BEMVINDA10",
		UsageLimit: 2,
		StartDate:  now.Add(-time.Hour),
		EndDate:    now.Add(time.Hour),
		IsActive:   true,
	}
	if err := s.CreatePromotion(ctx, p); err != nil {
		t.Fatal(err)
	}

	byCode, err := s.GetPromotionByCode(ctx, "bemvinda10")
	if err != nil {
		t.Fatalf("case-insensitive lookup: %v", err)
	}
	if byCode.ID != p.ID {
		t.Error("lookup returned wrong promotion")
	}

	if err := s.RedeemPromotion(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.RedeemPromotion(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.RedeemPromotion(ctx, p.ID); !errors.Is(err, storefront.ErrPromotionExhausted) {
		t.Errorf("third redemption: got %v, want ErrPromotionExhausted", err)
	}

	got, _ := s.GetPromotion(ctx, p.ID)
	if got.UsedCount != 2 {
		t.Errorf("used count: got %d, want 2", got.UsedCount)
	}

	if err := s.RedeemPromotion(ctx, id.NewPromotionID()); !errors.Is(err, storefront.ErrPromotionNotFound) {
		t.Errorf("redeem unknown: got %v, want ErrPromotionNotFound", err)
	}
}

func TestListPromotionsActiveOnly(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now()

	live := &promotion.Promotion{
		Entity:    types.NewEntity(),
		ID:        id.NewPromotionID(),
		Title:     "Ativa",
		Kind:      promotion.KindFixed,
		Value:     1000,
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(time.Hour),
		IsActive:  true,
	}
	expired := &promotion.Promotion{
		Entity:    types.NewEntity(),
		ID:        id.NewPromotionID(),
		Title:     "Encerrada",
		Kind:      promotion.KindFixed,
		Value:     1000,
		StartDate: now.Add(-48 * time.Hour),
		EndDate:   now.Add(-24 * time.Hour),
		IsActive:  true,
	}
	for _, p := range []*promotion.Promotion{live, expired} {
		if err := s.CreatePromotion(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.ListPromotions(ctx, promotion.ListOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("all: got %d, want 2", len(all))
	}

	active, err := s.ListPromotions(ctx, promotion.ListOpts{ActiveOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 || active[0].ID != live.ID {
		t.Errorf("active: got %d promotions", len(active))
	}
}

func newOrder(number string, status order.Status, totalCents int64) *order.Order {
	return &order.Order{
		Entity:   types.NewEntity(),
		ID:       id.NewOrderID(),
		Number:   number,
		Customer: order.Customer{Name: "Maria Lima", Email: "maria@example.com", Phone: "11988887777"},
		Status:   status,
		Total:    types.BRL(totalCents),
		StatusHistory: []order.StatusEntry{
			{Status: order.StatusPending, Timestamp: time.Now()},
		},
	}
}

func TestOrderLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	o := newOrder("PED260900001", order.StatusPending, 19990)
	if err := s.CreateOrder(ctx, o); err != nil {
		t.Fatal(err)
	}

	byNumber, err := s.GetOrderByNumber(ctx, "PED260900001")
	if err != nil {
		t.Fatal(err)
	}
	if byNumber.ID != o.ID {
		t.Error("lookup by number returned wrong order")
	}

	entry := order.StatusEntry{Status: order.StatusShipped, Timestamp: time.Now(), Note: "postado"}
	if err := s.UpdateOrderStatus(ctx, o.ID, order.StatusShipped, entry, "BR123456789"); err != nil {
		t.Fatal(err)
	}

	got, _ := s.GetOrder(ctx, o.ID)
	if got.Status != order.StatusShipped {
		t.Errorf("status: got %s", got.Status)
	}
	if got.TrackingCode != "BR123456789" {
		t.Errorf("tracking: got %q", got.TrackingCode)
	}
	if len(got.StatusHistory) != 2 {
		t.Errorf("history length: got %d, want 2", len(got.StatusHistory))
	}

	if err := s.UpdateOrderStatus(ctx, id.NewOrderID(), order.StatusShipped, entry, ""); !errors.Is(err, storefront.ErrOrderNotFound) {
		t.Errorf("update unknown: got %v, want ErrOrderNotFound", err)
	}
}

func TestOrdersAreIsolatedCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	o := newOrder("PED260900010", order.StatusPending, 10000)
	if err := s.CreateOrder(ctx, o); err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's instance after create must not leak in.
	o.Status = order.StatusCancelled

	got, err := s.GetOrder(ctx, o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != order.StatusPending {
		t.Errorf("stored order aliased the caller's instance: %s", got.Status)
	}

	// Mutating a fetched instance must not change stored state either.
	got.StatusHistory = append(got.StatusHistory, order.StatusEntry{
		Status:    order.StatusShipped,
		Timestamp: time.Now(),
	})
	got.Status = order.StatusShipped

	again, err := s.GetOrder(ctx, o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if again.Status != order.StatusPending {
		t.Errorf("fetched order aliased the store: %s", again.Status)
	}
	if len(again.StatusHistory) != 1 {
		t.Errorf("history: got %d entries, want 1", len(again.StatusHistory))
	}
}

func TestOrderAggregates(t *testing.T) {
	s := New()
	ctx := context.Background()

	orders := []*order.Order{
		newOrder("PED260900001", order.StatusPending, 10000),
		newOrder("PED260900002", order.StatusDelivered, 20000),
		newOrder("PED260900003", order.StatusCancelled, 99999),
	}
	for _, o := range orders {
		if err := s.CreateOrder(ctx, o); err != nil {
			t.Fatal(err)
		}
	}

	total, err := s.CountOrders(ctx, order.CountOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 {
		t.Errorf("count all: got %d, want 3", total)
	}

	pending, err := s.CountOrders(ctx, order.CountOpts{Status: order.StatusPending})
	if err != nil {
		t.Fatal(err)
	}
	if pending != 1 {
		t.Errorf("pending: got %d, want 1", pending)
	}

	revenue, err := s.SumOrderTotals(ctx, order.CountOpts{ExcludeStatus: order.StatusCancelled})
	if err != nil {
		t.Fatal(err)
	}
	if !revenue.Equal(types.BRL(30000)) {
		t.Errorf("revenue excluding cancelled: got %v, want %v", revenue, types.BRL(30000))
	}

	byStatus, err := s.CountOrdersByStatus(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if byStatus[order.StatusPending] != 1 || byStatus[order.StatusDelivered] != 1 || byStatus[order.StatusCancelled] != 1 {
		t.Errorf("by status: got %v", byStatus)
	}
}

func TestListOrdersSearch(t *testing.T) {
	s := New()
	ctx := context.Background()

	o := newOrder("PED260900042", order.StatusPending, 10000)
	if err := s.CreateOrder(ctx, o); err != nil {
		t.Fatal(err)
	}

	for _, q := range []string{"ped2609", "maria", "MARIA@EXAMPLE.COM"} {
		got, total, err := s.ListOrders(ctx, order.ListOpts{Search: q})
		if err != nil {
			t.Fatal(err)
		}
		if total != 1 || len(got) != 1 {
			t.Errorf("search %q: got %d matches", q, total)
		}
	}

	_, total, err := s.ListOrders(ctx, order.ListOpts{Search: "joão"})
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 {
		t.Errorf("search miss: got %d matches", total)
	}
}

func TestNextOrderSequence(t *testing.T) {
	s := New()
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := s.NextOrderSequence(ctx, 2026, time.September)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("sequence: got %d, want %d", got, want)
		}
	}

	// A new period restarts its own counter.
	got, err := s.NextOrderSequence(ctx, 2026, time.October)
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("new period: got %d, want 1", got)
	}
}

func TestSettingsSeedAndUpdate(t *testing.T) {
	s := New()
	ctx := context.Background()

	cfg, err := s.GetSettings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.WhatsApp == "" {
		t.Error("first read should seed defaults")
	}

	cfg.WhatsApp = "5511912345678"
	if err := s.UpdateSettings(ctx, cfg); err != nil {
		t.Fatal(err)
	}

	again, err := s.GetSettings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if again.WhatsApp != "5511912345678" {
		t.Errorf("settings did not persist: %q", again.WhatsApp)
	}
}

func TestSettingsAreIsolatedCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	cfg, err := s.GetSettings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	name := cfg.Name

	// An abandoned edit on the fetched instance must not leak into the
	// stored document.
	cfg.Name = ""

	again, err := s.GetSettings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if again.Name != name {
		t.Errorf("settings aliased the store: %q", again.Name)
	}
}
