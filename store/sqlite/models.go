package sqlite

import (
	"encoding/json"
	"time"

	"github.com/xraph/grove"

	"github.com/lojix/storefront/catalog"
	"github.com/lojix/storefront/id"
	"github.com/lojix/storefront/order"
	"github.com/lojix/storefront/promotion"
	"github.com/lojix/storefront/settings"
	"github.com/lojix/storefront/types"
)

// SQLite stores the JSON-shaped columns as TEXT.

// ==================== Product models ====================

type productModel struct {
	grove.BaseModel `grove:"table:storefront_products"`

	ID                    string            `grove:"id,pk"`
	Name                  string            `grove:"name"`
	Slug                  string            `grove:"slug"`
	Description           string            `grove:"description"`
	PriceCents            int64             `grove:"price_cents"`
	PriceCurrency         string            `grove:"price_currency"`
	OriginalPriceCents    int64             `grove:"original_price_cents"`
	OriginalPriceCurrency string            `grove:"original_price_currency"`
	Images                json.RawMessage   `grove:"images"`
	Category              string            `grove:"category"`
	Subcategory           string            `grove:"subcategory"`
	Sizes                 json.RawMessage   `grove:"sizes"`
	Colors                json.RawMessage   `grove:"colors"`
	Stock                 int64             `grove:"stock"`
	SKU                   string            `grove:"sku"`
	Tags                  json.RawMessage   `grove:"tags"`
	Badges                json.RawMessage   `grove:"badges"`
	RatingAverage         float64           `grove:"rating_average"`
	RatingCount           int               `grove:"rating_count"`
	Featured              bool              `grove:"featured"`
	IsActive              bool              `grove:"is_active"`
	Views                 int64             `grove:"views"`
	Sold                  int64             `grove:"sold"`
	Metadata              map[string]string `grove:"metadata"`
	CreatedAt             time.Time         `grove:"created_at"`
	UpdatedAt             time.Time         `grove:"updated_at"`
}

func toProductModel(p *catalog.Product) *productModel {
	images, _ := json.Marshal(p.Images) //nolint:errcheck // best-effort
	sizes, _ := json.Marshal(p.Sizes)   //nolint:errcheck // best-effort
	colors, _ := json.Marshal(p.Colors) //nolint:errcheck // best-effort
	tags, _ := json.Marshal(p.Tags)     //nolint:errcheck // best-effort
	badges, _ := json.Marshal(p.Badges) //nolint:errcheck // best-effort

	return &productModel{
		ID:                    p.ID.String(),
		Name:                  p.Name,
		Slug:                  p.Slug,
		Description:           p.Description,
		PriceCents:            p.Price.Amount,
		PriceCurrency:         p.Price.Currency,
		OriginalPriceCents:    p.OriginalPrice.Amount,
		OriginalPriceCurrency: p.OriginalPrice.Currency,
		Images:                images,
		Category:              string(p.Category),
		Subcategory:           p.Subcategory,
		Sizes:                 sizes,
		Colors:                colors,
		Stock:                 p.Stock,
		SKU:                   p.SKU,
		Tags:                  tags,
		Badges:                badges,
		RatingAverage:         p.Rating.Average,
		RatingCount:           p.Rating.Count,
		Featured:              p.Featured,
		IsActive:              p.IsActive,
		Views:                 p.Views,
		Sold:                  p.Sold,
		Metadata:              p.Metadata,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

func fromProductModel(m *productModel) (*catalog.Product, error) {
	productID, err := id.ParseProductID(m.ID)
	if err != nil {
		return nil, err
	}

	var images, sizes, tags []string
	var colors []catalog.Color
	var badges []catalog.Badge
	_ = json.Unmarshal(m.Images, &images) //nolint:errcheck // best-effort
	_ = json.Unmarshal(m.Sizes, &sizes)   //nolint:errcheck // best-effort
	_ = json.Unmarshal(m.Colors, &colors) //nolint:errcheck // best-effort
	_ = json.Unmarshal(m.Tags, &tags)     //nolint:errcheck // best-effort
	_ = json.Unmarshal(m.Badges, &badges) //nolint:errcheck // best-effort

	return &catalog.Product{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:            productID,
		Name:          m.Name,
		Slug:          m.Slug,
		Description:   m.Description,
		Price:         types.Money{Amount: m.PriceCents, Currency: m.PriceCurrency},
		OriginalPrice: types.Money{Amount: m.OriginalPriceCents, Currency: m.OriginalPriceCurrency},
		Images:        images,
		Category:      catalog.Category(m.Category),
		Subcategory:   m.Subcategory,
		Sizes:         sizes,
		Colors:        colors,
		Stock:         m.Stock,
		SKU:           m.SKU,
		Tags:          tags,
		Badges:        badges,
		Rating:        catalog.Rating{Average: m.RatingAverage, Count: m.RatingCount},
		Featured:      m.Featured,
		IsActive:      m.IsActive,
		Views:         m.Views,
		Sold:          m.Sold,
		Metadata:      m.Metadata,
	}, nil
}

// ==================== Promotion models ====================

type promotionModel struct {
	grove.BaseModel `grove:"table:storefront_promotions"`

	ID                   string          `grove:"id,pk"`
	Title                string          `grove:"title"`
	Description          string          `grove:"description"`
	Kind                 string          `grove:"kind"`
	Value                int64           `grove:"value"`
	Code                 string          `grove:"code"`
	MinPurchaseCents     int64           `grove:"min_purchase_cents"`
	MinPurchaseCurrency  string          `grove:"min_purchase_currency"`
	MaxDiscountCents     int64           `grove:"max_discount_cents"`
	MaxDiscountCurrency  string          `grove:"max_discount_currency"`
	UsageLimit           int64           `grove:"usage_limit"`
	UsedCount            int64           `grove:"used_count"`
	ApplicableCategories json.RawMessage `grove:"applicable_categories"`
	ApplicableProducts   json.RawMessage `grove:"applicable_products"`
	StartDate            time.Time       `grove:"start_date"`
	EndDate              time.Time       `grove:"end_date"`
	Banner               json.RawMessage `grove:"banner"`
	ShowOnHomepage       bool            `grove:"show_on_homepage"`
	ShowCountdown        bool            `grove:"show_countdown"`
	IsActive             bool            `grove:"is_active"`
	CreatedAt            time.Time       `grove:"created_at"`
	UpdatedAt            time.Time       `grove:"updated_at"`
}

func toPromotionModel(p *promotion.Promotion) *promotionModel {
	categories, _ := json.Marshal(p.ApplicableCategories) //nolint:errcheck // best-effort
	products, _ := json.Marshal(p.ApplicableProducts)     //nolint:errcheck // best-effort
	banner, _ := json.Marshal(p.Banner)                   //nolint:errcheck // best-effort

	return &promotionModel{
		ID:                   p.ID.String(),
		Title:                p.Title,
		Description:          p.Description,
		Kind:                 string(p.Kind),
		Value:                p.Value,
		Code:                 p.Code,
		MinPurchaseCents:     p.MinPurchase.Amount,
		MinPurchaseCurrency:  p.MinPurchase.Currency,
		MaxDiscountCents:     p.MaxDiscount.Amount,
		MaxDiscountCurrency:  p.MaxDiscount.Currency,
		UsageLimit:           p.UsageLimit,
		UsedCount:            p.UsedCount,
		ApplicableCategories: categories,
		ApplicableProducts:   products,
		StartDate:            p.StartDate,
		EndDate:              p.EndDate,
		Banner:               banner,
		ShowOnHomepage:       p.ShowOnHomepage,
		ShowCountdown:        p.ShowCountdown,
		IsActive:             p.IsActive,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func fromPromotionModel(m *promotionModel) (*promotion.Promotion, error) {
	promoID, err := id.ParsePromotionID(m.ID)
	if err != nil {
		return nil, err
	}

	var categories []string
	var products []id.ProductID
	_ = json.Unmarshal(m.ApplicableCategories, &categories) //nolint:errcheck // best-effort
	_ = json.Unmarshal(m.ApplicableProducts, &products)     //nolint:errcheck // best-effort

	var banner *promotion.Banner
	if len(m.Banner) > 0 && string(m.Banner) != "null" {
		banner = new(promotion.Banner)
		_ = json.Unmarshal(m.Banner, banner) //nolint:errcheck // best-effort
	}

	return &promotion.Promotion{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:                   promoID,
		Title:                m.Title,
		Description:          m.Description,
		Kind:                 promotion.Kind(m.Kind),
		Value:                m.Value,
		Code:                 m.Code,
		MinPurchase:          types.Money{Amount: m.MinPurchaseCents, Currency: m.MinPurchaseCurrency},
		MaxDiscount:          types.Money{Amount: m.MaxDiscountCents, Currency: m.MaxDiscountCurrency},
		UsageLimit:           m.UsageLimit,
		UsedCount:            m.UsedCount,
		ApplicableCategories: categories,
		ApplicableProducts:   products,
		StartDate:            m.StartDate,
		EndDate:              m.EndDate,
		Banner:               banner,
		ShowOnHomepage:       m.ShowOnHomepage,
		ShowCountdown:        m.ShowCountdown,
		IsActive:             m.IsActive,
	}, nil
}

// ==================== Order models ====================

type orderModel struct {
	grove.BaseModel `grove:"table:storefront_orders"`

	ID            string          `grove:"id,pk"`
	Number        string          `grove:"number"`
	Customer      json.RawMessage `grove:"customer"`
	Shipping      json.RawMessage `grove:"shipping"`
	Lines         json.RawMessage `grove:"lines"`
	SubtotalCents int64           `grove:"subtotal_cents"`
	ShippingCents int64           `grove:"shipping_cents"`
	DiscountCents int64           `grove:"discount_cents"`
	TotalCents    int64           `grove:"total_cents"`
	Currency      string          `grove:"currency"`
	CouponCode    string          `grove:"coupon_code"`
	PaymentMethod string          `grove:"payment_method"`
	Status        string          `grove:"status"`
	StatusHistory json.RawMessage `grove:"status_history"`
	TrackingCode  string          `grove:"tracking_code"`
	Notes         string          `grove:"notes"`
	Source        string          `grove:"source"`
	CreatedAt     time.Time       `grove:"created_at"`
	UpdatedAt     time.Time       `grove:"updated_at"`
}

func toOrderModel(o *order.Order) *orderModel {
	customer, _ := json.Marshal(o.Customer)     //nolint:errcheck // best-effort
	shipping, _ := json.Marshal(o.Shipping)     //nolint:errcheck // best-effort
	lines, _ := json.Marshal(o.Lines)           //nolint:errcheck // best-effort
	history, _ := json.Marshal(o.StatusHistory) //nolint:errcheck // best-effort

	return &orderModel{
		ID:            o.ID.String(),
		Number:        o.Number,
		Customer:      customer,
		Shipping:      shipping,
		Lines:         lines,
		SubtotalCents: o.Subtotal.Amount,
		ShippingCents: o.ShippingCost.Amount,
		DiscountCents: o.Discount.Amount,
		TotalCents:    o.Total.Amount,
		Currency:      o.Total.Currency,
		CouponCode:    o.CouponCode,
		PaymentMethod: string(o.PaymentMethod),
		Status:        string(o.Status),
		StatusHistory: history,
		TrackingCode:  o.TrackingCode,
		Notes:         o.Notes,
		Source:        string(o.Source),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func fromOrderModel(m *orderModel) (*order.Order, error) {
	orderID, err := id.ParseOrderID(m.ID)
	if err != nil {
		return nil, err
	}

	var customer order.Customer
	var shipping order.ShippingAddress
	var lines []order.LineItem
	var history []order.StatusEntry
	_ = json.Unmarshal(m.Customer, &customer)     //nolint:errcheck // best-effort
	_ = json.Unmarshal(m.Shipping, &shipping)     //nolint:errcheck // best-effort
	_ = json.Unmarshal(m.Lines, &lines)           //nolint:errcheck // best-effort
	_ = json.Unmarshal(m.StatusHistory, &history) //nolint:errcheck // best-effort

	return &order.Order{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:            orderID,
		Number:        m.Number,
		Customer:      customer,
		Shipping:      shipping,
		Lines:         lines,
		Subtotal:      types.Money{Amount: m.SubtotalCents, Currency: m.Currency},
		ShippingCost:  types.Money{Amount: m.ShippingCents, Currency: m.Currency},
		Discount:      types.Money{Amount: m.DiscountCents, Currency: m.Currency},
		Total:         types.Money{Amount: m.TotalCents, Currency: m.Currency},
		CouponCode:    m.CouponCode,
		PaymentMethod: order.PaymentMethod(m.PaymentMethod),
		Status:        order.Status(m.Status),
		StatusHistory: history,
		TrackingCode:  m.TrackingCode,
		Notes:         m.Notes,
		Source:        order.Source(m.Source),
	}, nil
}

// ==================== Settings models ====================

// settingsDocID is the fixed key of the singleton settings row.
const settingsDocID = "store"

type settingsModel struct {
	grove.BaseModel `grove:"table:storefront_settings"`

	ID        string          `grove:"id,pk"`
	Payload   json.RawMessage `grove:"payload"`
	CreatedAt time.Time       `grove:"created_at"`
	UpdatedAt time.Time       `grove:"updated_at"`
}

func toSettingsModel(s *settings.Settings) *settingsModel {
	payload, _ := json.Marshal(s) //nolint:errcheck // best-effort

	return &settingsModel{
		ID:        settingsDocID,
		Payload:   payload,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func fromSettingsModel(m *settingsModel) (*settings.Settings, error) {
	s := new(settings.Settings)
	if err := json.Unmarshal(m.Payload, s); err != nil {
		return nil, err
	}
	s.CreatedAt = m.CreatedAt
	s.UpdatedAt = m.UpdatedAt
	return s, nil
}

// sequenceModel tracks the per-period order counter, keyed "YYMM".
type sequenceModel struct {
	grove.BaseModel `grove:"table:storefront_sequences"`

	ID    string `grove:"id,pk"`
	Value int64  `grove:"value"`
}
