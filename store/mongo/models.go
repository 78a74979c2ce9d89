package mongo

import (
	"time"

	"github.com/xraph/grove"

	"github.com/lojix/storefront/catalog"
	"github.com/lojix/storefront/id"
	"github.com/lojix/storefront/order"
	"github.com/lojix/storefront/promotion"
	"github.com/lojix/storefront/settings"
	"github.com/lojix/storefront/types"
)

// ==================== Product models ====================

type productModel struct {
	grove.BaseModel `grove:"table:storefront_products"`

	ID                    string            `grove:"id,pk"        bson:"_id"`
	Name                  string            `grove:"name"         bson:"name"`
	Slug                  string            `grove:"slug"         bson:"slug"`
	Description           string            `grove:"description"  bson:"description"`
	PriceCents            int64             `grove:"price_cents"  bson:"price_cents"`
	PriceCurrency         string            `grove:"price_currency" bson:"price_currency"`
	OriginalPriceCents    int64             `bson:"original_price_cents"`
	OriginalPriceCurrency string            `bson:"original_price_currency"`
	Images                []string          `bson:"images,omitempty"`
	Category              string            `grove:"category"     bson:"category"`
	Subcategory           string            `bson:"subcategory,omitempty"`
	Sizes                 []string          `bson:"sizes,omitempty"`
	Colors                []colorModel      `bson:"colors,omitempty"`
	Stock                 int64             `grove:"stock"        bson:"stock"`
	SKU                   string            `grove:"sku"          bson:"sku"`
	Tags                  []string          `bson:"tags,omitempty"`
	Badges                []string          `bson:"badges,omitempty"`
	RatingAverage         float64           `bson:"rating_average"`
	RatingCount           int               `bson:"rating_count"`
	Featured              bool              `grove:"featured"     bson:"featured"`
	IsActive              bool              `grove:"is_active"    bson:"is_active"`
	Views                 int64             `grove:"views"        bson:"views"`
	Sold                  int64             `grove:"sold"         bson:"sold"`
	Metadata              map[string]string `bson:"metadata,omitempty"`
	CreatedAt             time.Time         `grove:"created_at"   bson:"created_at"`
	UpdatedAt             time.Time         `grove:"updated_at"   bson:"updated_at"`
}

type colorModel struct {
	Name string `bson:"name"`
	Hex  string `bson:"hex"`
}

func toProductModel(p *catalog.Product) *productModel {
	colors := make([]colorModel, len(p.Colors))
	for i, c := range p.Colors {
		colors[i] = colorModel{Name: c.Name, Hex: c.Hex}
	}
	badges := make([]string, len(p.Badges))
	for i, b := range p.Badges {
		badges[i] = string(b)
	}

	return &productModel{
		ID:                    p.ID.String(),
		Name:                  p.Name,
		Slug:                  p.Slug,
		Description:           p.Description,
		PriceCents:            p.Price.Amount,
		PriceCurrency:         p.Price.Currency,
		OriginalPriceCents:    p.OriginalPrice.Amount,
		OriginalPriceCurrency: p.OriginalPrice.Currency,
		Images:                p.Images,
		Category:              string(p.Category),
		Subcategory:           p.Subcategory,
		Sizes:                 p.Sizes,
		Colors:                colors,
		Stock:                 p.Stock,
		SKU:                   p.SKU,
		Tags:                  p.Tags,
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

	colors := make([]catalog.Color, len(m.Colors))
	for i, c := range m.Colors {
		colors[i] = catalog.Color{Name: c.Name, Hex: c.Hex}
	}
	badges := make([]catalog.Badge, len(m.Badges))
	for i, b := range m.Badges {
		badges[i] = catalog.Badge(b)
	}

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
		Images:        m.Images,
		Category:      catalog.Category(m.Category),
		Subcategory:   m.Subcategory,
		Sizes:         m.Sizes,
		Colors:        colors,
		Stock:         m.Stock,
		SKU:           m.SKU,
		Tags:          m.Tags,
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

	ID                   string       `grove:"id,pk"      bson:"_id"`
	Title                string       `grove:"title"      bson:"title"`
	Description          string       `bson:"description,omitempty"`
	Kind                 string       `grove:"kind"       bson:"kind"`
	Value                int64        `grove:"value"      bson:"value"`
	Code                 string       `grove:"code"       bson:"code"`
	MinPurchaseCents     int64        `bson:"min_purchase_cents"`
	MinPurchaseCurrency  string       `bson:"min_purchase_currency"`
	MaxDiscountCents     int64        `bson:"max_discount_cents"`
	MaxDiscountCurrency  string       `bson:"max_discount_currency"`
	UsageLimit           int64        `grove:"usage_limit" bson:"usage_limit"`
	UsedCount            int64        `grove:"used_count"  bson:"used_count"`
	ApplicableCategories []string     `bson:"applicable_categories,omitempty"`
	ApplicableProducts   []string     `bson:"applicable_products,omitempty"`
	StartDate            time.Time    `grove:"start_date" bson:"start_date"`
	EndDate              time.Time    `grove:"end_date"   bson:"end_date"`
	Banner               *bannerModel `bson:"banner,omitempty"`
	ShowOnHomepage       bool         `bson:"show_on_homepage"`
	ShowCountdown        bool         `bson:"show_countdown"`
	IsActive             bool         `grove:"is_active"  bson:"is_active"`
	CreatedAt            time.Time    `grove:"created_at" bson:"created_at"`
	UpdatedAt            time.Time    `grove:"updated_at" bson:"updated_at"`
}

type bannerModel struct {
	ID              string `bson:"id,omitempty"`
	Image           string `bson:"image,omitempty"`
	BackgroundColor string `bson:"background_color,omitempty"`
	TextColor       string `bson:"text_color,omitempty"`
}

func toPromotionModel(p *promotion.Promotion) *promotionModel {
	products := make([]string, len(p.ApplicableProducts))
	for i, pid := range p.ApplicableProducts {
		products[i] = pid.String()
	}

	var banner *bannerModel
	if p.Banner != nil {
		banner = &bannerModel{
			ID:              p.Banner.ID.String(),
			Image:           p.Banner.Image,
			BackgroundColor: p.Banner.BackgroundColor,
			TextColor:       p.Banner.TextColor,
		}
	}

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
		ApplicableCategories: p.ApplicableCategories,
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

	products := make([]id.ProductID, 0, len(m.ApplicableProducts))
	for _, raw := range m.ApplicableProducts {
		pid, err := id.ParseProductID(raw)
		if err != nil {
			return nil, err
		}
		products = append(products, pid)
	}

	var banner *promotion.Banner
	if m.Banner != nil {
		banner = &promotion.Banner{
			Image:           m.Banner.Image,
			BackgroundColor: m.Banner.BackgroundColor,
			TextColor:       m.Banner.TextColor,
		}
		if m.Banner.ID != "" {
			bannerID, err := id.ParseBannerID(m.Banner.ID)
			if err != nil {
				return nil, err
			}
			banner.ID = bannerID
		}
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
		ApplicableCategories: m.ApplicableCategories,
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

	ID            string             `grove:"id,pk"      bson:"_id"`
	Number        string             `grove:"number"     bson:"number"`
	Customer      customerModel      `bson:"customer"`
	Shipping      addressModel       `bson:"shipping"`
	Lines         []lineItemModel    `bson:"lines"`
	SubtotalCents int64              `bson:"subtotal_cents"`
	ShippingCents int64              `bson:"shipping_cents"`
	DiscountCents int64              `bson:"discount_cents"`
	TotalCents    int64              `grove:"total_cents" bson:"total_cents"`
	Currency      string             `grove:"currency"    bson:"currency"`
	CouponCode    string             `bson:"coupon_code,omitempty"`
	PaymentMethod string             `bson:"payment_method"`
	Status        string             `grove:"status"     bson:"status"`
	StatusHistory []statusEntryModel `bson:"status_history"`
	TrackingCode  string             `bson:"tracking_code,omitempty"`
	Notes         string             `bson:"notes,omitempty"`
	Source        string             `bson:"source"`
	CreatedAt     time.Time          `grove:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `grove:"updated_at" bson:"updated_at"`
}

type customerModel struct {
	Name  string `bson:"name"`
	Email string `bson:"email,omitempty"`
	Phone string `bson:"phone"`
	TaxID string `bson:"tax_id,omitempty"`
}

type addressModel struct {
	Street       string `bson:"street,omitempty"`
	Number       string `bson:"number,omitempty"`
	Complement   string `bson:"complement,omitempty"`
	Neighborhood string `bson:"neighborhood,omitempty"`
	City         string `bson:"city,omitempty"`
	State        string `bson:"state,omitempty"`
	PostalCode   string `bson:"postal_code,omitempty"`
}

type lineItemModel struct {
	ID             string `bson:"id"`
	ProductID      string `bson:"product_id"`
	Name           string `bson:"name"`
	Image          string `bson:"image,omitempty"`
	UnitPriceCents int64  `bson:"unit_price_cents"`
	Currency       string `bson:"currency"`
	Quantity       int64  `bson:"quantity"`
	Size           string `bson:"size,omitempty"`
	Color          string `bson:"color,omitempty"`
}

type statusEntryModel struct {
	Status    string    `bson:"status"`
	Timestamp time.Time `bson:"timestamp"`
	Note      string    `bson:"note,omitempty"`
}

func toOrderModel(o *order.Order) *orderModel {
	lines := make([]lineItemModel, len(o.Lines))
	for i, li := range o.Lines {
		lines[i] = lineItemModel{
			ID:             li.ID.String(),
			ProductID:      li.ProductID.String(),
			Name:           li.Name,
			Image:          li.Image,
			UnitPriceCents: li.UnitPrice.Amount,
			Currency:       li.UnitPrice.Currency,
			Quantity:       li.Quantity,
			Size:           li.Size,
			Color:          li.Color,
		}
	}

	history := make([]statusEntryModel, len(o.StatusHistory))
	for i, e := range o.StatusHistory {
		history[i] = statusEntryModel{
			Status:    string(e.Status),
			Timestamp: e.Timestamp,
			Note:      e.Note,
		}
	}

	return &orderModel{
		ID:     o.ID.String(),
		Number: o.Number,
		Customer: customerModel{
			Name:  o.Customer.Name,
			Email: o.Customer.Email,
			Phone: o.Customer.Phone,
			TaxID: o.Customer.TaxID,
		},
		Shipping: addressModel{
			Street:       o.Shipping.Street,
			Number:       o.Shipping.Number,
			Complement:   o.Shipping.Complement,
			Neighborhood: o.Shipping.Neighborhood,
			City:         o.Shipping.City,
			State:        o.Shipping.State,
			PostalCode:   o.Shipping.PostalCode,
		},
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

	lines := make([]order.LineItem, len(m.Lines))
	for i, li := range m.Lines {
		liID, err := id.ParseLineItemID(li.ID)
		if err != nil {
			return nil, err
		}
		pid, err := id.ParseProductID(li.ProductID)
		if err != nil {
			return nil, err
		}
		lines[i] = order.LineItem{
			ID:        liID,
			ProductID: pid,
			Name:      li.Name,
			Image:     li.Image,
			UnitPrice: types.Money{Amount: li.UnitPriceCents, Currency: li.Currency},
			Quantity:  li.Quantity,
			Size:      li.Size,
			Color:     li.Color,
		}
	}

	history := make([]order.StatusEntry, len(m.StatusHistory))
	for i, e := range m.StatusHistory {
		history[i] = order.StatusEntry{
			Status:    order.Status(e.Status),
			Timestamp: e.Timestamp,
			Note:      e.Note,
		}
	}

	return &order.Order{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:     orderID,
		Number: m.Number,
		Customer: order.Customer{
			Name:  m.Customer.Name,
			Email: m.Customer.Email,
			Phone: m.Customer.Phone,
			TaxID: m.Customer.TaxID,
		},
		Shipping: order.ShippingAddress{
			Street:       m.Shipping.Street,
			Number:       m.Shipping.Number,
			Complement:   m.Shipping.Complement,
			Neighborhood: m.Shipping.Neighborhood,
			City:         m.Shipping.City,
			State:        m.Shipping.State,
			PostalCode:   m.Shipping.PostalCode,
		},
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

type settingsModel struct {
	grove.BaseModel `grove:"table:storefront_settings"`

	ID             string            `grove:"id,pk"      bson:"_id"`
	Name           string            `grove:"name"       bson:"name"`
	Slogan         string            `bson:"slogan,omitempty"`
	Logo           string            `bson:"logo,omitempty"`
	Favicon        string            `bson:"favicon,omitempty"`
	PrimaryColor   string            `bson:"primary_color,omitempty"`
	SecondaryColor string            `bson:"secondary_color,omitempty"`
	WhatsApp       string            `bson:"whatsapp"`
	Email          string            `bson:"email,omitempty"`
	Address        settingsAddress   `bson:"address"`
	SocialMedia    settingsSocial    `bson:"social_media"`
	FreeAboveCents int64             `bson:"free_above_cents"`
	ShipCostCents  int64             `bson:"ship_cost_cents"`
	Currency       string            `bson:"currency"`
	Banners        []heroBannerModel `bson:"banners,omitempty"`
	SEOTitle       string            `bson:"seo_title,omitempty"`
	SEODescription string            `bson:"seo_description,omitempty"`
	SEOKeywords    string            `bson:"seo_keywords,omitempty"`
	IsActive       bool              `bson:"is_active"`
	CreatedAt      time.Time         `grove:"created_at" bson:"created_at"`
	UpdatedAt      time.Time         `grove:"updated_at" bson:"updated_at"`
}

type settingsAddress struct {
	Street     string `bson:"street,omitempty"`
	City       string `bson:"city,omitempty"`
	State      string `bson:"state,omitempty"`
	PostalCode string `bson:"postal_code,omitempty"`
}

type settingsSocial struct {
	Instagram string `bson:"instagram,omitempty"`
	Facebook  string `bson:"facebook,omitempty"`
	TikTok    string `bson:"tiktok,omitempty"`
	YouTube   string `bson:"youtube,omitempty"`
}

type heroBannerModel struct {
	Image      string `bson:"image"`
	Title      string `bson:"title,omitempty"`
	Subtitle   string `bson:"subtitle,omitempty"`
	ButtonText string `bson:"button_text,omitempty"`
	ButtonLink string `bson:"button_link,omitempty"`
	Active     bool   `bson:"active"`
}

func toSettingsModel(s *settings.Settings) *settingsModel {
	banners := make([]heroBannerModel, len(s.Banners))
	for i, b := range s.Banners {
		banners[i] = heroBannerModel{
			Image:      b.Image,
			Title:      b.Title,
			Subtitle:   b.Subtitle,
			ButtonText: b.ButtonText,
			ButtonLink: b.ButtonLink,
			Active:     b.Active,
		}
	}

	return &settingsModel{
		ID:             settingsDocID,
		Name:           s.Name,
		Slogan:         s.Slogan,
		Logo:           s.Logo,
		Favicon:        s.Favicon,
		PrimaryColor:   s.PrimaryColor,
		SecondaryColor: s.SecondaryColor,
		WhatsApp:       s.WhatsApp,
		Email:          s.Email,
		Address: settingsAddress{
			Street:     s.Address.Street,
			City:       s.Address.City,
			State:      s.Address.State,
			PostalCode: s.Address.PostalCode,
		},
		SocialMedia: settingsSocial{
			Instagram: s.SocialMedia.Instagram,
			Facebook:  s.SocialMedia.Facebook,
			TikTok:    s.SocialMedia.TikTok,
			YouTube:   s.SocialMedia.YouTube,
		},
		FreeAboveCents: s.Shipping.FreeAbove.Amount,
		ShipCostCents:  s.Shipping.DefaultCost.Amount,
		Currency:       s.Shipping.DefaultCost.Currency,
		Banners:        banners,
		SEOTitle:       s.SEO.Title,
		SEODescription: s.SEO.Description,
		SEOKeywords:    s.SEO.Keywords,
		IsActive:       s.IsActive,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func fromSettingsModel(m *settingsModel) *settings.Settings {
	banners := make([]settings.HeroBanner, len(m.Banners))
	for i, b := range m.Banners {
		banners[i] = settings.HeroBanner{
			Image:      b.Image,
			Title:      b.Title,
			Subtitle:   b.Subtitle,
			ButtonText: b.ButtonText,
			ButtonLink: b.ButtonLink,
			Active:     b.Active,
		}
	}

	return &settings.Settings{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Name:           m.Name,
		Slogan:         m.Slogan,
		Logo:           m.Logo,
		Favicon:        m.Favicon,
		PrimaryColor:   m.PrimaryColor,
		SecondaryColor: m.SecondaryColor,
		WhatsApp:       m.WhatsApp,
		Email:          m.Email,
		Address: settings.Address{
			Street:     m.Address.Street,
			City:       m.Address.City,
			State:      m.Address.State,
			PostalCode: m.Address.PostalCode,
		},
		SocialMedia: settings.SocialMedia{
			Instagram: m.SocialMedia.Instagram,
			Facebook:  m.SocialMedia.Facebook,
			TikTok:    m.SocialMedia.TikTok,
			YouTube:   m.SocialMedia.YouTube,
		},
		Shipping: types.ShippingPolicy{
			FreeAbove:   types.Money{Amount: m.FreeAboveCents, Currency: m.Currency},
			DefaultCost: types.Money{Amount: m.ShipCostCents, Currency: m.Currency},
		},
		Banners:  banners,
		SEO: settings.SEO{
			Title:       m.SEOTitle,
			Description: m.SEODescription,
			Keywords:    m.SEOKeywords,
		},
		IsActive: m.IsActive,
	}
}

// sequenceModel tracks the per-period order counter, keyed "YYMM".
type sequenceModel struct {
	grove.BaseModel `grove:"table:storefront_sequences"`

	ID    string `grove:"id,pk" bson:"_id"`
	Value int64  `grove:"value" bson:"value"`
}
