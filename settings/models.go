// Package settings holds the singleton store configuration: branding,
// contact details, shipping policy, and homepage content.
package settings

import (
	"github.com/lojix/storefront/types"
)

// Address is the store's physical address.
type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// SocialMedia holds the store's social profile handles.
type SocialMedia struct {
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	TikTok    string `json:"tiktok,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
}

// HeroBanner is one rotating banner on the storefront homepage.
type HeroBanner struct {
	Image      string `json:"image"`
	Title      string `json:"title,omitempty"`
	Subtitle   string `json:"subtitle,omitempty"`
	ButtonText string `json:"button_text,omitempty"`
	ButtonLink string `json:"button_link,omitempty"`
	Active     bool   `json:"active"`
}

// SEO holds the storefront's default page metadata.
type SEO struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Keywords    string `json:"keywords,omitempty"`
}

// Settings is the single store configuration document. Exactly one exists;
// Store.Get seeds Defaults when none has been saved yet.
type Settings struct {
	types.Entity
	Name           string               `json:"name"`
	Slogan         string               `json:"slogan,omitempty"`
	Logo           string               `json:"logo,omitempty"`
	Favicon        string               `json:"favicon,omitempty"`
	PrimaryColor   string               `json:"primary_color,omitempty"`
	SecondaryColor string               `json:"secondary_color,omitempty"`

	// WhatsApp is the full international number used for checkout
	// handoff, digits only (e.g. "5511999999999").
	WhatsApp string `json:"whatsapp"`
	Email    string `json:"email,omitempty"`

	Address     Address     `json:"address"`
	SocialMedia SocialMedia `json:"social_media"`

	Shipping types.ShippingPolicy `json:"shipping"`

	Banners  []HeroBanner `json:"banners,omitempty"`
	SEO      SEO          `json:"seo"`
	IsActive bool         `json:"is_active"`
}

// Defaults returns the configuration a fresh store starts with.
func Defaults() *Settings {
	return &Settings{
		Entity:         types.NewEntity(),
		Name:           "Fashion Store",
		Slogan:         "Vista-se com estilo",
		Logo:           "/logo.png",
		Favicon:        "/favicon.ico",
		PrimaryColor:   "#ec4899",
		SecondaryColor: "#8b5cf6",
		WhatsApp:       "5511999999999",
		Email:          "contato@fashionstore.com",
		Shipping:       types.DefaultShippingPolicy(),
		SEO: SEO{
			Title:       "Fashion Store - Moda Feminina",
			Description: "As melhores roupas femininas com os melhores preços",
			Keywords:    "moda, roupas, feminino, vestidos, blusas",
		},
		IsActive: true,
	}
}
