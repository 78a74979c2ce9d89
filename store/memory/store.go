// Package memory provides an in-memory store implementation, suitable for
// tests and prototyping.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lojix/storefront"
	"github.com/lojix/storefront/catalog"
	"github.com/lojix/storefront/id"
	"github.com/lojix/storefront/order"
	"github.com/lojix/storefront/promotion"
	"github.com/lojix/storefront/settings"
	storefrontstore "github.com/lojix/storefront/store"
	"github.com/lojix/storefront/types"
)

var _ storefrontstore.Store = (*Store)(nil)

type Store struct {
	mu sync.RWMutex

	// Product storage
	products map[string]*catalog.Product

	// Promotion storage
	promotions map[string]*promotion.Promotion

	// Order storage
	orders map[string]*order.Order

	// Per-period order sequences, keyed "YYMM"
	sequences map[string]int64

	// Singleton store settings
	config *settings.Settings
}

func New() *Store {
	return &Store{
		products:   make(map[string]*catalog.Product),
		promotions: make(map[string]*promotion.Promotion),
		orders:     make(map[string]*order.Order),
		sequences:  make(map[string]int64),
	}
}

// Product Store implementation

func (s *Store) CreateProduct(_ context.Context, p *catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[p.ID.String()]; exists {
		return storefront.ErrAlreadyExists
	}
	for _, other := range s.products {
		if other.Slug == p.Slug {
			return storefront.ErrDuplicateSlug
		}
	}
	s.products[p.ID.String()] = p
	return nil
}

func (s *Store) GetProduct(_ context.Context, productID id.ProductID) (*catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.products[productID.String()]; ok {
		return p, nil
	}
	return nil, storefront.ErrProductNotFound
}

func (s *Store) GetProductBySlug(_ context.Context, slug string) (*catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, storefront.ErrProductNotFound
}

func (s *Store) GetProducts(_ context.Context, productIDs []id.ProductID) ([]*catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*catalog.Product, 0, len(productIDs))
	for _, pid := range productIDs {
		if p, ok := s.products[pid.String()]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func (s *Store) ListProducts(_ context.Context, opts catalog.ListOpts) ([]*catalog.Product, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*catalog.Product, 0)
	for _, p := range s.products {
		if matchesProduct(p, opts) {
			result = append(result, p)
		}
	}
	total := int64(len(result))

	sortProducts(result, opts.Sort)

	// Apply limit/offset
	start := opts.Offset
	if start > len(result) {
		start = len(result)
	}
	end := start + opts.Limit
	if opts.Limit == 0 || end > len(result) {
		end = len(result)
	}

	return result[start:end], total, nil
}

func (s *Store) CountByCategory(_ context.Context) ([]catalog.CategoryCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[catalog.Category]int64)
	for _, p := range s.products {
		if p.IsActive {
			counts[p.Category]++
		}
	}

	result := make([]catalog.CategoryCount, 0, len(counts))
	for _, c := range catalog.Categories() {
		if counts[c] > 0 {
			result = append(result, catalog.CategoryCount{Category: c, Count: counts[c]})
		}
	}
	return result, nil
}

func (s *Store) UpdateProduct(_ context.Context, p *catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[p.ID.String()]; !exists {
		return storefront.ErrProductNotFound
	}
	s.products[p.ID.String()] = p
	return nil
}

func (s *Store) DeleteProduct(_ context.Context, productID id.ProductID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[productID.String()]; !exists {
		return storefront.ErrProductNotFound
	}
	delete(s.products, productID.String())
	return nil
}

func (s *Store) AdjustStock(_ context.Context, productID id.ProductID, stockDelta, soldDelta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID.String()]
	if !ok {
		return storefront.ErrProductNotFound
	}
	p.Stock += stockDelta
	p.Sold += soldDelta
	p.Touch()
	return nil
}

func (s *Store) AddViews(_ context.Context, counts map[id.ProductID]int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for pid, n := range counts {
		if p, ok := s.products[pid.String()]; ok {
			p.Views += n
		}
	}
	return nil
}

// Promotion Store implementation

func (s *Store) CreatePromotion(_ context.Context, p *promotion.Promotion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.promotions[p.ID.String()]; exists {
		return storefront.ErrAlreadyExists
	}
	s.promotions[p.ID.String()] = p
	return nil
}

func (s *Store) GetPromotion(_ context.Context, promoID id.PromotionID) (*promotion.Promotion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.promotions[promoID.String()]; ok {
		return p, nil
	}
	return nil, storefront.ErrPromotionNotFound
}

func (s *Store) GetPromotionByCode(_ context.Context, code string) (*promotion.Promotion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	code = promotion.NormalizeCode(code)
	for _, p := range s.promotions {
		if p.Code != "" && p.Code == code {
			return p, nil
		}
	}
	return nil, storefront.ErrPromotionNotFound
}

func (s *Store) ListPromotions(_ context.Context, opts promotion.ListOpts) ([]*promotion.Promotion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	result := make([]*promotion.Promotion, 0)
	for _, p := range s.promotions {
		if opts.ActiveOnly && !p.IsCurrentlyValid(now) {
			continue
		}
		if opts.HomepageOnly && !p.ShowOnHomepage {
			continue
		}
		result = append(result, p)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	// Apply limit/offset
	start := opts.Offset
	if start > len(result) {
		start = len(result)
	}
	end := start + opts.Limit
	if opts.Limit == 0 || end > len(result) {
		end = len(result)
	}

	return result[start:end], nil
}

func (s *Store) UpdatePromotion(_ context.Context, p *promotion.Promotion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.promotions[p.ID.String()]; !exists {
		return storefront.ErrPromotionNotFound
	}
	s.promotions[p.ID.String()] = p
	return nil
}

func (s *Store) DeletePromotion(_ context.Context, promoID id.PromotionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.promotions, promoID.String())
	return nil
}

func (s *Store) RedeemPromotion(_ context.Context, promoID id.PromotionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.promotions[promoID.String()]
	if !ok {
		return storefront.ErrPromotionNotFound
	}
	if p.UsageLimit > 0 && p.UsedCount >= p.UsageLimit {
		return storefront.ErrPromotionExhausted
	}
	p.UsedCount++
	p.Touch()
	return nil
}

func (s *Store) ReleasePromotion(_ context.Context, promoID id.PromotionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.promotions[promoID.String()]
	if !ok {
		return storefront.ErrPromotionNotFound
	}
	if p.UsedCount > 0 {
		p.UsedCount--
		p.Touch()
	}
	return nil
}

// Order Store implementation

func (s *Store) CreateOrder(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[o.ID.String()]; exists {
		return storefront.ErrAlreadyExists
	}
	s.orders[o.ID.String()] = cloneOrder(o)
	return nil
}

// Orders are handed out as copies so that callers mutating the result (the
// engine pre-applies status transitions before persisting them) cannot
// alias the stored instance.
func (s *Store) GetOrder(_ context.Context, orderID id.OrderID) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if o, ok := s.orders[orderID.String()]; ok {
		return cloneOrder(o), nil
	}
	return nil, storefront.ErrOrderNotFound
}

func (s *Store) GetOrderByNumber(_ context.Context, number string) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders {
		if o.Number == number {
			return cloneOrder(o), nil
		}
	}
	return nil, storefront.ErrOrderNotFound
}

func (s *Store) ListOrders(_ context.Context, opts order.ListOpts) ([]*order.Order, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*order.Order, 0)
	for _, o := range s.orders {
		if matchesOrder(o, opts) {
			result = append(result, o)
		}
	}
	total := int64(len(result))

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	// Apply limit/offset
	start := opts.Offset
	if start > len(result) {
		start = len(result)
	}
	end := start + opts.Limit
	if opts.Limit == 0 || end > len(result) {
		end = len(result)
	}

	page := make([]*order.Order, 0, end-start)
	for _, o := range result[start:end] {
		page = append(page, cloneOrder(o))
	}
	return page, total, nil
}

func (s *Store) UpdateOrderStatus(_ context.Context, orderID id.OrderID, status order.Status, entry order.StatusEntry, trackingCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID.String()]
	if !ok {
		return storefront.ErrOrderNotFound
	}
	o.Status = status
	o.StatusHistory = append(o.StatusHistory, entry)
	if trackingCode != "" {
		o.TrackingCode = trackingCode
	}
	o.Touch()
	return nil
}

func (s *Store) CountOrders(_ context.Context, opts order.CountOpts) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, o := range s.orders {
		if matchesCount(o, opts) {
			count++
		}
	}
	return count, nil
}

func (s *Store) SumOrderTotals(_ context.Context, opts order.CountOpts) (types.Money, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make([]types.Money, 0)
	for _, o := range s.orders {
		if matchesCount(o, opts) {
			totals = append(totals, o.Total)
		}
	}
	return types.Sum(totals...), nil
}

func (s *Store) CountOrdersByStatus(_ context.Context) (map[order.Status]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[order.Status]int64)
	for _, o := range s.orders {
		counts[o.Status]++
	}
	return counts, nil
}

func (s *Store) NextOrderSequence(_ context.Context, year int, month time.Month) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := fmt.Sprintf("%02d%02d", year%100, int(month))
	s.sequences[key]++
	return s.sequences[key], nil
}

// Settings Store implementation

func (s *Store) GetSettings(_ context.Context) (*settings.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config == nil {
		s.config = settings.Defaults()
	}
	return cloneSettings(s.config), nil
}

func (s *Store) UpdateSettings(_ context.Context, cfg *settings.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.config = cloneSettings(cfg)
	return nil
}

// Store management

func (s *Store) Migrate(_ context.Context) error {
	return nil // No migration needed for memory store
}

func (s *Store) Ping(_ context.Context) error {
	return nil // Always available
}

func (s *Store) Close() error {
	return nil // Nothing to close
}

// Helper functions

func cloneOrder(o *order.Order) *order.Order {
	dup := *o
	dup.Lines = append([]order.LineItem(nil), o.Lines...)
	dup.StatusHistory = append([]order.StatusEntry(nil), o.StatusHistory...)
	return &dup
}

func cloneSettings(s *settings.Settings) *settings.Settings {
	dup := *s
	dup.Banners = append([]settings.HeroBanner(nil), s.Banners...)
	return &dup
}

func matchesProduct(p *catalog.Product, opts catalog.ListOpts) bool {
	if !opts.IncludeInactive && !p.IsActive {
		return false
	}
	if opts.Category != "" && p.Category != opts.Category {
		return false
	}
	if opts.Subcategory != "" && p.Subcategory != opts.Subcategory {
		return false
	}
	if opts.MinPrice.IsPositive() && p.Price.Amount < opts.MinPrice.Amount {
		return false
	}
	if opts.MaxPrice.IsPositive() && p.Price.Amount > opts.MaxPrice.Amount {
		return false
	}
	if opts.Featured && !p.Featured {
		return false
	}
	if len(opts.Sizes) > 0 && !intersects(p.Sizes, opts.Sizes) {
		return false
	}
	if len(opts.ColorNames) > 0 {
		names := make([]string, 0, len(p.Colors))
		for _, c := range p.Colors {
			names = append(names, c.Name)
		}
		if !intersects(names, opts.ColorNames) {
			return false
		}
	}
	if len(opts.Tags) > 0 && !intersects(p.Tags, opts.Tags) {
		return false
	}
	if opts.Search != "" {
		q := strings.ToLower(opts.Search)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) &&
			!intersects(lower(p.Tags), []string{q}) {
			return false
		}
	}
	return true
}

func sortProducts(products []*catalog.Product, field catalog.SortField) {
	switch field {
	case catalog.SortPriceAsc:
		sort.Slice(products, func(i, j int) bool {
			return products[i].Price.Amount < products[j].Price.Amount
		})
	case catalog.SortPriceDesc:
		sort.Slice(products, func(i, j int) bool {
			return products[i].Price.Amount > products[j].Price.Amount
		})
	case catalog.SortBestSell:
		sort.Slice(products, func(i, j int) bool {
			return products[i].Sold > products[j].Sold
		})
	default:
		sort.Slice(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	}
}

func matchesOrder(o *order.Order, opts order.ListOpts) bool {
	if opts.Status != "" && o.Status != opts.Status {
		return false
	}
	if !opts.Start.IsZero() && o.CreatedAt.Before(opts.Start) {
		return false
	}
	if !opts.End.IsZero() && !o.CreatedAt.Before(opts.End) {
		return false
	}
	if opts.Search != "" {
		q := strings.ToLower(opts.Search)
		if !strings.Contains(strings.ToLower(o.Number), q) &&
			!strings.Contains(strings.ToLower(o.Customer.Name), q) &&
			!strings.Contains(strings.ToLower(o.Customer.Email), q) {
			return false
		}
	}
	return true
}

func matchesCount(o *order.Order, opts order.CountOpts) bool {
	if opts.Status != "" && o.Status != opts.Status {
		return false
	}
	if opts.ExcludeStatus != "" && o.Status == opts.ExcludeStatus {
		return false
	}
	if !opts.Start.IsZero() && o.CreatedAt.Before(opts.Start) {
		return false
	}
	if !opts.End.IsZero() && !o.CreatedAt.Before(opts.End) {
		return false
	}
	return true
}

func intersects(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

func lower(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.ToLower(s)
	}
	return out
}
