// Package mongo implements the storefront store on MongoDB via Grove ORM.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	storefront "github.com/lojix/storefront"
	"github.com/lojix/storefront/catalog"
	"github.com/lojix/storefront/id"
	"github.com/lojix/storefront/order"
	"github.com/lojix/storefront/promotion"
	"github.com/lojix/storefront/settings"
	storefrontstore "github.com/lojix/storefront/store"
	"github.com/lojix/storefront/types"
)

// Collection name constants.
const (
	colProducts   = "storefront_products"
	colPromotions = "storefront_promotions"
	colOrders     = "storefront_orders"
	colSettings   = "storefront_settings"
	colSequences  = "storefront_sequences"
)

// settingsDocID is the fixed key of the singleton settings document.
const settingsDocID = "store"

// compile-time interface check
var _ storefrontstore.Store = (*Store)(nil)

// Store implements store.Store using MongoDB via Grove ORM.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates indexes for all storefront collections.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := migrationIndexes()

	for col, models := range indexes {
		if len(models) == 0 {
			continue
		}
		_, err := s.mdb.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("storefront/mongo: migrate %s indexes: %w", col, err)
		}
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ==================== Product Store ====================

func (s *Store) CreateProduct(ctx context.Context, p *catalog.Product) error {
	m := toProductModel(p)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return storefront.ErrDuplicateSlug
		}
		return fmt.Errorf("storefront/mongo: create product: %w", err)
	}
	return nil
}

func (s *Store) GetProduct(ctx context.Context, productID id.ProductID) (*catalog.Product, error) {
	var m productModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": productID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, storefront.ErrProductNotFound
		}
		return nil, fmt.Errorf("storefront/mongo: get product: %w", err)
	}
	return fromProductModel(&m)
}

func (s *Store) GetProductBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	var m productModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"slug": slug}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, storefront.ErrProductNotFound
		}
		return nil, fmt.Errorf("storefront/mongo: get product by slug: %w", err)
	}
	return fromProductModel(&m)
}

func (s *Store) GetProducts(ctx context.Context, productIDs []id.ProductID) ([]*catalog.Product, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	ids := make([]string, len(productIDs))
	for i, pid := range productIDs {
		ids[i] = pid.String()
	}

	var models []productModel
	err := s.mdb.NewFind(&models).
		Filter(bson.M{"_id": bson.M{"$in": ids}}).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("storefront/mongo: get products: %w", err)
	}

	result := make([]*catalog.Product, len(models))
	for i := range models {
		p, err := fromProductModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = p
	}
	return result, nil
}

func (s *Store) ListProducts(ctx context.Context, opts catalog.ListOpts) ([]*catalog.Product, int64, error) {
	filter := productFilter(opts)

	total, err := s.mdb.Collection(colProducts).CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("storefront/mongo: count products: %w", err)
	}

	var models []productModel
	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(productSort(opts.Sort))

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, 0, fmt.Errorf("storefront/mongo: list products: %w", err)
	}

	result := make([]*catalog.Product, len(models))
	for i := range models {
		p, err := fromProductModel(&models[i])
		if err != nil {
			return nil, 0, err
		}
		result[i] = p
	}
	return result, total, nil
}

func (s *Store) CountByCategory(ctx context.Context) ([]catalog.CategoryCount, error) {
	pipeline := bson.A{
		bson.M{"$match": bson.M{"is_active": true}},
		bson.M{"$group": bson.M{
			"_id":   "$category",
			"count": bson.M{"$sum": 1},
		}},
		bson.M{"$sort": bson.M{"_id": 1}},
	}

	cursor, err := s.mdb.Collection(colProducts).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("storefront/mongo: count by category: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Category string `bson:"_id"`
		Count    int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("storefront/mongo: count by category decode: %w", err)
	}

	result := make([]catalog.CategoryCount, len(rows))
	for i, r := range rows {
		result[i] = catalog.CategoryCount{
			Category: catalog.Category(r.Category),
			Count:    r.Count,
		}
	}
	return result, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p *catalog.Product) error {
	m := toProductModel(p)
	m.UpdatedAt = now()

	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("storefront/mongo: update product: %w", err)
	}
	if res.MatchedCount() == 0 {
		return storefront.ErrProductNotFound
	}
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, productID id.ProductID) error {
	res, err := s.mdb.NewDelete((*productModel)(nil)).
		Filter(bson.M{"_id": productID.String()}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("storefront/mongo: delete product: %w", err)
	}
	if res.DeletedCount() == 0 {
		return storefront.ErrProductNotFound
	}
	return nil
}

func (s *Store) AdjustStock(ctx context.Context, productID id.ProductID, stockDelta, soldDelta int64) error {
	res, err := s.mdb.NewUpdate((*productModel)(nil)).
		Filter(bson.M{"_id": productID.String()}).
		SetUpdate(bson.M{
			"$inc": bson.M{"stock": stockDelta, "sold": soldDelta},
			"$set": bson.M{"updated_at": now()},
		}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("storefront/mongo: adjust stock: %w", err)
	}
	if res.MatchedCount() == 0 {
		return storefront.ErrProductNotFound
	}
	return nil
}

func (s *Store) AddViews(ctx context.Context, counts map[id.ProductID]int64) error {
	for pid, n := range counts {
		_, err := s.mdb.NewUpdate((*productModel)(nil)).
			Filter(bson.M{"_id": pid.String()}).
			SetUpdate(bson.M{"$inc": bson.M{"views": n}}).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("storefront/mongo: add views: %w", err)
		}
	}
	return nil
}

// ==================== Promotion Store ====================

func (s *Store) CreatePromotion(ctx context.Context, p *promotion.Promotion) error {
	m := toPromotionModel(p)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("storefront/mongo: create promotion: %w", err)
	}
	return nil
}

func (s *Store) GetPromotion(ctx context.Context, promoID id.PromotionID) (*promotion.Promotion, error) {
	var m promotionModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": promoID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, storefront.ErrPromotionNotFound
		}
		return nil, fmt.Errorf("storefront/mongo: get promotion: %w", err)
	}
	return fromPromotionModel(&m)
}

func (s *Store) GetPromotionByCode(ctx context.Context, code string) (*promotion.Promotion, error) {
	var m promotionModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"code": promotion.NormalizeCode(code)}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, storefront.ErrPromotionNotFound
		}
		return nil, fmt.Errorf("storefront/mongo: get promotion by code: %w", err)
	}
	return fromPromotionModel(&m)
}

func (s *Store) ListPromotions(ctx context.Context, opts promotion.ListOpts) ([]*promotion.Promotion, error) {
	var models []promotionModel

	filter := bson.M{}
	if opts.ActiveOnly {
		t := now()
		filter["is_active"] = true
		filter["start_date"] = bson.M{"$lte": t}
		filter["end_date"] = bson.M{"$gte": t}
		filter["$or"] = bson.A{
			bson.M{"usage_limit": 0},
			bson.M{"$expr": bson.M{"$lt": bson.A{"$used_count", "$usage_limit"}}},
		}
	}
	if opts.HomepageOnly {
		filter["show_on_homepage"] = true
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "created_at", Value: -1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("storefront/mongo: list promotions: %w", err)
	}

	result := make([]*promotion.Promotion, len(models))
	for i := range models {
		p, err := fromPromotionModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = p
	}
	return result, nil
}

func (s *Store) UpdatePromotion(ctx context.Context, p *promotion.Promotion) error {
	m := toPromotionModel(p)
	m.UpdatedAt = now()

	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("storefront/mongo: update promotion: %w", err)
	}
	if res.MatchedCount() == 0 {
		return storefront.ErrPromotionNotFound
	}
	return nil
}

func (s *Store) DeletePromotion(ctx context.Context, promoID id.PromotionID) error {
	res, err := s.mdb.NewDelete((*promotionModel)(nil)).
		Filter(bson.M{"_id": promoID.String()}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("storefront/mongo: delete promotion: %w", err)
	}
	if res.DeletedCount() == 0 {
		return storefront.ErrPromotionNotFound
	}
	return nil
}

// RedeemPromotion increments used_count as a single conditional update so
// concurrent checkouts cannot redeem past the usage limit.
func (s *Store) RedeemPromotion(ctx context.Context, promoID id.PromotionID) error {
	res, err := s.mdb.NewUpdate((*promotionModel)(nil)).
		Filter(bson.M{
			"_id": promoID.String(),
			"$or": bson.A{
				bson.M{"usage_limit": 0},
				bson.M{"$expr": bson.M{"$lt": bson.A{"$used_count", "$usage_limit"}}},
			},
		}).
		SetUpdate(bson.M{
			"$inc": bson.M{"used_count": 1},
			"$set": bson.M{"updated_at": now()},
		}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("storefront/mongo: redeem promotion: %w", err)
	}
	if res.MatchedCount() == 0 {
		// Either the promotion is gone or the cap was hit; disambiguate.
		if _, getErr := s.GetPromotion(ctx, promoID); getErr != nil {
			return getErr
		}
		return storefront.ErrPromotionExhausted
	}
	return nil
}

// ReleasePromotion undoes one redemption after a failed checkout. The
// used_count > 0 filter keeps the counter from going negative.
func (s *Store) ReleasePromotion(ctx context.Context, promoID id.PromotionID) error {
	res, err := s.mdb.NewUpdate((*promotionModel)(nil)).
		Filter(bson.M{
			"_id":        promoID.String(),
			"used_count": bson.M{"$gt": 0},
		}).
		SetUpdate(bson.M{
			"$inc": bson.M{"used_count": -1},
			"$set": bson.M{"updated_at": now()},
		}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("storefront/mongo: release promotion: %w", err)
	}
	if res.MatchedCount() == 0 {
		if _, getErr := s.GetPromotion(ctx, promoID); getErr != nil {
			return getErr
		}
	}
	return nil
}

// ==================== Order Store ====================

func (s *Store) CreateOrder(ctx context.Context, o *order.Order) error {
	m := toOrderModel(o)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("storefront/mongo: create order: %w", err)
	}
	return nil
}

func (s *Store) GetOrder(ctx context.Context, orderID id.OrderID) (*order.Order, error) {
	var m orderModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": orderID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, storefront.ErrOrderNotFound
		}
		return nil, fmt.Errorf("storefront/mongo: get order: %w", err)
	}
	return fromOrderModel(&m)
}

func (s *Store) GetOrderByNumber(ctx context.Context, number string) (*order.Order, error) {
	var m orderModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"number": number}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, storefront.ErrOrderNotFound
		}
		return nil, fmt.Errorf("storefront/mongo: get order by number: %w", err)
	}
	return fromOrderModel(&m)
}

func (s *Store) ListOrders(ctx context.Context, opts order.ListOpts) ([]*order.Order, int64, error) {
	filter := orderFilter(opts)

	total, err := s.mdb.Collection(colOrders).CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("storefront/mongo: count orders: %w", err)
	}

	var models []orderModel
	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "created_at", Value: -1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, 0, fmt.Errorf("storefront/mongo: list orders: %w", err)
	}

	result := make([]*order.Order, len(models))
	for i := range models {
		o, err := fromOrderModel(&models[i])
		if err != nil {
			return nil, 0, err
		}
		result[i] = o
	}
	return result, total, nil
}

func (s *Store) UpdateOrderStatus(ctx context.Context, orderID id.OrderID, status order.Status, entry order.StatusEntry, trackingCode string) error {
	update := bson.M{
		"$set": bson.M{
			"status":     string(status),
			"updated_at": now(),
		},
		"$push": bson.M{
			"status_history": statusEntryModel{
				Status:    string(entry.Status),
				Timestamp: entry.Timestamp,
				Note:      entry.Note,
			},
		},
	}
	if trackingCode != "" {
		update["$set"].(bson.M)["tracking_code"] = trackingCode
	}

	res, err := s.mdb.NewUpdate((*orderModel)(nil)).
		Filter(bson.M{"_id": orderID.String()}).
		SetUpdate(update).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("storefront/mongo: update order status: %w", err)
	}
	if res.MatchedCount() == 0 {
		return storefront.ErrOrderNotFound
	}
	return nil
}

func (s *Store) CountOrders(ctx context.Context, opts order.CountOpts) (int64, error) {
	total, err := s.mdb.Collection(colOrders).CountDocuments(ctx, countFilter(opts))
	if err != nil {
		return 0, fmt.Errorf("storefront/mongo: count orders: %w", err)
	}
	return total, nil
}

func (s *Store) SumOrderTotals(ctx context.Context, opts order.CountOpts) (types.Money, error) {
	pipeline := bson.A{
		bson.M{"$match": countFilter(opts)},
		bson.M{"$group": bson.M{
			"_id":   "$currency",
			"total": bson.M{"$sum": "$total_cents"},
		}},
	}

	cursor, err := s.mdb.Collection(colOrders).Aggregate(ctx, pipeline)
	if err != nil {
		return types.Money{}, fmt.Errorf("storefront/mongo: sum order totals: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Currency string `bson:"_id"`
		Total    int64  `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return types.Money{}, fmt.Errorf("storefront/mongo: sum decode: %w", err)
	}

	if len(rows) == 0 {
		return types.BRL(0), nil
	}
	return types.Money{Amount: rows[0].Total, Currency: rows[0].Currency}, nil
}

func (s *Store) CountOrdersByStatus(ctx context.Context) (map[order.Status]int64, error) {
	pipeline := bson.A{
		bson.M{"$group": bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}},
	}

	cursor, err := s.mdb.Collection(colOrders).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("storefront/mongo: count by status: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("storefront/mongo: count by status decode: %w", err)
	}

	result := make(map[order.Status]int64, len(rows))
	for _, r := range rows {
		result[order.Status(r.Status)] = r.Count
	}
	return result, nil
}

// NextOrderSequence atomically increments the per-period counter via
// findOneAndUpdate with upsert, so concurrent checkouts never collide.
func (s *Store) NextOrderSequence(ctx context.Context, year int, month time.Month) (int64, error) {
	key := fmt.Sprintf("%02d%02d", year%100, int(month))

	var doc struct {
		Value int64 `bson:"value"`
	}
	err := s.mdb.Collection(colSequences).FindOneAndUpdate(
		ctx,
		bson.M{"_id": key},
		bson.M{"$inc": bson.M{"value": 1}},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("storefront/mongo: next order sequence: %w", err)
	}
	return doc.Value, nil
}

// ==================== Settings Store ====================

func (s *Store) GetSettings(ctx context.Context) (*settings.Settings, error) {
	var m settingsModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": settingsDocID}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			// First access seeds the defaults
			def := settings.Defaults()
			if err := s.UpdateSettings(ctx, def); err != nil {
				return nil, err
			}
			return def, nil
		}
		return nil, fmt.Errorf("storefront/mongo: get settings: %w", err)
	}
	return fromSettingsModel(&m), nil
}

func (s *Store) UpdateSettings(ctx context.Context, cfg *settings.Settings) error {
	m := toSettingsModel(cfg)
	m.UpdatedAt = now()

	_, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": settingsDocID}).
		SetUpdate(bson.M{"$set": m}).
		Upsert().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("storefront/mongo: update settings: %w", err)
	}
	return nil
}

// ==================== Helpers ====================

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

func productFilter(opts catalog.ListOpts) bson.M {
	filter := bson.M{}
	if !opts.IncludeInactive {
		filter["is_active"] = true
	}
	if opts.Category != "" {
		filter["category"] = string(opts.Category)
	}
	if opts.Subcategory != "" {
		filter["subcategory"] = opts.Subcategory
	}
	if opts.MinPrice.IsPositive() || opts.MaxPrice.IsPositive() {
		price := bson.M{}
		if opts.MinPrice.IsPositive() {
			price["$gte"] = opts.MinPrice.Amount
		}
		if opts.MaxPrice.IsPositive() {
			price["$lte"] = opts.MaxPrice.Amount
		}
		filter["price_cents"] = price
	}
	if len(opts.Sizes) > 0 {
		filter["sizes"] = bson.M{"$in": opts.Sizes}
	}
	if len(opts.ColorNames) > 0 {
		filter["colors.name"] = bson.M{"$in": opts.ColorNames}
	}
	if len(opts.Tags) > 0 {
		filter["tags"] = bson.M{"$in": opts.Tags}
	}
	if opts.Featured {
		filter["featured"] = true
	}
	if opts.Search != "" {
		regex := bson.M{"$regex": opts.Search, "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"description": regex},
			bson.M{"tags": regex},
		}
	}
	return filter
}

func productSort(field catalog.SortField) bson.D {
	switch field {
	case catalog.SortPriceAsc:
		return bson.D{{Key: "price_cents", Value: 1}}
	case catalog.SortPriceDesc:
		return bson.D{{Key: "price_cents", Value: -1}}
	case catalog.SortBestSell:
		return bson.D{{Key: "sold", Value: -1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}}
	}
}

func orderFilter(opts order.ListOpts) bson.M {
	filter := bson.M{}
	if opts.Status != "" {
		filter["status"] = string(opts.Status)
	}
	if created := timeRange(opts.Start, opts.End); len(created) > 0 {
		filter["created_at"] = created
	}
	if opts.Search != "" {
		regex := bson.M{"$regex": opts.Search, "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"number": regex},
			bson.M{"customer.name": regex},
			bson.M{"customer.email": regex},
		}
	}
	return filter
}

func countFilter(opts order.CountOpts) bson.M {
	filter := bson.M{}
	if opts.Status != "" {
		filter["status"] = string(opts.Status)
	}
	if opts.ExcludeStatus != "" {
		filter["status"] = bson.M{"$ne": string(opts.ExcludeStatus)}
	}
	if created := timeRange(opts.Start, opts.End); len(created) > 0 {
		filter["created_at"] = created
	}
	return filter
}

func timeRange(start, end time.Time) bson.M {
	rng := bson.M{}
	if !start.IsZero() {
		rng["$gte"] = start
	}
	if !end.IsZero() {
		rng["$lt"] = end
	}
	return rng
}

// migrationIndexes returns the index definitions for all storefront collections.
func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colProducts: {
			{
				Keys:    bson.D{{Key: "slug", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "is_active", Value: 1}}},
			{Keys: bson.D{{Key: "featured", Value: 1}, {Key: "is_active", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "sold", Value: -1}}},
		},
		colPromotions: {
			{
				Keys:    bson.D{{Key: "code", Value: 1}},
				Options: options.Index().SetUnique(true).SetSparse(true),
			},
			{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "start_date", Value: 1}, {Key: "end_date", Value: 1}}},
			{Keys: bson.D{{Key: "show_on_homepage", Value: 1}}},
		},
		colOrders: {
			{
				Keys:    bson.D{{Key: "number", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "customer.email", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		colSettings:  {},
		colSequences: {},
	}
}
