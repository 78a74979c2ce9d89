package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/pgdriver"
	"github.com/xraph/grove/migrate"

	storefront "github.com/lojix/storefront"
	"github.com/lojix/storefront/catalog"
	"github.com/lojix/storefront/id"
	"github.com/lojix/storefront/order"
	"github.com/lojix/storefront/promotion"
	"github.com/lojix/storefront/settings"
	storefrontstore "github.com/lojix/storefront/store"
	"github.com/lojix/storefront/types"
)

// compile-time interface check
var _ storefrontstore.Store = (*Store)(nil)

// Store implements store.Store using PostgreSQL via Grove ORM.
type Store struct {
	db *grove.DB
	pg *pgdriver.PgDB
}

// New creates a new PostgreSQL store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db: db,
		pg: pgdriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the required tables and indexes using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.pg)
	if err != nil {
		return fmt.Errorf("storefront/postgres: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("storefront/postgres: migration failed: %w", err)
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
	_, err := s.pg.NewInsert(m).Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return storefront.ErrDuplicateSlug
		}
		return err
	}
	return nil
}

func (s *Store) GetProduct(ctx context.Context, productID id.ProductID) (*catalog.Product, error) {
	m := new(productModel)
	err := s.pg.NewSelect(m).
		Where("id = $1", productID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, storefront.ErrProductNotFound
		}
		return nil, err
	}
	return fromProductModel(m)
}

func (s *Store) GetProductBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	m := new(productModel)
	err := s.pg.NewSelect(m).
		Where("slug = $1", slug).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, storefront.ErrProductNotFound
		}
		return nil, err
	}
	return fromProductModel(m)
}

func (s *Store) GetProducts(ctx context.Context, productIDs []id.ProductID) ([]*catalog.Product, error) {
	result := make([]*catalog.Product, 0, len(productIDs))
	for _, pid := range productIDs {
		p, err := s.GetProduct(ctx, pid)
		if err != nil {
			if errors.Is(err, storefront.ErrProductNotFound) {
				continue
			}
			return nil, err
		}
		result = append(result, p)
	}
	return result, nil
}

func (s *Store) ListProducts(ctx context.Context, opts catalog.ListOpts) ([]*catalog.Product, int64, error) {
	conds, args := productConds(opts)

	var total int64
	countSQL := "SELECT COUNT(*) FROM storefront_products" + whereClause(conds)
	if err := s.pg.NewRaw(countSQL, args...).Scan(ctx, &total); err != nil {
		return nil, 0, err
	}

	var models []productModel
	q := s.pg.NewSelect(&models)
	for _, c := range conds {
		q = q.Where(c.expr, c.args...)
	}
	q = q.OrderExpr(productOrder(opts.Sort))
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, 0, err
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
	var result []catalog.CategoryCount
	for _, cat := range catalog.Categories() {
		var count int64
		err := s.pg.NewRaw(`
			SELECT COUNT(*) FROM storefront_products
			WHERE is_active = TRUE AND category = $1
		`, string(cat)).Scan(ctx, &count)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			result = append(result, catalog.CategoryCount{Category: cat, Count: count})
		}
	}
	return result, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p *catalog.Product) error {
	m := toProductModel(p)
	m.UpdatedAt = now()
	res, err := s.pg.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return storefront.ErrDuplicateSlug
		}
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return storefront.ErrProductNotFound
	}
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, productID id.ProductID) error {
	res, err := s.pg.NewDelete((*productModel)(nil)).
		Where("id = $1", productID.String()).
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return storefront.ErrProductNotFound
	}
	return nil
}

func (s *Store) AdjustStock(ctx context.Context, productID id.ProductID, stockDelta, soldDelta int64) error {
	res, err := s.pg.NewUpdate((*productModel)(nil)).
		Set("stock = stock + $1", stockDelta).
		Set("sold = sold + $2", soldDelta).
		Set("updated_at = $3", now()).
		Where("id = $4", productID.String()).
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return storefront.ErrProductNotFound
	}
	return nil
}

func (s *Store) AddViews(ctx context.Context, counts map[id.ProductID]int64) error {
	t := now()
	for pid, n := range counts {
		_, err := s.pg.NewUpdate((*productModel)(nil)).
			Set("views = views + $1", n).
			Set("updated_at = $2", t).
			Where("id = $3", pid.String()).
			Exec(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}

// ==================== Promotion Store ====================

func (s *Store) CreatePromotion(ctx context.Context, p *promotion.Promotion) error {
	m := toPromotionModel(p)
	_, err := s.pg.NewInsert(m).Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return storefront.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (s *Store) GetPromotion(ctx context.Context, promoID id.PromotionID) (*promotion.Promotion, error) {
	m := new(promotionModel)
	err := s.pg.NewSelect(m).
		Where("id = $1", promoID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, storefront.ErrPromotionNotFound
		}
		return nil, err
	}
	return fromPromotionModel(m)
}

func (s *Store) GetPromotionByCode(ctx context.Context, code string) (*promotion.Promotion, error) {
	m := new(promotionModel)
	err := s.pg.NewSelect(m).
		Where("code = $1", code).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, storefront.ErrPromotionNotFound
		}
		return nil, err
	}
	return fromPromotionModel(m)
}

func (s *Store) ListPromotions(ctx context.Context, opts promotion.ListOpts) ([]*promotion.Promotion, error) {
	var models []promotionModel
	q := s.pg.NewSelect(&models)

	argIdx := 0
	if opts.ActiveOnly {
		t := now()
		argIdx++
		q = q.Where(fmt.Sprintf("is_active = TRUE AND start_date <= $%d", argIdx), t)
		argIdx++
		q = q.Where(fmt.Sprintf("end_date >= $%d", argIdx), t)
		q = q.Where("(usage_limit = 0 OR used_count < usage_limit)")
	}
	if opts.HomepageOnly {
		q = q.Where("show_on_homepage = TRUE")
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("created_at DESC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
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
	res, err := s.pg.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return storefront.ErrPromotionNotFound
	}
	return nil
}

func (s *Store) DeletePromotion(ctx context.Context, promoID id.PromotionID) error {
	res, err := s.pg.NewDelete((*promotionModel)(nil)).
		Where("id = $1", promoID.String()).
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return storefront.ErrPromotionNotFound
	}
	return nil
}

func (s *Store) RedeemPromotion(ctx context.Context, promoID id.PromotionID) error {
	res, err := s.pg.NewUpdate((*promotionModel)(nil)).
		Set("used_count = used_count + 1").
		Set("updated_at = $1", now()).
		Where("id = $2", promoID.String()).
		Where("(usage_limit = 0 OR used_count < usage_limit)").
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Either the promotion is gone or the cap is reached.
		if _, err := s.GetPromotion(ctx, promoID); err != nil {
			return err
		}
		return storefront.ErrPromotionExhausted
	}
	return nil
}

// ReleasePromotion undoes one redemption after a failed checkout. The
// used_count > 0 guard keeps the counter from going negative.
func (s *Store) ReleasePromotion(ctx context.Context, promoID id.PromotionID) error {
	res, err := s.pg.NewUpdate((*promotionModel)(nil)).
		Set("used_count = used_count - 1").
		Set("updated_at = $1", now()).
		Where("id = $2", promoID.String()).
		Where("used_count > 0").
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		if _, err := s.GetPromotion(ctx, promoID); err != nil {
			return err
		}
	}
	return nil
}

// ==================== Order Store ====================

func (s *Store) CreateOrder(ctx context.Context, o *order.Order) error {
	m := toOrderModel(o)
	_, err := s.pg.NewInsert(m).Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return storefront.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (s *Store) GetOrder(ctx context.Context, orderID id.OrderID) (*order.Order, error) {
	m := new(orderModel)
	err := s.pg.NewSelect(m).
		Where("id = $1", orderID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, storefront.ErrOrderNotFound
		}
		return nil, err
	}
	return fromOrderModel(m)
}

func (s *Store) GetOrderByNumber(ctx context.Context, number string) (*order.Order, error) {
	m := new(orderModel)
	err := s.pg.NewSelect(m).
		Where("number = $1", number).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, storefront.ErrOrderNotFound
		}
		return nil, err
	}
	return fromOrderModel(m)
}

func (s *Store) ListOrders(ctx context.Context, opts order.ListOpts) ([]*order.Order, int64, error) {
	conds, args := orderConds(opts)

	var total int64
	countSQL := "SELECT COUNT(*) FROM storefront_orders" + whereClause(conds)
	if err := s.pg.NewRaw(countSQL, args...).Scan(ctx, &total); err != nil {
		return nil, 0, err
	}

	var models []orderModel
	q := s.pg.NewSelect(&models)
	for _, c := range conds {
		q = q.Where(c.expr, c.args...)
	}
	q = q.OrderExpr("created_at DESC")
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, 0, err
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
	entryJSON, _ := json.Marshal(entry) //nolint:errcheck // best-effort

	q := s.pg.NewUpdate((*orderModel)(nil)).
		Set("status = $1", string(status)).
		Set("status_history = status_history || $2::jsonb", string(entryJSON)).
		Set("updated_at = $3", now())

	argIdx := 3
	if trackingCode != "" {
		argIdx++
		q = q.Set(fmt.Sprintf("tracking_code = $%d", argIdx), trackingCode)
	}
	argIdx++
	q = q.Where(fmt.Sprintf("id = $%d", argIdx), orderID.String())

	res, err := q.Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return storefront.ErrOrderNotFound
	}
	return nil
}

func (s *Store) CountOrders(ctx context.Context, opts order.CountOpts) (int64, error) {
	conds, args := countConds(opts)

	var total int64
	countSQL := "SELECT COUNT(*) FROM storefront_orders" + whereClause(conds)
	if err := s.pg.NewRaw(countSQL, args...).Scan(ctx, &total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) SumOrderTotals(ctx context.Context, opts order.CountOpts) (types.Money, error) {
	conds, args := countConds(opts)

	var cents int64
	sumSQL := "SELECT COALESCE(SUM(total_cents), 0) FROM storefront_orders" + whereClause(conds)
	if err := s.pg.NewRaw(sumSQL, args...).Scan(ctx, &cents); err != nil {
		return types.Money{}, err
	}
	return types.BRL(cents), nil
}

func (s *Store) CountOrdersByStatus(ctx context.Context) (map[order.Status]int64, error) {
	result := make(map[order.Status]int64)
	for _, st := range order.Statuses() {
		var count int64
		err := s.pg.NewRaw(`
			SELECT COUNT(*) FROM storefront_orders WHERE status = $1
		`, string(st)).Scan(ctx, &count)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			result[st] = count
		}
	}
	return result, nil
}

func (s *Store) NextOrderSequence(ctx context.Context, year int, month time.Month) (int64, error) {
	key := fmt.Sprintf("%02d%02d", year%100, int(month))

	var seq int64
	err := s.pg.NewRaw(`
		INSERT INTO storefront_sequences (id, value) VALUES ($1, 1)
		ON CONFLICT (id) DO UPDATE SET value = storefront_sequences.value + 1
		RETURNING value
	`, key).Scan(ctx, &seq)
	if err != nil {
		return 0, err
	}
	return seq, nil
}

// ==================== Settings Store ====================

func (s *Store) GetSettings(ctx context.Context) (*settings.Settings, error) {
	m := new(settingsModel)
	err := s.pg.NewSelect(m).
		Where("id = $1", settingsDocID).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			// First read seeds the defaults.
			defaults := settings.Defaults()
			if err := s.UpdateSettings(ctx, defaults); err != nil {
				return nil, err
			}
			return defaults, nil
		}
		return nil, err
	}
	return fromSettingsModel(m)
}

func (s *Store) UpdateSettings(ctx context.Context, cfg *settings.Settings) error {
	t := now()
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = t
	}
	cfg.UpdatedAt = t

	m := toSettingsModel(cfg)
	_, err := s.pg.NewInsert(m).
		OnConflict("(id) DO UPDATE").
		Set("payload = EXCLUDED.payload").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

// ==================== Helpers ====================

// cond is one WHERE fragment with its bound arguments, shared between the
// model select and the raw COUNT/SUM queries.
type cond struct {
	expr string
	args []any
}

func whereClause(conds []cond) string {
	if len(conds) == 0 {
		return ""
	}
	exprs := make([]string, len(conds))
	for i, c := range conds {
		exprs[i] = c.expr
	}
	return " WHERE " + strings.Join(exprs, " AND ")
}

func productConds(opts catalog.ListOpts) ([]cond, []any) {
	var conds []cond
	var args []any
	argIdx := 0

	add := func(expr string, condArgs ...any) {
		conds = append(conds, cond{expr: expr, args: condArgs})
		args = append(args, condArgs...)
	}

	if !opts.IncludeInactive {
		add("is_active = TRUE")
	}
	if opts.Category != "" {
		argIdx++
		add(fmt.Sprintf("category = $%d", argIdx), string(opts.Category))
	}
	if opts.Subcategory != "" {
		argIdx++
		add(fmt.Sprintf("subcategory = $%d", argIdx), opts.Subcategory)
	}
	if opts.MinPrice.IsPositive() {
		argIdx++
		add(fmt.Sprintf("price_cents >= $%d", argIdx), opts.MinPrice.Amount)
	}
	if opts.MaxPrice.IsPositive() {
		argIdx++
		add(fmt.Sprintf("price_cents <= $%d", argIdx), opts.MaxPrice.Amount)
	}
	if opts.Featured {
		add("featured = TRUE")
	}
	if len(opts.Sizes) > 0 {
		expr, sizeArgs := jsonbAnyOf("sizes", opts.Sizes, &argIdx)
		add(expr, sizeArgs...)
	}
	if len(opts.Tags) > 0 {
		expr, tagArgs := jsonbAnyOf("tags", opts.Tags, &argIdx)
		add(expr, tagArgs...)
	}
	if len(opts.ColorNames) > 0 {
		exprs := make([]string, len(opts.ColorNames))
		colorArgs := make([]any, len(opts.ColorNames))
		for i, name := range opts.ColorNames {
			argIdx++
			exprs[i] = fmt.Sprintf("colors @> $%d::jsonb", argIdx)
			payload, _ := json.Marshal([]catalog.Color{{Name: name}}) //nolint:errcheck // best-effort
			colorArgs[i] = string(payload)
		}
		add("("+strings.Join(exprs, " OR ")+")", colorArgs...)
	}
	if opts.Search != "" {
		argIdx++
		pattern := "%" + opts.Search + "%"
		add(fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d OR tags::text ILIKE $%d)", argIdx, argIdx, argIdx), pattern)
	}
	return conds, args
}

// jsonbAnyOf builds a containment check matching rows whose jsonb string
// array holds any of the given values.
func jsonbAnyOf(column string, values []string, argIdx *int) (string, []any) {
	exprs := make([]string, len(values))
	args := make([]any, len(values))
	for i, v := range values {
		*argIdx++
		exprs[i] = fmt.Sprintf("%s @> $%d::jsonb", column, *argIdx)
		payload, _ := json.Marshal([]string{v}) //nolint:errcheck // best-effort
		args[i] = string(payload)
	}
	return "(" + strings.Join(exprs, " OR ") + ")", args
}

func productOrder(sort catalog.SortField) string {
	switch sort {
	case catalog.SortPriceAsc:
		return "price_cents ASC"
	case catalog.SortPriceDesc:
		return "price_cents DESC"
	case catalog.SortBestSell:
		return "sold DESC"
	default:
		return "created_at DESC"
	}
}

func orderConds(opts order.ListOpts) ([]cond, []any) {
	var conds []cond
	var args []any
	argIdx := 0

	add := func(expr string, condArgs ...any) {
		conds = append(conds, cond{expr: expr, args: condArgs})
		args = append(args, condArgs...)
	}

	if opts.Status != "" {
		argIdx++
		add(fmt.Sprintf("status = $%d", argIdx), string(opts.Status))
	}
	if !opts.Start.IsZero() {
		argIdx++
		add(fmt.Sprintf("created_at >= $%d", argIdx), opts.Start)
	}
	if !opts.End.IsZero() {
		argIdx++
		add(fmt.Sprintf("created_at < $%d", argIdx), opts.End)
	}
	if opts.Search != "" {
		argIdx++
		pattern := "%" + opts.Search + "%"
		add(fmt.Sprintf("(number ILIKE $%d OR customer->>'name' ILIKE $%d OR customer->>'email' ILIKE $%d)", argIdx, argIdx, argIdx), pattern)
	}
	return conds, args
}

func countConds(opts order.CountOpts) ([]cond, []any) {
	var conds []cond
	var args []any
	argIdx := 0

	add := func(expr string, condArgs ...any) {
		conds = append(conds, cond{expr: expr, args: condArgs})
		args = append(args, condArgs...)
	}

	if opts.Status != "" {
		argIdx++
		add(fmt.Sprintf("status = $%d", argIdx), string(opts.Status))
	}
	if opts.ExcludeStatus != "" {
		argIdx++
		add(fmt.Sprintf("status != $%d", argIdx), string(opts.ExcludeStatus))
	}
	if !opts.Start.IsZero() {
		argIdx++
		add(fmt.Sprintf("created_at >= $%d", argIdx), opts.Start)
	}
	if !opts.End.IsZero() {
		argIdx++
		add(fmt.Sprintf("created_at < $%d", argIdx), opts.End)
	}
	return conds, args
}

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isUniqueViolation detects a unique index conflict (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key value")
}
