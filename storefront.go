package storefront

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lojix/storefront/id"
	"github.com/lojix/storefront/plugin"
	"github.com/lojix/storefront/settings"
	"github.com/lojix/storefront/store"
	"github.com/lojix/storefront/types"
)

// Storefront is the main e-commerce engine.
type Storefront struct {
	store   store.Store
	plugins *plugin.Registry
	logger  *slog.Logger

	// Background workers
	viewBuffer chan id.ProductID
	stopChan   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup

	// Configuration
	viewBatchSize     int
	viewFlushInterval time.Duration
	shipping          types.ShippingPolicy
}

// New creates a new Storefront instance.
func New(s store.Store, opts ...Option) *Storefront {
	sf := &Storefront{
		store:             s,
		plugins:           plugin.NewRegistry(),
		logger:            slog.Default(),
		viewBuffer:        make(chan id.ProductID, 10000),
		stopChan:          make(chan struct{}),
		viewBatchSize:     100,
		viewFlushInterval: 5 * time.Second,
		shipping:          types.DefaultShippingPolicy(),
	}

	for _, opt := range opts {
		opt(sf)
	}

	return sf
}

// Option configures a Storefront instance.
type Option func(*Storefront)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(sf *Storefront) {
		sf.logger = logger
		sf.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(sf *Storefront) {
		_ = sf.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithViewCounterConfig configures the product view counter.
func WithViewCounterConfig(batchSize int, flushInterval time.Duration) Option {
	return func(sf *Storefront) {
		sf.viewBatchSize = batchSize
		sf.viewFlushInterval = flushInterval
	}
}

// WithShippingPolicy sets the shipping policy used when the store settings
// cannot be loaded.
func WithShippingPolicy(p types.ShippingPolicy) Option {
	return func(sf *Storefront) {
		sf.shipping = p
	}
}

// Start begins background workers.
func (sf *Storefront) Start(ctx context.Context) error {
	// Migrate database
	if err := sf.store.Migrate(ctx); err != nil {
		return err
	}

	// Initialize plugins
	sf.plugins.EmitInit(ctx, sf)

	// Start view flush worker
	sf.wg.Add(1)
	go sf.viewFlushWorker(ctx)

	sf.logger.Info("storefront started",
		"view_batch_size", sf.viewBatchSize,
		"view_flush_interval", sf.viewFlushInterval,
	)

	return nil
}

// Stop shuts down the Storefront. Safe to call more than once; only the
// first call tears anything down.
func (sf *Storefront) Stop() error {
	var err error
	sf.stopOnce.Do(func() {
		close(sf.stopChan)
		sf.wg.Wait()

		ctx := context.Background()
		sf.plugins.EmitShutdown(ctx)

		err = sf.store.Close()
	})
	return err
}

// ──────────────────────────────────────────────────
// Product view counting
// ──────────────────────────────────────────────────

// RecordView records a product page view (non-blocking). Views are
// buffered and flushed to the store in batches.
func (sf *Storefront) RecordView(ctx context.Context, productID id.ProductID) error {
	select {
	case sf.viewBuffer <- productID:
		return nil
	default:
		return ErrViewBufferFull
	}
}

// viewFlushWorker aggregates buffered views and flushes them to the store.
func (sf *Storefront) viewFlushWorker(ctx context.Context) {
	defer sf.wg.Done()

	batch := make(map[id.ProductID]int64, sf.viewBatchSize)
	pending := 0
	ticker := time.NewTicker(sf.viewFlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sf.stopChan:
			// Final flush
			if pending > 0 {
				sf.flushViews(ctx, batch, pending)
			}
			return

		case productID := <-sf.viewBuffer:
			batch[productID]++
			pending++
			if pending >= sf.viewBatchSize {
				sf.flushViews(ctx, batch, pending)
				batch = make(map[id.ProductID]int64, sf.viewBatchSize)
				pending = 0
			}

		case <-ticker.C:
			if pending > 0 {
				sf.flushViews(ctx, batch, pending)
				batch = make(map[id.ProductID]int64, sf.viewBatchSize)
				pending = 0
			}
		}
	}
}

func (sf *Storefront) flushViews(ctx context.Context, batch map[id.ProductID]int64, views int) {
	start := time.Now()

	if err := sf.store.AddViews(ctx, batch); err != nil {
		sf.logger.Error("failed to flush view batch",
			"error", err,
			"products", len(batch),
			"views", views,
		)
		return
	}

	elapsed := time.Since(start)
	sf.plugins.EmitViewsFlushed(ctx, len(batch), int64(views), elapsed)

	sf.logger.Debug("flushed view batch",
		"products", len(batch),
		"views", views,
		"elapsed_ms", elapsed.Milliseconds(),
	)
}

// ──────────────────────────────────────────────────
// Store settings
// ──────────────────────────────────────────────────

// GetSettings returns the store configuration, seeding defaults when none
// has been saved yet.
func (sf *Storefront) GetSettings(ctx context.Context) (*settings.Settings, error) {
	return sf.store.GetSettings(ctx)
}

// UpdateSettings replaces the store configuration.
func (sf *Storefront) UpdateSettings(ctx context.Context, s *settings.Settings) error {
	if s.Name == "" {
		return ValidationError{Field: "name", Message: "store name is required"}
	}
	s.Touch()
	return sf.store.UpdateSettings(ctx, s)
}

// ShippingQuote returns the shipping cost for a cart subtotal under the
// active policy, for cart previews before checkout.
func (sf *Storefront) ShippingQuote(ctx context.Context, subtotal types.Money) types.Money {
	return sf.shippingPolicy(ctx).Quote(subtotal)
}

// shippingPolicy resolves the active shipping policy, preferring the store
// settings and falling back to the configured default.
func (sf *Storefront) shippingPolicy(ctx context.Context) types.ShippingPolicy {
	cfg, err := sf.store.GetSettings(ctx)
	if err != nil {
		sf.logger.Warn("falling back to default shipping policy", "error", err)
		return sf.shipping
	}
	return cfg.Shipping
}
