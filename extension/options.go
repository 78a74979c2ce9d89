package extension

import (
	"time"

	storefront "github.com/lojix/storefront"
	"github.com/lojix/storefront/plugin"
	"github.com/lojix/storefront/store"
	"github.com/lojix/storefront/types"
)

// Option configures the Storefront Forge extension.
type Option func(*Extension)

// WithStore sets the store for the storefront engine.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithEngineOption passes a storefront.Option through to the underlying engine.
func WithEngineOption(opt storefront.Option) Option {
	return func(e *Extension) {
		e.engineOpts = append(e.engineOpts, opt)
	}
}

// WithPlugin registers a storefront plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.engineOpts = append(e.engineOpts, storefront.WithPlugin(p))
	}
}

// WithShippingPolicy sets the fallback shipping policy for checkout totals.
func WithShippingPolicy(p types.ShippingPolicy) Option {
	return func(e *Extension) {
		e.engineOpts = append(e.engineOpts, storefront.WithShippingPolicy(p))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithDisableRoutes prevents HTTP route registration.
func WithDisableRoutes() Option {
	return func(e *Extension) { e.config.DisableRoutes = true }
}

// WithDisableMigrate prevents auto-migration on start.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithBasePath sets the URL prefix for storefront routes.
func WithBasePath(path string) Option {
	return func(e *Extension) { e.config.BasePath = path }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}

// WithViewBatchSize sets the number of product views to buffer before flushing.
func WithViewBatchSize(size int) Option {
	return func(e *Extension) { e.config.ViewBatchSize = size }
}

// WithViewFlushInterval sets how frequently the view buffer is flushed.
func WithViewFlushInterval(d time.Duration) Option {
	return func(e *Extension) { e.config.ViewFlushInterval = d }
}
