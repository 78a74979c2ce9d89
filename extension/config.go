package extension

import "time"

// Config holds the Storefront extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.storefront" or "storefront" keys).
type Config struct {
	// DisableRoutes prevents HTTP route registration.
	DisableRoutes bool `json:"disable_routes" mapstructure:"disable_routes" yaml:"disable_routes"`

	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// BasePath is the URL prefix for storefront routes (default: "/storefront").
	BasePath string `json:"base_path" mapstructure:"base_path" yaml:"base_path"`

	// ViewBatchSize is the number of product views to buffer before flushing
	// to the store (default: 100).
	ViewBatchSize int `json:"view_batch_size" mapstructure:"view_batch_size" yaml:"view_batch_size"`

	// ViewFlushInterval is how frequently the view buffer is flushed
	// even if the batch size has not been reached (default: 5s).
	ViewFlushInterval time.Duration `json:"view_flush_interval" mapstructure:"view_flush_interval" yaml:"view_flush_interval"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ViewBatchSize:     100,
		ViewFlushInterval: 5 * time.Second,
	}
}
