package settings

import "context"

// Store persists the singleton store configuration.
type Store interface {
	// Get returns the current settings, seeding Defaults on first use.
	Get(ctx context.Context) (*Settings, error)

	// Update replaces the stored settings.
	Update(ctx context.Context, s *Settings) error
}
