package storefront

import "github.com/lojix/storefront/id"

// ID is the primary identifier type for all storefront entities.
type ID = id.ID

// Prefix identifies the entity type encoded in a TypeID.
type Prefix = id.Prefix
