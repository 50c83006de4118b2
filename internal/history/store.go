// Package history keeps a bounded record of lookups served by the HTTP server.
package history

import (
	"github.com/google/uuid"
	"github.com/youmna-rabie/uid2gateway/internal/types"
)

// Store holds recent lookup entries.
type Store interface {
	// Save records an entry, evicting the oldest one if the store is full.
	Save(entry types.LookupEntry) error

	// Get returns the entry with the given ID, or ErrNotFound.
	Get(id uuid.UUID) (types.LookupEntry, error)

	// List returns up to limit entries newest-first, skipping offset.
	List(limit, offset int) ([]types.LookupEntry, error)

	Count() int
}
