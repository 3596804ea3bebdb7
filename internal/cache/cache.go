// Package cache is the document store facade: a thin, vendor-neutral wrapper
// over the managed cache primitives the application uses (key-value, set
// membership, dictionary fields). Lookups report hit/miss explicitly via the
// (value, found, error) shape so callers never inspect vendor response types;
// the SDK stays confined to the adapter in momento.go.
package cache

import (
	"context"
	"time"
)

// Client is the set of cache primitives backing the document store.
// A zero Ttl on write operations means "use the client's default TTL".
type Client interface {
	// Get returns the string value at key, or found=false on a miss.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set writes a string value with the given TTL.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// SetFetch returns all elements of the set at setName, or found=false on a miss.
	SetFetch(ctx context.Context, setName string) (elements []string, found bool, err error)
	// SetAddElement adds one element to a set, creating it if needed. The ttl
	// refreshes the lifetime of the whole set, not just the new element.
	SetAddElement(ctx context.Context, setName, element string, ttl time.Duration) error
	// SetRemoveElements removes the given elements from a set in one call.
	SetRemoveElements(ctx context.Context, setName string, elements []string) error

	// DictionarySetFields writes all fields of a dictionary with the given TTL.
	DictionarySetFields(ctx context.Context, dictionaryName string, fields map[string]string, ttl time.Duration) error
	// DictionaryFetch returns all fields of a dictionary, or found=false on a miss.
	DictionaryFetch(ctx context.Context, dictionaryName string) (fields map[string]string, found bool, err error)

	// Ping verifies connectivity to the cache backend.
	Ping(ctx context.Context) error
	// Close releases the underlying connection.
	Close()
}

// Connector opens a new, separately authenticated cache connection from a
// token string. The shared-view flow uses it so a recipient's access is
// bounded by the disposable token embedded in the share link, never by the
// server's own credentials.
type Connector interface {
	Connect(ctx context.Context, token string) (Client, error)
}
