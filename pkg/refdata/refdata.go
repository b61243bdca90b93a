// Package refdata provides lazy, memoized access to reference-data
// catalogs: external, read-only enumerations of valid field values
// (yield types, effects, terrain types, ...).
//
// Catalogs are fetched on first use and memoized for the lifetime of the
// editing session. A catalog that fails to load is not cached as empty;
// the next request retries the fetch. Concurrent requests for the same
// uncached catalog are coalesced into a single fetch.
//
// An optional shared [cache.Cache] layer (file or Redis) persists fetched
// catalogs across sessions and server instances.
package refdata

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Phlair/civ7-modding-tools-sub000/pkg/cache"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/errors"
)

// Entry is a single catalog value. Only ID is load-bearing for
// validation; Name and Category are presentation metadata.
type Entry struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Category string `json:"category,omitempty"`
}

// Catalog is an ordered list of valid values for one field category.
type Catalog []Entry

// Contains reports whether the catalog has an entry with the given id.
func (c Catalog) Contains(id string) bool {
	for _, e := range c {
		if e.ID == id {
			return true
		}
	}
	return false
}

// IDs returns the ids of all catalog entries in order.
func (c Catalog) IDs() []string {
	out := make([]string, len(c))
	for i, e := range c {
		out[i] = e.ID
	}
	return out
}

// Source fetches catalogs from an external system of record.
type Source interface {
	// FetchCatalog retrieves the catalog with the given name.
	FetchCatalog(ctx context.Context, name string) (Catalog, error)

	// CatalogNames lists the catalog names the source knows about.
	CatalogNames(ctx context.Context) ([]string, error)
}

// Store memoizes catalogs per session and coalesces concurrent fetches.
// It is safe for concurrent use.
type Store struct {
	source Source
	shared cache.Cache   // optional cross-session layer, may be nil
	ttl    time.Duration // TTL for shared-cache entries

	mu    sync.RWMutex
	memo  map[string]Catalog
	group singleflight.Group
}

// Option configures a Store.
type Option func(*Store)

// WithSharedCache adds a write-through shared cache layer. Fetched
// catalogs are stored under "refdata:<name>" with the given TTL so later
// sessions (or other server instances) skip the fetch.
func WithSharedCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Store) {
		s.shared = c
		s.ttl = ttl
	}
}

// NewStore creates a catalog store backed by source.
func NewStore(source Source, opts ...Option) *Store {
	s := &Store{
		source: source,
		memo:   map[string]Catalog{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the named catalog, fetching it on first use. Subsequent
// calls return the memoized copy without touching the source. N
// concurrent calls for the same uncached name issue exactly one fetch.
// A failed fetch is not memoized; the next call retries.
func (s *Store) Get(ctx context.Context, name string) (Catalog, error) {
	s.mu.RLock()
	c, ok := s.memo[name]
	s.mu.RUnlock()
	if ok {
		return c, nil
	}

	v, err, _ := s.group.Do(name, func() (any, error) {
		// Re-check under the group: a previous flight may have filled
		// the memo between the RUnlock above and now.
		s.mu.RLock()
		c, ok := s.memo[name]
		s.mu.RUnlock()
		if ok {
			return c, nil
		}

		c, err := s.load(ctx, name)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.memo[name] = c
		s.mu.Unlock()
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Catalog), nil
}

// load consults the shared cache before falling back to the source.
func (s *Store) load(ctx context.Context, name string) (Catalog, error) {
	key := "refdata:" + name

	if s.shared != nil {
		if data, ok, err := s.shared.Get(ctx, key); err == nil && ok {
			var c Catalog
			if json.Unmarshal(data, &c) == nil {
				return c, nil
			}
			// Corrupt entry: drop it and refetch.
			_ = s.shared.Delete(ctx, key)
		}
	}

	c, err := s.source.FetchCatalog(ctx, name)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch catalog %q", name)
	}

	if s.shared != nil {
		if data, err := json.Marshal(c); err == nil {
			_ = s.shared.Set(ctx, key, data, s.ttl)
		}
	}
	return c, nil
}

// Names lists the catalog names known to the source.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	return s.source.CatalogNames(ctx)
}

// Invalidate drops the memoized copy of a catalog (and its shared-cache
// entry, when configured) so the next Get refetches it.
func (s *Store) Invalidate(ctx context.Context, name string) {
	s.mu.Lock()
	delete(s.memo, name)
	s.mu.Unlock()
	if s.shared != nil {
		_ = s.shared.Delete(ctx, "refdata:"+name)
	}
}
