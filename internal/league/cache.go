package league

import "sync/atomic"

// Cache holds the current snapshot behind a single atomic pointer.
// Readers always see either the previous snapshot or the new one in full;
// a refresh can never expose a half-replaced mix of fields.
type Cache struct {
	current atomic.Pointer[Snapshot]
}

// NewCache returns a cache primed with an empty snapshot so the API has
// something to serve before the first scrape completes.
func NewCache() *Cache {
	c := &Cache{}
	c.current.Store(NewSnapshot())
	return c
}

// Snapshot returns the current snapshot. The returned value must be
// treated as immutable.
func (c *Cache) Snapshot() *Snapshot {
	return c.current.Load()
}

// Replace swaps in a new snapshot wholesale. Nil snapshots are ignored.
func (c *Cache) Replace(s *Snapshot) {
	if s == nil {
		return
	}
	c.current.Store(s)
}
