package srcindex

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// fileCache is the concurrency-safe backing store for Index.Load.
// Reads are blocking file I/O, guarded by a prior existence check
// upstream, so the hot path is the cache hit. Concurrent loads of the
// same path are single-flighted so that two queries sharing a Session
// never pay for the same parse twice, using
// golang.org/x/sync/singleflight instead of a blanket mutex.
type fileCache struct {
	mu      sync.RWMutex
	entries map[string]*IndexedSource
	group   singleflight.Group
}

func newFileCache() *fileCache {
	return &fileCache{entries: make(map[string]*IndexedSource)}
}

func (c *fileCache) getOrLoad(file string, load func() *IndexedSource) *IndexedSource {
	c.mu.RLock()
	if s, ok := c.entries[file]; ok {
		c.mu.RUnlock()
		return s
	}
	c.mu.RUnlock()

	v, _, _ := c.group.Do(file, func() (any, error) {
		c.mu.RLock()
		if s, ok := c.entries[file]; ok {
			c.mu.RUnlock()
			return s, nil
		}
		c.mu.RUnlock()

		s := load()
		c.mu.Lock()
		c.entries[file] = s
		c.mu.Unlock()
		return s, nil
	})
	return v.(*IndexedSource)
}

func (c *fileCache) invalidate(file string) {
	c.mu.Lock()
	delete(c.entries, file)
	c.mu.Unlock()
}
