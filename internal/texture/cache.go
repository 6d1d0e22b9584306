package texture

import (
	"sync"

	"cg-rasterizer/internal/logging"
	"cg-rasterizer/internal/pixel"
)

// Resolver resolves a texture name to a decoded buffer, or nil.
type Resolver interface {
	Resolve(texName string) *pixel.Buffer
}

// Cache is a concurrency-safe texture cache. Cached buffers are shared and
// must be treated as read-only.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
}

type cacheEntry struct {
	buf *pixel.Buffer // nil if the load failed; the failure is not retried
}

// NewCache creates a new texture cache backed by the given index.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
	}
}

// Resolve loads and caches a texture by name. Returns nil if not found.
func (c *Cache) Resolve(texName string) *pixel.Buffer {
	path, ok := c.index.ResolvePath(texName)
	if !ok {
		return nil
	}
	return c.load(path)
}

// ResolveFile loads and caches the texture at an explicit path.
func (c *Cache) ResolveFile(path string) *pixel.Buffer {
	return c.load(path)
}

func (c *Cache) load(path string) *pixel.Buffer {
	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.buf
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	buf, err := Load(path)
	if err != nil {
		logging.Logger().Error("texture load failed", "path", path, "err", err)
	}

	// Write lock with double-check
	c.mu.Lock()
	if entry, exists := c.items[path]; exists {
		c.mu.Unlock()
		return entry.buf
	}
	c.items[path] = &cacheEntry{buf: buf}
	c.mu.Unlock()

	return buf
}

// Len returns the number of cached paths, including failed loads.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
