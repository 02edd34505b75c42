package iconview

import (
	"image"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of rendered images kept by default.
const DefaultCacheSize = 500

// RenderCache is a bounded LRU of rendered images keyed by entry index.
//
// It holds images for one parameter set only: the owner calls InvalidateAll
// whenever the active render parameters or the icon source change, and
// Invalidate when a single entry changes.
type RenderCache struct {
	images   *lru.Cache[int, *image.NRGBA]
	capacity int
}

// NewRenderCache creates a cache holding up to capacity images.
// A non-positive capacity selects DefaultCacheSize.
func NewRenderCache(capacity int) *RenderCache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	// lru.New only fails for a non-positive size.
	images, _ := lru.New[int, *image.NRGBA](capacity)
	return &RenderCache{
		images:   images,
		capacity: capacity,
	}
}

// Get returns the cached image of entry i and marks it recently used.
func (c *RenderCache) Get(i int) (*image.NRGBA, bool) {
	return c.images.Get(i)
}

// Put stores the image of entry i, evicting the least recently used entry
// when the cache is full. Nil images are not stored.
func (c *RenderCache) Put(i int, img *image.NRGBA) {
	if img == nil {
		return
	}
	c.images.Add(i, img)
}

// Contains reports whether entry i is cached without touching its recency.
func (c *RenderCache) Contains(i int) bool {
	return c.images.Contains(i)
}

// Invalidate drops the image of entry i.
func (c *RenderCache) Invalidate(i int) {
	c.images.Remove(i)
}

// InvalidateAll empties the cache.
func (c *RenderCache) InvalidateAll() {
	c.images.Purge()
}

// Len returns the number of cached images.
func (c *RenderCache) Len() int {
	return c.images.Len()
}

// Cap returns the cache capacity.
func (c *RenderCache) Cap() int {
	return c.capacity
}
