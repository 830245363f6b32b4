package snippet

import (
	"sync"

	"github.com/bethropolis/pixide/internal/event"
	"github.com/bethropolis/pixide/internal/logger"
)

// Cache memoises rendered snippets by language and source.
type Cache struct {
	mu      sync.Mutex
	entries map[cacheKey]string
}

type cacheKey struct {
	lang string
	code string
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]string)}
}

// Get returns the cached output for code.
func (c *Cache) Get(lang, code string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out, ok := c.entries[cacheKey{lang, code}]
	return out, ok
}

// Put stores output for code.
func (c *Cache) Put(lang, code, output string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey{lang, code}] = output
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	n := len(c.entries)
	clear(c.entries)
	c.mu.Unlock()
	logger.DebugTagf("snippet", "Snippet cache: Cleared %d entries", n)
}

// GetOrRender returns the cached output or renders and caches it. Failed
// renders are not cached.
func (c *Cache) GetOrRender(lang, code string, r Renderer) (string, error) {
	if out, ok := c.Get(lang, code); ok {
		return out, nil
	}
	out, err := r.Render(code)
	if err != nil {
		return "", err
	}
	c.Put(lang, code, out)
	return out, nil
}

// Attach clears the cache whenever a new document is loaded.
func (c *Cache) Attach(mgr *event.Manager) {
	mgr.Subscribe(event.TypeDocumentReset, func(event.Event) bool {
		c.Clear()
		return false
	})
}
