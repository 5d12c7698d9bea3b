package pokeapi

import (
	"encoding/json"
	"sync"
)

// Cache de-duplicates fetches of the same resource URL within one run.
// Both transport strategies key entries by the original (pre-wrapping)
// URL so they share one namespace. The memory governor purges it
// wholesale under pressure.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]json.RawMessage
}

// NewCache creates an empty response cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]json.RawMessage)}
}

// Get returns the cached body for url, if present.
func (c *Cache) Get(url string) (json.RawMessage, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	body, ok := c.entries[url]
	return body, ok
}

// Put stores the body for url, replacing any previous entry.
func (c *Cache) Put(url string, body json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[url] = body
}

// Len returns the number of cached responses.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Purge drops every cached response.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]json.RawMessage)
}
