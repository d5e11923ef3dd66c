package utils

import (
	"os"
	"sync"
	"time"
)

// fileStamp identifies one version of a file on disk
type fileStamp struct {
	modTime time.Time
	size    int64
}

func statFile(path string) (fileStamp, error) {
	info, err := os.Stat(path)
	if err != nil {
		return fileStamp{}, err
	}
	return fileStamp{modTime: info.ModTime(), size: info.Size()}, nil
}

type cacheEntry[V any] struct {
	value V
	stamp fileStamp
}

// Cache is a thread-safe map whose entries can be tied to the file they were
// computed from and dropped once that file changes
type Cache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]cacheEntry[V]
	hits    int
	misses  int
}

// NewCache creates an empty cache
func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{entries: make(map[K]cacheEntry[V])}
}

// Get returns the cached value for key
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	return entry.value, ok
}

// Set stores value without file tracking
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry[V]{value: value}
}

// GetWithFileValidation returns the cached value only while path is unchanged
// since SetWithFileInfo. A stale entry is evicted.
func (c *Cache[K, V]) GetWithFileValidation(key K, path string) (V, bool) {
	var zero V

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	current, err := statFile(path)
	if ok && err == nil && current.modTime.Equal(entry.stamp.modTime) && current.size == entry.stamp.size {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return entry.value, true
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.misses++
	if ok {
		delete(c.entries, key)
	}
	return zero, false
}

// SetWithFileInfo stores value together with the current state of path
func (c *Cache[K, V]) SetWithFileInfo(key K, value V, path string) error {
	stamp, err := statFile(path)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry[V]{value: value, stamp: stamp}
	return nil
}

// Delete removes key
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Clear removes every entry and resets statistics
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]cacheEntry[V])
	c.hits, c.misses = 0, 0
}

// Size returns the number of entries
func (c *Cache[K, V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// CacheStats reports cache effectiveness for file validated lookups
type CacheStats struct {
	Size   int
	Hits   int
	Misses int
}

// Stats returns the current statistics
func (c *Cache[K, V]) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return CacheStats{Size: len(c.entries), Hits: c.hits, Misses: c.misses}
}
