// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// DefaultCleanupInterval is how often the background sweep runs.
const DefaultCleanupInterval = time.Minute

// Entry represents a cached item with expiration
type Entry struct {
	Data      any
	ExpiresAt time.Time
}

// Stats tracks cache performance
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// Cache is a thread-safe TTL cache. A positive maxEntries bounds the number
// of entries; when full, the entry closest to expiry is evicted.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]Entry
	ttl        time.Duration
	maxEntries int
	stats      Stats

	stop     chan struct{}
	stopOnce sync.Once
}

// NewBounded creates a cache whose entries live for ttl. A maxEntries of zero
// leaves the cache unbounded. Call Close to stop the background sweep.
func NewBounded(ttl time.Duration, maxEntries int) *Cache {
	c := &Cache{
		entries:    make(map[string]Entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		stats:      Stats{LastCleanup: time.Now()},
		stop:       make(chan struct{}),
	}
	go c.cleanupLoop(DefaultCleanupInterval)
	return c
}

// Get returns the value stored under key if it exists and has not expired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.mu.Lock()
		c.stats.Misses++
		c.mu.Unlock()
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.stats.Misses++
		c.stats.Evictions++
		c.stats.TotalKeys = int64(len(c.entries))
		c.mu.Unlock()
		return nil, false
	}

	c.mu.Lock()
	c.stats.Hits++
	c.mu.Unlock()
	return entry.Data, true
}

// Set stores a value with the cache TTL.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictSoonestLocked()
	}
	c.entries[key] = Entry{Data: value, ExpiresAt: time.Now().Add(c.ttl)}
	c.stats.TotalKeys = int64(len(c.entries))
}

// evictSoonestLocked removes the entry closest to expiry. Caller holds mu.
func (c *Cache) evictSoonestLocked() {
	var (
		victim string
		soon   time.Time
		found  bool
	)
	for k, e := range c.entries {
		if !found || e.ExpiresAt.Before(soon) || (e.ExpiresAt.Equal(soon) && k < victim) {
			victim, soon, found = k, e.ExpiresAt, true
		}
	}
	if found {
		delete(c.entries, victim)
		c.stats.Evictions++
	}
}

// Clear removes all entries. Called when the dataset is replaced.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.Evictions += int64(len(c.entries))
	c.entries = make(map[string]Entry)
	c.stats.TotalKeys = 0
}

// GetStats returns a copy of the current statistics.
func (c *Cache) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// Close stops the background sweep. The cache stays usable.
func (c *Cache) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *Cache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stop:
			return
		}
	}
}

// cleanup removes all expired entries
func (c *Cache) cleanup() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			c.stats.Evictions++
		}
	}
	c.stats.TotalKeys = int64(len(c.entries))
	c.stats.LastCleanup = now
}

// GenerateKey creates a cache key from a prefix and the JSON encoding of params.
func GenerateKey(prefix string, params any) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", prefix, params)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", prefix, hash[:16])
}
