// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

// Package cache provides a process-lifetime TTL cache keyed by logical
// request. The clock is injected so expiry is deterministic under test, and
// each client owns its own cache instance rather than sharing module-level
// state.
package cache

import (
	"sync"
	"time"
)

// Clock supplies the current time. Production code passes time.Now.
type Clock func() time.Time

// Entry is a cached value with its fetch time and time-to-live.
type Entry[T any] struct {
	Data      T
	FetchedAt time.Time
	TTL       time.Duration
}

// Cache is a TTL cache for values of type T.
type Cache[T any] struct {
	now Clock

	mu      sync.Mutex
	entries map[string]Entry[T]
}

// New creates a cache using the given clock. A nil clock defaults to
// time.Now.
func New[T any](now Clock) *Cache[T] {
	if now == nil {
		now = time.Now
	}
	return &Cache[T]{now: now, entries: make(map[string]Entry[T])}
}

// Get returns the cached value for key if present and not expired.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	if c.now().Sub(entry.FetchedAt) >= entry.TTL {
		delete(c.entries, key)
		var zero T
		return zero, false
	}
	return entry.Data, true
}

// Set stores a value under key with the given TTL.
func (c *Cache[T]) Set(key string, data T, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = Entry[T]{Data: data, FetchedAt: c.now(), TTL: ttl}
}

// Delete removes a single key.
func (c *Cache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear removes every entry.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Entry[T])
}
