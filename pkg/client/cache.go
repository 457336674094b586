package client

import (
	"strings"
	"sync"
	"time"
)

type cacheEntry struct {
	body      []byte
	fetchedAt time.Time
	lastUsed  time.Time
}

type inflightCall struct {
	done chan struct{}
	body []byte
	err  error
}

// queryCache keeps GET responses keyed by request path. Entries are fresh
// for freshFor (served without a request), then stale: still served
// immediately while one background refetch updates them. Entries unused
// for evictAfter are dropped. Concurrent identical misses collapse onto a
// single in-flight request.
type queryCache struct {
	mu         sync.Mutex
	entries    map[string]*cacheEntry
	inflight   map[string]*inflightCall
	freshFor   time.Duration
	evictAfter time.Duration
}

func newQueryCache(freshFor, evictAfter time.Duration) *queryCache {
	return &queryCache{
		entries:    make(map[string]*cacheEntry),
		inflight:   make(map[string]*inflightCall),
		freshFor:   freshFor,
		evictAfter: evictAfter,
	}
}

func (c *queryCache) Get(key string, fetch func() ([]byte, error)) ([]byte, error) {
	now := time.Now()

	c.mu.Lock()
	c.sweepLocked(now)

	if entry, ok := c.entries[key]; ok {
		entry.lastUsed = now
		body := entry.body

		if now.Sub(entry.fetchedAt) <= c.freshFor {
			c.mu.Unlock()
			return body, nil
		}

		// Stale: serve what we have, refresh once in the background.
		if _, busy := c.inflight[key]; !busy {
			call := &inflightCall{done: make(chan struct{})}
			c.inflight[key] = call
			go c.refresh(key, call, fetch)
		}
		c.mu.Unlock()
		return body, nil
	}

	if call, busy := c.inflight[key]; busy {
		c.mu.Unlock()
		<-call.done
		return call.body, call.err
	}

	call := &inflightCall{done: make(chan struct{})}
	c.inflight[key] = call
	c.mu.Unlock()

	c.refresh(key, call, fetch)
	return call.body, call.err
}

func (c *queryCache) refresh(key string, call *inflightCall, fetch func() ([]byte, error)) {
	body, err := fetch()

	c.mu.Lock()
	delete(c.inflight, key)
	if err == nil {
		now := time.Now()
		c.entries[key] = &cacheEntry{body: body, fetchedAt: now, lastUsed: now}
	}
	c.mu.Unlock()

	call.body = body
	call.err = err
	close(call.done)
}

// Set overwrites an entry directly, used after mutations whose response
// body is the item's current state.
func (c *queryCache) Set(key string, body []byte) {
	now := time.Now()

	c.mu.Lock()
	c.entries[key] = &cacheEntry{body: body, fetchedAt: now, lastUsed: now}
	c.mu.Unlock()
}

// Invalidate drops every entry whose key starts with any given prefix.
func (c *queryCache) Invalidate(prefixes ...string) {
	c.mu.Lock()
	for key := range c.entries {
		for _, prefix := range prefixes {
			if strings.HasPrefix(key, prefix) {
				delete(c.entries, key)
				break
			}
		}
	}
	c.mu.Unlock()
}

func (c *queryCache) sweepLocked(now time.Time) {
	for key, entry := range c.entries {
		if now.Sub(entry.lastUsed) > c.evictAfter {
			delete(c.entries, key)
		}
	}
}
