package mfa

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// AccountCache is a bounded, TTL-expiring associative store mapping
// username to the last resolved account. Implementations must support
// concurrent reads and writes; entries older than the TTL are never
// returned as hits.
type AccountCache interface {
	Get(username string) (*UserAccount, bool)
	Put(username string, account *UserAccount)
	Remove(username string) bool
	Len() int
}

// accountCache wraps an expirable LRU: capacity-bounded with
// expire-after-write semantics and least-recently-used eviction.
type accountCache struct {
	lru *expirable.LRU[string, *UserAccount]
}

var _ AccountCache = (*accountCache)(nil)

// NewAccountCache creates a cache holding at most size entries, each alive
// for ttl after its write. Non-positive size or ttl fall back to the
// defaults.
func NewAccountCache(size int, ttl time.Duration) AccountCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTLSeconds * time.Second
	}

	return &accountCache{
		lru: expirable.NewLRU[string, *UserAccount](size, nil, ttl),
	}
}

func (c *accountCache) Get(username string) (*UserAccount, bool) {
	return c.lru.Get(username)
}

func (c *accountCache) Put(username string, account *UserAccount) {
	c.lru.Add(username, account)
}

func (c *accountCache) Remove(username string) bool {
	return c.lru.Remove(username)
}

func (c *accountCache) Len() int {
	return c.lru.Len()
}
