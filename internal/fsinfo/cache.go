// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package fsinfo

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of memoised verdicts.
const DefaultCacheSize = 4096

// CachedChecker memoises another checker's verdicts. One instance serves a
// single extraction; sources shared by many modules are checked once.
type CachedChecker struct {
	next  Checker
	cache *lru.Cache[string, bool]

	hits   int
	misses int
}

var _ Checker = (*CachedChecker)(nil)

// NewCachedChecker wraps next with an LRU of the given size. A size of zero
// or less selects DefaultCacheSize.
func NewCachedChecker(next Checker, size int) (*CachedChecker, error) {
	if next == nil {
		return nil, fmt.Errorf("cached checker: nil delegate")
	}
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[string, bool](size)
	if err != nil {
		return nil, fmt.Errorf("creating stat cache: %w", err)
	}
	return &CachedChecker{next: next, cache: c}, nil
}

// IsRegularFile returns the cached verdict for path, consulting the
// delegate on a miss.
func (c *CachedChecker) IsRegularFile(path string) bool {
	if v, ok := c.cache.Get(path); ok {
		c.hits++
		return v
	}
	c.misses++
	v := c.next.IsRegularFile(path)
	c.cache.Add(path, v)
	return v
}

// Stats returns the number of cache hits and misses so far.
func (c *CachedChecker) Stats() (hits, misses int) {
	return c.hits, c.misses
}
