/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package cache

import (
	"container/list"
	"strings"
	"sync"
	"time"

	"github.com/asgardeo/eligibility/internal/system/log"
)

// inMemoryCache is a bounded map with TTL expiry and LRU or FIFO eviction.
type inMemoryCache[T any] struct {
	name           string
	entries        map[CacheKey]*list.Element
	order          *list.List
	mu             sync.Mutex
	size           int
	ttl            time.Duration
	evictionPolicy evictionPolicy
	hitCount       int64
	missCount      int64
	evictCount     int64
	now            func() time.Time
}

// newInMemoryCache creates a new in-memory cache.
func newInMemoryCache[T any](name string, size int, ttl time.Duration, policy evictionPolicy) *inMemoryCache[T] {
	if size <= 0 {
		size = defaultCacheSize
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL * time.Second
	}

	log.GetLogger().Debug("Initializing in-memory cache", log.String("name", name),
		log.String("evictionPolicy", string(policy)), log.Int("size", size), log.Duration("ttl", ttl))

	return &inMemoryCache[T]{
		name:           name,
		entries:        make(map[CacheKey]*list.Element),
		order:          list.New(),
		size:           size,
		ttl:            ttl,
		evictionPolicy: policy,
		now:            time.Now,
	}
}

func (c *inMemoryCache[T]) set(key CacheKey, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiry := c.now().Add(c.ttl)
	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*cacheEntry[T])
		entry.value = value
		entry.expiryTime = expiry
		if c.evictionPolicy == evictionPolicyLRU {
			c.order.MoveToFront(elem)
		}
		return
	}

	c.entries[key] = c.order.PushFront(&cacheEntry[T]{key: key, value: value, expiryTime: expiry})
	for len(c.entries) > c.size {
		c.removeElement(c.order.Back())
		c.evictCount++
	}
}

func (c *inMemoryCache[T]) get(key CacheKey) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, ok := c.entries[key]
	if !ok {
		c.missCount++
		return zero, false
	}

	entry := elem.Value.(*cacheEntry[T])
	if c.now().After(entry.expiryTime) {
		c.removeElement(elem)
		c.missCount++
		return zero, false
	}

	if c.evictionPolicy == evictionPolicyLRU {
		c.order.MoveToFront(elem)
	}
	c.hitCount++
	return entry.value, true
}

func (c *inMemoryCache[T]) delete(key CacheKey) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.removeElement(elem)
	}
}

// deletePrefix removes every entry whose key starts with prefix and returns how many were removed.
func (c *inMemoryCache[T]) deletePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, elem := range c.entries {
		if strings.HasPrefix(key.Key, prefix) {
			c.removeElement(elem)
			removed++
		}
	}
	return removed
}

func (c *inMemoryCache[T]) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[CacheKey]*list.Element)
	c.order.Init()
	c.hitCount, c.missCount, c.evictCount = 0, 0, 0
}

// cleanupExpired removes expired entries and returns how many were removed.
func (c *inMemoryCache[T]) cleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	cleaned := 0
	for _, elem := range c.entries {
		if now.After(elem.Value.(*cacheEntry[T]).expiryTime) {
			c.removeElement(elem)
			cleaned++
		}
	}
	return cleaned
}

func (c *inMemoryCache[T]) stats() CacheStat {
	c.mu.Lock()
	defer c.mu.Unlock()

	return CacheStat{
		Enabled:    true,
		Size:       len(c.entries),
		MaxSize:    c.size,
		HitCount:   c.hitCount,
		MissCount:  c.missCount,
		EvictCount: c.evictCount,
	}
}

// removeElement must be called with the lock held.
func (c *inMemoryCache[T]) removeElement(elem *list.Element) {
	if elem == nil {
		return
	}
	entry := elem.Value.(*cacheEntry[T])
	delete(c.entries, entry.key)
	c.order.Remove(elem)
}
