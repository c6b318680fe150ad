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

import "sync"

// Ticket records the generation of a group observed before a loader reads its source.
type Ticket struct {
	group      string
	epoch      uint64
	generation uint64
}

// GuardedCache wraps a cache for cache-aside loading. A value read before an invalidation of its group
// is never stored after that invalidation. Invalidations and guarded stores are serialized.
type GuardedCache[T any] struct {
	cache       CacheInterface[T]
	mu          sync.Mutex
	epoch       uint64
	generations map[string]uint64
}

// NewGuardedCache wraps the given cache.
func NewGuardedCache[T any](c CacheInterface[T]) *GuardedCache[T] {
	return &GuardedCache[T]{
		cache:       c,
		generations: make(map[string]uint64),
	}
}

// Get retrieves a value from the cache.
func (g *GuardedCache[T]) Get(key CacheKey) (T, bool) {
	return g.cache.Get(key)
}

// Ticket returns the current generation of the group. Take it before reading the source.
func (g *GuardedCache[T]) Ticket(group string) Ticket {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Ticket{group: group, epoch: g.epoch, generation: g.generations[group]}
}

// SetIfCurrent stores the value only when the ticket's group has not been invalidated since the
// ticket was taken. It reports whether the value was stored.
func (g *GuardedCache[T]) SetIfCurrent(ticket Ticket, key CacheKey, value T) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if ticket.epoch != g.epoch || ticket.generation != g.generations[ticket.group] {
		return false
	}
	g.cache.Set(key, value)
	return true
}

// Invalidate advances the group's generation and removes the given keys.
func (g *GuardedCache[T]) Invalidate(group string, keys ...CacheKey) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.generations[group]++
	for _, key := range keys {
		g.cache.Delete(key)
	}
}

// InvalidatePrefix advances the group's generation and removes every key starting with prefix.
func (g *GuardedCache[T]) InvalidatePrefix(group, prefix string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.generations[group]++
	g.cache.DeleteByPrefix(prefix)
}

// InvalidateAll outdates every outstanding ticket and clears the cache.
func (g *GuardedCache[T]) InvalidateAll() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.epoch++
	g.cache.Clear()
}
