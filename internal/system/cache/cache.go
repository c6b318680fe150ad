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

// Package cache provides named in-memory caches configured from deployment.yaml.
package cache

import (
	"time"

	"github.com/asgardeo/eligibility/internal/system/config"
	"github.com/asgardeo/eligibility/internal/system/log"
)

// CacheInterface defines the common interface for cache operations.
type CacheInterface[T any] interface {
	GetName() string
	Set(key CacheKey, value T)
	Get(key CacheKey) (T, bool)
	Delete(key CacheKey)
	DeleteByPrefix(prefix string)
	Clear()
	IsEnabled() bool
	GetStats() CacheStat
	CleanupExpired()
}

// Cache implements CacheInterface. A disabled cache accepts every call and stores nothing.
type Cache[T any] struct {
	name     string
	internal *inMemoryCache[T]
}

// newCache creates a cache from the server configuration.
func newCache[T any](cacheName string, cacheConfig config.CacheConfig) *Cache[T] {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "Cache"),
		log.String("cacheName", cacheName))

	if cacheConfig.Disabled {
		logger.Debug("Caching is disabled, returning empty cache")
		return &Cache[T]{name: cacheName}
	}

	property := getCacheProperty(cacheConfig, cacheName)
	if property.Disabled {
		logger.Debug("Individual cache is disabled, returning empty cache")
		return &Cache[T]{name: cacheName}
	}

	if cacheConfig.Type != "" && cacheConfig.Type != "inmemory" {
		logger.Warn("Unknown cache type, defaulting to in-memory cache", log.String("type", cacheConfig.Type))
	}

	size := property.Size
	if size <= 0 {
		size = cacheConfig.Size
	}
	ttl := property.TTL
	if ttl <= 0 {
		ttl = cacheConfig.TTL
	}

	return &Cache[T]{
		name: cacheName,
		internal: newInMemoryCache[T](cacheName, size, time.Duration(ttl)*time.Second,
			getEvictionPolicy(cacheConfig, property)),
	}
}

// GetName returns the name of the cache.
func (c *Cache[T]) GetName() string {
	return c.name
}

// Set stores a value in the cache.
func (c *Cache[T]) Set(key CacheKey, value T) {
	if c.IsEnabled() {
		c.internal.set(key, value)
	}
}

// Get retrieves a value from the cache.
func (c *Cache[T]) Get(key CacheKey) (T, bool) {
	if c.IsEnabled() {
		return c.internal.get(key)
	}
	var zero T
	return zero, false
}

// Delete removes a value from the cache.
func (c *Cache[T]) Delete(key CacheKey) {
	if c.IsEnabled() {
		c.internal.delete(key)
	}
}

// DeleteByPrefix removes every entry whose key starts with prefix.
func (c *Cache[T]) DeleteByPrefix(prefix string) {
	if !c.IsEnabled() {
		return
	}
	removed := c.internal.deletePrefix(prefix)
	log.GetLogger().Debug("Removed cache entries by prefix", log.String("cacheName", c.name),
		log.String("prefix", prefix), log.Int("count", removed))
}

// Clear removes all entries in the cache.
func (c *Cache[T]) Clear() {
	if c.IsEnabled() {
		c.internal.clear()
	}
}

// IsEnabled returns whether the cache is enabled.
func (c *Cache[T]) IsEnabled() bool {
	return c.internal != nil
}

// GetStats returns cache statistics.
func (c *Cache[T]) GetStats() CacheStat {
	if !c.IsEnabled() {
		return CacheStat{}
	}
	return c.internal.stats()
}

// CleanupExpired removes expired entries from the cache.
func (c *Cache[T]) CleanupExpired() {
	if !c.IsEnabled() {
		return
	}
	if cleaned := c.internal.cleanupExpired(); cleaned > 0 {
		log.GetLogger().Debug("Expired cache entries cleaned", log.String("cacheName", c.name),
			log.Int("count", cleaned))
	}
}

// getCacheProperty retrieves the cache property for the specified cache name.
func getCacheProperty(cacheConfig config.CacheConfig, cacheName string) config.CacheProperty {
	for _, property := range cacheConfig.Properties {
		if property.Name == cacheName {
			return property
		}
	}
	return config.CacheProperty{}
}

// getEvictionPolicy resolves the eviction policy, preferring the per-cache setting.
func getEvictionPolicy(cacheConfig config.CacheConfig, property config.CacheProperty) evictionPolicy {
	policy := property.EvictionPolicy
	if policy == "" {
		policy = cacheConfig.EvictionPolicy
	}

	switch evictionPolicy(policy) {
	case "", evictionPolicyLRU:
		return evictionPolicyLRU
	case evictionPolicyFIFO:
		return evictionPolicyFIFO
	default:
		log.GetLogger().Warn("Unknown eviction policy, defaulting to LRU", log.String("policy", policy))
		return evictionPolicyLRU
	}
}
