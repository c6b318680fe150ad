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
	"sync"
	"time"

	"github.com/asgardeo/eligibility/internal/system/config"
	"github.com/asgardeo/eligibility/internal/system/log"
)

// cleanable is the non-generic view of a cache used by the cleanup routine.
type cleanable interface {
	GetName() string
	CleanupExpired()
}

var (
	registry   = map[string]cleanable{}
	registryMu sync.Mutex
	stopCh     chan struct{}
)

// GetCache returns the named cache, creating it from the server configuration on first use.
// Asking for an existing name with a different value type returns a fresh unregistered cache.
func GetCache[T any](cacheName string) CacheInterface[T] {
	registryMu.Lock()
	defer registryMu.Unlock()

	if existing, ok := registry[cacheName]; ok {
		if typed, ok := existing.(CacheInterface[T]); ok {
			return typed
		}
		log.GetLogger().Error("Cache registered with a different value type", log.String("cacheName", cacheName))
		return newCache[T](cacheName, config.GetServerRuntime().Config.Cache)
	}

	c := newCache[T](cacheName, config.GetServerRuntime().Config.Cache)
	registry[cacheName] = c
	return c
}

// StartCleanupRoutine periodically removes expired entries from every registered cache.
func StartCleanupRoutine() {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "CacheManager"))

	cacheConfig := config.GetServerRuntime().Config.Cache
	if cacheConfig.Disabled {
		logger.Debug("Caching is disabled, cleanup routine not started")
		return
	}

	interval := cacheConfig.CleanupInterval
	if interval <= 0 {
		interval = defaultCleanupInterval
	}

	registryMu.Lock()
	if stopCh != nil {
		registryMu.Unlock()
		return
	}
	stop := make(chan struct{})
	stopCh = stop
	registryMu.Unlock()

	go func() {
		ticker := time.NewTicker(time.Duration(interval) * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				for _, c := range snapshot() {
					c.CleanupExpired()
				}
			case <-stop:
				return
			}
		}
	}()

	logger.Debug("Cache cleanup routine started", log.Int("intervalSeconds", interval))
}

// Reset stops the cleanup routine and forgets every registered cache.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()

	if stopCh != nil {
		close(stopCh)
		stopCh = nil
	}
	registry = map[string]cleanable{}
}

func snapshot() []cleanable {
	registryMu.Lock()
	defer registryMu.Unlock()

	caches := make([]cleanable, 0, len(registry))
	for _, c := range registry {
		caches = append(caches, c)
	}
	return caches
}
