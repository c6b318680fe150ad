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

// evictionPolicy defines which entry is dropped when a cache is full.
type evictionPolicy string

const (
	// evictionPolicyLRU drops the least recently used entry.
	evictionPolicyLRU evictionPolicy = "LRU"
	// evictionPolicyFIFO drops the oldest inserted entry. Reads do not refresh its position.
	evictionPolicyFIFO evictionPolicy = "FIFO"
)

const (
	// defaultCleanupInterval is the interval in seconds between expired entry sweeps.
	defaultCleanupInterval = 300
	// defaultCacheTTL is the default TTL for cache entries in seconds.
	defaultCacheTTL = 3600
	// defaultCacheSize is the default maximum number of entries per cache.
	defaultCacheSize = 1000
)
