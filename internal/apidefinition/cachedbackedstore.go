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

package apidefinition

import (
	"context"

	"github.com/asgardeo/eligibility/internal/system/cache"
	"github.com/asgardeo/eligibility/internal/system/log"
)

const (
	definitionByNodeCacheName = "APIDefinitionByNodeCache"
	nodeBySlotCacheName       = "NodeBySlotCache"
)

// cachedBackedAPIDefinitionStore fronts the store with the active definition of each node.
type cachedBackedAPIDefinitionStore struct {
	definitionByNodeCache *cache.GuardedCache[APIDefinition]
	nodeBySlotCache       *cache.GuardedCache[string]
	store                 apiDefinitionStoreInterface
}

// newCachedBackedAPIDefinitionStore creates a caching store over the given store.
func newCachedBackedAPIDefinitionStore(store apiDefinitionStoreInterface) apiDefinitionStoreInterface {
	return &cachedBackedAPIDefinitionStore{
		definitionByNodeCache: cache.NewGuardedCache(cache.GetCache[APIDefinition](definitionByNodeCacheName)),
		nodeBySlotCache:       cache.NewGuardedCache(cache.GetCache[string](nodeBySlotCacheName)),
		store:                 store,
	}
}

// GetActiveDefinition returns the cached active definition of the node, loading it on a miss. A load
// that overlaps a publish for the node is returned but not cached.
func (cs *cachedBackedAPIDefinitionStore) GetActiveDefinition(ctx context.Context,
	nodeID string) (*APIDefinition, error) {
	key := cache.CacheKey{Key: nodeID}
	if cached, ok := cs.definitionByNodeCache.Get(key); ok {
		return &cached, nil
	}

	ticket := cs.definitionByNodeCache.Ticket(nodeID)
	def, err := cs.store.GetActiveDefinition(ctx, nodeID)
	if err != nil || def == nil {
		return def, err
	}
	cs.definitionByNodeCache.SetIfCurrent(ticket, key, *def)
	return def, nil
}

// GetDefinitionsByNode is not cached.
func (cs *cachedBackedAPIDefinitionStore) GetDefinitionsByNode(ctx context.Context, nodeID string,
	protocol Protocol) ([]APIDefinition, error) {
	return cs.store.GetDefinitionsByNode(ctx, nodeID, protocol)
}

// GetNodeIDBySlot returns the cached owner of the slot, loading it on a miss.
func (cs *cachedBackedAPIDefinitionStore) GetNodeIDBySlot(ctx context.Context, slotID string) (string, error) {
	key := cache.CacheKey{Key: slotID}
	if nodeID, ok := cs.nodeBySlotCache.Get(key); ok {
		return nodeID, nil
	}

	ticket := cs.nodeBySlotCache.Ticket(slotID)
	nodeID, err := cs.store.GetNodeIDBySlot(ctx, slotID)
	if err != nil {
		return "", err
	}
	cs.nodeBySlotCache.SetIfCurrent(ticket, key, nodeID)
	return nodeID, nil
}

// PublishDefinition publishes through the store and invalidates the affected entries.
func (cs *cachedBackedAPIDefinitionStore) PublishDefinition(ctx context.Context, def *APIDefinition) error {
	if err := cs.store.PublishDefinition(ctx, def); err != nil {
		return err
	}

	cs.definitionByNodeCache.Invalidate(def.NodeID, cache.CacheKey{Key: def.NodeID})
	// Slots dropped from the new version must stop resolving to this node.
	cs.nodeBySlotCache.InvalidateAll()

	log.GetLogger().Debug("Invalidated cached API definition", log.String(log.LoggerKeyNodeID, def.NodeID))
	return nil
}
