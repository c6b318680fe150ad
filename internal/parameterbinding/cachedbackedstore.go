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

package parameterbinding

import (
	"context"

	"github.com/asgardeo/eligibility/internal/system/cache"
)

const bindingsByTenantCacheName = "ParameterBindingCache"

// cachedBackedParameterBindingStore fronts the store with the binding list of each tenant.
type cachedBackedParameterBindingStore struct {
	bindingsByTenantCache *cache.GuardedCache[[]Binding]
	store                 parameterBindingStoreInterface
}

func newCachedBackedParameterBindingStore(store parameterBindingStoreInterface) parameterBindingStoreInterface {
	return &cachedBackedParameterBindingStore{
		bindingsByTenantCache: cache.NewGuardedCache(cache.GetCache[[]Binding](bindingsByTenantCacheName)),
		store:                 store,
	}
}

// GetAllBindings returns a copy of the cached bindings of the tenant, loading them on a miss. A load
// that overlaps a save of the same tenant is returned but not cached.
func (cs *cachedBackedParameterBindingStore) GetAllBindings(ctx context.Context,
	tenantID string) ([]Binding, error) {
	key := cache.CacheKey{Key: tenantID}
	if cached, ok := cs.bindingsByTenantCache.Get(key); ok {
		return append([]Binding(nil), cached...), nil
	}

	ticket := cs.bindingsByTenantCache.Ticket(tenantID)
	bindings, err := cs.store.GetAllBindings(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	cs.bindingsByTenantCache.SetIfCurrent(ticket, key, append([]Binding(nil), bindings...))
	return bindings, nil
}

// SaveBinding saves through the store and drops the tenant's cached bindings.
func (cs *cachedBackedParameterBindingStore) SaveBinding(ctx context.Context, binding Binding,
	check bindingCheck) error {
	if err := cs.store.SaveBinding(ctx, binding, check); err != nil {
		return err
	}
	cs.bindingsByTenantCache.Invalidate(binding.TenantID, cache.CacheKey{Key: binding.TenantID})
	return nil
}
