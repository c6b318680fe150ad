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
package orchestrator

import (
	"context"
	"fmt"

	"github.com/asgardeo/eligibility/internal/apidefinition"
	"github.com/asgardeo/eligibility/internal/dependency"
	"github.com/asgardeo/eligibility/internal/node"
	"github.com/asgardeo/eligibility/internal/parameterbinding"
)

// executionPlan is the layered schedule of a product for one tenant. Every edge of the dependency
// graph points from an earlier layer to a later one.
type executionPlan struct {
	nodes    map[string]node.Node
	layers   [][]string
	upstream map[string][]string
}

// order returns the node ids in scheduling order.
func (p *executionPlan) order() []string {
	var ids []string
	for _, layer := range p.layers {
		ids = append(ids, layer...)
	}
	return ids
}

func planCacheKey(tenantID, productID string) string {
	return tenantID + "|" + productID
}

// buildPlan layers the nodes of a product by the upstream bindings of the tenant. Bindings whose slot
// or upstream node lies outside the product do not add edges.
func buildPlan(ctx context.Context, apiDefinitionService apidefinition.APIDefinitionServiceInterface,
	nodes []node.Node, bindings []parameterbinding.Binding) (*executionPlan, error) {
	plan := &executionPlan{
		nodes:    make(map[string]node.Node, len(nodes)),
		upstream: map[string][]string{},
	}

	graph := dependency.NewGraph()
	for _, n := range nodes {
		plan.nodes[n.ID] = n
		graph.AddNode(n.ID, n.Position)
	}

	for _, binding := range bindings {
		if !binding.Source.IsUpstream() {
			continue
		}
		if _, ok := plan.nodes[binding.Source.NodeID]; !ok {
			continue
		}
		def, exists, svcErr := apiDefinitionService.SlotExists(ctx, binding.SlotID)
		if svcErr != nil {
			return nil, fmt.Errorf("failed to resolve owner of slot %s: %s", binding.SlotID, svcErr.Error)
		}
		if !exists {
			continue
		}
		if _, ok := plan.nodes[def.NodeID]; !ok {
			continue
		}
		graph.AddEdge(binding.Source.NodeID, def.NodeID)
	}

	layers, err := graph.Layers()
	if err != nil {
		return nil, err
	}
	plan.layers = layers
	for id := range plan.nodes {
		if upstream := graph.Upstream(id); len(upstream) > 0 {
			plan.upstream[id] = upstream
		}
	}
	return plan, nil
}
