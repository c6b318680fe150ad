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

// Package nodemock provides test doubles for the node registry.
package nodemock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/asgardeo/eligibility/internal/node"
	"github.com/asgardeo/eligibility/internal/system/error/serviceerror"
)

// NodeServiceMock is a testify mock of node.NodeServiceInterface.
type NodeServiceMock struct {
	mock.Mock
}

// CreateNode records the call and returns the configured node or error.
func (m *NodeServiceMock) CreateNode(ctx context.Context, n *node.Node) (*node.Node,
	*serviceerror.ServiceError) {
	args := m.Called(ctx, n)
	created, _ := args.Get(0).(*node.Node)
	svcErr, _ := args.Get(1).(*serviceerror.ServiceError)
	return created, svcErr
}

// GetNode records the call and returns the configured node or error.
func (m *NodeServiceMock) GetNode(ctx context.Context, nodeID string) (*node.Node, *serviceerror.ServiceError) {
	args := m.Called(ctx, nodeID)
	n, _ := args.Get(0).(*node.Node)
	svcErr, _ := args.Get(1).(*serviceerror.ServiceError)
	return n, svcErr
}

// GetNodesByProduct records the call and returns the configured nodes or error.
func (m *NodeServiceMock) GetNodesByProduct(ctx context.Context, productID string) ([]node.Node,
	*serviceerror.ServiceError) {
	args := m.Called(ctx, productID)
	nodes, _ := args.Get(0).([]node.Node)
	svcErr, _ := args.Get(1).(*serviceerror.ServiceError)
	return nodes, svcErr
}

// AddChangeListener records the call.
func (m *NodeServiceMock) AddChangeListener(listener func(productID string)) {
	m.Called(listener)
}
