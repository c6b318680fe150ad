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

// Package node manages the nodes that make up a product's eligibility graph.
package node

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/asgardeo/eligibility/internal/system/error/serviceerror"
	"github.com/asgardeo/eligibility/internal/system/log"
	"github.com/asgardeo/eligibility/internal/system/utils"
)

// NodeServiceInterface defines the node registry operations.
type NodeServiceInterface interface {
	CreateNode(ctx context.Context, node *Node) (*Node, *serviceerror.ServiceError)
	GetNode(ctx context.Context, nodeID string) (*Node, *serviceerror.ServiceError)
	GetNodesByProduct(ctx context.Context, productID string) ([]Node, *serviceerror.ServiceError)
	AddChangeListener(listener func(productID string))
}

// nodeService is the default implementation of NodeServiceInterface.
type nodeService struct {
	store       nodeStoreInterface
	listenersMu sync.RWMutex
	listeners   []func(productID string)
}

// newNodeService creates a new instance of nodeService.
func newNodeService() NodeServiceInterface {
	return &nodeService{
		store: newNodeStore(),
	}
}

// CreateNode validates and stores a new node.
func (ns *nodeService) CreateNode(ctx context.Context, node *Node) (*Node, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "NodeService"))

	if node == nil {
		return nil, &ErrorInvalidRequestFormat
	}
	if strings.TrimSpace(node.ProductID) == "" {
		return nil, serviceerror.FieldServiceError(ErrorInvalidProductID, "productId", "")
	}
	if strings.TrimSpace(node.Name) == "" {
		return nil, serviceerror.FieldServiceError(ErrorInvalidNodeName, "name", "")
	}
	if node.Position < 0 {
		return nil, serviceerror.FieldServiceError(ErrorInvalidPosition, "position", "")
	}

	node.ID = utils.GenerateUUID()
	if err := ns.store.CreateNode(ctx, *node); err != nil {
		logger.Error("Failed to create node", log.String("productId", node.ProductID), log.Error(err))
		return nil, &ErrorInternalServerError
	}

	logger.Debug("Node created", log.String(log.LoggerKeyNodeID, node.ID),
		log.String(log.LoggerKeyProductID, node.ProductID))

	ns.listenersMu.RLock()
	for _, listener := range ns.listeners {
		listener(node.ProductID)
	}
	ns.listenersMu.RUnlock()
	return node, nil
}

// GetNode retrieves a node by id.
func (ns *nodeService) GetNode(ctx context.Context, nodeID string) (*Node, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "NodeService"))

	if strings.TrimSpace(nodeID) == "" {
		return nil, &ErrorInvalidNodeID
	}

	node, err := ns.store.GetNode(ctx, nodeID)
	if err != nil {
		if errors.Is(err, ErrNodeNotFound) {
			return nil, &ErrorNodeNotFound
		}
		logger.Error("Failed to get node", log.String(log.LoggerKeyNodeID, nodeID), log.Error(err))
		return nil, &ErrorInternalServerError
	}
	return node, nil
}

// GetNodesByProduct lists the nodes of a product ordered by position.
func (ns *nodeService) GetNodesByProduct(ctx context.Context, productID string) ([]Node,
	*serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "NodeService"))

	if strings.TrimSpace(productID) == "" {
		return nil, &ErrorInvalidProductID
	}

	nodes, err := ns.store.GetNodesByProduct(ctx, productID)
	if err != nil {
		logger.Error("Failed to list nodes", log.String(log.LoggerKeyProductID, productID), log.Error(err))
		return nil, &ErrorInternalServerError
	}
	return nodes, nil
}

// AddChangeListener registers a listener notified after a node is added to a product.
func (ns *nodeService) AddChangeListener(listener func(productID string)) {
	ns.listenersMu.Lock()
	defer ns.listenersMu.Unlock()
	ns.listeners = append(ns.listeners, listener)
}
