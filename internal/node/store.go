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

package node

import (
	"context"
	"fmt"
	"time"

	serverconst "github.com/asgardeo/eligibility/internal/system/constants"
	"github.com/asgardeo/eligibility/internal/system/database/provider"
	dbutils "github.com/asgardeo/eligibility/internal/system/database/utils"
)

// nodeStoreInterface defines the persistence operations for nodes.
type nodeStoreInterface interface {
	CreateNode(ctx context.Context, node Node) error
	GetNode(ctx context.Context, nodeID string) (*Node, error)
	GetNodesByProduct(ctx context.Context, productID string) ([]Node, error)
}

// nodeStore is the default implementation of nodeStoreInterface.
type nodeStore struct {
	dbProvider provider.DBProviderInterface
}

// newNodeStore creates a new instance of nodeStore.
func newNodeStore() nodeStoreInterface {
	return &nodeStore{
		dbProvider: provider.GetDBProvider(),
	}
}

// CreateNode inserts the node.
func (s *nodeStore) CreateNode(ctx context.Context, node Node) error {
	dbClient, err := s.dbProvider.GetDBClient(serverconst.ConfigDBName)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	_, err = dbClient.Execute(ctx, queryCreateNode, node.ID, node.ProductID, node.Name, node.Position,
		dbutils.BoolToInt(node.IsCritical), dbutils.FormatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	return nil
}

// GetNode retrieves a node by id.
func (s *nodeStore) GetNode(ctx context.Context, nodeID string) (*Node, error) {
	dbClient, err := s.dbProvider.GetDBClient(serverconst.ConfigDBName)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(ctx, queryGetNodeByID, nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrNodeNotFound
	}
	if len(results) != 1 {
		return nil, fmt.Errorf("unexpected number of results: %d", len(results))
	}

	node, err := buildNodeFromResultRow(results[0])
	if err != nil {
		return nil, fmt.Errorf("failed to build node from result row: %w", err)
	}
	return node, nil
}

// GetNodesByProduct lists the nodes of a product ordered by position.
func (s *nodeStore) GetNodesByProduct(ctx context.Context, productID string) ([]Node, error) {
	dbClient, err := s.dbProvider.GetDBClient(serverconst.ConfigDBName)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(ctx, queryGetNodesByProduct, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	nodes := make([]Node, 0, len(results))
	for _, row := range results {
		node, err := buildNodeFromResultRow(row)
		if err != nil {
			return nil, fmt.Errorf("failed to build node from result row: %w", err)
		}
		nodes = append(nodes, *node)
	}
	return nodes, nil
}

func buildNodeFromResultRow(row map[string]interface{}) (*Node, error) {
	nodeID, err := dbutils.GetString(row, "node_id")
	if err != nil {
		return nil, err
	}
	productID, err := dbutils.GetString(row, "product_id")
	if err != nil {
		return nil, err
	}
	name, err := dbutils.GetString(row, "name")
	if err != nil {
		return nil, err
	}
	position, err := dbutils.GetInt64(row, "position")
	if err != nil {
		return nil, err
	}
	isCritical, err := dbutils.GetBool(row, "is_critical")
	if err != nil {
		return nil, err
	}

	return &Node{
		ID:         nodeID,
		ProductID:  productID,
		Name:       name,
		Position:   int(position),
		IsCritical: isCritical,
	}, nil
}
