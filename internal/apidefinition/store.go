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
	"encoding/json"
	"errors"
	"fmt"

	serverconst "github.com/asgardeo/eligibility/internal/system/constants"
	"github.com/asgardeo/eligibility/internal/system/database/client"
	dbmodel "github.com/asgardeo/eligibility/internal/system/database/model"
	"github.com/asgardeo/eligibility/internal/system/database/provider"
	dbutils "github.com/asgardeo/eligibility/internal/system/database/utils"
)

// apiDefinitionStoreInterface defines the persistence operations for API definitions.
type apiDefinitionStoreInterface interface {
	GetActiveDefinition(ctx context.Context, nodeID string) (*APIDefinition, error)
	GetDefinitionsByNode(ctx context.Context, nodeID string, protocol Protocol) ([]APIDefinition, error)
	GetNodeIDBySlot(ctx context.Context, slotID string) (string, error)
	PublishDefinition(ctx context.Context, def *APIDefinition) error
}

// queryer is implemented by both the database client and a transaction.
type queryer interface {
	Query(ctx context.Context, query dbmodel.DBQuery, args ...interface{}) ([]map[string]interface{}, error)
}

// apiDefinitionStore is the default implementation of apiDefinitionStoreInterface.
type apiDefinitionStore struct {
	dbProvider provider.DBProviderInterface
}

// newAPIDefinitionStore creates a new instance of apiDefinitionStore.
func newAPIDefinitionStore() apiDefinitionStoreInterface {
	return &apiDefinitionStore{
		dbProvider: provider.GetDBProvider(),
	}
}

// GetActiveDefinition retrieves the active definition of a node with its slots.
func (s *apiDefinitionStore) GetActiveDefinition(ctx context.Context, nodeID string) (*APIDefinition, error) {
	dbClient, err := s.dbProvider.GetDBClient(serverconst.ConfigDBName)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(ctx, queryGetActiveDefinitionByNode, nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrAPIDefinitionNotFound
	}
	if len(results) != 1 {
		return nil, fmt.Errorf("unexpected number of active definitions: %d", len(results))
	}

	def, err := buildDefinitionFromResultRow(results[0])
	if err != nil {
		return nil, fmt.Errorf("failed to build api definition from result row: %w", err)
	}
	if def.DeclaredParameters, err = loadSlots(ctx, dbClient, def.ID); err != nil {
		return nil, err
	}
	return def, nil
}

// GetDefinitionsByNode lists every version of a node's definitions for the protocol, newest first.
func (s *apiDefinitionStore) GetDefinitionsByNode(ctx context.Context, nodeID string,
	protocol Protocol) ([]APIDefinition, error) {
	dbClient, err := s.dbProvider.GetDBClient(serverconst.ConfigDBName)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(ctx, queryGetDefinitionsByNodeAndProtocol, nodeID, string(protocol))
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	defs := make([]APIDefinition, 0, len(results))
	for _, row := range results {
		def, err := buildDefinitionFromResultRow(row)
		if err != nil {
			return nil, fmt.Errorf("failed to build api definition from result row: %w", err)
		}
		if def.DeclaredParameters, err = loadSlots(ctx, dbClient, def.ID); err != nil {
			return nil, err
		}
		defs = append(defs, *def)
	}
	return defs, nil
}

// GetNodeIDBySlot returns the node whose active definition declares the slot.
func (s *apiDefinitionStore) GetNodeIDBySlot(ctx context.Context, slotID string) (string, error) {
	dbClient, err := s.dbProvider.GetDBClient(serverconst.ConfigDBName)
	if err != nil {
		return "", fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(ctx, queryGetNodeBySlot, slotID)
	if err != nil {
		return "", fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return "", ErrAPIDefinitionNotFound
	}
	return dbutils.GetString(results[0], "node_id")
}

// PublishDefinition stores def as the next version of its node and retires the previous one.
// Version, IsActive and CreatedAt of def are set on success.
func (s *apiDefinitionStore) PublishDefinition(ctx context.Context, def *APIDefinition) error {
	dbClient, err := s.dbProvider.GetDBClient(serverconst.ConfigDBName)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	headers, err := json.Marshal(def.Headers)
	if err != nil {
		return fmt.Errorf("failed to marshal headers: %w", err)
	}

	tx, err := dbClient.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	results, err := tx.Query(ctx, queryGetMaxVersion, def.NodeID)
	if err != nil {
		return rollback(tx, fmt.Errorf("failed to execute query: %w", err))
	}
	maxVersion := int64(0)
	if len(results) == 1 {
		if maxVersion, err = dbutils.GetInt64(results[0], "max_version"); err != nil {
			return rollback(tx, err)
		}
	}

	if _, err := tx.Execute(ctx, queryDeactivateDefinitions, def.NodeID); err != nil {
		return rollback(tx, fmt.Errorf("failed to deactivate previous definition: %w", err))
	}

	version := int(maxVersion) + 1
	if _, err := tx.Execute(ctx, queryInsertDefinition, def.ID, def.NodeID, version, string(def.Protocol),
		def.EndpointURI, def.HTTPMethod, def.SOAPAction, def.EnvelopeTemplate, def.Operation, def.Namespace,
		string(headers), def.ResponseShape, 1, dbutils.FormatTime(def.CreatedAt)); err != nil {
		return rollback(tx, fmt.Errorf("failed to insert definition: %w", err))
	}

	for i, slot := range def.DeclaredParameters {
		if _, err := tx.Execute(ctx, queryInsertSlot, def.ID, slot.SlotID, slot.Name, string(slot.DataType),
			dbutils.BoolToInt(slot.Required), string(slot.Location), i); err != nil {
			return rollback(tx, fmt.Errorf("failed to insert parameter slot %s: %w", slot.Name, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return rollback(tx, fmt.Errorf("failed to commit transaction: %w", err))
	}

	def.Version = version
	def.IsActive = true
	return nil
}

func loadSlots(ctx context.Context, q queryer, definitionID string) ([]ParameterSlot, error) {
	results, err := q.Query(ctx, queryGetSlotsByDefinition, definitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query for parameter slots: %w", err)
	}

	slots := make([]ParameterSlot, 0, len(results))
	for _, row := range results {
		slot, err := buildSlotFromResultRow(row)
		if err != nil {
			return nil, fmt.Errorf("failed to build parameter slot from result row: %w", err)
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// rollback rolls the transaction back and joins any rollback failure to err.
func rollback(tx client.TransactionInterface, err error) error {
	if rollbackErr := tx.Rollback(); rollbackErr != nil {
		return errors.Join(err, fmt.Errorf("failed to rollback transaction: %w", rollbackErr))
	}
	return err
}

func buildDefinitionFromResultRow(row map[string]interface{}) (*APIDefinition, error) {
	def := &APIDefinition{}
	var err error

	if def.ID, err = dbutils.GetString(row, "id"); err != nil {
		return nil, err
	}
	if def.NodeID, err = dbutils.GetString(row, "node_id"); err != nil {
		return nil, err
	}
	version, err := dbutils.GetInt64(row, "version")
	if err != nil {
		return nil, err
	}
	def.Version = int(version)

	protocol, err := dbutils.GetString(row, "protocol")
	if err != nil {
		return nil, err
	}
	def.Protocol = Protocol(protocol)

	if def.EndpointURI, err = dbutils.GetString(row, "endpoint_uri"); err != nil {
		return nil, err
	}
	if def.HTTPMethod, err = dbutils.GetOptionalString(row, "http_method"); err != nil {
		return nil, err
	}
	if def.SOAPAction, err = dbutils.GetOptionalString(row, "soap_action"); err != nil {
		return nil, err
	}
	if def.EnvelopeTemplate, err = dbutils.GetOptionalString(row, "envelope_template"); err != nil {
		return nil, err
	}
	if def.Operation, err = dbutils.GetOptionalString(row, "operation"); err != nil {
		return nil, err
	}
	if def.Namespace, err = dbutils.GetOptionalString(row, "namespace"); err != nil {
		return nil, err
	}
	if def.ResponseShape, err = dbutils.GetOptionalString(row, "response_shape"); err != nil {
		return nil, err
	}

	headers, err := dbutils.GetOptionalString(row, "headers")
	if err != nil {
		return nil, err
	}
	if headers != "" && headers != "null" {
		if err := json.Unmarshal([]byte(headers), &def.Headers); err != nil {
			return nil, fmt.Errorf("failed to parse headers: %w", err)
		}
	}

	if def.IsActive, err = dbutils.GetBool(row, "is_active"); err != nil {
		return nil, err
	}
	if def.CreatedAt, err = dbutils.GetTime(row, "created_at"); err != nil {
		return nil, err
	}
	return def, nil
}

func buildSlotFromResultRow(row map[string]interface{}) (ParameterSlot, error) {
	slotID, err := dbutils.GetString(row, "slot_id")
	if err != nil {
		return ParameterSlot{}, err
	}
	name, err := dbutils.GetString(row, "name")
	if err != nil {
		return ParameterSlot{}, err
	}
	dataType, err := dbutils.GetString(row, "data_type")
	if err != nil {
		return ParameterSlot{}, err
	}
	required, err := dbutils.GetBool(row, "is_required")
	if err != nil {
		return ParameterSlot{}, err
	}
	location, err := dbutils.GetOptionalString(row, "location")
	if err != nil {
		return ParameterSlot{}, err
	}

	return ParameterSlot{
		SlotID:   slotID,
		Name:     name,
		DataType: DataType(dataType),
		Required: required,
		Location: ParameterLocation(location),
	}, nil
}
