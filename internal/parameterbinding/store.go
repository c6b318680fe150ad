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
	"encoding/json"
	"errors"
	"fmt"

	"github.com/asgardeo/eligibility/internal/execution/model"
	serverconst "github.com/asgardeo/eligibility/internal/system/constants"
	"github.com/asgardeo/eligibility/internal/system/database/client"
	"github.com/asgardeo/eligibility/internal/system/database/provider"
	dbutils "github.com/asgardeo/eligibility/internal/system/database/utils"
)

// bindingCheck inspects the tenant's current bindings before a save is written.
type bindingCheck func(ctx context.Context, existing []Binding) error

// parameterBindingStoreInterface defines the persistence operations for bindings.
type parameterBindingStoreInterface interface {
	GetAllBindings(ctx context.Context, tenantID string) ([]Binding, error)
	SaveBinding(ctx context.Context, binding Binding, check bindingCheck) error
}

// parameterBindingStore is the default implementation of parameterBindingStoreInterface.
type parameterBindingStore struct {
	dbProvider provider.DBProviderInterface
}

// newParameterBindingStore creates a new instance of parameterBindingStore.
func newParameterBindingStore() parameterBindingStoreInterface {
	return &parameterBindingStore{
		dbProvider: provider.GetDBProvider(),
	}
}

// GetAllBindings lists the bindings of the tenant ordered by slot.
func (s *parameterBindingStore) GetAllBindings(ctx context.Context, tenantID string) ([]Binding, error) {
	dbClient, err := s.dbProvider.GetDBClient(serverconst.ConfigDBName)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(ctx, queryGetBindingsByTenant, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return buildBindingsFromResultRows(results)
}

// SaveBinding upserts the binding in a transaction. The check sees the tenant's bindings as read inside
// the transaction and aborts the save when it returns an error.
func (s *parameterBindingStore) SaveBinding(ctx context.Context, binding Binding, check bindingCheck) error {
	dbClient, err := s.dbProvider.GetDBClient(serverconst.ConfigDBName)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	literal := ""
	if binding.Source.Type == SourceTypeLiteral && binding.Source.Value != nil {
		encoded, err := json.Marshal(binding.Source.Value)
		if err != nil {
			return fmt.Errorf("failed to marshal literal value: %w", err)
		}
		literal = string(encoded)
	}

	tx, err := dbClient.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if check != nil {
		results, err := tx.Query(ctx, queryGetBindingsByTenant, binding.TenantID)
		if err != nil {
			return rollback(tx, fmt.Errorf("failed to execute query: %w", err))
		}
		existing, err := buildBindingsFromResultRows(results)
		if err != nil {
			return rollback(tx, err)
		}
		if err := check(ctx, existing); err != nil {
			return rollback(tx, err)
		}
	}

	if _, err := tx.Execute(ctx, queryUpsertBinding, binding.TenantID, binding.SlotID,
		string(binding.Source.Type), literal, binding.Source.Key, binding.Source.NodeID, binding.Source.FieldPath,
		binding.UpdatedBy, binding.UpdatedByName, dbutils.FormatTime(binding.UpdatedAt)); err != nil {
		return rollback(tx, fmt.Errorf("failed to upsert binding: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return rollback(tx, fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}

func rollback(tx client.TransactionInterface, err error) error {
	if rollbackErr := tx.Rollback(); rollbackErr != nil {
		return errors.Join(err, fmt.Errorf("failed to rollback transaction: %w", rollbackErr))
	}
	return err
}

func buildBindingsFromResultRows(results []map[string]interface{}) ([]Binding, error) {
	bindings := make([]Binding, 0, len(results))
	for _, row := range results {
		binding, err := buildBindingFromResultRow(row)
		if err != nil {
			return nil, fmt.Errorf("failed to build binding from result row: %w", err)
		}
		bindings = append(bindings, binding)
	}
	return bindings, nil
}

func buildBindingFromResultRow(row map[string]interface{}) (Binding, error) {
	var b Binding
	var err error

	if b.TenantID, err = dbutils.GetString(row, "tenant_id"); err != nil {
		return Binding{}, err
	}
	if b.SlotID, err = dbutils.GetString(row, "slot_id"); err != nil {
		return Binding{}, err
	}
	sourceType, err := dbutils.GetString(row, "source_type")
	if err != nil {
		return Binding{}, err
	}
	b.Source.Type = SourceType(sourceType)

	if b.Source.Key, err = dbutils.GetOptionalString(row, "caller_key"); err != nil {
		return Binding{}, err
	}
	if b.Source.NodeID, err = dbutils.GetOptionalString(row, "upstream_node_id"); err != nil {
		return Binding{}, err
	}
	if b.Source.FieldPath, err = dbutils.GetOptionalString(row, "field_path"); err != nil {
		return Binding{}, err
	}
	if b.UpdatedBy, err = dbutils.GetOptionalString(row, "updated_by"); err != nil {
		return Binding{}, err
	}
	if b.UpdatedByName, err = dbutils.GetOptionalString(row, "updated_by_name"); err != nil {
		return Binding{}, err
	}
	if b.UpdatedAt, err = dbutils.GetTime(row, "updated_at"); err != nil {
		return Binding{}, err
	}

	literal, err := dbutils.GetOptionalString(row, "literal_value")
	if err != nil {
		return Binding{}, err
	}
	if b.Source.Type == SourceTypeLiteral {
		var v model.Value
		if err := json.Unmarshal([]byte(literal), &v); err != nil {
			return Binding{}, fmt.Errorf("failed to parse literal value: %w", err)
		}
		b.Source.Value = &v
	}
	return b, nil
}
