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
// Package responsestore persists the response records of executions to the runtime database.
package responsestore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/asgardeo/eligibility/internal/execution/model"
	serverconst "github.com/asgardeo/eligibility/internal/system/constants"
	"github.com/asgardeo/eligibility/internal/system/database/provider"
	dbutils "github.com/asgardeo/eligibility/internal/system/database/utils"
)

// ResponseStoreInterface defines the persistence operations for response records.
type ResponseStoreInterface interface {
	SaveRecord(ctx context.Context, tenantID string, record model.ResponseRecord) error
	GetRecordsByExecution(ctx context.Context, tenantID, executionID string) ([]model.ResponseRecord, error)
}

// responseStore is the default implementation of ResponseStoreInterface.
type responseStore struct {
	dbProvider provider.DBProviderInterface
}

// NewResponseStore creates a store backed by the runtime database.
func NewResponseStore() ResponseStoreInterface {
	return &responseStore{
		dbProvider: provider.GetDBProvider(),
	}
}

// SaveRecord writes a record. A record is written once per execution and node.
func (s *responseStore) SaveRecord(ctx context.Context, tenantID string, record model.ResponseRecord) error {
	dbClient, err := s.dbProvider.GetDBClient(serverconst.RuntimeDBName)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	_, err = dbClient.Execute(ctx, queryInsertRecord, record.ExecutionID, record.NodeID, tenantID,
		dbutils.BoolToInt(record.IsSuccess), record.StatusCode, string(record.Payload), record.RawResponse,
		record.FailureReason, string(record.State), dbutils.FormatTime(record.Timestamp), record.DurationMs)
	if err != nil {
		return fmt.Errorf("failed to insert response record: %w", err)
	}
	return nil
}

// GetRecordsByExecution lists the records written for an execution of the tenant.
func (s *responseStore) GetRecordsByExecution(ctx context.Context, tenantID,
	executionID string) ([]model.ResponseRecord, error) {
	dbClient, err := s.dbProvider.GetDBClient(serverconst.RuntimeDBName)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(ctx, queryGetRecordsByExecution, executionID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	records := make([]model.ResponseRecord, 0, len(results))
	for _, row := range results {
		record, err := buildRecordFromResultRow(row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func buildRecordFromResultRow(row map[string]interface{}) (model.ResponseRecord, error) {
	var record model.ResponseRecord
	var err error

	if record.ExecutionID, err = dbutils.GetString(row, "execution_id"); err != nil {
		return record, err
	}
	if record.NodeID, err = dbutils.GetString(row, "node_id"); err != nil {
		return record, err
	}
	if record.IsSuccess, err = dbutils.GetBool(row, "is_success"); err != nil {
		return record, err
	}
	statusCode, err := dbutils.GetInt64(row, "status_code")
	if err != nil {
		return record, err
	}
	record.StatusCode = int(statusCode)

	payload, err := dbutils.GetOptionalString(row, "payload")
	if err != nil {
		return record, err
	}
	if payload != "" {
		if !json.Valid([]byte(payload)) {
			return record, fmt.Errorf("stored payload of node %s is not valid JSON", record.NodeID)
		}
		record.Payload = json.RawMessage(payload)
	}

	if record.RawResponse, err = dbutils.GetOptionalString(row, "raw_response"); err != nil {
		return record, err
	}
	if record.FailureReason, err = dbutils.GetOptionalString(row, "failure_reason"); err != nil {
		return record, err
	}
	state, err := dbutils.GetString(row, "state")
	if err != nil {
		return record, err
	}
	record.State = model.NodeState(state)

	if record.Timestamp, err = dbutils.GetTime(row, "created_at"); err != nil {
		return record, err
	}
	if record.DurationMs, err = dbutils.GetInt64(row, "duration_ms"); err != nil {
		return record, err
	}
	return record, nil
}
