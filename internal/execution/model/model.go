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

package model

import (
	"encoding/json"
	"time"

	"github.com/asgardeo/eligibility/internal/apidefinition"
)

// NodeState is the lifecycle state of a node within an execution.
type NodeState string

const (
	NodeStatePending          NodeState = "PENDING"
	NodeStateResolving        NodeState = "RESOLVING"
	NodeStateResolutionFailed NodeState = "RESOLUTION_FAILED"
	NodeStateResolved         NodeState = "RESOLVED"
	NodeStateExecuting        NodeState = "EXECUTING"
	NodeStateSucceeded        NodeState = "SUCCEEDED"
	NodeStateFailed           NodeState = "FAILED"
)

// Failure reasons shared across components.
const (
	FailureReasonTimeout   = "timeout"
	FailureReasonCancelled = "cancelled"
)

// ResponseRecord is the outcome of invoking one node. Records are never modified after being appended.
type ResponseRecord struct {
	ExecutionID   string          `json:"executionId,omitempty"`
	NodeID        string          `json:"nodeId"`
	IsSuccess     bool            `json:"isSuccess"`
	StatusCode    int             `json:"statusCode"`
	Payload       json.RawMessage `json:"payload,omitempty"`
	RawResponse   string          `json:"rawProtocolResponse,omitempty"`
	FailureReason string          `json:"failureReason,omitempty"`
	State         NodeState       `json:"state"`
	Timestamp     time.Time       `json:"timestamp"`
	DurationMs    int64           `json:"durationMs"`
}

// ValidationResult is the aggregated outcome of validating a product.
type ValidationResult struct {
	ExecutionID    string           `json:"executionId"`
	IsSuccess      bool             `json:"isSuccess"`
	PerNodeResults []ResponseRecord `json:"perNodeResults"`
	FailureReason  string           `json:"failureReason,omitempty"`
}

// ResolvedArgument is a slot value ready to be placed on the wire.
type ResolvedArgument struct {
	Slot  apidefinition.ParameterSlot
	Value Value
}

// ExecutionContext carries the state of one validation request.
type ExecutionContext struct {
	ExecutionID     string
	TenantID        string
	UserID          string
	ProductID       string
	CallerKeyValues map[string]Value
	Ledger          *Ledger
}
