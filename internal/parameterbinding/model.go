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
	"time"

	"github.com/asgardeo/eligibility/internal/execution/model"
)

// SourceType identifies how a bound slot obtains its value.
type SourceType string

const (
	// SourceTypeLiteral binds a fixed value.
	SourceTypeLiteral SourceType = "LITERAL"
	// SourceTypeCallerInput binds a key of the caller supplied key values.
	SourceTypeCallerInput SourceType = "CALLER_INPUT"
	// SourceTypeUpstreamResponse binds a field of another node's response.
	SourceTypeUpstreamResponse SourceType = "UPSTREAM_RESPONSE"
)

// Source describes where the value of a slot comes from. Only the fields of the selected type are set.
type Source struct {
	Type      SourceType   `json:"type"`
	Value     *model.Value `json:"value,omitempty"`
	Key       string       `json:"key,omitempty"`
	NodeID    string       `json:"nodeId,omitempty"`
	FieldPath string       `json:"fieldPath,omitempty"`
}

// IsUpstream reports whether the source references another node.
func (s Source) IsUpstream() bool {
	return s.Type == SourceTypeUpstreamResponse
}

// Binding maps a parameter slot to a source for a tenant.
type Binding struct {
	TenantID      string    `json:"tenantId"`
	SlotID        string    `json:"slotId"`
	Source        Source    `json:"source"`
	UpdatedBy     string    `json:"updatedBy,omitempty"`
	UpdatedByName string    `json:"updatedByName,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// BindingSet indexes a tenant's bindings by slot.
type BindingSet map[string]Binding

// NewBindingSet indexes the bindings by slot id.
func NewBindingSet(bindings []Binding) BindingSet {
	set := make(BindingSet, len(bindings))
	for _, b := range bindings {
		set[b.SlotID] = b
	}
	return set
}

// bindingRequest is the body of a save binding request.
type bindingRequest struct {
	SlotID string `json:"slotId"`
	Source Source `json:"source"`
}
