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

// Package parameterbinding stores the tenant scoped rules that resolve API parameter slots.
package parameterbinding

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/asgardeo/eligibility/internal/apidefinition"
	"github.com/asgardeo/eligibility/internal/dependency"
	"github.com/asgardeo/eligibility/internal/node"
	"github.com/asgardeo/eligibility/internal/system/error/serviceerror"
	"github.com/asgardeo/eligibility/internal/system/log"
)

// ChangeListener is notified after the bindings of a tenant change.
type ChangeListener func(tenantID string)

// ParameterBindingServiceInterface defines the binding operations.
type ParameterBindingServiceInterface interface {
	GetAllBindings(ctx context.Context, tenantID string) ([]Binding, *serviceerror.ServiceError)
	SaveBinding(ctx context.Context, tenantID string, binding Binding) (*Binding, *serviceerror.ServiceError)
	AddChangeListener(listener ChangeListener)
}

// parameterBindingService is the default implementation of ParameterBindingServiceInterface.
type parameterBindingService struct {
	store                parameterBindingStoreInterface
	apiDefinitionService apidefinition.APIDefinitionServiceInterface
	nodeService          node.NodeServiceInterface
	tenantLocks          sync.Map
	listenersMu          sync.RWMutex
	listeners            []ChangeListener
}

func newParameterBindingService(apiDefinitionService apidefinition.APIDefinitionServiceInterface,
	nodeService node.NodeServiceInterface) ParameterBindingServiceInterface {
	return &parameterBindingService{
		store:                newCachedBackedParameterBindingStore(newParameterBindingStore()),
		apiDefinitionService: apiDefinitionService,
		nodeService:          nodeService,
	}
}

// GetAllBindings lists the bindings of the tenant.
func (ps *parameterBindingService) GetAllBindings(ctx context.Context, tenantID string) ([]Binding,
	*serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ParameterBindingService"))

	if strings.TrimSpace(tenantID) == "" {
		return nil, &ErrorInvalidTenantID
	}

	bindings, err := ps.store.GetAllBindings(ctx, tenantID)
	if err != nil {
		logger.Error("Failed to list parameter bindings", log.String(log.LoggerKeyTenantID, tenantID),
			log.Error(err))
		return nil, &ErrorInternalServerError
	}
	return bindings, nil
}

// SaveBinding validates the binding and upserts it for the tenant.
func (ps *parameterBindingService) SaveBinding(ctx context.Context, tenantID string,
	binding Binding) (*Binding, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ParameterBindingService"),
		log.String(log.LoggerKeyTenantID, tenantID))

	if strings.TrimSpace(tenantID) == "" {
		return nil, &ErrorInvalidTenantID
	}
	binding.TenantID = tenantID
	binding.SlotID = strings.TrimSpace(binding.SlotID)
	if binding.SlotID == "" {
		return nil, serviceerror.FieldServiceError(ErrorInvalidSlotID, "slotId", "")
	}
	if svcErr := normalizeSource(&binding.Source); svcErr != nil {
		return nil, svcErr
	}

	def, exists, svcErr := ps.apiDefinitionService.SlotExists(ctx, binding.SlotID)
	if svcErr != nil {
		return nil, &ErrorInternalServerError
	}
	if !exists {
		return nil, serviceerror.FieldServiceError(ErrorSlotNotFound, "slotId", "")
	}
	owner := def.NodeID

	if binding.Source.IsUpstream() {
		if svcErr := ps.validateUpstreamNode(ctx, owner, binding.Source.NodeID); svcErr != nil {
			return nil, svcErr
		}
	}

	unlock := ps.lockTenant(tenantID)
	defer unlock()

	binding.UpdatedAt = time.Now().UTC()
	err := ps.store.SaveBinding(ctx, binding, func(ctx context.Context, existing []Binding) error {
		return ps.checkCycle(ctx, binding, owner, existing)
	})
	if err != nil {
		if errors.Is(err, errCyclicBinding) {
			return nil, serviceerror.FieldServiceError(ErrorCyclicBinding, "source.nodeId", "")
		}
		logger.Error("Failed to save parameter binding", log.String("slotId", binding.SlotID), log.Error(err))
		return nil, &ErrorInternalServerError
	}

	logger.Debug("Parameter binding saved", log.String("slotId", binding.SlotID),
		log.String("sourceType", string(binding.Source.Type)))
	ps.notifyListeners(tenantID)
	return &binding, nil
}

// AddChangeListener registers a listener notified after every successful save.
func (ps *parameterBindingService) AddChangeListener(listener ChangeListener) {
	ps.listenersMu.Lock()
	defer ps.listenersMu.Unlock()
	ps.listeners = append(ps.listeners, listener)
}

func (ps *parameterBindingService) notifyListeners(tenantID string) {
	ps.listenersMu.RLock()
	defer ps.listenersMu.RUnlock()
	for _, listener := range ps.listeners {
		listener(tenantID)
	}
}

func (ps *parameterBindingService) lockTenant(tenantID string) func() {
	value, _ := ps.tenantLocks.LoadOrStore(tenantID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// validateUpstreamNode checks that the upstream node exists and shares the product of the slot's node.
func (ps *parameterBindingService) validateUpstreamNode(ctx context.Context, owner,
	upstream string) *serviceerror.ServiceError {
	if owner == upstream {
		return serviceerror.FieldServiceError(ErrorCyclicBinding, "source.nodeId",
			"A node cannot depend on its own response")
	}

	upstreamNode, svcErr := ps.nodeService.GetNode(ctx, upstream)
	if svcErr != nil {
		if svcErr.Code == node.ErrorNodeNotFound.Code {
			return serviceerror.FieldServiceError(ErrorUpstreamNodeNotFound, "source.nodeId", "")
		}
		return &ErrorInternalServerError
	}
	ownerNode, svcErr := ps.nodeService.GetNode(ctx, owner)
	if svcErr != nil {
		return &ErrorInternalServerError
	}
	if ownerNode.ProductID != upstreamNode.ProductID {
		return serviceerror.FieldServiceError(ErrorCrossProductReference, "source.nodeId", "")
	}
	return nil
}

// checkCycle rejects the binding when the slot's node is already upstream of the referenced node.
// The binding being replaced is left out of the graph.
func (ps *parameterBindingService) checkCycle(ctx context.Context, binding Binding, owner string,
	existing []Binding) error {
	if !binding.Source.IsUpstream() {
		return nil
	}

	graph := dependency.NewGraph()
	for _, b := range existing {
		if !b.Source.IsUpstream() || b.SlotID == binding.SlotID {
			continue
		}
		def, exists, svcErr := ps.apiDefinitionService.SlotExists(ctx, b.SlotID)
		if svcErr != nil {
			return errors.New("failed to resolve the node of slot " + b.SlotID + ": " + svcErr.ErrorDescription)
		}
		if !exists {
			continue
		}
		graph.AddEdge(b.Source.NodeID, def.NodeID)
	}

	if graph.WouldCycle(binding.Source.NodeID, owner) {
		return errCyclicBinding
	}
	return nil
}

// normalizeSource validates the source and clears the fields that do not belong to its type.
func normalizeSource(source *Source) *serviceerror.ServiceError {
	source.Type = SourceType(strings.ToUpper(strings.TrimSpace(string(source.Type))))

	switch source.Type {
	case SourceTypeLiteral:
		if source.Value == nil {
			return serviceerror.FieldServiceError(ErrorInvalidSource, "source.value",
				"A literal binding requires a value")
		}
		*source = Source{Type: SourceTypeLiteral, Value: source.Value}
	case SourceTypeCallerInput:
		key := strings.TrimSpace(source.Key)
		if key == "" {
			return serviceerror.FieldServiceError(ErrorInvalidSource, "source.key",
				"A caller input binding requires a key")
		}
		*source = Source{Type: SourceTypeCallerInput, Key: key}
	case SourceTypeUpstreamResponse:
		nodeID := strings.TrimSpace(source.NodeID)
		fieldPath := strings.TrimSpace(source.FieldPath)
		if nodeID == "" {
			return serviceerror.FieldServiceError(ErrorInvalidSource, "source.nodeId",
				"An upstream response binding requires a node ID")
		}
		if fieldPath == "" {
			return serviceerror.FieldServiceError(ErrorInvalidSource, "source.fieldPath",
				"An upstream response binding requires a field path")
		}
		*source = Source{Type: SourceTypeUpstreamResponse, NodeID: nodeID, FieldPath: fieldPath}
	default:
		return serviceerror.FieldServiceError(ErrorInvalidSource, "source.type",
			"The source type must be LITERAL, CALLER_INPUT or UPSTREAM_RESPONSE")
	}
	return nil
}
