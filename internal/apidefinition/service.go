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

// Package apidefinition is the registry mapping nodes to the external REST or SOAP API that backs them.
package apidefinition

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/asgardeo/eligibility/internal/node"
	"github.com/asgardeo/eligibility/internal/system/error/serviceerror"
	"github.com/asgardeo/eligibility/internal/system/log"
	"github.com/asgardeo/eligibility/internal/system/utils"
)

// EnvelopePlaceholderPattern matches {{name}} placeholders in a SOAP envelope template.
var EnvelopePlaceholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_\-]*)\s*\}\}`)

var slotNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_\-]*$`)

// APIDefinitionServiceInterface defines the registry operations.
type APIDefinitionServiceInterface interface {
	GetDefinition(ctx context.Context, nodeID string) (*APIDefinition, *serviceerror.ServiceError)
	GetDefinitionsByNode(ctx context.Context, nodeID string, protocol Protocol) ([]APIDefinition,
		*serviceerror.ServiceError)
	PublishDefinition(ctx context.Context, def *APIDefinition) (*APIDefinition, *serviceerror.ServiceError)
	SlotExists(ctx context.Context, slotID string) (*APIDefinition, bool, *serviceerror.ServiceError)
}

// apiDefinitionService is the default implementation of APIDefinitionServiceInterface.
type apiDefinitionService struct {
	store       apiDefinitionStoreInterface
	nodeService node.NodeServiceInterface
}

// newAPIDefinitionService creates the registry service over a cached store.
func newAPIDefinitionService(nodeService node.NodeServiceInterface) APIDefinitionServiceInterface {
	return &apiDefinitionService{
		store:       newCachedBackedAPIDefinitionStore(newAPIDefinitionStore()),
		nodeService: nodeService,
	}
}

// GetDefinition returns the active definition of the node.
func (as *apiDefinitionService) GetDefinition(ctx context.Context, nodeID string) (*APIDefinition,
	*serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "APIDefinitionService"))

	if strings.TrimSpace(nodeID) == "" {
		return nil, &ErrorInvalidNodeID
	}

	def, err := as.store.GetActiveDefinition(ctx, nodeID)
	if err != nil {
		if errors.Is(err, ErrAPIDefinitionNotFound) {
			return nil, &ErrorAPIDefinitionNotFound
		}
		logger.Error("Failed to get API definition", log.String(log.LoggerKeyNodeID, nodeID), log.Error(err))
		return nil, &ErrorInternalServerError
	}
	return def, nil
}

// GetDefinitionsByNode lists every version of the node's definitions for the protocol.
func (as *apiDefinitionService) GetDefinitionsByNode(ctx context.Context, nodeID string,
	protocol Protocol) ([]APIDefinition, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "APIDefinitionService"))

	if strings.TrimSpace(nodeID) == "" {
		return nil, &ErrorInvalidNodeID
	}
	if protocol != ProtocolREST && protocol != ProtocolSOAP {
		return nil, &ErrorInvalidProtocol
	}

	defs, err := as.store.GetDefinitionsByNode(ctx, nodeID, protocol)
	if err != nil {
		logger.Error("Failed to list API definitions", log.String(log.LoggerKeyNodeID, nodeID), log.Error(err))
		return nil, &ErrorInternalServerError
	}
	return defs, nil
}

// SlotExists returns the active definition declaring the slot.
func (as *apiDefinitionService) SlotExists(ctx context.Context, slotID string) (*APIDefinition, bool,
	*serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "APIDefinitionService"))

	nodeID, err := as.store.GetNodeIDBySlot(ctx, slotID)
	if err != nil {
		if errors.Is(err, ErrAPIDefinitionNotFound) {
			return nil, false, nil
		}
		logger.Error("Failed to resolve parameter slot", log.String("slotId", slotID), log.Error(err))
		return nil, false, &ErrorInternalServerError
	}

	def, svcErr := as.GetDefinition(ctx, nodeID)
	if svcErr != nil {
		if svcErr.Code == ErrorAPIDefinitionNotFound.Code {
			return nil, false, nil
		}
		return nil, false, svcErr
	}
	if _, ok := def.GetSlot(slotID); !ok {
		return nil, false, nil
	}
	return def, true, nil
}

// PublishDefinition validates def and stores it as the next version of its node.
func (as *apiDefinitionService) PublishDefinition(ctx context.Context, def *APIDefinition) (*APIDefinition,
	*serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "APIDefinitionService"))

	if def == nil {
		return nil, &ErrorInvalidRequestFormat
	}
	if strings.TrimSpace(def.NodeID) == "" {
		return nil, serviceerror.FieldServiceError(ErrorInvalidNodeID, "nodeId", "")
	}
	if _, svcErr := as.nodeService.GetNode(ctx, def.NodeID); svcErr != nil {
		if svcErr.Code == node.ErrorNodeNotFound.Code {
			return nil, serviceerror.FieldServiceError(ErrorNodeNotFound, "nodeId", "")
		}
		return nil, &ErrorInternalServerError
	}
	if svcErr := validateDefinition(def); svcErr != nil {
		return nil, svcErr
	}

	previous, err := as.store.GetActiveDefinition(ctx, def.NodeID)
	if err != nil && !errors.Is(err, ErrAPIDefinitionNotFound) {
		logger.Error("Failed to load the active API definition", log.String(log.LoggerKeyNodeID, def.NodeID),
			log.Error(err))
		return nil, &ErrorInternalServerError
	}
	provided, svcErr := assignSlotIDs(def, previous)
	if svcErr != nil {
		return nil, svcErr
	}
	for _, slotID := range provided {
		owner, err := as.store.GetNodeIDBySlot(ctx, slotID)
		if err != nil && !errors.Is(err, ErrAPIDefinitionNotFound) {
			logger.Error("Failed to check parameter slot ownership", log.String("slotId", slotID), log.Error(err))
			return nil, &ErrorInternalServerError
		}
		if err == nil && owner != def.NodeID {
			return nil, serviceerror.FieldServiceError(ErrorInvalidParameterSlot, "declaredParameters",
				"The slot ID "+slotID+" belongs to another node")
		}
	}

	def.ID = utils.GenerateUUID()
	def.CreatedAt = time.Now().UTC()
	if err := as.store.PublishDefinition(ctx, def); err != nil {
		logger.Error("Failed to publish API definition", log.String(log.LoggerKeyNodeID, def.NodeID),
			log.Error(err))
		return nil, &ErrorInternalServerError
	}

	logger.Info("API definition published", log.String(log.LoggerKeyNodeID, def.NodeID),
		log.Int("version", def.Version), log.String("protocol", string(def.Protocol)))
	return def, nil
}

// validateDefinition checks def and fills in the protocol defaults.
func validateDefinition(def *APIDefinition) *serviceerror.ServiceError {
	def.Protocol = Protocol(strings.ToUpper(strings.TrimSpace(string(def.Protocol))))
	if def.Protocol != ProtocolREST && def.Protocol != ProtocolSOAP {
		return serviceerror.FieldServiceError(ErrorInvalidProtocol, "protocol", "")
	}

	endpoint, err := url.Parse(def.EndpointURI)
	if err != nil || (endpoint.Scheme != "http" && endpoint.Scheme != "https") || endpoint.Host == "" {
		return serviceerror.FieldServiceError(ErrorInvalidEndpointURI, "endpointUri", "")
	}

	def.HTTPMethod = strings.ToUpper(strings.TrimSpace(def.HTTPMethod))
	switch def.Protocol {
	case ProtocolREST:
		switch def.HTTPMethod {
		case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			return serviceerror.FieldServiceError(ErrorInvalidHTTPMethod, "httpMethod", "")
		}
	case ProtocolSOAP:
		if def.HTTPMethod != "" && def.HTTPMethod != http.MethodPost {
			return serviceerror.FieldServiceError(ErrorInvalidHTTPMethod, "httpMethod",
				"SOAP calls are always sent with POST")
		}
		def.HTTPMethod = http.MethodPost
	}

	for key := range def.Headers {
		if strings.TrimSpace(key) == "" {
			return serviceerror.FieldServiceError(ErrorInvalidRequestFormat, "headers", "Header names must not be empty")
		}
	}

	names := make(map[string]struct{}, len(def.DeclaredParameters))
	for i := range def.DeclaredParameters {
		slot := &def.DeclaredParameters[i]
		field := fmt.Sprintf("declaredParameters[%d]", i)

		if !slotNamePattern.MatchString(slot.Name) {
			return serviceerror.FieldServiceError(ErrorInvalidParameterSlot, field+".name",
				"Parameter names must start with a letter or underscore and contain only letters, digits, '_' or '-'")
		}
		if _, dup := names[slot.Name]; dup {
			return serviceerror.FieldServiceError(ErrorInvalidParameterSlot, field+".name",
				"Parameter names must be unique")
		}
		names[slot.Name] = struct{}{}

		slot.DataType = DataType(strings.ToUpper(string(slot.DataType)))
		switch slot.DataType {
		case DataTypeInt, DataTypeString, DataTypeDecimal, DataTypeBool:
		default:
			return serviceerror.FieldServiceError(ErrorInvalidParameterSlot, field+".dataType",
				"The data type must be INT, STRING, DECIMAL or BOOL")
		}

		if svcErr := validateLocation(def, slot, field); svcErr != nil {
			return svcErr
		}
	}

	if def.Protocol == ProtocolSOAP {
		return validateEnvelope(def, names)
	}
	return nil
}

func validateLocation(def *APIDefinition, slot *ParameterSlot, field string) *serviceerror.ServiceError {
	if def.Protocol == ProtocolSOAP {
		slot.Location = ""
		return nil
	}

	slot.Location = ParameterLocation(strings.ToUpper(string(slot.Location)))
	if slot.Location == "" {
		if def.HTTPMethod == http.MethodGet || def.HTTPMethod == http.MethodDelete {
			slot.Location = LocationQuery
		} else {
			slot.Location = LocationBody
		}
	}

	switch slot.Location {
	case LocationQuery, LocationHeader:
	case LocationBody:
		if def.HTTPMethod == http.MethodGet {
			return serviceerror.FieldServiceError(ErrorInvalidParameterSlot, field+".location",
				"GET requests cannot carry body parameters")
		}
	case LocationPath:
		if !slot.Required {
			return serviceerror.FieldServiceError(ErrorInvalidParameterSlot, field+".required",
				"Path parameters must be required")
		}
		if !strings.Contains(def.EndpointURI, "{"+slot.Name+"}") {
			return serviceerror.FieldServiceError(ErrorInvalidParameterSlot, field+".location",
				"The endpoint URI has no {"+slot.Name+"} segment")
		}
	default:
		return serviceerror.FieldServiceError(ErrorInvalidParameterSlot, field+".location",
			"The location must be QUERY, BODY, PATH or HEADER")
	}
	return nil
}

func validateEnvelope(def *APIDefinition, names map[string]struct{}) *serviceerror.ServiceError {
	if strings.TrimSpace(def.EnvelopeTemplate) == "" {
		if !slotNamePattern.MatchString(def.Operation) {
			return serviceerror.FieldServiceError(ErrorInvalidEnvelopeTemplate, "operation",
				"An operation name is required when no envelope template is given")
		}
		return nil
	}

	for _, match := range EnvelopePlaceholderPattern.FindAllStringSubmatch(def.EnvelopeTemplate, -1) {
		if _, ok := names[match[1]]; !ok {
			return serviceerror.FieldServiceError(ErrorInvalidEnvelopeTemplate, "envelopeTemplate",
				"The placeholder {{"+match[1]+"}} does not match a declared parameter")
		}
	}
	return nil
}

// assignSlotIDs keeps the slot ids of the previous version for parameters with the same name so that
// existing bindings keep working, and generates ids for new parameters. It returns the ids that were
// supplied by the caller and not carried over from the previous version.
func assignSlotIDs(def *APIDefinition, previous *APIDefinition) ([]string, *serviceerror.ServiceError) {
	previousIDs := map[string]string{}
	carried := map[string]struct{}{}
	if previous != nil {
		for _, slot := range previous.DeclaredParameters {
			previousIDs[slot.Name] = slot.SlotID
			carried[slot.SlotID] = struct{}{}
		}
	}

	var provided []string
	seen := map[string]struct{}{}
	for i := range def.DeclaredParameters {
		slot := &def.DeclaredParameters[i]
		slot.SlotID = strings.TrimSpace(slot.SlotID)
		switch {
		case slot.SlotID != "":
			if _, ok := carried[slot.SlotID]; !ok {
				provided = append(provided, slot.SlotID)
			}
		case previousIDs[slot.Name] != "":
			slot.SlotID = previousIDs[slot.Name]
		default:
			slot.SlotID = utils.GenerateUUID()
		}
		if _, dup := seen[slot.SlotID]; dup {
			return nil, serviceerror.FieldServiceError(ErrorInvalidParameterSlot,
				fmt.Sprintf("declaredParameters[%d].slotId", i), "Slot IDs must be unique")
		}
		seen[slot.SlotID] = struct{}{}
	}
	return provided, nil
}
