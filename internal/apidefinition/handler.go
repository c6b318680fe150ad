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
	"net/http"

	"github.com/asgardeo/eligibility/internal/system/error/serviceerror"
	sysutils "github.com/asgardeo/eligibility/internal/system/utils"
)

// apiDefinitionHandler serves the registry endpoints.
type apiDefinitionHandler struct {
	service APIDefinitionServiceInterface
}

func newAPIDefinitionHandler(service APIDefinitionServiceInterface) *apiDefinitionHandler {
	return &apiDefinitionHandler{
		service: service,
	}
}

// HandlePublishRequest handles the publish API definition request.
func (ah *apiDefinitionHandler) HandlePublishRequest(w http.ResponseWriter, r *http.Request) {
	req, err := sysutils.DecodeJSONBody[apiDefinitionRequest](r)
	if err != nil {
		sysutils.WriteServiceErrorResponse(w, serviceerror.CustomServiceError(ErrorInvalidRequestFormat, err.Error()),
			http.StatusBadRequest)
		return
	}

	headers := make(map[string]string, len(req.Headers))
	for k, v := range req.Headers {
		headers[sysutils.SanitizeString(k)] = v
	}

	published, svcErr := ah.service.PublishDefinition(r.Context(), &APIDefinition{
		NodeID:             sysutils.SanitizeString(req.NodeID),
		Protocol:           Protocol(req.Protocol),
		EndpointURI:        sysutils.SanitizeString(req.EndpointURI),
		HTTPMethod:         req.HTTPMethod,
		SOAPAction:         sysutils.SanitizeString(req.SOAPAction),
		EnvelopeTemplate:   req.EnvelopeTemplate,
		Operation:          sysutils.SanitizeString(req.Operation),
		Namespace:          sysutils.SanitizeString(req.Namespace),
		Headers:            headers,
		DeclaredParameters: req.DeclaredParameters,
		ResponseShape:      req.ResponseShape,
	})
	if svcErr != nil {
		writeServiceErrorResponse(w, svcErr)
		return
	}

	sysutils.WriteSuccessResponse(w, http.StatusCreated, published, "API definition published")
}

// HandleGetActiveRequest handles the get active definition of a node request.
func (ah *apiDefinitionHandler) HandleGetActiveRequest(w http.ResponseWriter, r *http.Request) {
	def, svcErr := ah.service.GetDefinition(r.Context(), r.PathValue("nodeId"))
	if svcErr != nil {
		writeServiceErrorResponse(w, svcErr)
		return
	}
	sysutils.WriteSuccessResponse(w, http.StatusOK, def, "")
}

// HandleListRESTRequest lists the REST definitions of a node.
func (ah *apiDefinitionHandler) HandleListRESTRequest(w http.ResponseWriter, r *http.Request) {
	ah.handleList(w, r, ProtocolREST)
}

// HandleListSOAPRequest lists the SOAP definitions of a node.
func (ah *apiDefinitionHandler) HandleListSOAPRequest(w http.ResponseWriter, r *http.Request) {
	ah.handleList(w, r, ProtocolSOAP)
}

func (ah *apiDefinitionHandler) handleList(w http.ResponseWriter, r *http.Request, protocol Protocol) {
	nodeID := sysutils.SanitizeString(r.URL.Query().Get("nodeId"))

	defs, svcErr := ah.service.GetDefinitionsByNode(r.Context(), nodeID, protocol)
	if svcErr != nil {
		writeServiceErrorResponse(w, svcErr)
		return
	}
	sysutils.WriteSuccessResponse(w, http.StatusOK, defs, "")
}

func writeServiceErrorResponse(w http.ResponseWriter, svcErr *serviceerror.ServiceError) {
	statusCode := http.StatusInternalServerError
	if svcErr.Type == serviceerror.ClientErrorType {
		statusCode = http.StatusBadRequest
		if svcErr.Code == ErrorAPIDefinitionNotFound.Code {
			statusCode = http.StatusNotFound
		}
	}
	sysutils.WriteServiceErrorResponse(w, svcErr, statusCode)
}
