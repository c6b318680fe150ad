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
package orchestrator

import (
	"net/http"

	"github.com/asgardeo/eligibility/internal/apidefinition"
	"github.com/asgardeo/eligibility/internal/execution/model"
	"github.com/asgardeo/eligibility/internal/system/error/apierror"
	"github.com/asgardeo/eligibility/internal/system/error/serviceerror"
	"github.com/asgardeo/eligibility/internal/system/identity"
	sysutils "github.com/asgardeo/eligibility/internal/system/utils"
)

type orchestratorHandler struct {
	service OrchestratorInterface
}

func newOrchestratorHandler(service OrchestratorInterface) *orchestratorHandler {
	return &orchestratorHandler{
		service: service,
	}
}

// HandleRESTExecuteRequest invokes the REST API of a node.
func (oh *orchestratorHandler) HandleRESTExecuteRequest(w http.ResponseWriter, r *http.Request) {
	oh.handleExecuteRequest(w, r, apidefinition.ProtocolREST)
}

// HandleSOAPExecuteRequest invokes the SOAP API of a node.
func (oh *orchestratorHandler) HandleSOAPExecuteRequest(w http.ResponseWriter, r *http.Request) {
	oh.handleExecuteRequest(w, r, apidefinition.ProtocolSOAP)
}

func (oh *orchestratorHandler) handleExecuteRequest(w http.ResponseWriter, r *http.Request,
	protocol apidefinition.Protocol) {
	req, err := sysutils.DecodeJSONBody[executeRequest](r)
	if err != nil {
		sysutils.WriteServiceErrorResponse(w, serviceerror.CustomServiceError(ErrorInvalidRequestFormat, err.Error()),
			http.StatusBadRequest)
		return
	}

	record, svcErr := oh.service.ExecuteNode(r.Context(), identity.GetTenantID(r.Context()),
		sysutils.SanitizeString(req.NodeID), protocol, req.KeyValues)
	if svcErr != nil {
		writeServiceErrorResponse(w, svcErr)
		return
	}
	sysutils.WriteJSONResponse(w, http.StatusOK, apierror.Envelope{
		IsSuccess: record.IsSuccess,
		Data:      record,
		Message:   record.FailureReason,
	})
}

// HandleValidateProductRequest validates a product against the caller key values in the body.
func (oh *orchestratorHandler) HandleValidateProductRequest(w http.ResponseWriter, r *http.Request) {
	keyValues := map[string]model.Value{}
	if r.ContentLength != 0 {
		decoded, err := sysutils.DecodeJSONBody[map[string]model.Value](r)
		if err != nil {
			sysutils.WriteServiceErrorResponse(w,
				serviceerror.CustomServiceError(ErrorInvalidRequestFormat, err.Error()), http.StatusBadRequest)
			return
		}
		if *decoded != nil {
			keyValues = *decoded
		}
	}

	result, svcErr := oh.service.ValidateProduct(r.Context(), identity.GetTenantID(r.Context()),
		identity.GetUserID(r.Context()), sysutils.SanitizeString(r.URL.Query().Get("productId")), keyValues)
	if svcErr != nil {
		writeServiceErrorResponse(w, svcErr)
		return
	}
	sysutils.WriteJSONResponse(w, http.StatusOK, apierror.Envelope{
		IsSuccess: result.IsSuccess,
		Data:      result,
		Message:   result.FailureReason,
	})
}

// HandleExecutionGetRequest returns the persisted records of an execution.
func (oh *orchestratorHandler) HandleExecutionGetRequest(w http.ResponseWriter, r *http.Request) {
	records, svcErr := oh.service.GetExecutionRecords(r.Context(), identity.GetTenantID(r.Context()),
		r.PathValue("id"))
	if svcErr != nil {
		writeServiceErrorResponse(w, svcErr)
		return
	}
	sysutils.WriteSuccessResponse(w, http.StatusOK, records, "")
}

func writeServiceErrorResponse(w http.ResponseWriter, svcErr *serviceerror.ServiceError) {
	statusCode := http.StatusInternalServerError
	if svcErr.Type == serviceerror.ClientErrorType {
		statusCode = http.StatusBadRequest
		if svcErr.Code == ErrorExecutionNotFound.Code || svcErr.Code == ErrorProductNotFound.Code ||
			svcErr.Code == ErrorAPIDefinitionNotFound.Code {
			statusCode = http.StatusNotFound
		}
	}
	sysutils.WriteServiceErrorResponse(w, svcErr, statusCode)
}
