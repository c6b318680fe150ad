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
	"net/http"

	"github.com/asgardeo/eligibility/internal/system/error/serviceerror"
	"github.com/asgardeo/eligibility/internal/system/identity"
	sysutils "github.com/asgardeo/eligibility/internal/system/utils"
)

type parameterBindingHandler struct {
	service ParameterBindingServiceInterface
}

func newParameterBindingHandler(service ParameterBindingServiceInterface) *parameterBindingHandler {
	return &parameterBindingHandler{
		service: service,
	}
}

// HandleBindingListRequest lists the bindings of the caller's tenant.
func (ph *parameterBindingHandler) HandleBindingListRequest(w http.ResponseWriter, r *http.Request) {
	bindings, svcErr := ph.service.GetAllBindings(r.Context(), identity.GetTenantID(r.Context()))
	if svcErr != nil {
		writeServiceErrorResponse(w, svcErr)
		return
	}
	sysutils.WriteSuccessResponse(w, http.StatusOK, bindings, "")
}

// HandleBindingPostRequest saves a binding for the caller's tenant.
func (ph *parameterBindingHandler) HandleBindingPostRequest(w http.ResponseWriter, r *http.Request) {
	req, err := sysutils.DecodeJSONBody[bindingRequest](r)
	if err != nil {
		sysutils.WriteServiceErrorResponse(w, serviceerror.CustomServiceError(ErrorInvalidRequestFormat, err.Error()),
			http.StatusBadRequest)
		return
	}

	saved, svcErr := ph.service.SaveBinding(r.Context(), identity.GetTenantID(r.Context()), Binding{
		SlotID:        sysutils.SanitizeString(req.SlotID),
		Source:        req.Source,
		UpdatedBy:     identity.GetUserID(r.Context()),
		UpdatedByName: identity.GetUserName(r.Context()),
	})
	if svcErr != nil {
		writeServiceErrorResponse(w, svcErr)
		return
	}
	sysutils.WriteSuccessResponse(w, http.StatusOK, saved, "Parameter binding saved")
}

func writeServiceErrorResponse(w http.ResponseWriter, svcErr *serviceerror.ServiceError) {
	statusCode := http.StatusInternalServerError
	if svcErr.Type == serviceerror.ClientErrorType {
		statusCode = http.StatusBadRequest
	}
	sysutils.WriteServiceErrorResponse(w, svcErr, statusCode)
}
