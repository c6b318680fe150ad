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

package node

import (
	"net/http"

	"github.com/asgardeo/eligibility/internal/system/error/serviceerror"
	sysutils "github.com/asgardeo/eligibility/internal/system/utils"
)

// nodeHandler serves the node registry endpoints.
type nodeHandler struct {
	nodeService NodeServiceInterface
}

func newNodeHandler(nodeService NodeServiceInterface) *nodeHandler {
	return &nodeHandler{
		nodeService: nodeService,
	}
}

// HandleNodePostRequest handles the create node request.
func (nh *nodeHandler) HandleNodePostRequest(w http.ResponseWriter, r *http.Request) {
	req, err := sysutils.DecodeJSONBody[nodeRequest](r)
	if err != nil {
		sysutils.WriteServiceErrorResponse(w, serviceerror.CustomServiceError(ErrorInvalidRequestFormat, err.Error()),
			http.StatusBadRequest)
		return
	}

	isCritical := true
	if req.IsCritical != nil {
		isCritical = *req.IsCritical
	}

	created, svcErr := nh.nodeService.CreateNode(r.Context(), &Node{
		ProductID:  sysutils.SanitizeString(req.ProductID),
		Name:       sysutils.SanitizeString(req.Name),
		Position:   req.Position,
		IsCritical: isCritical,
	})
	if svcErr != nil {
		writeServiceErrorResponse(w, svcErr)
		return
	}

	sysutils.WriteSuccessResponse(w, http.StatusCreated, created, "Node created")
}

// HandleNodeListRequest handles the list nodes of a product request.
func (nh *nodeHandler) HandleNodeListRequest(w http.ResponseWriter, r *http.Request) {
	nodes, svcErr := nh.nodeService.GetNodesByProduct(r.Context(),
		sysutils.SanitizeString(r.URL.Query().Get("productId")))
	if svcErr != nil {
		writeServiceErrorResponse(w, svcErr)
		return
	}

	sysutils.WriteSuccessResponse(w, http.StatusOK, nodes, "")
}

// HandleNodeGetRequest handles the get node request.
func (nh *nodeHandler) HandleNodeGetRequest(w http.ResponseWriter, r *http.Request) {
	node, svcErr := nh.nodeService.GetNode(r.Context(), r.PathValue("id"))
	if svcErr != nil {
		writeServiceErrorResponse(w, svcErr)
		return
	}

	sysutils.WriteSuccessResponse(w, http.StatusOK, node, "")
}

func writeServiceErrorResponse(w http.ResponseWriter, svcErr *serviceerror.ServiceError) {
	statusCode := http.StatusInternalServerError
	if svcErr.Type == serviceerror.ClientErrorType {
		statusCode = http.StatusBadRequest
		if svcErr.Code == ErrorNodeNotFound.Code {
			statusCode = http.StatusNotFound
		}
	}
	sysutils.WriteServiceErrorResponse(w, svcErr, statusCode)
}
