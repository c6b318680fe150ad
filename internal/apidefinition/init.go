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

	"github.com/asgardeo/eligibility/internal/node"
	"github.com/asgardeo/eligibility/internal/system/identity"
	"github.com/asgardeo/eligibility/internal/system/middleware"
)

// Initialize creates the registry service and registers its routes.
func Initialize(mux *http.ServeMux, nodeService node.NodeServiceInterface) APIDefinitionServiceInterface {
	service := newAPIDefinitionService(nodeService)
	registerRoutes(mux, newAPIDefinitionHandler(service))
	return service
}

func registerRoutes(mux *http.ServeMux, handler *apiDefinitionHandler) {
	opts := middleware.CORSOptions{
		AllowedMethods:   "GET, POST",
		AllowedHeaders:   middleware.DefaultAllowedHeaders,
		AllowCredentials: true,
	}

	mux.HandleFunc(middleware.WithCORS("POST /api/apidefinitions",
		identity.RequireUser(handler.HandlePublishRequest), opts))
	mux.HandleFunc(middleware.WithCORS("GET /api/apidefinitions/{nodeId}",
		identity.RequireTenant(handler.HandleGetActiveRequest), opts))

	// Both REST listing routes are served by the same handler.
	mux.HandleFunc(middleware.WithCORS("GET /api/apiexecute/getrestapis",
		identity.RequireTenant(handler.HandleListRESTRequest), opts))
	mux.HandleFunc(middleware.WithCORS("GET /api/execute/getrestapis",
		identity.RequireTenant(handler.HandleListRESTRequest), opts))
	mux.HandleFunc(middleware.WithCORS("GET /api/execute/getsoapapis",
		identity.RequireTenant(handler.HandleListSOAPRequest), opts))

	middleware.HandlePreflight(mux, opts, "/api/apidefinitions", "/api/apidefinitions/{nodeId}",
		"/api/apiexecute/getrestapis", "/api/execute/getrestapis", "/api/execute/getsoapapis")
}
