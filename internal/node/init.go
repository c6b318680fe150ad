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

	"github.com/asgardeo/eligibility/internal/system/identity"
	"github.com/asgardeo/eligibility/internal/system/middleware"
)

// Initialize creates the node service and registers its routes.
func Initialize(mux *http.ServeMux) NodeServiceInterface {
	nodeService := newNodeService()
	registerRoutes(mux, newNodeHandler(nodeService))
	return nodeService
}

func registerRoutes(mux *http.ServeMux, nodeHandler *nodeHandler) {
	opts := middleware.CORSOptions{
		AllowedMethods:   "GET, POST",
		AllowedHeaders:   middleware.DefaultAllowedHeaders,
		AllowCredentials: true,
	}
	mux.HandleFunc(middleware.WithCORS("POST /api/nodes",
		identity.RequireUser(nodeHandler.HandleNodePostRequest), opts))
	mux.HandleFunc(middleware.WithCORS("GET /api/nodes",
		identity.RequireTenant(nodeHandler.HandleNodeListRequest), opts))
	mux.HandleFunc(middleware.WithCORS("GET /api/nodes/{id}",
		identity.RequireTenant(nodeHandler.HandleNodeGetRequest), opts))
	middleware.HandlePreflight(mux, opts, "/api/nodes", "/api/nodes/{id}")
}
