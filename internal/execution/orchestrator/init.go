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
	"github.com/asgardeo/eligibility/internal/execution/executor"
	"github.com/asgardeo/eligibility/internal/execution/responsestore"
	"github.com/asgardeo/eligibility/internal/node"
	"github.com/asgardeo/eligibility/internal/parameterbinding"
	"github.com/asgardeo/eligibility/internal/system/config"
	syshttp "github.com/asgardeo/eligibility/internal/system/http"
	"github.com/asgardeo/eligibility/internal/system/identity"
	"github.com/asgardeo/eligibility/internal/system/middleware"
)

// Initialize creates the orchestrator and registers the execution routes.
func Initialize(mux *http.ServeMux, nodeService node.NodeServiceInterface,
	apiDefinitionService apidefinition.APIDefinitionServiceInterface,
	bindingService parameterbinding.ParameterBindingServiceInterface) OrchestratorInterface {
	cfg := config.GetServerRuntime().Config.Execution
	service := newOrchestrator(nodeService, apiDefinitionService, bindingService,
		executor.NewFactory(syshttp.GetHTTPClient(), executor.PolicyFromConfig(cfg)),
		responsestore.NewResponseStore(), cfg)
	registerRoutes(mux, newOrchestratorHandler(service))
	return service
}

func registerRoutes(mux *http.ServeMux, handler *orchestratorHandler) {
	opts := middleware.CORSOptions{
		AllowedMethods:   "GET, POST",
		AllowedHeaders:   middleware.DefaultAllowedHeaders,
		AllowCredentials: true,
	}

	mux.HandleFunc(middleware.WithCORS("POST /api/execute/restapi",
		identity.RequireTenant(handler.HandleRESTExecuteRequest), opts))
	mux.HandleFunc(middleware.WithCORS("POST /api/execute/soapapi",
		identity.RequireTenant(handler.HandleSOAPExecuteRequest), opts))
	mux.HandleFunc(middleware.WithCORS("POST /api/eligibilityaPI/validateproductApi",
		identity.RequireTenant(handler.HandleValidateProductRequest), opts))
	mux.HandleFunc(middleware.WithCORS("GET /api/eligibilityaPI/executions/{id}",
		identity.RequireTenant(handler.HandleExecutionGetRequest), opts))

	middleware.HandlePreflight(mux, opts, "/api/execute/restapi", "/api/execute/soapapi",
		"/api/eligibilityaPI/validateproductApi", "/api/eligibilityaPI/executions/{id}")
}
