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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/eligibility/internal/apidefinition"
	"github.com/asgardeo/eligibility/internal/system/config"
	"github.com/asgardeo/eligibility/internal/system/identity"
	"github.com/asgardeo/eligibility/tests/mocks/apidefinitionmock"
	"github.com/asgardeo/eligibility/tests/mocks/nodemock"
)

type ParameterBindingHandlerTestSuite struct {
	suite.Suite
	store   *bindingStoreFake
	apiDefs *apidefinitionmock.APIDefinitionServiceMock
	mux     *http.ServeMux
}

func TestParameterBindingHandlerSuite(t *testing.T) {
	suite.Run(t, new(ParameterBindingHandlerTestSuite))
}

func (suite *ParameterBindingHandlerTestSuite) SetupTest() {
	config.ResetServerRuntime()
	_ = config.InitializeServerRuntime("", &config.Config{})

	suite.store = newBindingStoreFake()
	suite.apiDefs = &apidefinitionmock.APIDefinitionServiceMock{}
	suite.mux = http.NewServeMux()
	registerRoutes(suite.mux, newParameterBindingHandler(&parameterBindingService{
		store:                suite.store,
		apiDefinitionService: suite.apiDefs,
		nodeService:          &nodemock.NodeServiceMock{},
	}))
}

func (suite *ParameterBindingHandlerTestSuite) TearDownTest() {
	config.ResetServerRuntime()
}

func (suite *ParameterBindingHandlerTestSuite) serve(req *http.Request) (*httptest.ResponseRecorder,
	map[string]interface{}) {
	rr := httptest.NewRecorder()
	identity.Middleware(suite.mux).ServeHTTP(rr, req)

	var body map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(rr.Body.Bytes(), &body))
	return rr, body
}

func (suite *ParameterBindingHandlerTestSuite) TestSaveAndList() {
	suite.apiDefs.On("SlotExists", mock.Anything, "s1").
		Return(&apidefinition.APIDefinition{NodeID: "n1"}, true, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/parameterbinding",
		strings.NewReader(`{"slotId":"s1","source":{"type":"LITERAL","value":12.75}}`))
	req.Header.Set("X-Tenant-Id", "t1")
	req.Header.Set("X-User-Id", "u1")
	req.Header.Set("X-User-Name", "Ada")

	rr, body := suite.serve(req)
	require.Equal(suite.T(), http.StatusOK, rr.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(suite.T(), "t1", data["tenantId"])
	assert.Equal(suite.T(), "u1", data["updatedBy"])
	assert.Equal(suite.T(), "Ada", data["updatedByName"])
	assert.Equal(suite.T(), 12.75, data["source"].(map[string]interface{})["value"])

	req = httptest.NewRequest(http.MethodGet, "/api/parameterbinding", nil)
	req.Header.Set("X-Tenant-Id", "t1")
	rr, body = suite.serve(req)
	assert.Equal(suite.T(), http.StatusOK, rr.Code)
	assert.Len(suite.T(), body["data"], 1)

	req = httptest.NewRequest(http.MethodGet, "/api/parameterbinding", nil)
	req.Header.Set("X-Tenant-Id", "t2")
	_, body = suite.serve(req)
	assert.Len(suite.T(), body["data"], 0)
}

func (suite *ParameterBindingHandlerTestSuite) TestSaveRequiresUser() {
	req := httptest.NewRequest(http.MethodPost, "/api/parameterbinding", strings.NewReader(`{}`))
	req.Header.Set("X-Tenant-Id", "t1")

	rr, _ := suite.serve(req)
	assert.Equal(suite.T(), http.StatusUnauthorized, rr.Code)
}

func (suite *ParameterBindingHandlerTestSuite) TestListRequiresTenant() {
	rr, body := suite.serve(httptest.NewRequest(http.MethodGet, "/api/parameterbinding", nil))
	assert.Equal(suite.T(), http.StatusUnauthorized, rr.Code)
	assert.Equal(suite.T(), "IDN-1001", body["code"])
}

func (suite *ParameterBindingHandlerTestSuite) TestSaveRejectsCompositeLiteral() {
	req := httptest.NewRequest(http.MethodPost, "/api/parameterbinding",
		strings.NewReader(`{"slotId":"s1","source":{"type":"LITERAL","value":{"a":1}}}`))
	req.Header.Set("X-Tenant-Id", "t1")
	req.Header.Set("X-User-Id", "u1")

	rr, body := suite.serve(req)
	assert.Equal(suite.T(), http.StatusBadRequest, rr.Code)
	assert.Equal(suite.T(), ErrorInvalidRequestFormat.Code, body["code"])
}

func (suite *ParameterBindingHandlerTestSuite) TestSaveUnknownSlot() {
	suite.apiDefs.On("SlotExists", mock.Anything, "s9").Return(nil, false, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/parameterbinding",
		strings.NewReader(`{"slotId":"s9","source":{"type":"CALLER_INPUT","key":"income"}}`))
	req.Header.Set("X-Tenant-Id", "t1")
	req.Header.Set("X-User-Id", "u1")

	rr, body := suite.serve(req)
	assert.Equal(suite.T(), http.StatusBadRequest, rr.Code)
	assert.Equal(suite.T(), ErrorSlotNotFound.Code, body["code"])
}
