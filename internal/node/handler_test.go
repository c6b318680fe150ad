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
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/eligibility/internal/system/config"
	"github.com/asgardeo/eligibility/internal/system/identity"
)

type NodeHandlerTestSuite struct {
	suite.Suite
	store *nodeStoreMock
	mux   *http.ServeMux
}

func TestNodeHandlerSuite(t *testing.T) {
	suite.Run(t, new(NodeHandlerTestSuite))
}

func (suite *NodeHandlerTestSuite) SetupTest() {
	config.ResetServerRuntime()
	_ = config.InitializeServerRuntime("", &config.Config{})

	suite.store = &nodeStoreMock{}
	suite.mux = http.NewServeMux()
	registerRoutes(suite.mux, newNodeHandler(&nodeService{store: suite.store}))
}

func (suite *NodeHandlerTestSuite) TearDownTest() {
	config.ResetServerRuntime()
}

func (suite *NodeHandlerTestSuite) serve(req *http.Request) (*httptest.ResponseRecorder, map[string]interface{}) {
	rr := httptest.NewRecorder()
	identity.Middleware(suite.mux).ServeHTTP(rr, req)

	var body map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(rr.Body.Bytes(), &body))
	return rr, body
}

func (suite *NodeHandlerTestSuite) TestCreateNodeDefaultsToCritical() {
	suite.store.On("CreateNode", mock.Anything, mock.MatchedBy(func(n Node) bool {
		return n.IsCritical && n.Name == "Income"
	})).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/nodes",
		strings.NewReader(`{"productId":"p1","name":"Income","position":1}`))
	req.Header.Set("X-Tenant-Id", "t1")
	req.Header.Set("X-User-Id", "u1")

	rr, body := suite.serve(req)
	assert.Equal(suite.T(), http.StatusCreated, rr.Code)
	assert.Equal(suite.T(), true, body["isSuccess"])
	assert.Equal(suite.T(), true, body["data"].(map[string]interface{})["isCritical"])
}

func (suite *NodeHandlerTestSuite) TestCreateNodeRequiresUser() {
	req := httptest.NewRequest(http.MethodPost, "/api/nodes", strings.NewReader(`{}`))
	req.Header.Set("X-Tenant-Id", "t1")

	rr, body := suite.serve(req)
	assert.Equal(suite.T(), http.StatusUnauthorized, rr.Code)
	assert.Equal(suite.T(), false, body["isSuccess"])
}

func (suite *NodeHandlerTestSuite) TestCreateNodeBadBody() {
	req := httptest.NewRequest(http.MethodPost, "/api/nodes", strings.NewReader(`{"name":`))
	req.Header.Set("X-Tenant-Id", "t1")
	req.Header.Set("X-User-Id", "u1")

	rr, body := suite.serve(req)
	assert.Equal(suite.T(), http.StatusBadRequest, rr.Code)
	assert.Equal(suite.T(), ErrorInvalidRequestFormat.Code, body["code"])
}

func (suite *NodeHandlerTestSuite) TestListNodes() {
	suite.store.On("GetNodesByProduct", mock.Anything, "p1").
		Return([]Node{{ID: "n1", ProductID: "p1"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/nodes?productId=p1", nil)
	req.Header.Set("X-Tenant-Id", "t1")

	rr, body := suite.serve(req)
	assert.Equal(suite.T(), http.StatusOK, rr.Code)
	assert.Len(suite.T(), body["data"], 1)
}

func (suite *NodeHandlerTestSuite) TestGetNodeNotFound() {
	suite.store.On("GetNode", mock.Anything, "missing").Return(nil, ErrNodeNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/nodes/missing", nil)
	req = req.WithContext(context.Background())
	req.Header.Set("X-Tenant-Id", "t1")

	rr, body := suite.serve(req)
	assert.Equal(suite.T(), http.StatusNotFound, rr.Code)
	assert.Equal(suite.T(), ErrorNodeNotFound.Code, body["code"])
}
