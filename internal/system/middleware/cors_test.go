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

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/eligibility/internal/system/config"
)

type CORSTestSuite struct {
	suite.Suite
}

func TestCORSSuite(t *testing.T) {
	suite.Run(t, new(CORSTestSuite))
}

func (suite *CORSTestSuite) SetupTest() {
	config.ResetServerRuntime()
	_ = config.InitializeServerRuntime("", &config.Config{
		CORS: config.CORSConfig{AllowedOrigins: []string{"https://admin.example.com"}},
	})
}

func (suite *CORSTestSuite) TearDownTest() {
	config.ResetServerRuntime()
}

func (suite *CORSTestSuite) serve(origin string) *httptest.ResponseRecorder {
	opts := CORSOptions{
		AllowedMethods:   "GET, POST",
		AllowedHeaders:   "Content-Type, X-Tenant-Id",
		AllowCredentials: true,
	}
	pattern, handler := WithCORS("GET /api/parameterbinding", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, opts)
	assert.Equal(suite.T(), "GET /api/parameterbinding", pattern)

	req := httptest.NewRequest(http.MethodGet, "/api/parameterbinding", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func (suite *CORSTestSuite) TestAllowedOrigin() {
	rr := suite.serve("https://admin.example.com")

	assert.Equal(suite.T(), http.StatusOK, rr.Code)
	assert.Equal(suite.T(), "https://admin.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(suite.T(), "GET, POST", rr.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(suite.T(), "Content-Type, X-Tenant-Id", rr.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(suite.T(), "true", rr.Header().Get("Access-Control-Allow-Credentials"))
}

func (suite *CORSTestSuite) TestDisallowedOrigin() {
	rr := suite.serve("https://evil.example.com")

	assert.Equal(suite.T(), http.StatusOK, rr.Code)
	assert.Empty(suite.T(), rr.Header().Get("Access-Control-Allow-Origin"))
}

func (suite *CORSTestSuite) TestNoOrigin() {
	rr := suite.serve("")
	assert.Empty(suite.T(), rr.Header().Get("Access-Control-Allow-Origin"))
}

func (suite *CORSTestSuite) TestPreflight() {
	config.ResetServerRuntime()
	_ = config.InitializeServerRuntime("", &config.Config{
		CORS: config.CORSConfig{AllowedOrigins: []string{"https://admin.example.com"}, MaxAge: 600},
	})

	mux := http.NewServeMux()
	HandlePreflight(mux, CORSOptions{AllowedMethods: "GET, POST", AllowedHeaders: DefaultAllowedHeaders},
		"/api/nodes", "/api/nodes/{id}")

	for _, target := range []string{"/api/nodes", "/api/nodes/n1"} {
		req := httptest.NewRequest(http.MethodOptions, target, nil)
		req.Header.Set("Origin", "https://admin.example.com")
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)

		assert.Equal(suite.T(), http.StatusNoContent, rr.Code)
		assert.Equal(suite.T(), "600", rr.Header().Get("Access-Control-Max-Age"))
		assert.Equal(suite.T(), DefaultAllowedHeaders, rr.Header().Get("Access-Control-Allow-Headers"))
		assert.Equal(suite.T(), "Origin", rr.Header().Get("Vary"))
	}
}
