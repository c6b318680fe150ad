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
package healthcheck

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/eligibility/internal/system/config"
	serverconst "github.com/asgardeo/eligibility/internal/system/constants"
	"github.com/asgardeo/eligibility/internal/system/database/client"
	"github.com/asgardeo/eligibility/tests/mocks/databasemock"
)

type HealthCheckTestSuite struct {
	suite.Suite
	mock    sqlmock.Sqlmock
	service *healthCheckService
	mux     *http.ServeMux
}

func TestHealthCheckSuite(t *testing.T) {
	suite.Run(t, new(HealthCheckTestSuite))
}

func (suite *HealthCheckTestSuite) SetupTest() {
	config.ResetServerRuntime()
	_ = config.InitializeServerRuntime("", &config.Config{})

	db, sqlMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(suite.T(), err)
	suite.mock = sqlMock
	suite.service = &healthCheckService{
		dbProvider: databasemock.NewDBProviderMock(client.NewDBClient(db, "sqlite")),
	}
	suite.mux = http.NewServeMux()
	registerRoutes(suite.mux, newHealthCheckHandler(suite.service))
}

func (suite *HealthCheckTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	config.ResetServerRuntime()
}

func (suite *HealthCheckTestSuite) TestLiveness() {
	rr := httptest.NewRecorder()
	suite.mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health/liveness", nil))
	assert.Equal(suite.T(), http.StatusOK, rr.Code)
}

func (suite *HealthCheckTestSuite) TestReadinessUp() {
	suite.mock.ExpectQuery(queryConfigDBTable.Query).WillReturnRows(sqlmock.NewRows([]string{"NODE_ID"}))
	suite.mock.ExpectQuery(queryRuntimeDBTable.Query).WillReturnRows(sqlmock.NewRows([]string{"EXECUTION_ID"}))

	rr := httptest.NewRecorder()
	suite.mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health/readiness", nil))

	assert.Equal(suite.T(), http.StatusOK, rr.Code)
	var status ServerStatus
	require.NoError(suite.T(), json.Unmarshal(rr.Body.Bytes(), &status))
	assert.Equal(suite.T(), StatusUp, status.Status)
	assert.Len(suite.T(), status.ServiceStatus, 2)
}

func (suite *HealthCheckTestSuite) TestReadinessDownWhenQueryFails() {
	suite.mock.ExpectQuery(queryConfigDBTable.Query).WillReturnRows(sqlmock.NewRows([]string{"NODE_ID"}))
	suite.mock.ExpectQuery(queryRuntimeDBTable.Query).WillReturnError(errors.New("no such table"))

	rr := httptest.NewRecorder()
	suite.mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health/readiness", nil))

	assert.Equal(suite.T(), http.StatusServiceUnavailable, rr.Code)
	var status ServerStatus
	require.NoError(suite.T(), json.Unmarshal(rr.Body.Bytes(), &status))
	assert.Equal(suite.T(), StatusDown, status.Status)
	assert.Equal(suite.T(), StatusUp, status.ServiceStatus[0].Status)
	assert.Equal(suite.T(), StatusDown, status.ServiceStatus[1].Status)
}

func (suite *HealthCheckTestSuite) TestReadinessDownWithoutClient() {
	dbProvider := &databasemock.DBProviderMock{}
	dbProvider.On("GetDBClient", mock.Anything).Return(nil, errors.New("database not configured"))
	service := &healthCheckService{dbProvider: dbProvider}

	status := service.CheckReadiness(context.Background())

	assert.Equal(suite.T(), StatusDown, status.Status)
	dbProvider.AssertCalled(suite.T(), "GetDBClient", serverconst.ConfigDBName)
	dbProvider.AssertCalled(suite.T(), "GetDBClient", serverconst.RuntimeDBName)
}
