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

package provider

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/eligibility/internal/system/config"
	"github.com/asgardeo/eligibility/internal/system/database/client"
	"github.com/asgardeo/eligibility/internal/system/database/model"
)

type DBProviderTestSuite struct {
	suite.Suite
	home string
}

func TestDBProviderSuite(t *testing.T) {
	suite.Run(t, new(DBProviderTestSuite))
}

func (suite *DBProviderTestSuite) SetupTest() {
	suite.home = suite.T().TempDir()
	config.ResetServerRuntime()
	_ = config.InitializeServerRuntime(suite.home, &config.Config{
		Database: config.DatabaseConfig{
			Config:  config.DataSource{Type: "sqlite", Path: "config.db", Options: "_pragma=busy_timeout(5000)"},
			Runtime: config.DataSource{Type: "mysql"},
		},
	})
}

func (suite *DBProviderTestSuite) TearDownTest() {
	config.ResetServerRuntime()
}

func (suite *DBProviderTestSuite) TestBuildDSNPostgres() {
	driver, dsn, err := buildDSN(config.DataSource{
		Type: "postgres", Hostname: "localhost", Port: 5432, Username: "u", Password: "p", Name: "eligibility",
	}, "")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "postgres", driver)
	assert.Equal(suite.T(), "host=localhost port=5432 user=u password=p dbname=eligibility sslmode=disable", dsn)
}

func (suite *DBProviderTestSuite) TestBuildDSNSQLite() {
	driver, dsn, err := buildDSN(config.DataSource{Type: "sqlite", Path: "repository/database/config.db",
		Options: "_pragma=foreign_keys(1)"}, "/opt/server")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "sqlite", driver)
	assert.Equal(suite.T(), "/opt/server/repository/database/config.db?_pragma=foreign_keys(1)", dsn)
}

func (suite *DBProviderTestSuite) TestBuildDSNUnsupported() {
	_, _, err := buildDSN(config.DataSource{Type: "oracle"}, "")
	assert.EqualError(suite.T(), err, "unsupported database type: oracle")
}

func (suite *DBProviderTestSuite) TestGetDBClientSQLite() {
	p := &DBProvider{clients: map[string]*client.DBClient{}}
	defer func() { _ = p.Close() }()

	c, err := p.GetDBClient("config")
	require.NoError(suite.T(), err)

	_, err = c.Execute(suite.T().Context(), model.DBQuery{ID: "T-1", Query: "CREATE TABLE T (ID TEXT)"})
	assert.NoError(suite.T(), err)
	assert.FileExists(suite.T(), filepath.Join(suite.home, "config.db"))

	again, err := p.GetDBClient("config")
	assert.NoError(suite.T(), err)
	assert.Same(suite.T(), c, again)
}

func (suite *DBProviderTestSuite) TestGetDBClientErrors() {
	p := &DBProvider{clients: map[string]*client.DBClient{}}

	_, err := p.GetDBClient("unknown")
	assert.EqualError(suite.T(), err, "unsupported database name: unknown")

	_, err = p.GetDBClient("runtime")
	assert.EqualError(suite.T(), err, "unsupported database type: mysql")
}
