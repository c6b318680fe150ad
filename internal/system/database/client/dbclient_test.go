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

package client

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/eligibility/internal/system/database/model"
)

type DBClientTestSuite struct {
	suite.Suite
	mockDB   *sql.DB
	mock     sqlmock.Sqlmock
	dbClient *DBClient
}

func TestDBClientSuite(t *testing.T) {
	suite.Run(t, new(DBClientTestSuite))
}

func (suite *DBClientTestSuite) SetupTest() {
	var err error
	suite.mockDB, suite.mock, err = sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual), sqlmock.MonitorPingsOption(true))
	require.NoError(suite.T(), err)
	suite.dbClient = NewDBClient(suite.mockDB, "postgres")
}

func (suite *DBClientTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestQuerySuccess() {
	query := model.DBQuery{ID: "EBQ-TEST-01", Query: "SELECT NODE_ID, NAME FROM NODE WHERE PRODUCT_ID = $1"}

	rows := sqlmock.NewRows([]string{"NODE_ID", "NAME"}).
		AddRow("n1", "Income").
		AddRow("n2", []byte("Credit"))
	suite.mock.ExpectQuery(query.Query).WithArgs(driver.Value("p1")).WillReturnRows(rows)

	results, err := suite.dbClient.Query(context.Background(), query, "p1")

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), results, 2)
	assert.Equal(suite.T(), "n1", results[0]["node_id"])
	assert.Equal(suite.T(), "Income", results[0]["name"])
	assert.Equal(suite.T(), "Credit", results[1]["name"])
}

func (suite *DBClientTestSuite) TestQueryEmptyResults() {
	query := model.DBQuery{ID: "EBQ-TEST-02", Query: "SELECT NODE_ID FROM NODE WHERE PRODUCT_ID = $1"}
	suite.mock.ExpectQuery(query.Query).WithArgs("none").WillReturnRows(sqlmock.NewRows([]string{"NODE_ID"}))

	results, err := suite.dbClient.Query(context.Background(), query, "none")

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), results)
	assert.Empty(suite.T(), results)
}

func (suite *DBClientTestSuite) TestQueryError() {
	query := model.DBQuery{ID: "EBQ-TEST-03", Query: "SELECT 1 FROM MISSING"}
	suite.mock.ExpectQuery(query.Query).WillReturnError(errors.New("no such table"))

	results, err := suite.dbClient.Query(context.Background(), query)

	assert.Nil(suite.T(), results)
	assert.EqualError(suite.T(), err, "no such table")
}

func (suite *DBClientTestSuite) TestQueryRowError() {
	query := model.DBQuery{ID: "EBQ-TEST-04", Query: "SELECT NODE_ID FROM NODE"}
	rows := sqlmock.NewRows([]string{"NODE_ID"}).AddRow("n1").RowError(0, errors.New("row failure"))
	suite.mock.ExpectQuery(query.Query).WillReturnRows(rows)

	_, err := suite.dbClient.Query(context.Background(), query)
	assert.EqualError(suite.T(), err, "row failure")
}

func (suite *DBClientTestSuite) TestExecuteUsesDriverSpecificQuery() {
	query := model.DBQuery{
		ID:          "EBQ-TEST-05",
		Query:       "DELETE FROM NODE WHERE NODE_ID = $1",
		SQLiteQuery: "DELETE FROM NODE WHERE NODE_ID = ?",
	}
	suite.mock.ExpectExec(query.Query).WithArgs("n1").WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := suite.dbClient.Execute(context.Background(), query, "n1")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), affected)
}

func (suite *DBClientTestSuite) TestTransactionCommit() {
	query := model.DBQuery{ID: "EBQ-TEST-06", Query: "UPDATE NODE SET NAME = $1"}
	selectQuery := model.DBQuery{ID: "EBQ-TEST-07", Query: "SELECT COUNT(*) AS TOTAL FROM NODE"}

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(selectQuery.Query).WillReturnRows(sqlmock.NewRows([]string{"TOTAL"}).AddRow(int64(2)))
	suite.mock.ExpectExec(query.Query).WithArgs("x").WillReturnResult(sqlmock.NewResult(0, 2))
	suite.mock.ExpectCommit()

	tx, err := suite.dbClient.BeginTx(context.Background())
	require.NoError(suite.T(), err)

	rows, err := tx.Query(context.Background(), selectQuery)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), rows[0]["total"])

	affected, err := tx.Execute(context.Background(), query, "x")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), affected)
	assert.NoError(suite.T(), tx.Commit())
}

func (suite *DBClientTestSuite) TestTransactionRollback() {
	query := model.DBQuery{ID: "EBQ-TEST-08", Query: "UPDATE NODE SET NAME = $1"}

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(query.Query).WithArgs("x").WillReturnError(errors.New("constraint"))
	suite.mock.ExpectRollback()

	tx, err := suite.dbClient.BeginTx(context.Background())
	require.NoError(suite.T(), err)

	_, err = tx.Execute(context.Background(), query, "x")
	assert.Error(suite.T(), err)
	assert.NoError(suite.T(), tx.Rollback())
}

func (suite *DBClientTestSuite) TestBeginTxError() {
	suite.mock.ExpectBegin().WillReturnError(errors.New("busy"))

	tx, err := suite.dbClient.BeginTx(context.Background())
	assert.Nil(suite.T(), tx)
	assert.EqualError(suite.T(), err, "busy")
}

func (suite *DBClientTestSuite) TestPingAndClose() {
	suite.mock.ExpectPing()
	suite.mock.ExpectClose()

	assert.NoError(suite.T(), suite.dbClient.Ping(context.Background()))
	assert.NoError(suite.T(), suite.dbClient.Close())
}

func TestDBQueryGetQuery(t *testing.T) {
	query := model.DBQuery{
		ID:            "EBQ-TEST-09",
		Query:         "SELECT 1",
		PostgresQuery: "SELECT 1::INT",
	}

	assert.Equal(t, "EBQ-TEST-09", query.GetID())
	assert.Equal(t, "SELECT 1::INT", query.GetQuery("postgres"))
	assert.Equal(t, "SELECT 1", query.GetQuery("sqlite"))
	assert.Equal(t, "SELECT 1", query.GetQuery("other"))
}
