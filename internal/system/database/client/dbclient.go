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

// Package client provides the database client used by the stores to run queries and transactions.
package client

import (
	"context"
	"database/sql"
	"strings"

	"github.com/asgardeo/eligibility/internal/system/database/model"
	"github.com/asgardeo/eligibility/internal/system/log"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// DBClientInterface defines the interface for database operations.
type DBClientInterface interface {
	// Query runs a statement that returns rows and returns them as a slice of maps keyed by lowercase column name.
	Query(ctx context.Context, query model.DBQuery, args ...interface{}) ([]map[string]interface{}, error)
	// Execute runs a statement that returns no rows and returns the number of rows affected.
	Execute(ctx context.Context, query model.DBQuery, args ...interface{}) (int64, error)
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (TransactionInterface, error)
	// Close closes the database connection.
	Close() error
}

// TransactionInterface runs queries inside a transaction.
type TransactionInterface interface {
	Query(ctx context.Context, query model.DBQuery, args ...interface{}) ([]map[string]interface{}, error)
	Execute(ctx context.Context, query model.DBQuery, args ...interface{}) (int64, error)
	Commit() error
	Rollback() error
}

// DBClient is the implementation of DBClientInterface.
type DBClient struct {
	db     model.DBInterface
	dbType string
}

// NewDBClient creates a new DBClient over the given connection pool.
func NewDBClient(db model.DBInterface, dbType string) *DBClient {
	return &DBClient{
		db:     db,
		dbType: dbType,
	}
}

// Query runs a statement that returns rows.
func (client *DBClient) Query(ctx context.Context, query model.DBQuery,
	args ...interface{}) ([]map[string]interface{}, error) {
	log.GetLogger().Debug("Executing query", log.String("queryID", query.GetID()))

	rows, err := client.db.QueryContext(ctx, query.GetQuery(client.dbType), args...)
	if err != nil {
		return nil, err
	}
	return scanRows(rows)
}

// Execute runs a statement that returns no rows.
func (client *DBClient) Execute(ctx context.Context, query model.DBQuery, args ...interface{}) (int64, error) {
	log.GetLogger().Debug("Executing statement", log.String("queryID", query.GetID()))

	res, err := client.db.ExecContext(ctx, query.GetQuery(client.dbType), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// BeginTx starts a new database transaction.
func (client *DBClient) BeginTx(ctx context.Context) (TransactionInterface, error) {
	tx, err := client.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &transaction{tx: tx, dbType: client.dbType}, nil
}

// Ping verifies the connection is alive.
func (client *DBClient) Ping(ctx context.Context) error {
	return client.db.PingContext(ctx)
}

// Close closes the database connection.
func (client *DBClient) Close() error {
	return client.db.Close()
}

// transaction implements TransactionInterface over a driver transaction.
type transaction struct {
	tx     model.TxInterface
	dbType string
}

func (t *transaction) Query(ctx context.Context, query model.DBQuery,
	args ...interface{}) ([]map[string]interface{}, error) {
	log.GetLogger().Debug("Executing query in transaction", log.String("queryID", query.GetID()))

	rows, err := t.tx.QueryContext(ctx, query.GetQuery(t.dbType), args...)
	if err != nil {
		return nil, err
	}
	return scanRows(rows)
}

func (t *transaction) Execute(ctx context.Context, query model.DBQuery, args ...interface{}) (int64, error) {
	log.GetLogger().Debug("Executing statement in transaction", log.String("queryID", query.GetID()))

	res, err := t.tx.ExecContext(ctx, query.GetQuery(t.dbType), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (t *transaction) Commit() error {
	return t.tx.Commit()
}

func (t *transaction) Rollback() error {
	return t.tx.Rollback()
}

// scanRows reads every row into a map keyed by lowercase column name. Byte slices become strings
// so postgres and sqlite rows look the same to the stores.
func scanRows(rows *sql.Rows) ([]map[string]interface{}, error) {
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.GetLogger().Error("Error closing rows", log.Error(closeErr))
		}
	}()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	results := make([]map[string]interface{}, 0)
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[strings.ToLower(col)] = string(b)
				continue
			}
			row[strings.ToLower(col)] = values[i]
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
