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

// Package provider manages the database connection pools used by the stores.
package provider

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/asgardeo/eligibility/internal/system/config"
	serverconst "github.com/asgardeo/eligibility/internal/system/constants"
	"github.com/asgardeo/eligibility/internal/system/database/client"
	"github.com/asgardeo/eligibility/internal/system/log"
)

const (
	dataSourceTypePostgres = "postgres"
	dataSourceTypeSQLite   = "sqlite"
	pingTimeout            = 5 * time.Second
)

// DBProviderInterface defines the interface for getting database clients.
type DBProviderInterface interface {
	GetDBClient(dbName string) (client.DBClientInterface, error)
}

// DBProvider lazily opens one client per configured database.
type DBProvider struct {
	clients map[string]*client.DBClient
	mu      sync.RWMutex
}

var (
	instance *DBProvider
	once     sync.Once
)

// GetDBProvider returns the process wide database provider.
func GetDBProvider() DBProviderInterface {
	once.Do(func() {
		instance = &DBProvider{clients: map[string]*client.DBClient{}}
	})
	return instance
}

// GetDBClient returns the client for the named database, opening it on first use.
// The returned client manages its own pool and must not be closed by callers.
func (d *DBProvider) GetDBClient(dbName string) (client.DBClientInterface, error) {
	d.mu.RLock()
	c, ok := d.clients[dbName]
	d.mu.RUnlock()
	if ok {
		return c, nil
	}

	dataSource, err := dataSourceFor(dbName)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if c, ok := d.clients[dbName]; ok {
		return c, nil
	}

	c, err = openClient(dbName, dataSource)
	if err != nil {
		return nil, err
	}
	d.clients[dbName] = c
	return c, nil
}

// Close closes every open client.
func (d *DBProvider) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var errs []error
	for name, c := range d.clients {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close %s client: %w", name, err))
		}
		delete(d.clients, name)
	}
	return errors.Join(errs...)
}

// CloseDBProvider closes the process wide provider, if it was ever created.
func CloseDBProvider() {
	if instance == nil {
		return
	}
	if err := instance.Close(); err != nil {
		log.GetLogger().Error("Error closing database connections", log.Error(err))
		return
	}
	log.GetLogger().Debug("Database connections closed successfully")
}

func dataSourceFor(dbName string) (config.DataSource, error) {
	dbConfig := config.GetServerRuntime().Config.Database
	switch dbName {
	case serverconst.ConfigDBName:
		return dbConfig.Config, nil
	case serverconst.RuntimeDBName:
		return dbConfig.Runtime, nil
	default:
		return config.DataSource{}, fmt.Errorf("unsupported database name: %s", dbName)
	}
}

func openClient(dbName string, dataSource config.DataSource) (*client.DBClient, error) {
	driverName, dsn, err := buildDSN(dataSource, config.GetServerRuntime().ServerHome)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dbName, err)
	}
	db.SetMaxOpenConns(dataSource.MaxOpenConns)
	db.SetMaxIdleConns(dataSource.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(dataSource.ConnMaxLifetime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to ping database %s: %w", dbName, err), db.Close())
	}

	if driverName == dataSourceTypeSQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
			return nil, errors.Join(
				fmt.Errorf("failed to enable foreign key constraints for %s: %w", dbName, err), db.Close())
		}
	}

	log.GetLogger().Debug("Database client initialized", log.String("dbName", dbName),
		log.String("type", driverName))
	return client.NewDBClient(db, driverName), nil
}

// buildDSN returns the driver name and connection string for the data source.
func buildDSN(dataSource config.DataSource, serverHome string) (string, string, error) {
	switch dataSource.Type {
	case dataSourceTypePostgres:
		sslMode := dataSource.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return dataSourceTypePostgres, fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			dataSource.Hostname, dataSource.Port, dataSource.Username, dataSource.Password,
			dataSource.Name, sslMode), nil
	case dataSourceTypeSQLite:
		options := dataSource.Options
		if options != "" && options[0] != '?' {
			options = "?" + options
		}
		dbPath := dataSource.Path
		if !filepath.IsAbs(dbPath) {
			dbPath = filepath.Join(serverHome, dbPath)
		}
		return dataSourceTypeSQLite, dbPath + options, nil
	default:
		return "", "", fmt.Errorf("unsupported database type: %s", dataSource.Type)
	}
}
