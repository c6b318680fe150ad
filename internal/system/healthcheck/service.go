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
// Package healthcheck serves the liveness and readiness probes of the server.
package healthcheck

import (
	"context"

	serverconst "github.com/asgardeo/eligibility/internal/system/constants"
	dbmodel "github.com/asgardeo/eligibility/internal/system/database/model"
	"github.com/asgardeo/eligibility/internal/system/database/provider"
	"github.com/asgardeo/eligibility/internal/system/log"
)

// HealthCheckServiceInterface defines the health check operations.
type HealthCheckServiceInterface interface {
	CheckReadiness(ctx context.Context) ServerStatus
}

// healthCheckService is the default implementation of HealthCheckServiceInterface.
type healthCheckService struct {
	dbProvider provider.DBProviderInterface
}

func newHealthCheckService() HealthCheckServiceInterface {
	return &healthCheckService{
		dbProvider: provider.GetDBProvider(),
	}
}

// CheckReadiness reports whether both databases answer queries.
func (hs *healthCheckService) CheckReadiness(ctx context.Context) ServerStatus {
	configDBStatus := ServiceStatus{
		ServiceName: "ConfigDB",
		Status:      hs.checkDatabaseStatus(ctx, serverconst.ConfigDBName, queryConfigDBTable),
	}
	runtimeDBStatus := ServiceStatus{
		ServiceName: "RuntimeDB",
		Status:      hs.checkDatabaseStatus(ctx, serverconst.RuntimeDBName, queryRuntimeDBTable),
	}

	status := StatusUp
	if configDBStatus.Status == StatusDown || runtimeDBStatus.Status == StatusDown {
		status = StatusDown
	}
	return ServerStatus{
		Status:        status,
		ServiceStatus: []ServiceStatus{configDBStatus, runtimeDBStatus},
	}
}

func (hs *healthCheckService) checkDatabaseStatus(ctx context.Context, dbName string,
	query dbmodel.DBQuery) Status {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "HealthCheckService"))

	dbClient, err := hs.dbProvider.GetDBClient(dbName)
	if err != nil {
		logger.Error("Failed to get database client", log.String("database", dbName), log.Error(err))
		return StatusDown
	}
	if _, err := dbClient.Query(ctx, query); err != nil {
		logger.Error("Failed to execute query", log.String("database", dbName), log.Error(err))
		return StatusDown
	}
	return StatusUp
}
