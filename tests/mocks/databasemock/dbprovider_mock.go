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

// Package databasemock provides test doubles for the database provider.
package databasemock

import (
	"github.com/stretchr/testify/mock"

	"github.com/asgardeo/eligibility/internal/system/database/client"
)

// DBProviderMock is a testify mock of provider.DBProviderInterface.
type DBProviderMock struct {
	mock.Mock
}

// GetDBClient returns the client registered for the database name.
func (m *DBProviderMock) GetDBClient(dbName string) (client.DBClientInterface, error) {
	args := m.Called(dbName)
	c, _ := args.Get(0).(client.DBClientInterface)
	return c, args.Error(1)
}

// NewDBProviderMock returns a provider that hands out the given client for every database name.
func NewDBProviderMock(c client.DBClientInterface) *DBProviderMock {
	m := &DBProviderMock{}
	m.On("GetDBClient", mock.Anything).Return(c, nil)
	return m
}
