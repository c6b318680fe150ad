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

// Package apidefinitionmock provides test doubles for the API definition registry.
package apidefinitionmock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/asgardeo/eligibility/internal/apidefinition"
	"github.com/asgardeo/eligibility/internal/system/error/serviceerror"
)

// APIDefinitionServiceMock is a testify mock of apidefinition.APIDefinitionServiceInterface.
type APIDefinitionServiceMock struct {
	mock.Mock
}

// GetDefinition records the call and returns the configured definition or error.
func (m *APIDefinitionServiceMock) GetDefinition(ctx context.Context,
	nodeID string) (*apidefinition.APIDefinition, *serviceerror.ServiceError) {
	args := m.Called(ctx, nodeID)
	def, _ := args.Get(0).(*apidefinition.APIDefinition)
	svcErr, _ := args.Get(1).(*serviceerror.ServiceError)
	return def, svcErr
}

// GetDefinitionsByNode records the call and returns the configured definitions or error.
func (m *APIDefinitionServiceMock) GetDefinitionsByNode(ctx context.Context, nodeID string,
	protocol apidefinition.Protocol) ([]apidefinition.APIDefinition, *serviceerror.ServiceError) {
	args := m.Called(ctx, nodeID, protocol)
	defs, _ := args.Get(0).([]apidefinition.APIDefinition)
	svcErr, _ := args.Get(1).(*serviceerror.ServiceError)
	return defs, svcErr
}

// PublishDefinition records the call and returns the configured definition or error.
func (m *APIDefinitionServiceMock) PublishDefinition(ctx context.Context,
	def *apidefinition.APIDefinition) (*apidefinition.APIDefinition, *serviceerror.ServiceError) {
	args := m.Called(ctx, def)
	published, _ := args.Get(0).(*apidefinition.APIDefinition)
	svcErr, _ := args.Get(1).(*serviceerror.ServiceError)
	return published, svcErr
}

// SlotExists records the call and returns the configured owner definition.
func (m *APIDefinitionServiceMock) SlotExists(ctx context.Context,
	slotID string) (*apidefinition.APIDefinition, bool, *serviceerror.ServiceError) {
	args := m.Called(ctx, slotID)
	def, _ := args.Get(0).(*apidefinition.APIDefinition)
	svcErr, _ := args.Get(2).(*serviceerror.ServiceError)
	return def, args.Bool(1), svcErr
}
