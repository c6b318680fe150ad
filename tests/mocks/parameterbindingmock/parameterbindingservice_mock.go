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
// Package parameterbindingmock provides test doubles for the parameter binding service.
package parameterbindingmock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/asgardeo/eligibility/internal/parameterbinding"
	"github.com/asgardeo/eligibility/internal/system/error/serviceerror"
)

// ParameterBindingServiceMock is a testify mock of parameterbinding.ParameterBindingServiceInterface.
type ParameterBindingServiceMock struct {
	mock.Mock
}

// GetAllBindings records the call and returns the configured bindings or error.
func (m *ParameterBindingServiceMock) GetAllBindings(ctx context.Context, tenantID string) (
	[]parameterbinding.Binding, *serviceerror.ServiceError) {
	args := m.Called(ctx, tenantID)
	bindings, _ := args.Get(0).([]parameterbinding.Binding)
	svcErr, _ := args.Get(1).(*serviceerror.ServiceError)
	return bindings, svcErr
}

// SaveBinding records the call and returns the configured binding or error.
func (m *ParameterBindingServiceMock) SaveBinding(ctx context.Context, tenantID string,
	binding parameterbinding.Binding) (*parameterbinding.Binding, *serviceerror.ServiceError) {
	args := m.Called(ctx, tenantID, binding)
	saved, _ := args.Get(0).(*parameterbinding.Binding)
	svcErr, _ := args.Get(1).(*serviceerror.ServiceError)
	return saved, svcErr
}

// AddChangeListener records the call.
func (m *ParameterBindingServiceMock) AddChangeListener(listener parameterbinding.ChangeListener) {
	m.Called(listener)
}
