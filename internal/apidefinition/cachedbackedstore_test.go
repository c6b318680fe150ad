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

package apidefinition

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/eligibility/internal/system/cache"
	"github.com/asgardeo/eligibility/internal/system/config"
)

type CachedBackedAPIDefinitionStoreTestSuite struct {
	suite.Suite
	store       *apiDefinitionStoreMock
	cachedStore apiDefinitionStoreInterface
}

func TestCachedBackedAPIDefinitionStoreSuite(t *testing.T) {
	suite.Run(t, new(CachedBackedAPIDefinitionStoreTestSuite))
}

func (suite *CachedBackedAPIDefinitionStoreTestSuite) SetupTest() {
	cache.Reset()
	config.ResetServerRuntime()
	_ = config.InitializeServerRuntime("", &config.Config{})

	suite.store = &apiDefinitionStoreMock{}
	suite.cachedStore = newCachedBackedAPIDefinitionStore(suite.store)
}

func (suite *CachedBackedAPIDefinitionStoreTestSuite) TearDownTest() {
	cache.Reset()
	config.ResetServerRuntime()
}

func (suite *CachedBackedAPIDefinitionStoreTestSuite) TestActiveDefinitionIsCached() {
	suite.store.On("GetActiveDefinition", mock.Anything, "n1").
		Return(&APIDefinition{ID: "d1", NodeID: "n1", Version: 1}, nil).Once()

	first, err := suite.cachedStore.GetActiveDefinition(context.Background(), "n1")
	assert.NoError(suite.T(), err)
	second, err := suite.cachedStore.GetActiveDefinition(context.Background(), "n1")
	assert.NoError(suite.T(), err)

	assert.Equal(suite.T(), first, second)
	suite.store.AssertNumberOfCalls(suite.T(), "GetActiveDefinition", 1)
}

func (suite *CachedBackedAPIDefinitionStoreTestSuite) TestMissIsNotCached() {
	suite.store.On("GetActiveDefinition", mock.Anything, "n1").Return(nil, ErrAPIDefinitionNotFound)

	_, err := suite.cachedStore.GetActiveDefinition(context.Background(), "n1")
	assert.ErrorIs(suite.T(), err, ErrAPIDefinitionNotFound)
	_, err = suite.cachedStore.GetActiveDefinition(context.Background(), "n1")
	assert.ErrorIs(suite.T(), err, ErrAPIDefinitionNotFound)

	suite.store.AssertNumberOfCalls(suite.T(), "GetActiveDefinition", 2)
}

func (suite *CachedBackedAPIDefinitionStoreTestSuite) TestPublishInvalidates() {
	suite.store.On("GetActiveDefinition", mock.Anything, "n1").
		Return(&APIDefinition{ID: "d1", NodeID: "n1", Version: 1}, nil).Once()
	suite.store.On("GetActiveDefinition", mock.Anything, "n1").
		Return(&APIDefinition{ID: "d2", NodeID: "n1", Version: 2}, nil).Once()
	suite.store.On("GetNodeIDBySlot", mock.Anything, "s1").Return("n1", nil)
	suite.store.On("PublishDefinition", mock.Anything, mock.Anything).Return(nil)

	_, _ = suite.cachedStore.GetActiveDefinition(context.Background(), "n1")
	_, _ = suite.cachedStore.GetNodeIDBySlot(context.Background(), "s1")
	_, _ = suite.cachedStore.GetNodeIDBySlot(context.Background(), "s1")
	suite.store.AssertNumberOfCalls(suite.T(), "GetNodeIDBySlot", 1)

	err := suite.cachedStore.PublishDefinition(context.Background(), &APIDefinition{ID: "d2", NodeID: "n1"})
	assert.NoError(suite.T(), err)

	def, err := suite.cachedStore.GetActiveDefinition(context.Background(), "n1")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "d2", def.ID)
	_, _ = suite.cachedStore.GetNodeIDBySlot(context.Background(), "s1")
	suite.store.AssertNumberOfCalls(suite.T(), "GetNodeIDBySlot", 2)
}

func (suite *CachedBackedAPIDefinitionStoreTestSuite) TestPublishDuringLoadIsNotMaskedByStaleDefinition() {
	suite.store.On("PublishDefinition", mock.Anything, mock.Anything).Return(nil)
	suite.store.On("GetActiveDefinition", mock.Anything, "n1").
		Return(&APIDefinition{ID: "d1", NodeID: "n1", Version: 1}, nil).Once().
		Run(func(args mock.Arguments) {
			assert.NoError(suite.T(), suite.cachedStore.PublishDefinition(context.Background(),
				&APIDefinition{ID: "d2", NodeID: "n1", Version: 2}))
		})
	suite.store.On("GetActiveDefinition", mock.Anything, "n1").
		Return(&APIDefinition{ID: "d2", NodeID: "n1", Version: 2}, nil).Once()

	loaded, err := suite.cachedStore.GetActiveDefinition(context.Background(), "n1")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "d1", loaded.ID)

	reloaded, err := suite.cachedStore.GetActiveDefinition(context.Background(), "n1")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "d2", reloaded.ID)
}

func (suite *CachedBackedAPIDefinitionStoreTestSuite) TestPublishDuringSlotLoadIsNotMasked() {
	suite.store.On("PublishDefinition", mock.Anything, mock.Anything).Return(nil)
	suite.store.On("GetNodeIDBySlot", mock.Anything, "s1").Return("n1", nil).Once().
		Run(func(args mock.Arguments) {
			assert.NoError(suite.T(), suite.cachedStore.PublishDefinition(context.Background(),
				&APIDefinition{ID: "d3", NodeID: "n2", Version: 1}))
		})
	suite.store.On("GetNodeIDBySlot", mock.Anything, "s1").Return("n2", nil).Once()

	owner, err := suite.cachedStore.GetNodeIDBySlot(context.Background(), "s1")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "n1", owner)

	owner, err = suite.cachedStore.GetNodeIDBySlot(context.Background(), "s1")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "n2", owner)
}
