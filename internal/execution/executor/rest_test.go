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

package executor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/eligibility/internal/apidefinition"
	"github.com/asgardeo/eligibility/internal/execution/model"
	"github.com/asgardeo/eligibility/internal/system/config"
	syshttp "github.com/asgardeo/eligibility/internal/system/http"
)

func arg(name string, location apidefinition.ParameterLocation, v model.Value) model.ResolvedArgument {
	return model.ResolvedArgument{
		Slot:  apidefinition.ParameterSlot{SlotID: name, Name: name, Location: location},
		Value: v,
	}
}

type RESTExecutorTestSuite struct {
	suite.Suite
	hits     atomic.Int32
	factory  *Factory
	executor ExecutorInterface
}

func TestRESTExecutorSuite(t *testing.T) {
	suite.Run(t, new(RESTExecutorTestSuite))
}

func (suite *RESTExecutorTestSuite) SetupTest() {
	suite.hits.Store(0)
	suite.factory = NewFactory(syshttp.NewHTTPClient(), Policy{
		Timeout:    time.Second,
		MaxRetries: 2,
		Backoff:    time.Millisecond,
	})
	var err error
	suite.executor, err = suite.factory.GetExecutor(apidefinition.ProtocolREST)
	require.NoError(suite.T(), err)
}

func (suite *RESTExecutorTestSuite) server(handler http.HandlerFunc) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		suite.hits.Add(1)
		handler(w, r)
	}))
	suite.T().Cleanup(server.Close)
	return server
}

func (suite *RESTExecutorTestSuite) TestGetPlacesArguments() {
	server := suite.server(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(suite.T(), http.MethodGet, r.Method)
		assert.Equal(suite.T(), "/customers/C%2F1/income", r.URL.EscapedPath())
		assert.Equal(suite.T(), "2024", r.URL.Query().Get("year"))
		assert.Equal(suite.T(), "v1", r.URL.Query().Get("api"))
		assert.Equal(suite.T(), "secret", r.Header.Get("X-Api-Key"))
		assert.Equal(suite.T(), "true", r.Header.Get("X-Verbose"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"amount":42}`))
	})

	def := &apidefinition.APIDefinition{
		NodeID:      "n1",
		Protocol:    apidefinition.ProtocolREST,
		EndpointURI: server.URL + "/customers/{customerId}/income?api=v1",
		HTTPMethod:  http.MethodGet,
		Headers:     map[string]string{"X-Api-Key": "secret"},
	}
	record := suite.executor.Execute(context.Background(), def, []model.ResolvedArgument{
		arg("customerId", apidefinition.LocationPath, model.StringValue("C/1")),
		arg("year", apidefinition.LocationQuery, model.IntValue(2024)),
		arg("X-Verbose", apidefinition.LocationHeader, model.BoolValue(true)),
	})

	assert.True(suite.T(), record.IsSuccess)
	assert.Equal(suite.T(), model.NodeStateSucceeded, record.State)
	assert.Equal(suite.T(), http.StatusOK, record.StatusCode)
	assert.Equal(suite.T(), "n1", record.NodeID)
	assert.JSONEq(suite.T(), `{"amount":42}`, string(record.Payload))
	assert.Empty(suite.T(), record.FailureReason)
}

func (suite *RESTExecutorTestSuite) TestPostSendsJSONBody() {
	server := suite.server(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(suite.T(), "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(suite.T(), `{"income":2500.75,"name":"Ann","vip":false}`, string(body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"score":700}`))
	})

	def := &apidefinition.APIDefinition{NodeID: "n2", EndpointURI: server.URL + "/score", HTTPMethod: http.MethodPost}
	record := suite.executor.Execute(context.Background(), def, []model.ResolvedArgument{
		arg("income", apidefinition.LocationBody, model.DecimalValue(decimal.RequireFromString("2500.75"))),
		arg("name", apidefinition.LocationBody, model.StringValue("Ann")),
		arg("vip", apidefinition.LocationBody, model.BoolValue(false)),
	})

	assert.True(suite.T(), record.IsSuccess)
	assert.Equal(suite.T(), http.StatusCreated, record.StatusCode)
}

func (suite *RESTExecutorTestSuite) TestServerErrorIsRetried() {
	server := suite.server(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	})

	def := &apidefinition.APIDefinition{NodeID: "n1", EndpointURI: server.URL, HTTPMethod: http.MethodGet}
	record := suite.executor.Execute(context.Background(), def, nil)

	assert.False(suite.T(), record.IsSuccess)
	assert.Equal(suite.T(), model.NodeStateFailed, record.State)
	assert.Equal(suite.T(), http.StatusInternalServerError, record.StatusCode)
	assert.Equal(suite.T(), "HTTP 500", record.FailureReason)
	assert.JSONEq(suite.T(), `{"error":"boom"}`, string(record.Payload))
	assert.Equal(suite.T(), int32(3), suite.hits.Load())
}

func (suite *RESTExecutorTestSuite) TestRetryRecovers() {
	server := suite.server(func(w http.ResponseWriter, r *http.Request) {
		if suite.hits.Load() == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	def := &apidefinition.APIDefinition{NodeID: "n1", EndpointURI: server.URL, HTTPMethod: http.MethodGet}
	record := suite.executor.Execute(context.Background(), def, nil)

	assert.True(suite.T(), record.IsSuccess)
	assert.Equal(suite.T(), int32(2), suite.hits.Load())
}

func (suite *RESTExecutorTestSuite) TestClientErrorIsNotRetried() {
	server := suite.server(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("no such customer"))
	})

	def := &apidefinition.APIDefinition{NodeID: "n1", EndpointURI: server.URL, HTTPMethod: http.MethodGet}
	record := suite.executor.Execute(context.Background(), def, nil)

	assert.False(suite.T(), record.IsSuccess)
	assert.Equal(suite.T(), "HTTP 404", record.FailureReason)
	assert.Equal(suite.T(), "no such customer", record.RawResponse)
	assert.JSONEq(suite.T(), `{"body":"no such customer"}`, string(record.Payload))
	assert.Equal(suite.T(), int32(1), suite.hits.Load())
}

func (suite *RESTExecutorTestSuite) TestHeaderValueWithLineBreakIsRejected() {
	server := suite.server(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	def := &apidefinition.APIDefinition{NodeID: "n1", EndpointURI: server.URL, HTTPMethod: http.MethodGet}
	record := suite.executor.Execute(context.Background(), def, []model.ResolvedArgument{
		arg("X-Customer", apidefinition.LocationHeader, model.StringValue("C1\r\nX-Injected: yes")),
	})

	assert.False(suite.T(), record.IsSuccess)
	assert.Equal(suite.T(), model.NodeStateFailed, record.State)
	assert.Contains(suite.T(), record.FailureReason, "invalid value for header X-Customer")
	assert.Equal(suite.T(), int32(0), suite.hits.Load())
}

func (suite *RESTExecutorTestSuite) TestNonJSONSuccessIsWrapped() {
	server := suite.server(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("APPROVED"))
	})

	def := &apidefinition.APIDefinition{NodeID: "n1", EndpointURI: server.URL, HTTPMethod: http.MethodGet}
	record := suite.executor.Execute(context.Background(), def, nil)

	assert.True(suite.T(), record.IsSuccess)
	assert.JSONEq(suite.T(), `{"body":"APPROVED"}`, string(record.Payload))
}

func (suite *RESTExecutorTestSuite) TestTimeout() {
	server := suite.server(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	factory := NewFactory(syshttp.NewHTTPClient(), Policy{Timeout: 50 * time.Millisecond})
	executor, _ := factory.GetExecutor(apidefinition.ProtocolREST)

	def := &apidefinition.APIDefinition{NodeID: "n1", EndpointURI: server.URL, HTTPMethod: http.MethodGet}
	record := executor.Execute(context.Background(), def, nil)

	assert.False(suite.T(), record.IsSuccess)
	assert.Equal(suite.T(), model.FailureReasonTimeout, record.FailureReason)
	assert.Equal(suite.T(), 0, record.StatusCode)
}

func (suite *RESTExecutorTestSuite) TestCancelled() {
	server := suite.server(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	def := &apidefinition.APIDefinition{NodeID: "n1", EndpointURI: server.URL, HTTPMethod: http.MethodGet}
	record := suite.executor.Execute(ctx, def, nil)

	assert.False(suite.T(), record.IsSuccess)
	assert.Equal(suite.T(), model.FailureReasonCancelled, record.FailureReason)
	assert.Equal(suite.T(), int32(0), suite.hits.Load())
}

func (suite *RESTExecutorTestSuite) TestTransportErrorIsRetried() {
	server := suite.server(func(w http.ResponseWriter, r *http.Request) {})
	url := server.URL
	server.Close()

	def := &apidefinition.APIDefinition{NodeID: "n1", EndpointURI: url, HTTPMethod: http.MethodGet}
	record := suite.executor.Execute(context.Background(), def, nil)

	assert.False(suite.T(), record.IsSuccess)
	assert.NotEmpty(suite.T(), record.FailureReason)
	assert.Equal(suite.T(), 0, record.StatusCode)
}

func (suite *RESTExecutorTestSuite) TestUnsupportedProtocol() {
	_, err := suite.factory.GetExecutor("GRPC")
	assert.ErrorIs(suite.T(), err, ErrUnsupportedProtocol)
}

func (suite *RESTExecutorTestSuite) TestPolicyFromConfig() {
	policy := PolicyFromConfig(config.ExecutionConfig{Timeout: 1500, MaxRetries: 3, RetryBackoff: 100})
	assert.Equal(suite.T(), Policy{Timeout: 1500 * time.Millisecond, MaxRetries: 3,
		Backoff: 100 * time.Millisecond}, policy)

	defaults := PolicyFromConfig(config.ExecutionConfig{MaxRetries: -1})
	assert.Equal(suite.T(), 0, defaults.MaxRetries)
	assert.Equal(suite.T(), 10*time.Second, defaults.Timeout)
}

func (suite *RESTExecutorTestSuite) TestBuildTargetDeleteWithoutBody() {
	target, body, err := buildRESTTarget(&apidefinition.APIDefinition{
		EndpointURI: "https://x.example.com/items", HTTPMethod: http.MethodDelete,
	}, []model.ResolvedArgument{arg("id", apidefinition.LocationQuery, model.IntValue(9))})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "https://x.example.com/items?id=9", target)
	assert.Nil(suite.T(), body)

	_, body, err = buildRESTTarget(&apidefinition.APIDefinition{
		EndpointURI: "https://x.example.com/items", HTTPMethod: http.MethodPut,
	}, nil)
	require.NoError(suite.T(), err)
	var decoded map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(body, &decoded))
	assert.Empty(suite.T(), decoded)
}
