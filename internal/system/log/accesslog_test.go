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

package log

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type AccessLogTestSuite struct {
	suite.Suite
}

func TestAccessLogSuite(t *testing.T) {
	suite.Run(t, new(AccessLogTestSuite))
}

func (suite *AccessLogTestSuite) TestAccessLogHandler() {
	core, logs := observer.New(zapcore.DebugLevel)
	testLogger := NewLogger(zap.New(core))

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("OK"))
	})

	handler := AccessLogHandler(testLogger, testHandler)

	req := httptest.NewRequest("GET", "/api/parameterbinding", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(suite.T(), http.StatusCreated, rr.Code)
	assert.Equal(suite.T(), "OK", rr.Body.String())

	entries := logs.All()
	assert.Len(suite.T(), entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(suite.T(), "192.168.1.1", fields["remoteAddr"])
	assert.Equal(suite.T(), "GET", fields["method"])
	assert.Equal(suite.T(), "/api/parameterbinding", fields["uri"])
	assert.Equal(suite.T(), int64(http.StatusCreated), fields["status"])
	assert.Equal(suite.T(), int64(2), fields["size"])
	assert.NotEmpty(suite.T(), fields[LoggerKeyRequestID])
	assert.Equal(suite.T(), fields[LoggerKeyRequestID], rr.Header().Get("X-Request-Id"))
}

func (suite *AccessLogTestSuite) TestAccessLogHandlerKeepsRequestID() {
	core, logs := observer.New(zapcore.InfoLevel)
	handler := AccessLogHandler(NewLogger(zap.New(core)),
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest("GET", "/health/liveness", nil)
	req.Header.Set("X-Request-Id", "req-42")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(suite.T(), "req-42", rr.Header().Get("X-Request-Id"))
	assert.Equal(suite.T(), "req-42", logs.All()[0].ContextMap()[LoggerKeyRequestID])
}

func (suite *AccessLogTestSuite) TestAccessLogHandlerDefaultStatus() {
	core, logs := observer.New(zapcore.InfoLevel)
	testLogger := NewLogger(zap.New(core))

	handler := AccessLogHandler(testLogger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{}"))
	}))

	req := httptest.NewRequest("POST", "/api/execute/restapi", nil)
	req.RemoteAddr = "10.0.0.1"
	handler.ServeHTTP(httptest.NewRecorder(), req)

	fields := logs.All()[0].ContextMap()
	assert.Equal(suite.T(), "10.0.0.1", fields["remoteAddr"])
	assert.Equal(suite.T(), int64(http.StatusOK), fields["status"])
}
