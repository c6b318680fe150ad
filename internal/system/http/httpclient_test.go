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

package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type HTTPClientTestSuite struct {
	suite.Suite
}

func TestHTTPClientSuite(t *testing.T) {
	suite.Run(t, new(HTTPClientTestSuite))
}

func (suite *HTTPClientTestSuite) TestGetHTTPClientSingleton() {
	assert.Same(suite.T(), GetHTTPClient(), GetHTTPClient())
}

func (suite *HTTPClientTestSuite) TestDo() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(suite.T(), "application/json", r.Header.Get("Accept"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, nil)
	require.NoError(suite.T(), err)
	req.Header.Set("Accept", "application/json")

	resp, err := NewHTTPClient().Do(req)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), IsSuccessStatus(resp.StatusCode))

	body, err := ReadBody(resp)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), `{"ok":true}`, string(body))
}

func (suite *HTTPClientTestSuite) TestTimeout() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(suite.T(), err)

	_, err = NewHTTPClientWithTimeout(50 * time.Millisecond).Do(req)
	assert.Error(suite.T(), err)
}

func (suite *HTTPClientTestSuite) TestReadBodyTooLarge() {
	resp := &http.Response{Body: io.NopCloser(strings.NewReader(strings.Repeat("a", MaxResponseBodySize+1)))}

	_, err := ReadBody(resp)
	assert.Error(suite.T(), err)
}

func (suite *HTTPClientTestSuite) TestIsSuccessStatus() {
	assert.True(suite.T(), IsSuccessStatus(200))
	assert.True(suite.T(), IsSuccessStatus(204))
	assert.False(suite.T(), IsSuccessStatus(302))
	assert.False(suite.T(), IsSuccessStatus(404))
	assert.False(suite.T(), IsSuccessStatus(500))
}
