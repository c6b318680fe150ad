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

// Package http provides the shared HTTP client used for outbound calls to external APIs.
package http

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/asgardeo/eligibility/internal/system/log"
)

// MaxResponseBodySize bounds how much of an external response body is read.
const MaxResponseBodySize = 4 << 20

var (
	defaultClient HTTPClientInterface
	once          sync.Once
)

// HTTPClientInterface defines the interface for HTTP client operations.
type HTTPClientInterface interface {
	// Do executes an HTTP request and returns an HTTP response.
	Do(req *http.Request) (*http.Response, error)
}

// HTTPClient implements HTTPClientInterface over a pooled *http.Client.
type HTTPClient struct {
	client *http.Client
}

// NewHTTPClient creates a client without an overall timeout. Callers bound each call with a context deadline.
func NewHTTPClient() HTTPClientInterface {
	return NewHTTPClientWithConfig(&http.Client{Transport: newTransport()})
}

// NewHTTPClientWithTimeout creates a client with an overall timeout.
func NewHTTPClientWithTimeout(timeout time.Duration) HTTPClientInterface {
	return NewHTTPClientWithConfig(&http.Client{Transport: newTransport(), Timeout: timeout})
}

// NewHTTPClientWithConfig wraps the given client.
func NewHTTPClientWithConfig(client *http.Client) HTTPClientInterface {
	return &HTTPClient{client: client}
}

// GetHTTPClient returns the process wide client.
func GetHTTPClient() HTTPClientInterface {
	once.Do(func() {
		defaultClient = NewHTTPClient()
	})
	return defaultClient
}

// Do executes an HTTP request and returns an HTTP response.
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}

// ReadBody reads at most MaxResponseBodySize bytes of the response body and closes it.
func ReadBody(resp *http.Response) ([]byte, error) {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.GetLogger().Error("Failed to close response body", log.Error(err))
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > MaxResponseBodySize {
		return nil, fmt.Errorf("response body exceeds %d bytes", MaxResponseBodySize)
	}
	return body, nil
}

// IsSuccessStatus reports whether the status code is 2xx.
func IsSuccessStatus(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}

func newTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
}
