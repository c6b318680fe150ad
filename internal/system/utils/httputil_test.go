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

package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/eligibility/internal/system/error/apierror"
	"github.com/asgardeo/eligibility/internal/system/error/serviceerror"
)

type HTTPUtilTestSuite struct {
	suite.Suite
}

func TestHTTPUtilSuite(t *testing.T) {
	suite.Run(t, new(HTTPUtilTestSuite))
}

type sampleRequest struct {
	SlotID string      `json:"slotId"`
	Value  json.Number `json:"value"`
}

func (suite *HTTPUtilTestSuite) TestDecodeJSONBody() {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"slotId":"s1","value":42}`))

	body, err := DecodeJSONBody[sampleRequest](req)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "s1", body.SlotID)
	assert.Equal(suite.T(), json.Number("42"), body.Value)
}

func (suite *HTTPUtilTestSuite) TestDecodeJSONBodyErrors() {
	testCases := []struct {
		name string
		body string
	}{
		{"Empty", ""},
		{"Malformed", `{"slotId":`},
		{"WrongType", `{"slotId": 12}`},
	}
	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			body, err := DecodeJSONBody[sampleRequest](req)
			assert.Error(t, err)
			assert.Nil(t, body)
		})
	}
}

func (suite *HTTPUtilTestSuite) TestWriteSuccessResponse() {
	rr := httptest.NewRecorder()

	WriteSuccessResponse(rr, http.StatusOK, map[string]string{"id": "n1"}, "")

	assert.Equal(suite.T(), http.StatusOK, rr.Code)
	assert.Equal(suite.T(), "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(suite.T(), `{"isSuccess":true,"data":{"id":"n1"}}`, rr.Body.String())
}

func (suite *HTTPUtilTestSuite) TestWriteServiceErrorResponse() {
	rr := httptest.NewRecorder()
	svcErr := serviceerror.FieldServiceError(serviceerror.ServiceError{
		Code:  "PBD-1003",
		Type:  serviceerror.ClientErrorType,
		Error: "Invalid binding",
	}, "slotId", "slot does not exist")

	WriteServiceErrorResponse(rr, svcErr, http.StatusBadRequest)

	assert.Equal(suite.T(), http.StatusBadRequest, rr.Code)
	var envelope apierror.Envelope
	assert.NoError(suite.T(), json.Unmarshal(rr.Body.Bytes(), &envelope))
	assert.False(suite.T(), envelope.IsSuccess)
	assert.Equal(suite.T(), "PBD-1003", envelope.Code)
	assert.Equal(suite.T(), "Invalid binding: slot does not exist", envelope.Message)
	assert.Equal(suite.T(), []apierror.FieldError{{Field: "slotId", Message: "slot does not exist"}},
		envelope.Errors)
}

func (suite *HTTPUtilTestSuite) TestSanitizeString() {
	assert.Equal(suite.T(), "amount", SanitizeString("  amount\n"))
	assert.Equal(suite.T(), "ab", SanitizeString("a\x00b"))
}

func (suite *HTTPUtilTestSuite) TestGenerateUUID() {
	id := GenerateUUID()
	assert.True(suite.T(), IsValidUUID(id))
	assert.NotEqual(suite.T(), id, GenerateUUID())
	assert.False(suite.T(), IsValidUUID("not-a-uuid"))
}

func (suite *HTTPUtilTestSuite) TestGetAllowedOrigin() {
	allowed := []string{"https://admin.example.com"}
	assert.Equal(suite.T(), "https://admin.example.com", GetAllowedOrigin(allowed, "https://admin.example.com"))
	assert.Equal(suite.T(), "", GetAllowedOrigin(allowed, "https://evil.example.com"))
	assert.Equal(suite.T(), "", GetAllowedOrigin(allowed, ""))
	assert.Equal(suite.T(), "https://any.example.com", GetAllowedOrigin([]string{"*"}, "https://any.example.com"))
}
