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

// Package utils provides utility functions for HTTP operations.
package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	serverconst "github.com/asgardeo/eligibility/internal/system/constants"
	"github.com/asgardeo/eligibility/internal/system/error/apierror"
	"github.com/asgardeo/eligibility/internal/system/error/serviceerror"
	"github.com/asgardeo/eligibility/internal/system/log"
)

// maxRequestBodySize bounds the size of JSON request bodies.
const maxRequestBodySize = 1 << 20

// DecodeJSONBody decodes the JSON request body into a value of type T.
func DecodeJSONBody[T any](r *http.Request) (*T, error) {
	if r.Body == nil {
		return nil, errors.New("request body is empty")
	}

	var data T
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxRequestBodySize))
	decoder.UseNumber()
	if err := decoder.Decode(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("request body is empty")
		}
		return nil, fmt.Errorf("failed to decode JSON body: %w", err)
	}
	return &data, nil
}

// WriteJSONResponse writes the given envelope with the status code.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, body apierror.Envelope) {
	logger := log.GetLogger()

	w.Header().Set(serverconst.ContentTypeHeaderName, serverconst.ContentTypeJSON)
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Error encoding response", log.Error(err))
	}
}

// WriteSuccessResponse writes a successful envelope carrying data.
func WriteSuccessResponse(w http.ResponseWriter, statusCode int, data interface{}, message string) {
	WriteJSONResponse(w, statusCode, apierror.Success(data, message))
}

// WriteServiceErrorResponse writes a failed envelope for the service error with the given status code.
func WriteServiceErrorResponse(w http.ResponseWriter, svcErr *serviceerror.ServiceError, statusCode int) {
	envelope := apierror.Failure(svcErr.Code, svcErr.Error)
	if svcErr.ErrorDescription != "" {
		envelope.Message = svcErr.Error + ": " + svcErr.ErrorDescription
	}
	if svcErr.Field != "" {
		envelope.Errors = []apierror.FieldError{
			{Field: svcErr.Field, Message: svcErr.ErrorDescription},
		}
	}
	WriteJSONResponse(w, statusCode, envelope)
}
