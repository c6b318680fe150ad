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

// Package apierror defines the response envelope returned by the HTTP API.
package apierror

// FieldError describes a validation failure bound to a single request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Envelope is the common body of every API response.
type Envelope struct {
	IsSuccess bool         `json:"isSuccess"`
	Data      interface{}  `json:"data,omitempty"`
	Message   string       `json:"message,omitempty"`
	Code      string       `json:"code,omitempty"`
	Errors    []FieldError `json:"errors,omitempty"`
}

// Success builds a successful envelope carrying the given data.
func Success(data interface{}, message string) Envelope {
	return Envelope{
		IsSuccess: true,
		Data:      data,
		Message:   message,
	}
}

// Failure builds a failed envelope with an error code and message.
func Failure(code, message string) Envelope {
	return Envelope{
		IsSuccess: false,
		Code:      code,
		Message:   message,
	}
}
