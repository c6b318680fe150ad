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
	"errors"

	"github.com/asgardeo/eligibility/internal/system/error/serviceerror"
)

// ErrAPIDefinitionNotFound is returned by the store when no active definition exists.
var ErrAPIDefinitionNotFound = errors.New("api definition not found")

// Client errors for API definition operations.
var (
	// ErrorAPIDefinitionNotFound is returned when a node has no active definition.
	ErrorAPIDefinitionNotFound = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "APD-1001",
		Error:            "API definition not found",
		ErrorDescription: "No active API definition exists for the node",
	}
	// ErrorInvalidNodeID is returned when the node id is empty.
	ErrorInvalidNodeID = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "APD-1002",
		Error:            "Invalid node ID",
		ErrorDescription: "The node ID is empty",
	}
	// ErrorNodeNotFound is returned when publishing for a node that does not exist.
	ErrorNodeNotFound = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "APD-1003",
		Error:            "Node not found",
		ErrorDescription: "The node referenced by the API definition does not exist",
	}
	// ErrorInvalidProtocol is returned for a protocol other than REST or SOAP.
	ErrorInvalidProtocol = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "APD-1004",
		Error:            "Invalid protocol",
		ErrorDescription: "The protocol must be REST or SOAP",
	}
	// ErrorInvalidEndpointURI is returned when the endpoint is not an absolute http(s) URI.
	ErrorInvalidEndpointURI = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "APD-1005",
		Error:            "Invalid endpoint URI",
		ErrorDescription: "The endpoint URI must be an absolute http or https URI",
	}
	// ErrorInvalidHTTPMethod is returned for an unsupported HTTP method.
	ErrorInvalidHTTPMethod = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "APD-1006",
		Error:            "Invalid HTTP method",
		ErrorDescription: "The HTTP method is not supported for the protocol",
	}
	// ErrorInvalidParameterSlot is returned for a malformed parameter slot.
	ErrorInvalidParameterSlot = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "APD-1007",
		Error:            "Invalid parameter slot",
		ErrorDescription: "A declared parameter is invalid",
	}
	// ErrorInvalidEnvelopeTemplate is returned when a SOAP template references an unknown parameter.
	ErrorInvalidEnvelopeTemplate = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "APD-1008",
		Error:            "Invalid envelope template",
		ErrorDescription: "The SOAP envelope template is invalid",
	}
	// ErrorInvalidRequestFormat is returned when the request body cannot be decoded.
	ErrorInvalidRequestFormat = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "APD-1009",
		Error:            "Invalid request format",
		ErrorDescription: "The request body is malformed or contains invalid data",
	}
	// ErrorSlotNotFound is returned when a slot is not part of any active definition.
	ErrorSlotNotFound = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "APD-1010",
		Error:            "Parameter slot not found",
		ErrorDescription: "The parameter slot does not exist in any published API definition",
	}
)

// Server errors for API definition operations.
var (
	// ErrorInternalServerError is returned when an unexpected error occurs.
	ErrorInternalServerError = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "APD-5000",
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
)
