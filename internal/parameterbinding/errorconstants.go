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

package parameterbinding

import (
	"errors"

	"github.com/asgardeo/eligibility/internal/system/error/serviceerror"
)

// errCyclicBinding is returned by the cycle check run inside the save transaction.
var errCyclicBinding = errors.New("binding would create a dependency cycle")

// Client errors for parameter binding operations.
var (
	// ErrorInvalidTenantID is returned when the request carries no tenant.
	ErrorInvalidTenantID = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "PBD-1001",
		Error:            "Invalid tenant ID",
		ErrorDescription: "The tenant ID is empty",
	}
	// ErrorInvalidSlotID is returned when the slot id is empty.
	ErrorInvalidSlotID = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "PBD-1002",
		Error:            "Invalid slot ID",
		ErrorDescription: "The slot ID is empty",
	}
	// ErrorInvalidSource is returned when the binding source is malformed.
	ErrorInvalidSource = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "PBD-1003",
		Error:            "Invalid binding source",
		ErrorDescription: "The binding source is malformed",
	}
	// ErrorSlotNotFound is returned when the slot is not declared by any published definition.
	ErrorSlotNotFound = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "PBD-1004",
		Error:            "Parameter slot not found",
		ErrorDescription: "The slot is not declared by any published API definition",
	}
	// ErrorUpstreamNodeNotFound is returned when the referenced upstream node does not exist.
	ErrorUpstreamNodeNotFound = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "PBD-1005",
		Error:            "Upstream node not found",
		ErrorDescription: "The node referenced by the binding does not exist",
	}
	// ErrorCrossProductReference is returned when the upstream node belongs to another product.
	ErrorCrossProductReference = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "PBD-1006",
		Error:            "Invalid upstream node",
		ErrorDescription: "The upstream node must belong to the same product as the slot's node",
	}
	// ErrorCyclicBinding is returned when the binding would create a dependency cycle.
	ErrorCyclicBinding = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "PBD-1007",
		Error:            "Cyclic binding",
		ErrorDescription: "The binding would create a cycle in the node dependency graph",
	}
	// ErrorInvalidRequestFormat is returned when the request body cannot be decoded.
	ErrorInvalidRequestFormat = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "PBD-1008",
		Error:            "Invalid request format",
		ErrorDescription: "The request body is malformed or contains invalid data",
	}
)

// Server errors for parameter binding operations.
var (
	// ErrorInternalServerError is returned when an unexpected error occurs.
	ErrorInternalServerError = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "PBD-5000",
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
)
