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
package orchestrator

import "github.com/asgardeo/eligibility/internal/system/error/serviceerror"

// Client errors for execution operations.
var (
	// ErrorInvalidProductID is returned when the product id is empty.
	ErrorInvalidProductID = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "EXE-1001",
		Error:            "Invalid product ID",
		ErrorDescription: "The product ID is empty",
	}
	// ErrorInvalidNodeID is returned when the node id is empty.
	ErrorInvalidNodeID = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "EXE-1002",
		Error:            "Invalid node ID",
		ErrorDescription: "The node ID is empty",
	}
	// ErrorProductNotFound is returned when a product has no nodes.
	ErrorProductNotFound = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "EXE-1003",
		Error:            "Product not found",
		ErrorDescription: "The product has no nodes to execute",
	}
	// ErrorAPIDefinitionNotFound is returned when a node has no active definition.
	ErrorAPIDefinitionNotFound = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "EXE-1004",
		Error:            "API definition not found",
		ErrorDescription: "No active API definition exists for the node",
	}
	// ErrorProtocolMismatch is returned when a node is invoked through the endpoint of another protocol.
	ErrorProtocolMismatch = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "EXE-1005",
		Error:            "Protocol mismatch",
		ErrorDescription: "The active API definition of the node uses a different protocol",
	}
	// ErrorExecutionNotFound is returned when no records were persisted for an execution.
	ErrorExecutionNotFound = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "EXE-1006",
		Error:            "Execution not found",
		ErrorDescription: "No response records exist for the execution",
	}
	// ErrorInvalidRequestFormat is returned when the request body cannot be decoded.
	ErrorInvalidRequestFormat = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "EXE-1007",
		Error:            "Invalid request format",
		ErrorDescription: "The request body is malformed",
	}
	// ErrorInvalidTenantID is returned when the request carries no tenant.
	ErrorInvalidTenantID = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "EXE-1008",
		Error:            "Invalid tenant ID",
		ErrorDescription: "The tenant ID is empty",
	}
)

// Server errors for execution operations.
var (
	// ErrorInternalServerError is returned for unexpected failures.
	ErrorInternalServerError = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "EXE-5000",
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
)
