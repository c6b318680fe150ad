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

package node

import (
	"errors"

	"github.com/asgardeo/eligibility/internal/system/error/serviceerror"
)

// ErrNodeNotFound is returned by the store when the node does not exist.
var ErrNodeNotFound = errors.New("node not found")

// Client errors for node operations.
var (
	// ErrorNodeNotFound is returned when a node is not found.
	ErrorNodeNotFound = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "NOD-1001",
		Error:            "Node not found",
		ErrorDescription: "The requested node could not be found",
	}
	// ErrorInvalidNodeID is returned when the node id is empty.
	ErrorInvalidNodeID = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "NOD-1002",
		Error:            "Invalid node ID",
		ErrorDescription: "The node ID is empty",
	}
	// ErrorInvalidProductID is returned when the product id is empty.
	ErrorInvalidProductID = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "NOD-1003",
		Error:            "Invalid product ID",
		ErrorDescription: "The product ID is empty",
	}
	// ErrorInvalidNodeName is returned when the node name is empty.
	ErrorInvalidNodeName = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "NOD-1004",
		Error:            "Invalid node name",
		ErrorDescription: "The node name is empty",
	}
	// ErrorInvalidPosition is returned when the position is negative.
	ErrorInvalidPosition = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "NOD-1005",
		Error:            "Invalid position",
		ErrorDescription: "The node position must not be negative",
	}
	// ErrorInvalidRequestFormat is returned when the request body cannot be decoded.
	ErrorInvalidRequestFormat = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "NOD-1006",
		Error:            "Invalid request format",
		ErrorDescription: "The request body is malformed or contains invalid data",
	}
)

// Server errors for node operations.
var (
	// ErrorInternalServerError is returned when an unexpected error occurs.
	ErrorInternalServerError = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "NOD-5000",
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
)
