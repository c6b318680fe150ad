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

package resolver

import (
	"fmt"

	"github.com/asgardeo/eligibility/internal/apidefinition"
)

// ErrorKind classifies why a slot could not be resolved.
type ErrorKind string

const (
	ErrorKindMissingBinding      ErrorKind = "MissingBinding"
	ErrorKindMissingCallerInput  ErrorKind = "MissingCallerInput"
	ErrorKindUpstreamNotExecuted ErrorKind = "UpstreamNotExecuted"
	ErrorKindFieldNotFound       ErrorKind = "FieldNotFound"
	ErrorKindTypeMismatch        ErrorKind = "TypeMismatch"
)

// ResolutionError reports the first slot that could not be resolved.
type ResolutionError struct {
	Kind      ErrorKind
	SlotID    string
	Key       string
	NodeID    string
	FieldPath string
	Expected  apidefinition.DataType
	Actual    string
}

// Error returns the error in the Kind(arguments) form recorded as the failure reason.
func (e *ResolutionError) Error() string {
	switch e.Kind {
	case ErrorKindMissingBinding:
		return fmt.Sprintf("%s(%s)", e.Kind, e.SlotID)
	case ErrorKindMissingCallerInput:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Key)
	case ErrorKindUpstreamNotExecuted:
		return fmt.Sprintf("%s(%s)", e.Kind, e.NodeID)
	case ErrorKindFieldNotFound:
		return fmt.Sprintf("%s(%s, %s)", e.Kind, e.NodeID, e.FieldPath)
	case ErrorKindTypeMismatch:
		return fmt.Sprintf("%s(%s, %s, %s)", e.Kind, e.SlotID, e.Expected, e.Actual)
	default:
		return string(e.Kind)
	}
}
