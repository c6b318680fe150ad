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

import "time"

// Protocol is the wire protocol of an external API.
type Protocol string

const (
	// ProtocolREST is a JSON over HTTP API.
	ProtocolREST Protocol = "REST"
	// ProtocolSOAP is a SOAP 1.1 XML API.
	ProtocolSOAP Protocol = "SOAP"
)

// DataType is the declared type of a parameter slot.
type DataType string

const (
	DataTypeInt     DataType = "INT"
	DataTypeString  DataType = "STRING"
	DataTypeDecimal DataType = "DECIMAL"
	DataTypeBool    DataType = "BOOL"
)

// ParameterLocation is where a REST argument is placed in the request.
type ParameterLocation string

const (
	LocationQuery  ParameterLocation = "QUERY"
	LocationBody   ParameterLocation = "BODY"
	LocationPath   ParameterLocation = "PATH"
	LocationHeader ParameterLocation = "HEADER"
)

// ParameterSlot is a declared input of an API definition.
type ParameterSlot struct {
	SlotID   string            `json:"slotId"`
	Name     string            `json:"name"`
	DataType DataType          `json:"dataType"`
	Required bool              `json:"required"`
	Location ParameterLocation `json:"location,omitempty"`
}

// APIDefinition describes the external API backing a node. Published definitions are never modified;
// publishing again for the same node creates the next version.
type APIDefinition struct {
	ID                 string            `json:"id"`
	NodeID             string            `json:"nodeId"`
	Version            int               `json:"version"`
	Protocol           Protocol          `json:"protocol"`
	EndpointURI        string            `json:"endpointUri"`
	HTTPMethod         string            `json:"httpMethod"`
	SOAPAction         string            `json:"soapAction,omitempty"`
	EnvelopeTemplate   string            `json:"envelopeTemplate,omitempty"`
	Operation          string            `json:"operation,omitempty"`
	Namespace          string            `json:"namespace,omitempty"`
	Headers            map[string]string `json:"headers,omitempty"`
	DeclaredParameters []ParameterSlot   `json:"declaredParameters"`
	ResponseShape      string            `json:"responseShape,omitempty"`
	IsActive           bool              `json:"isActive"`
	CreatedAt          time.Time         `json:"createdAt"`
}

// GetSlot returns the declared slot with the given id.
func (d *APIDefinition) GetSlot(slotID string) (ParameterSlot, bool) {
	for _, slot := range d.DeclaredParameters {
		if slot.SlotID == slotID {
			return slot, true
		}
	}
	return ParameterSlot{}, false
}

// apiDefinitionRequest is the body of a publish request.
type apiDefinitionRequest struct {
	NodeID             string            `json:"nodeId"`
	Protocol           string            `json:"protocol"`
	EndpointURI        string            `json:"endpointUri"`
	HTTPMethod         string            `json:"httpMethod"`
	SOAPAction         string            `json:"soapAction"`
	EnvelopeTemplate   string            `json:"envelopeTemplate"`
	Operation          string            `json:"operation"`
	Namespace          string            `json:"namespace"`
	Headers            map[string]string `json:"headers"`
	DeclaredParameters []ParameterSlot   `json:"declaredParameters"`
	ResponseShape      string            `json:"responseShape"`
}
