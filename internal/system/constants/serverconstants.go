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

// Package constants defines global constants used across the system module.
package constants

const (
	// LogLevelEnvironmentVariable is the environment variable name for the log level.
	LogLevelEnvironmentVariable = "LOG_LEVEL"
	// DefaultLogLevel is the default log level used if not specified.
	DefaultLogLevel = "info"
	// LogFormatEnvironmentVariable selects the log encoder.
	LogFormatEnvironmentVariable = "LOG_FORMAT"
	// LogFormatConsole writes tab separated human readable lines.
	LogFormatConsole = "console"
	// LogFormatJSON writes one JSON object per entry.
	LogFormatJSON = "json"
)

// ContentTypeHeaderName is the name of the content type header used in HTTP requests.
const ContentTypeHeaderName = "Content-Type"

// AcceptHeaderName is the name of the accept header used in HTTP requests.
const AcceptHeaderName = "Accept"

// ContentTypeJSON is the content type for JSON data.
const ContentTypeJSON = "application/json"

// ContentTypeXML is the content type used for SOAP 1.1 requests.
const ContentTypeXML = "text/xml; charset=utf-8"

// SOAPActionHeaderName is the name of the SOAP action header.
const SOAPActionHeaderName = "SOAPAction"

// Identity headers populated by the upstream authentication gateway.
const (
	// TenantIDHeaderName carries the tenant identifier of the caller.
	TenantIDHeaderName = "X-Tenant-Id"
	// UserIDHeaderName carries the user identifier of the caller.
	UserIDHeaderName = "X-User-Id"
	// UserNameHeaderName carries the display name of the caller.
	UserNameHeaderName = "X-User-Name"
)

// RequestIDHeaderName correlates an access log entry with the caller's request.
const RequestIDHeaderName = "X-Request-Id"

// Database names resolved by the database provider.
const (
	// ConfigDBName is the database holding definitions, nodes and bindings.
	ConfigDBName = "config"
	// RuntimeDBName is the database holding persisted execution responses.
	RuntimeDBName = "runtime"
)
