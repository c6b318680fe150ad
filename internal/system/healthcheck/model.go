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
package healthcheck

// Status is the health of the server or one of its dependencies.
type Status string

const (
	StatusUp   Status = "UP"
	StatusDown Status = "DOWN"
)

// ServiceStatus is the health of a dependency.
type ServiceStatus struct {
	ServiceName string `json:"serviceName"`
	Status      Status `json:"status"`
}

// ServerStatus is the readiness report of the server.
type ServerStatus struct {
	Status        Status          `json:"status"`
	ServiceStatus []ServiceStatus `json:"serviceStatus"`
}
