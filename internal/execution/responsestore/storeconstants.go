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
package responsestore

import "github.com/asgardeo/eligibility/internal/system/database/model"

const recordColumns = "EXECUTION_ID, NODE_ID, TENANT_ID, IS_SUCCESS, STATUS_CODE, PAYLOAD, RAW_RESPONSE, " +
	"FAILURE_REASON, STATE, CREATED_AT, DURATION_MS"

var (
	// queryInsertRecord stores the record of one node invocation.
	queryInsertRecord = model.DBQuery{
		ID: "RSQ-RESPONSE_MGT-01",
		Query: "INSERT INTO RESPONSE_RECORD (" + recordColumns + ") " +
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)",
	}
	// queryGetRecordsByExecution lists the records of an execution in the order they were written.
	queryGetRecordsByExecution = model.DBQuery{
		ID: "RSQ-RESPONSE_MGT-02",
		Query: "SELECT " + recordColumns + " FROM RESPONSE_RECORD WHERE EXECUTION_ID = $1 AND TENANT_ID = $2 " +
			"ORDER BY CREATED_AT, NODE_ID",
	}
)
