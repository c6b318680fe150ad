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

import "github.com/asgardeo/eligibility/internal/system/database/model"

var (
	// queryGetBindingsByTenant lists the bindings of a tenant.
	queryGetBindingsByTenant = model.DBQuery{
		ID: "PBQ-BINDING_MGT-01",
		Query: "SELECT TENANT_ID, SLOT_ID, SOURCE_TYPE, LITERAL_VALUE, CALLER_KEY, UPSTREAM_NODE_ID, FIELD_PATH, " +
			"UPDATED_BY, UPDATED_BY_NAME, UPDATED_AT FROM PARAMETER_BINDING WHERE TENANT_ID = $1 ORDER BY SLOT_ID",
	}
	// queryUpsertBinding inserts a binding or replaces the source of an existing one.
	queryUpsertBinding = model.DBQuery{
		ID: "PBQ-BINDING_MGT-02",
		Query: "INSERT INTO PARAMETER_BINDING (TENANT_ID, SLOT_ID, SOURCE_TYPE, LITERAL_VALUE, CALLER_KEY, " +
			"UPSTREAM_NODE_ID, FIELD_PATH, UPDATED_BY, UPDATED_BY_NAME, UPDATED_AT) " +
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) " +
			"ON CONFLICT (TENANT_ID, SLOT_ID) DO UPDATE SET SOURCE_TYPE = EXCLUDED.SOURCE_TYPE, " +
			"LITERAL_VALUE = EXCLUDED.LITERAL_VALUE, CALLER_KEY = EXCLUDED.CALLER_KEY, " +
			"UPSTREAM_NODE_ID = EXCLUDED.UPSTREAM_NODE_ID, FIELD_PATH = EXCLUDED.FIELD_PATH, " +
			"UPDATED_BY = EXCLUDED.UPDATED_BY, UPDATED_BY_NAME = EXCLUDED.UPDATED_BY_NAME, " +
			"UPDATED_AT = EXCLUDED.UPDATED_AT",
	}
)
