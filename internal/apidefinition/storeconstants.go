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

import "github.com/asgardeo/eligibility/internal/system/database/model"

const definitionColumns = "ID, NODE_ID, VERSION, PROTOCOL, ENDPOINT_URI, HTTP_METHOD, SOAP_ACTION, " +
	"ENVELOPE_TEMPLATE, OPERATION, NAMESPACE, HEADERS, RESPONSE_SHAPE, IS_ACTIVE, CREATED_AT"

var (
	// queryGetActiveDefinitionByNode fetches the active definition of a node.
	queryGetActiveDefinitionByNode = model.DBQuery{
		ID:    "APQ-APIDEF_MGT-01",
		Query: "SELECT " + definitionColumns + " FROM API_DEFINITION WHERE NODE_ID = $1 AND IS_ACTIVE = 1",
	}
	// queryGetDefinitionsByNodeAndProtocol lists every version of a node's definitions for a protocol.
	queryGetDefinitionsByNodeAndProtocol = model.DBQuery{
		ID: "APQ-APIDEF_MGT-02",
		Query: "SELECT " + definitionColumns + " FROM API_DEFINITION WHERE NODE_ID = $1 AND PROTOCOL = $2 " +
			"ORDER BY VERSION DESC",
	}
	// queryGetSlotsByDefinition lists the slots of a definition in declaration order.
	queryGetSlotsByDefinition = model.DBQuery{
		ID: "APQ-APIDEF_MGT-03",
		Query: "SELECT SLOT_ID, NAME, DATA_TYPE, IS_REQUIRED, LOCATION FROM PARAMETER_SLOT " +
			"WHERE DEFINITION_ID = $1 ORDER BY POSITION",
	}
	// queryGetMaxVersion returns the latest version published for a node.
	queryGetMaxVersion = model.DBQuery{
		ID:    "APQ-APIDEF_MGT-04",
		Query: "SELECT COALESCE(MAX(VERSION), 0) AS MAX_VERSION FROM API_DEFINITION WHERE NODE_ID = $1",
	}
	// queryDeactivateDefinitions retires the active definition of a node.
	queryDeactivateDefinitions = model.DBQuery{
		ID:    "APQ-APIDEF_MGT-05",
		Query: "UPDATE API_DEFINITION SET IS_ACTIVE = 0 WHERE NODE_ID = $1 AND IS_ACTIVE = 1",
	}
	// queryInsertDefinition inserts a definition version.
	queryInsertDefinition = model.DBQuery{
		ID: "APQ-APIDEF_MGT-06",
		Query: "INSERT INTO API_DEFINITION (" + definitionColumns + ") " +
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)",
	}
	// queryInsertSlot inserts a slot of a definition version.
	queryInsertSlot = model.DBQuery{
		ID: "APQ-APIDEF_MGT-07",
		Query: "INSERT INTO PARAMETER_SLOT (DEFINITION_ID, SLOT_ID, NAME, DATA_TYPE, IS_REQUIRED, LOCATION, POSITION) " +
			"VALUES ($1, $2, $3, $4, $5, $6, $7)",
	}
	// queryGetNodeBySlot finds the node whose active definition declares the slot.
	queryGetNodeBySlot = model.DBQuery{
		ID: "APQ-APIDEF_MGT-08",
		Query: "SELECT d.NODE_ID AS NODE_ID FROM PARAMETER_SLOT s JOIN API_DEFINITION d ON d.ID = s.DEFINITION_ID " +
			"WHERE s.SLOT_ID = $1 AND d.IS_ACTIVE = 1",
	}
)
