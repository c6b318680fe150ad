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

import "github.com/asgardeo/eligibility/internal/system/database/model"

var (
	// queryCreateNode inserts a node.
	queryCreateNode = model.DBQuery{
		ID: "NDQ-NODE_MGT-01",
		Query: "INSERT INTO NODE (NODE_ID, PRODUCT_ID, NAME, POSITION, IS_CRITICAL, CREATED_AT) " +
			"VALUES ($1, $2, $3, $4, $5, $6)",
	}
	// queryGetNodeByID fetches a node by id.
	queryGetNodeByID = model.DBQuery{
		ID:    "NDQ-NODE_MGT-02",
		Query: "SELECT NODE_ID, PRODUCT_ID, NAME, POSITION, IS_CRITICAL FROM NODE WHERE NODE_ID = $1",
	}
	// queryGetNodesByProduct lists the nodes of a product in execution order.
	queryGetNodesByProduct = model.DBQuery{
		ID: "NDQ-NODE_MGT-03",
		Query: "SELECT NODE_ID, PRODUCT_ID, NAME, POSITION, IS_CRITICAL FROM NODE WHERE PRODUCT_ID = $1 " +
			"ORDER BY POSITION, NODE_ID",
	}
)
