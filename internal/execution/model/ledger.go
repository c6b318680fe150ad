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

package model

import (
	"errors"
	"sync"
)

// ErrAlreadyRecorded is returned when a node already has a record in the ledger.
var ErrAlreadyRecorded = errors.New("node response already recorded")

// Ledger holds the response of every node invoked within one execution. Each node is recorded at most once.
type Ledger struct {
	mu      sync.RWMutex
	records map[string]ResponseRecord
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		records: make(map[string]ResponseRecord),
	}
}

// Append records the response of a node.
func (l *Ledger) Append(record ResponseRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.records[record.NodeID]; exists {
		return ErrAlreadyRecorded
	}
	l.records[record.NodeID] = record
	return nil
}

// Get returns the record of a node.
func (l *Ledger) Get(nodeID string) (ResponseRecord, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	record, ok := l.records[nodeID]
	return record, ok
}

// Len returns the number of recorded nodes.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}
