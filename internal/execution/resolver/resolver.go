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

// Package resolver turns the parameter slots of an API definition into concrete call arguments.
package resolver

import (
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/asgardeo/eligibility/internal/apidefinition"
	"github.com/asgardeo/eligibility/internal/execution/model"
	"github.com/asgardeo/eligibility/internal/parameterbinding"
)

// Resolve produces the arguments of def in declaration order. It stops at the first slot that cannot be
// resolved and returns a *ResolutionError for it.
func Resolve(def *apidefinition.APIDefinition, bindings parameterbinding.BindingSet,
	callerKeyValues map[string]model.Value, ledger *model.Ledger) ([]model.ResolvedArgument, error) {
	args := make([]model.ResolvedArgument, 0, len(def.DeclaredParameters))

	for _, slot := range def.DeclaredParameters {
		binding, ok := bindings[slot.SlotID]
		if !ok {
			if slot.Required {
				return nil, &ResolutionError{Kind: ErrorKindMissingBinding, SlotID: slot.SlotID}
			}
			continue
		}

		value, present, err := lookup(slot, binding.Source, callerKeyValues, ledger)
		if err != nil {
			return nil, err
		}
		if !present {
			continue
		}

		if value.IsNull() {
			if slot.Required {
				return nil, typeMismatch(slot, describe(value))
			}
			continue
		}

		coerced, ok := Coerce(value, slot.DataType)
		if !ok {
			return nil, typeMismatch(slot, describe(value))
		}
		args = append(args, model.ResolvedArgument{Slot: slot, Value: coerced})
	}
	return args, nil
}

// lookup fetches the raw value of the source. present is false when an optional slot has no value.
func lookup(slot apidefinition.ParameterSlot, source parameterbinding.Source,
	callerKeyValues map[string]model.Value, ledger *model.Ledger) (model.Value, bool, error) {
	switch source.Type {
	case parameterbinding.SourceTypeLiteral:
		if source.Value == nil {
			return model.NullValue(), true, nil
		}
		return *source.Value, true, nil

	case parameterbinding.SourceTypeCallerInput:
		value, ok := callerKeyValues[source.Key]
		if !ok {
			if slot.Required {
				return model.Value{}, false, &ResolutionError{Kind: ErrorKindMissingCallerInput, SlotID: slot.SlotID,
					Key: source.Key}
			}
			return model.Value{}, false, nil
		}
		return value, true, nil

	case parameterbinding.SourceTypeUpstreamResponse:
		var record model.ResponseRecord
		ok := false
		if ledger != nil {
			record, ok = ledger.Get(source.NodeID)
		}
		if !ok || !record.IsSuccess {
			return model.Value{}, false, &ResolutionError{Kind: ErrorKindUpstreamNotExecuted, SlotID: slot.SlotID,
				NodeID: source.NodeID}
		}

		result := gjson.GetBytes(record.Payload, source.FieldPath)
		if !result.Exists() {
			return model.Value{}, false, &ResolutionError{Kind: ErrorKindFieldNotFound, SlotID: slot.SlotID,
				NodeID: source.NodeID, FieldPath: source.FieldPath}
		}
		value, ok := valueFromResult(result)
		if !ok {
			return model.Value{}, false, typeMismatch(slot, result.Raw)
		}
		return value, true, nil

	default:
		return model.Value{}, false, &ResolutionError{Kind: ErrorKindMissingBinding, SlotID: slot.SlotID}
	}
}

// valueFromResult converts a scalar JSON result. Objects and arrays are rejected.
func valueFromResult(result gjson.Result) (model.Value, bool) {
	switch result.Type {
	case gjson.Null:
		return model.NullValue(), true
	case gjson.True:
		return model.BoolValue(true), true
	case gjson.False:
		return model.BoolValue(false), true
	case gjson.String:
		return model.StringValue(result.Str), true
	case gjson.Number:
		value, err := model.ParseNumber(result.Raw)
		if err != nil {
			return model.Value{}, false
		}
		return value, true
	default:
		return model.Value{}, false
	}
}

func typeMismatch(slot apidefinition.ParameterSlot, actual string) *ResolutionError {
	return &ResolutionError{Kind: ErrorKindTypeMismatch, SlotID: slot.SlotID, Expected: slot.DataType,
		Actual: actual}
}

func describe(v model.Value) string {
	switch v.Kind() {
	case model.KindNull:
		return "null"
	case model.KindString:
		return strconv.Quote(v.String())
	default:
		return v.String()
	}
}
