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
	"strings"

	"github.com/shopspring/decimal"

	"github.com/asgardeo/eligibility/internal/apidefinition"
	"github.com/asgardeo/eligibility/internal/execution/model"
)

// Coerce converts v to the declared data type. Null never coerces.
func Coerce(v model.Value, dataType apidefinition.DataType) (model.Value, bool) {
	if v.IsNull() {
		return model.Value{}, false
	}

	switch dataType {
	case apidefinition.DataTypeInt:
		return toInt(v)
	case apidefinition.DataTypeDecimal:
		return toDecimal(v)
	case apidefinition.DataTypeBool:
		return toBool(v)
	case apidefinition.DataTypeString:
		return model.StringValue(v.String()), true
	default:
		return model.Value{}, false
	}
}

func toInt(v model.Value) (model.Value, bool) {
	switch v.Kind() {
	case model.KindInt:
		return v, true
	case model.KindDecimal:
		d, _ := v.Decimal()
		return intFromDecimal(d)
	case model.KindString:
		s, _ := v.Str()
		parsed, err := model.ParseNumber(strings.TrimSpace(s))
		if err != nil {
			return model.Value{}, false
		}
		if parsed.Kind() == model.KindInt {
			return parsed, true
		}
		d, _ := parsed.Decimal()
		return intFromDecimal(d)
	default:
		return model.Value{}, false
	}
}

func intFromDecimal(d decimal.Decimal) (model.Value, bool) {
	if !d.IsInteger() {
		return model.Value{}, false
	}
	b := d.BigInt()
	if !b.IsInt64() {
		return model.Value{}, false
	}
	return model.IntValue(b.Int64()), true
}

func toDecimal(v model.Value) (model.Value, bool) {
	switch v.Kind() {
	case model.KindInt:
		i, _ := v.Int()
		return model.DecimalValue(decimal.NewFromInt(i)), true
	case model.KindDecimal:
		return v, true
	case model.KindString:
		s, _ := v.Str()
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			return model.Value{}, false
		}
		return model.DecimalValue(d), true
	default:
		return model.Value{}, false
	}
}

func toBool(v model.Value) (model.Value, bool) {
	switch v.Kind() {
	case model.KindBool:
		return v, true
	case model.KindInt:
		switch i, _ := v.Int(); i {
		case 0:
			return model.BoolValue(false), true
		case 1:
			return model.BoolValue(true), true
		}
	case model.KindString:
		s, _ := v.Str()
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1":
			return model.BoolValue(true), true
		case "false", "0":
			return model.BoolValue(false), true
		}
	}
	return model.Value{}, false
}
