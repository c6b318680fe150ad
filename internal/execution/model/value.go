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

// Package model holds the runtime types shared by the resolver, the protocol executors and the orchestrator.
package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindString
	KindDecimal
	KindBool
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "INT"
	case KindString:
		return "STRING"
	case KindDecimal:
		return "DECIMAL"
	case KindBool:
		return "BOOL"
	default:
		return "NULL"
	}
}

// Value is a scalar supplied by a caller, a literal binding or an upstream response.
// The zero Value is Null.
type Value struct {
	kind Kind
	i    int64
	s    string
	d    decimal.Decimal
	b    bool
}

// NullValue returns the Null value.
func NullValue() Value {
	return Value{}
}

// IntValue returns an Int value.
func IntValue(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// StringValue returns a String value.
func StringValue(s string) Value {
	return Value{kind: KindString, s: s}
}

// DecimalValue returns a Decimal value.
func DecimalValue(d decimal.Decimal) Value {
	return Value{kind: KindDecimal, d: d}
}

// BoolValue returns a Bool value.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// ParseNumber returns an Int for integral literals and a Decimal otherwise.
func ParseNumber(s string) (Value, error) {
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return IntValue(i), nil
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Value{}, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return DecimalValue(d), nil
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Int returns the integer held by v.
func (v Value) Int() (int64, bool) { return v.i, v.kind == KindInt }

// Str returns the string held by v.
func (v Value) Str() (string, bool) { return v.s, v.kind == KindString }

// Decimal returns the decimal held by v.
func (v Value) Decimal() (decimal.Decimal, bool) { return v.d, v.kind == KindDecimal }

// Bool returns the boolean held by v.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// String returns the canonical text form of v. Null renders as an empty string.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindString:
		return v.s
	case KindDecimal:
		return v.d.String()
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Equal reports whether v and other hold the same variant and value.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.i == other.i
	case KindString:
		return v.s == other.s
	case KindDecimal:
		return v.d.Equal(other.d)
	case KindBool:
		return v.b == other.b
	default:
		return true
	}
}

// MarshalJSON encodes v as a JSON scalar. Decimals are written as bare numbers.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindInt:
		return []byte(strconv.FormatInt(v.i, 10)), nil
	case KindString:
		return json.Marshal(v.s)
	case KindDecimal:
		return []byte(v.d.String()), nil
	case KindBool:
		return []byte(strconv.FormatBool(v.b)), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a JSON scalar. Integral numbers become Int, other numbers Decimal.
func (v *Value) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	token, err := decoder.Token()
	if err != nil {
		return fmt.Errorf("invalid value: %w", err)
	}

	switch t := token.(type) {
	case nil:
		*v = NullValue()
	case bool:
		*v = BoolValue(t)
	case string:
		*v = StringValue(t)
	case json.Number:
		parsed, err := ParseNumber(t.String())
		if err != nil {
			return err
		}
		*v = parsed
	default:
		return errors.New("value must be a string, number, boolean or null")
	}
	return nil
}
