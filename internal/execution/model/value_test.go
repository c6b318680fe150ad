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
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ValueTestSuite struct {
	suite.Suite
}

func TestValueSuite(t *testing.T) {
	suite.Run(t, new(ValueTestSuite))
}

func (suite *ValueTestSuite) TestUnmarshalScalars() {
	testCases := []struct {
		name   string
		input  string
		kind   Kind
		string string
	}{
		{name: "Integral", input: `42`, kind: KindInt, string: "42"},
		{name: "Negative", input: `-7`, kind: KindInt, string: "-7"},
		{name: "Fraction", input: `12.50`, kind: KindDecimal, string: "12.5"},
		{name: "Exponent", input: `1e3`, kind: KindDecimal, string: "1000"},
		{name: "Overflow", input: `92233720368547758070`, kind: KindDecimal, string: "92233720368547758070"},
		{name: "String", input: `"abc"`, kind: KindString, string: "abc"},
		{name: "Bool", input: `true`, kind: KindBool, string: "true"},
		{name: "Null", input: `null`, kind: KindNull, string: ""},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			var v Value
			require.NoError(suite.T(), json.Unmarshal([]byte(tc.input), &v))
			assert.Equal(suite.T(), tc.kind, v.Kind())
			assert.Equal(suite.T(), tc.string, v.String())
		})
	}
}

func (suite *ValueTestSuite) TestUnmarshalRejectsComposites() {
	var v Value
	assert.Error(suite.T(), json.Unmarshal([]byte(`{"a":1}`), &v))
	assert.Error(suite.T(), json.Unmarshal([]byte(`[1]`), &v))
}

func (suite *ValueTestSuite) TestUnmarshalCallerKeyValues() {
	var kv map[string]Value
	require.NoError(suite.T(), json.Unmarshal([]byte(`{"1":100,"income":"2500.75","vip":false,"x":null}`), &kv))

	i, ok := kv["1"].Int()
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), int64(100), i)
	s, ok := kv["income"].Str()
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "2500.75", s)
	assert.True(suite.T(), kv["x"].IsNull())
}

func (suite *ValueTestSuite) TestMarshal() {
	data, err := json.Marshal(map[string]Value{
		"a": IntValue(1),
		"b": DecimalValue(decimal.RequireFromString("2.25")),
		"c": StringValue(`q"t`),
		"d": BoolValue(false),
		"e": NullValue(),
	})
	require.NoError(suite.T(), err)
	assert.JSONEq(suite.T(), `{"a":1,"b":2.25,"c":"q\"t","d":false,"e":null}`, string(data))
}

func (suite *ValueTestSuite) TestEqual() {
	assert.True(suite.T(), DecimalValue(decimal.RequireFromString("1.50")).
		Equal(DecimalValue(decimal.RequireFromString("1.5"))))
	assert.False(suite.T(), IntValue(1).Equal(StringValue("1")))
	assert.True(suite.T(), NullValue().Equal(Value{}))
}

func (suite *ValueTestSuite) TestKindString() {
	assert.Equal(suite.T(), "DECIMAL", KindDecimal.String())
	assert.Equal(suite.T(), "NULL", Kind(99).String())
}
