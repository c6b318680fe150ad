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

// Package utils provides helpers for reading values out of database result rows.
package utils

import (
	"fmt"
	"strconv"
	"time"
)

// GetString reads a non-null string column.
func GetString(row map[string]interface{}, column string) (string, error) {
	switch v := row[column].(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("failed to parse %s as string", column)
	}
}

// GetOptionalString reads a nullable string column, returning an empty string for NULL.
func GetOptionalString(row map[string]interface{}, column string) (string, error) {
	if row[column] == nil {
		return "", nil
	}
	return GetString(row, column)
}

// GetInt64 reads an integer column. Drivers may hand back integers or their text form.
func GetInt64(row map[string]interface{}, column string) (int64, error) {
	switch v := row[column].(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse %s as integer: %w", column, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("failed to parse %s as integer", column)
	}
}

// GetBool reads a boolean column stored as 0/1 or as a native boolean.
func GetBool(row map[string]interface{}, column string) (bool, error) {
	if b, ok := row[column].(bool); ok {
		return b, nil
	}
	n, err := GetInt64(row, column)
	if err != nil {
		return false, fmt.Errorf("failed to parse %s as boolean", column)
	}
	return n != 0, nil
}

// GetTime reads a timestamp column stored as RFC 3339 text or returned as time.Time.
func GetTime(row map[string]interface{}, column string) (time.Time, error) {
	if t, ok := row[column].(time.Time); ok {
		return t.UTC(), nil
	}
	s, err := GetString(row, column)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s as time", column)
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s as time: %w", column, err)
	}
	return t.UTC(), nil
}

// BoolToInt converts a boolean to the 0/1 form stored in the database.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// FormatTime renders a timestamp in the text form stored in the database.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
