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

package utils

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// GenerateUUID generates a new random UUID string.
func GenerateUUID() string {
	return uuid.New().String()
}

// IsValidUUID checks whether the given string is a valid UUID.
func IsValidUUID(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}

// SanitizeString trims the input and removes control characters.
func SanitizeString(input string) string {
	trimmed := strings.TrimSpace(input)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, trimmed)
}

// GetAllowedOrigin returns the origin if it is present in the allowed origins list.
func GetAllowedOrigin(allowedOrigins []string, origin string) string {
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}
