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

// Package cert loads the server TLS key pair.
package cert

import (
	"crypto/tls"
	"fmt"
	"os"
	"path/filepath"

	"github.com/asgardeo/eligibility/internal/system/config"
)

// GetTLSConfig loads the key pair named in the security configuration, resolving both paths against serverHome.
func GetTLSConfig(cfg *config.Config, serverHome string) (*tls.Config, error) {
	certFile := filepath.Join(serverHome, cfg.Security.CertFile)
	keyFile := filepath.Join(serverHome, cfg.Security.KeyFile)

	for _, file := range []string{certFile, keyFile} {
		if _, err := os.Stat(file); err != nil {
			return nil, fmt.Errorf("TLS material not readable at %s: %w", file, err)
		}
	}

	pair, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS key pair: %w", err)
	}

	return &tls.Config{
		MinVersion:   tls.VersionTLS12,
		Certificates: []tls.Certificate{pair},
	}, nil
}
