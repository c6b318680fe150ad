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

// Package config provides structures and functions for loading and managing server configurations.
package config

import (
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

const (
	defaultExecutionTimeout        = 10000
	defaultExecutionRetryBackoff   = 200
	defaultExecutionMaxConcurrency = 4
)

// ServerConfig holds the server configuration details.
type ServerConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	HTTPOnly bool   `yaml:"http_only"`
}

// SecurityConfig holds the TLS key material paths, relative to the server home.
type SecurityConfig struct {
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// DataSource holds the individual database connection details.
type DataSource struct {
	Type            string `yaml:"type"`
	Hostname        string `yaml:"hostname"`
	Port            int    `yaml:"port"`
	Name            string `yaml:"name"`
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	SSLMode         string `yaml:"sslmode"`
	Path            string `yaml:"path"`
	Options         string `yaml:"options"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"`
}

// DatabaseConfig holds the different database configuration details.
type DatabaseConfig struct {
	Config  DataSource `yaml:"config"`
	Runtime DataSource `yaml:"runtime"`
}

// CacheProperty holds the configuration of an individual named cache.
type CacheProperty struct {
	Name           string `yaml:"name"`
	Disabled       bool   `yaml:"disabled"`
	Size           int    `yaml:"size"`
	TTL            int    `yaml:"ttl"`
	EvictionPolicy string `yaml:"eviction_policy"`
}

// CacheConfig holds the cache configuration details.
type CacheConfig struct {
	Disabled        bool            `yaml:"disabled"`
	Type            string          `yaml:"type"`
	Size            int             `yaml:"size"`
	TTL             int             `yaml:"ttl"`
	EvictionPolicy  string          `yaml:"eviction_policy"`
	CleanupInterval int             `yaml:"cleanup_interval"`
	Properties      []CacheProperty `yaml:"properties,omitempty"`
}

// CORSConfig holds the CORS configuration details.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	// MaxAge is the preflight cache lifetime in seconds. Zero leaves the header unset.
	MaxAge int `yaml:"max_age"`
}

// ExecutionConfig holds the outbound call policy shared by the protocol executors and the orchestrator.
// Timeout and RetryBackoff are expressed in milliseconds.
type ExecutionConfig struct {
	Timeout          int  `yaml:"timeout"`
	MaxRetries       int  `yaml:"max_retries"`
	RetryBackoff     int  `yaml:"retry_backoff"`
	MaxConcurrency   int  `yaml:"max_concurrency"`
	PersistResponses bool `yaml:"persist_responses"`
}

// GetTimeout returns the per-call timeout, falling back to the default when unset.
func (e ExecutionConfig) GetTimeout() time.Duration {
	if e.Timeout <= 0 {
		return defaultExecutionTimeout * time.Millisecond
	}
	return time.Duration(e.Timeout) * time.Millisecond
}

// GetRetryBackoff returns the base delay between retry attempts.
func (e ExecutionConfig) GetRetryBackoff() time.Duration {
	if e.RetryBackoff <= 0 {
		return defaultExecutionRetryBackoff * time.Millisecond
	}
	return time.Duration(e.RetryBackoff) * time.Millisecond
}

// GetMaxRetries returns the number of retries after the first attempt.
func (e ExecutionConfig) GetMaxRetries() int {
	if e.MaxRetries < 0 {
		return 0
	}
	return e.MaxRetries
}

// GetMaxConcurrency returns the size of the per-request worker pool.
func (e ExecutionConfig) GetMaxConcurrency() int {
	if e.MaxConcurrency <= 0 {
		return defaultExecutionMaxConcurrency
	}
	return e.MaxConcurrency
}

// Config holds the complete configuration details of the server.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Security  SecurityConfig  `yaml:"security"`
	Database  DatabaseConfig  `yaml:"database"`
	Cache     CacheConfig     `yaml:"cache"`
	CORS      CORSConfig      `yaml:"cors"`
	Execution ExecutionConfig `yaml:"execution"`
}

// LoadConfig loads the configurations from the specified YAML file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	path = filepath.Clean(path)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
