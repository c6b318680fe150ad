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

package cert

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/asgardeo/eligibility/internal/system/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type CertTestSuite struct {
	suite.Suite
	home string
}

func TestCertSuite(t *testing.T) {
	suite.Run(t, new(CertTestSuite))
}

func (suite *CertTestSuite) SetupTest() {
	suite.home = suite.T().TempDir()
}

func (suite *CertTestSuite) writeKeyPair() {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	suite.Require().NoError(err)

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "localhost"},
		NotBefore:    time.Now().Add(-time.Minute),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		DNSNames:     []string{"localhost"},
	}
	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	suite.Require().NoError(err)
	keyDER, err := x509.MarshalECPrivateKey(key)
	suite.Require().NoError(err)

	suite.Require().NoError(os.WriteFile(filepath.Join(suite.home, "server.cert"),
		pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), 0o600))
	suite.Require().NoError(os.WriteFile(filepath.Join(suite.home, "server.key"),
		pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER}), 0o600))
}

func (suite *CertTestSuite) config() *config.Config {
	return &config.Config{Security: config.SecurityConfig{CertFile: "server.cert", KeyFile: "server.key"}}
}

func (suite *CertTestSuite) TestGetTLSConfig() {
	suite.writeKeyPair()

	tlsConfig, err := GetTLSConfig(suite.config(), suite.home)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), tlsConfig.Certificates, 1)
	assert.Equal(suite.T(), uint16(tls.VersionTLS12), tlsConfig.MinVersion)
}

func (suite *CertTestSuite) TestGetTLSConfigMissingFiles() {
	_, err := GetTLSConfig(suite.config(), suite.home)
	assert.ErrorContains(suite.T(), err, "server.cert")
}

func (suite *CertTestSuite) TestGetTLSConfigInvalidPair() {
	suite.Require().NoError(os.WriteFile(filepath.Join(suite.home, "server.cert"), []byte("nope"), 0o600))
	suite.Require().NoError(os.WriteFile(filepath.Join(suite.home, "server.key"), []byte("nope"), 0o600))

	_, err := GetTLSConfig(suite.config(), suite.home)
	assert.ErrorContains(suite.T(), err, "failed to load TLS key pair")
}
