package sslcert

import (
	"bytes"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type CertSuite struct {
	suite.Suite
	gen *Generator
}

func TestCertSuite(t *testing.T) {
	suite.Run(t, new(CertSuite))
}

func (s *CertSuite) SetupTest() {
	s.gen = New(WithHosts("sho.rt"))
}

func (s *CertSuite) TestGenerate() {
	certPEM, keyPEM, err := s.gen.Generate()
	s.Require().NoError(err)
	s.Require().NotEmpty(keyPEM)

	block, _ := pem.Decode(certPEM)
	s.Require().NotNil(block)
	cert, err := x509.ParseCertificate(block.Bytes)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"localhost", "sho.rt"}, cert.DNSNames)
	s.Len(cert.IPAddresses, 2)

	s.NoError(s.gen.CheckPemFiles(bytes.NewReader(certPEM), bytes.NewReader(keyPEM)))
}

func (s *CertSuite) TestCheckPEMFiles() {
	s.Run("blank pem", func() {
		err := s.gen.CheckPemFiles(new(bytes.Buffer), new(bytes.Buffer))
		s.Require().ErrorIs(err, ErrBlankPEM)
	})

	s.Run("expired", func() {
		expired := New(WithValidFor(time.Hour))
		expired.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
		certPEM, keyPEM, err := expired.Generate()
		s.Require().NoError(err)

		errCheck := s.gen.CheckPemFiles(bytes.NewReader(certPEM), bytes.NewReader(keyPEM))
		s.Require().ErrorIs(errCheck, ErrCertExpired)
	})

	s.Run("key mismatch", func() {
		certPEM, _, err := s.gen.Generate()
		s.Require().NoError(err)
		_, otherKeyPEM, err := s.gen.Generate()
		s.Require().NoError(err)

		errCheck := s.gen.CheckPemFiles(bytes.NewReader(certPEM), bytes.NewReader(otherKeyPEM))
		s.Require().ErrorIs(errCheck, ErrKeyMismatch)
	})
}

func (s *CertSuite) TestEnsureFiles() {
	dir := s.T().TempDir()
	certPath := filepath.Join(dir, "certs", "cert.pem")
	keyPath := filepath.Join(dir, "certs", "key.pem")

	generated, err := s.gen.EnsureFiles(certPath, keyPath)
	s.Require().NoError(err)
	s.True(generated)

	first, err := os.ReadFile(certPath)
	s.Require().NoError(err)

	generated, err = s.gen.EnsureFiles(certPath, keyPath)
	s.Require().NoError(err)
	s.False(generated)

	second, err := os.ReadFile(certPath)
	s.Require().NoError(err)
	s.Equal(first, second)
}
