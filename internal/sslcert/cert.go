package sslcert

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"io"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// CertOptions параметры самоподписанного сертификата.
type CertOptions struct {
	Organization string
	// Hosts DNS имена и IP адреса, на которые выписывается сертификат.
	Hosts    []string
	ValidFor time.Duration
}

// Generator генератор самоподписанных сертификатов для локального HTTPS.
type Generator struct {
	options CertOptions
	now     func() time.Time
}

// New создает генератор. По умолчанию сертификат выписывается на localhost, 127.0.0.1 и ::1 на год.
func New(opts ...func(*CertOptions)) *Generator {
	options := CertOptions{
		Organization: "Shortlink",
		Hosts:        []string{"localhost", "127.0.0.1", "::1"},
		ValidFor:     365 * 24 * time.Hour, //nolint:mnd
	}
	for _, opt := range opts {
		opt(&options)
	}
	return &Generator{options: options, now: time.Now}
}

// WithHosts добавляет хосты к сертификату.
func WithHosts(hosts ...string) func(*CertOptions) {
	return func(o *CertOptions) {
		o.Hosts = append(o.Hosts, hosts...)
	}
}

// WithValidFor задает срок действия сертификата.
func WithValidFor(d time.Duration) func(*CertOptions) {
	return func(o *CertOptions) {
		o.ValidFor = d
	}
}

// Generate генерирует пару сертификат/приватный ключ в формате PEM.
func (g *Generator) Generate() ([]byte, []byte, error) {
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128)) //nolint:mnd
	if err != nil {
		return nil, nil, errors.Wrap(err, "generate serial number")
	}

	notBefore := g.now()
	template := &x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			Organization: []string{g.options.Organization},
		},
		NotBefore:             notBefore,
		NotAfter:              notBefore.Add(g.options.ValidFor),
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}
	for _, h := range g.options.Hosts {
		if ip := net.ParseIP(h); ip != nil {
			template.IPAddresses = append(template.IPAddresses, ip)
		} else {
			template.DNSNames = append(template.DNSNames, h)
		}
	}

	privKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, errors.Wrap(err, "generate private key")
	}
	certBytes, err := x509.CreateCertificate(rand.Reader, template, template, &privKey.PublicKey, privKey)
	if err != nil {
		return nil, nil, errors.Wrap(err, "generate certificate")
	}
	keyBytes, err := x509.MarshalPKCS8PrivateKey(privKey)
	if err != nil {
		return nil, nil, errors.Wrap(err, "marshal private key")
	}

	return pemEncode("CERTIFICATE", certBytes), pemEncode("PRIVATE KEY", keyBytes), nil
}

// CheckPemFiles проверяет сертификат и ключ.
//
// Возможные ошибки:
//   - ErrBlankPEM пустые данные
//   - ErrCertExpired срок действия сертификата истек
//   - ErrCertNotValidYet сертификат еще не вступил в силу
//   - ErrKeyMismatch ключ не подходит к сертификату
func (g *Generator) CheckPemFiles(certSource io.Reader, keySource io.Reader) error {
	certPEM, err := io.ReadAll(certSource)
	if err != nil {
		return errors.Wrap(err, "read certificate")
	}
	keyPEM, err := io.ReadAll(keySource)
	if err != nil {
		return errors.Wrap(err, "read private key")
	}
	if len(certPEM) == 0 || len(keyPEM) == 0 {
		return ErrBlankPEM
	}

	block, _ := pem.Decode(certPEM)
	if block == nil || block.Type != "CERTIFICATE" {
		return errors.New("certificate is not a PEM encoded CERTIFICATE")
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return errors.Wrap(err, "parse certificate")
	}

	now := g.now()
	if cert.NotBefore.After(now) {
		return ErrCertNotValidYet
	}
	if cert.NotAfter.Before(now) {
		return ErrCertExpired
	}

	if _, pairErr := tls.X509KeyPair(certPEM, keyPEM); pairErr != nil {
		return errors.Wrap(ErrKeyMismatch, pairErr.Error())
	}
	return nil
}

// EnsureFiles оставляет действующую пару файлов как есть, иначе выписывает новую.
// Возвращает true, если сертификат был сгенерирован.
func (g *Generator) EnsureFiles(certPath, keyPath string) (bool, error) {
	if g.checkFiles(certPath, keyPath) == nil {
		return false, nil
	}

	certPEM, keyPEM, err := g.Generate()
	if err != nil {
		return false, err
	}
	for _, p := range []string{certPath, keyPath} {
		if mkErr := os.MkdirAll(filepath.Dir(p), 0o700); mkErr != nil { //nolint:mnd
			return false, errors.Wrapf(mkErr, "create dir for %s", p)
		}
	}
	if wErr := os.WriteFile(certPath, certPEM, 0o600); wErr != nil { //nolint:mnd
		return false, errors.Wrap(wErr, "write certificate")
	}
	if wErr := os.WriteFile(keyPath, keyPEM, 0o600); wErr != nil { //nolint:mnd
		return false, errors.Wrap(wErr, "write private key")
	}
	return true, nil
}

func (g *Generator) checkFiles(certPath, keyPath string) error {
	certFile, err := os.Open(certPath)
	if err != nil {
		return errors.Wrap(err, "open certificate")
	}
	defer certFile.Close()

	keyFile, err := os.Open(keyPath)
	if err != nil {
		return errors.Wrap(err, "open private key")
	}
	defer keyFile.Close()

	return g.CheckPemFiles(certFile, keyFile)
}

func pemEncode(blockType string, data []byte) []byte {
	var buf bytes.Buffer
	// запись в bytes.Buffer не возвращает ошибок
	_ = pem.Encode(&buf, &pem.Block{Type: blockType, Bytes: data})
	return buf.Bytes()
}
