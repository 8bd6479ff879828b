package nfecore

import (
	"crypto/x509"
	"errors"
	"fmt"
	"strings"
	"time"
)

var errNilX509Certificate = errors.New("nil x509 certificate")

// X509Certificate adapts an already parsed ICP-Brasil certificate to the
// Certificate capability. Those certificates carry the holder as
// "COMPANY NAME:CNPJ" in the subject common name.
type X509Certificate struct {
	cert *x509.Certificate
	now  func() time.Time
}

func NewX509Certificate(cert *x509.Certificate) *X509Certificate {
	return &X509Certificate{cert: cert, now: time.Now}
}

func (c *X509Certificate) IssuerID() (string, error) {
	if c == nil || c.cert == nil {
		return "", errNilX509Certificate
	}
	_, id := splitCommonName(c.cert.Subject.CommonName)
	if len(id) != CNPJLength && len(id) != CPFLength {
		return "", fmt.Errorf("subject %q carries no taxpayer id", c.cert.Subject.CommonName)
	}
	return id, nil
}

func (c *X509Certificate) CompanyName() (string, error) {
	if c == nil || c.cert == nil {
		return "", errNilX509Certificate
	}
	name, _ := splitCommonName(c.cert.Subject.CommonName)
	return name, nil
}

func (c *X509Certificate) ValidFrom() (time.Time, error) {
	if c == nil || c.cert == nil {
		return time.Time{}, errNilX509Certificate
	}
	return c.cert.NotBefore, nil
}

func (c *X509Certificate) ValidTo() (time.Time, error) {
	if c == nil || c.cert == nil {
		return time.Time{}, errNilX509Certificate
	}
	return c.cert.NotAfter, nil
}

func (c *X509Certificate) IsExpired() (bool, error) {
	if c == nil || c.cert == nil {
		return false, errNilX509Certificate
	}
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	return now().After(c.cert.NotAfter), nil
}

func splitCommonName(cn string) (name, id string) {
	i := strings.LastIndex(cn, ":")
	if i < 0 {
		return strings.TrimSpace(cn), ""
	}
	return strings.TrimSpace(cn[:i]), OnlyDigits(cn[i+1:])
}
