package nfecore

import (
	"sync"
	"time"
)

// Certificate is the capability exposed by a loaded digital certificate.
// Any method may fail; CertificateLifecycle never lets those failures through.
type Certificate interface {
	IssuerID() (string, error)
	CompanyName() (string, error)
	ValidFrom() (time.Time, error)
	ValidTo() (time.Time, error)
	IsExpired() (bool, error)
}

// Transport is the contract of the SEFAZ client that consumes access keys
// and documents. It is implemented outside this module.
type Transport interface {
	Submit(documents [][]byte, batchID string) ([]byte, error)
	Query(accessKey string) ([]byte, error)
	Cancel(accessKey, justification, protocol string) ([]byte, error)
	VoidRange(series, first, last int, justification string) ([]byte, error)
}

// CertificateSummary is a snapshot of a certificate's identity and validity window.
type CertificateSummary struct {
	IssuerID    string
	CompanyName string
	ValidFrom   time.Time
	ValidTo     time.Time
}

// CertificateLifecycle reports identity and expiry of a bound Certificate.
// A certificate that is missing and one that faults when queried look the
// same to callers: ErrUnavailable or false.
type CertificateLifecycle struct {
	mu   sync.RWMutex
	cert Certificate
	now  func() time.Time
}

type CertificateOption func(l *CertificateLifecycle)

// WithCertificateClock replaces time.Now when computing remaining days.
func WithCertificateClock(now func() time.Time) CertificateOption {
	return func(l *CertificateLifecycle) {
		if now != nil {
			l.now = now
		}
	}
}

// NewCertificateLifecycle wraps cert, which may be nil.
func NewCertificateLifecycle(cert Certificate, opts ...CertificateOption) *CertificateLifecycle {
	l := &CertificateLifecycle{cert: cert, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetCertificate binds a new certificate; nil unbinds it.
func (l *CertificateLifecycle) SetCertificate(cert Certificate) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cert = cert
}

func (l *CertificateLifecycle) certificate() Certificate {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cert
}

// Summarize queries the certificate. Nothing is cached between calls.
func (l *CertificateLifecycle) Summarize() (CertificateSummary, error) {
	cert := l.certificate()
	if cert == nil {
		return CertificateSummary{}, ErrUnavailable
	}
	summary, err := summarize(cert)
	if err != nil {
		return CertificateSummary{}, ErrUnavailable
	}
	return summary, nil
}

// IsValid is false when no certificate is bound, when it reports itself
// expired, or when it faults.
func (l *CertificateLifecycle) IsValid() bool {
	cert := l.certificate()
	if cert == nil {
		return false
	}
	expired, err := cert.IsExpired()
	if err != nil {
		return false
	}
	return !expired
}

// DaysRemaining returns the whole days left until ValidTo, or 0 once it has passed.
func (l *CertificateLifecycle) DaysRemaining() (int, error) {
	cert := l.certificate()
	if cert == nil {
		return 0, ErrUnavailable
	}
	validTo, err := cert.ValidTo()
	if err != nil || validTo.IsZero() {
		return 0, ErrUnavailable
	}

	left := validTo.Sub(l.now())
	if left <= 0 {
		return 0, nil
	}
	return int(left / (24 * time.Hour)), nil
}

// IsNearExpiration reports whether 0 <= DaysRemaining() <= thresholdDays.
func (l *CertificateLifecycle) IsNearExpiration(thresholdDays int) bool {
	days, err := l.DaysRemaining()
	if err != nil {
		return false
	}
	return days >= 0 && days <= thresholdDays
}

func summarize(cert Certificate) (CertificateSummary, error) {
	var (
		s   CertificateSummary
		err error
	)
	if s.IssuerID, err = cert.IssuerID(); err != nil {
		return s, newCertificateFaultError("issuer id", err)
	}
	if s.CompanyName, err = cert.CompanyName(); err != nil {
		return s, newCertificateFaultError("company name", err)
	}
	if s.ValidFrom, err = cert.ValidFrom(); err != nil {
		return s, newCertificateFaultError("valid from", err)
	}
	if s.ValidTo, err = cert.ValidTo(); err != nil {
		return s, newCertificateFaultError("valid to", err)
	}
	return s, nil
}
