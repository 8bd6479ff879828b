package nfecore

import (
	"errors"
	"fmt"
)

var (
	// Access key errors
	ErrInvalidFieldWidth = errors.New("invalid field width")
	ErrMalformedKey      = errors.New("malformed access key")

	// Contingency errors
	ErrInvalidMotiveLength   = errors.New("invalid contingency motive length")
	ErrInvalidMode           = errors.New("invalid contingency mode")
	ErrMalformedSnapshot     = errors.New("malformed contingency snapshot")
	ErrNotActive             = errors.New("contingency is not active")
	ErrDocumentRewriteFailed = errors.New("document rewrite failed")

	// Certificate errors
	ErrUnavailable = errors.New("certificate unavailable")

	// Configuration errors
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// errCertificateFault marks a capability that failed when queried.
	// CertificateLifecycle converts it to ErrUnavailable or false.
	errCertificateFault = errors.New("certificate fault")
)

func NewInvalidFieldWidthError(fieldName string, width int, got string) error {
	return fmt.Errorf("%w: '%s' must be exactly %d digits, got %q", ErrInvalidFieldWidth, fieldName, width, got)
}

func NewMalformedKeyError(details string) error {
	return fmt.Errorf("%w: %s", ErrMalformedKey, details)
}

func NewInvalidMotiveLengthError(length int) error {
	return fmt.Errorf("%w: motive must have between %d and %d characters, got %d",
		ErrInvalidMotiveLength, MinMotiveLength, MaxMotiveLength, length)
}

func NewInvalidModeError(mode string) error {
	return fmt.Errorf("%w: %q is not one of \"\", %q, %q", ErrInvalidMode, mode, ModeAlternateA, ModeAlternateB)
}

func NewMalformedSnapshotError(cause error) error {
	return fmt.Errorf("%w: %v", ErrMalformedSnapshot, cause)
}

// NewDocumentRewriteError keeps the structural cause reachable through errors.Is.
func NewDocumentRewriteError(cause error) error {
	return fmt.Errorf("%w: %w", ErrDocumentRewriteFailed, cause)
}

func newCertificateFaultError(query string, cause error) error {
	return fmt.Errorf("%w: %s: %v", errCertificateFault, query, cause)
}

// IsValidationError returns true if the error was caused by malformed caller input.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidFieldWidth) ||
		errors.Is(err, ErrMalformedKey) ||
		errors.Is(err, ErrInvalidMotiveLength) ||
		errors.Is(err, ErrInvalidMode) ||
		errors.Is(err, ErrMalformedSnapshot)
}

// IsContingencyError returns true if the error comes from the contingency state machine.
func IsContingencyError(err error) bool {
	return errors.Is(err, ErrInvalidMotiveLength) ||
		errors.Is(err, ErrInvalidMode) ||
		errors.Is(err, ErrMalformedSnapshot) ||
		errors.Is(err, ErrNotActive) ||
		errors.Is(err, ErrDocumentRewriteFailed)
}

// IsConfigurationError returns true if the error represents a configuration problem.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}
