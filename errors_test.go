package nfecore

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"Invalid Field Width", ErrInvalidFieldWidth},
		{"Malformed Key", ErrMalformedKey},
		{"Invalid Motive Length", ErrInvalidMotiveLength},
		{"Invalid Mode", ErrInvalidMode},
		{"Malformed Snapshot", ErrMalformedSnapshot},
		{"Not Active", ErrNotActive},
		{"Document Rewrite Failed", ErrDocumentRewriteFailed},
		{"Unavailable", ErrUnavailable},
		{"Invalid Configuration", ErrInvalidConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("context: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.err)
		})
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		isValidation  bool
		isContingency bool
		isConfig      bool
	}{
		{
			name:         "Invalid Field Width",
			err:          NewInvalidFieldWidthError("series", 3, "1"),
			isValidation: true,
		},
		{
			name:         "Malformed Key",
			err:          NewMalformedKeyError("bad"),
			isValidation: true,
		},
		{
			name:          "Invalid Motive Length",
			err:           NewInvalidMotiveLengthError(3),
			isValidation:  true,
			isContingency: true,
		},
		{
			name:          "Invalid Mode",
			err:           NewInvalidModeError("C"),
			isValidation:  true,
			isContingency: true,
		},
		{
			name:          "Malformed Snapshot",
			err:           NewMalformedSnapshotError(errors.New("eof")),
			isValidation:  true,
			isContingency: true,
		},
		{
			name:          "Not Active",
			err:           fmt.Errorf("adjust: %w", ErrNotActive),
			isContingency: true,
		},
		{
			name:          "Document Rewrite",
			err:           NewDocumentRewriteError(errors.New("missing ide")),
			isContingency: true,
		},
		{
			name:     "Invalid Configuration",
			err:      fmt.Errorf("load: %w", ErrInvalidConfiguration),
			isConfig: true,
		},
		{
			name: "Unavailable",
			err:  ErrUnavailable,
		},
		{
			name: "Unrelated",
			err:  errors.New("boom"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isValidation, IsValidationError(tt.err))
			assert.Equal(t, tt.isContingency, IsContingencyError(tt.err))
			assert.Equal(t, tt.isConfig, IsConfigurationError(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	err := NewInvalidFieldWidthError("series", 3, "1")
	assert.Equal(t, `invalid field width: 'series' must be exactly 3 digits, got "1"`, err.Error())

	err = NewInvalidMotiveLengthError(3)
	assert.Equal(t, "invalid contingency motive length: motive must have between 15 and 255 characters, got 3", err.Error())
}

func TestNewDocumentRewriteError_KeepsCause(t *testing.T) {
	cause := errors.New("missing ide")
	err := NewDocumentRewriteError(cause)
	assert.ErrorIs(t, err, ErrDocumentRewriteFailed)
	assert.ErrorIs(t, err, cause)
}

func TestNewMalformedSnapshotError_HidesCause(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := NewMalformedSnapshotError(cause)
	assert.ErrorIs(t, err, ErrMalformedSnapshot)
	assert.NotErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), cause.Error())
}
