package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator_ValidateEnvironment(t *testing.T) {
	v := NewValidator(15, 255)

	assert.NoError(t, v.ValidateEnvironment(EnvironmentProduction))
	assert.NoError(t, v.ValidateEnvironment(EnvironmentHomologation))
	for _, env := range []int{0, 3, -1} {
		assert.Error(t, v.ValidateEnvironment(env), env)
	}
}

func TestValidator_ValidateMotive(t *testing.T) {
	v := NewValidator(15, 255)

	tests := []struct {
		name    string
		motive  string
		wantErr bool
	}{
		{"minimum", strings.Repeat("a", 15), false},
		{"maximum", strings.Repeat("a", 255), false},
		{"multibyte minimum", strings.Repeat("ã", 15), false},
		{"too short", strings.Repeat("a", 14), true},
		{"too long", strings.Repeat("a", 256), true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateMotive(tt.motive)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_ValidateMode(t *testing.T) {
	v := NewValidator(15, 255)

	for _, mode := range []string{"", "A", "B"} {
		assert.NoError(t, v.ValidateMode(mode))
	}
	for _, mode := range []string{"a", "C", "SVCAN"} {
		assert.Error(t, v.ValidateMode(mode))
	}
}

func TestValidator_ValidateEmissionType(t *testing.T) {
	v := NewValidator(15, 255)

	for _, tpEmis := range []string{"6", "7", "9"} {
		assert.NoError(t, v.ValidateEmissionType(tpEmis))
	}
	for _, tpEmis := range []string{"", "1", "10", "x"} {
		assert.Error(t, v.ValidateEmissionType(tpEmis), tpEmis)
	}
}

func TestValidator_ValidateWarningDays(t *testing.T) {
	v := NewValidator(15, 255)

	assert.NoError(t, v.ValidateWarningDays(0))
	assert.NoError(t, v.ValidateWarningDays(30))
	assert.Error(t, v.ValidateWarningDays(-1))
}

func TestValidator_ValidateRequired(t *testing.T) {
	v := NewValidator(15, 255)

	assert.NoError(t, v.ValidateRequired("state_code", "SP"))

	err := v.ValidateRequired("state_code", "   ")
	assert.EqualError(t, err, "state_code is required")
}
