package config

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Environments accepted by SEFAZ (tpAmb).
const (
	EnvironmentProduction   = 1
	EnvironmentHomologation = 2
)

// Validator checks individual configuration values. It knows nothing about
// the root Config type so the root package can aggregate its results.
type Validator struct {
	MinMotiveLength int
	MaxMotiveLength int
}

// NewValidator creates a validator enforcing the given motive bounds
func NewValidator(minMotive, maxMotive int) *Validator {
	return &Validator{MinMotiveLength: minMotive, MaxMotiveLength: maxMotive}
}

// ValidateEnvironment accepts production (1) and homologation (2)
func (v *Validator) ValidateEnvironment(env int) error {
	if env != EnvironmentProduction && env != EnvironmentHomologation {
		return fmt.Errorf("environment must be %d (production) or %d (homologation), got %d",
			EnvironmentProduction, EnvironmentHomologation, env)
	}
	return nil
}

// ValidateMotive checks the motive length in characters
func (v *Validator) ValidateMotive(motive string) error {
	n := utf8.RuneCountInString(motive)
	if n < v.MinMotiveLength || n > v.MaxMotiveLength {
		return fmt.Errorf("motive must have between %d and %d characters, got %d",
			v.MinMotiveLength, v.MaxMotiveLength, n)
	}
	return nil
}

// ValidateMode accepts "", "A" and "B"
func (v *Validator) ValidateMode(mode string) error {
	switch mode {
	case "", "A", "B":
		return nil
	}
	return fmt.Errorf("contingency mode must be empty, \"A\" or \"B\", got %q", mode)
}

// ValidateEmissionType accepts a single digit other than the normal emission type
func (v *Validator) ValidateEmissionType(tpEmis string) error {
	if len(tpEmis) != 1 || tpEmis[0] < '0' || tpEmis[0] > '9' {
		return fmt.Errorf("emission type must be a single digit, got %q", tpEmis)
	}
	if tpEmis == "1" {
		return fmt.Errorf("emission type 1 is reserved for normal emission")
	}
	return nil
}

// ValidateWarningDays rejects negative thresholds
func (v *Validator) ValidateWarningDays(days int) error {
	if days < 0 {
		return fmt.Errorf("expiry warning days cannot be negative, got %d", days)
	}
	return nil
}

// ValidateRequired rejects empty or whitespace-only values
func (v *Validator) ValidateRequired(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", name)
	}
	return nil
}
