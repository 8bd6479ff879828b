package nfecore

import (
	"fmt"
	"strings"

	"github.com/hengadev/errsx"

	"github.com/fiscalbr/nfecore/internal/config"
)

// Config holds issuer-level settings shared by the CLI and by callers that
// want contingency and certificate checks wired from configuration.
//
// This struct contains only data. It can be filled from the environment
// (LoadConfigFromEnvironment), from a YAML file, or in code.
//
// Required fields:
//   - StateCode: acronym of the issuer's state (e.g. "SP")
//
// Optional fields (defaults are applied by Validate):
//   - Environment: 1 production, 2 homologation (default: 2)
//   - Contingency.DefaultMotive (default: "SEFAZ fora do ar")
//   - Contingency.AutomaticEmissionType (default: "9")
//   - Certificate.ExpiryWarningDays (default: 30)
type Config struct {
	StateCode   string            `yaml:"state_code"`
	IssuerID    string            `yaml:"issuer_id"`
	Environment int               `yaml:"environment"`
	Contingency ContingencyConfig `yaml:"contingency"`
	Certificate CertificateConfig `yaml:"certificate"`
}

// ContingencyConfig holds contingency defaults. Contingency itself is
// switched at runtime; these values only seed it.
type ContingencyConfig struct {
	AutoActivate          bool   `yaml:"auto_activate"`
	DefaultMotive         string `yaml:"default_motive"`
	DefaultMode           string `yaml:"default_mode"`
	AutomaticEmissionType string `yaml:"automatic_tp_emis"`
}

type CertificateConfig struct {
	ExpiryWarningDays int `yaml:"expiry_warning_days"`
}

// Validate applies defaults to optional fields and checks every field,
// reporting all problems at once.
func (c *Config) Validate() error {
	c.StateCode = strings.ToUpper(strings.TrimSpace(c.StateCode))
	if c.Environment == 0 {
		c.Environment = DefaultEnvironment
	}
	if c.Contingency.DefaultMotive == "" {
		c.Contingency.DefaultMotive = DefaultContingencyMotive
	}
	if c.Contingency.AutomaticEmissionType == "" {
		c.Contingency.AutomaticEmissionType = DefaultAutomaticEmissionType
	}
	if c.Certificate.ExpiryWarningDays == 0 {
		c.Certificate.ExpiryWarningDays = DefaultExpiryWarningDays
	}

	v := config.NewValidator(MinMotiveLength, MaxMotiveLength)
	errs := errsx.Map{}

	if err := v.ValidateRequired("state_code", c.StateCode); err != nil {
		errs.Set("state_code", err)
	} else if !IsValidState(c.StateCode) {
		errs.Set("state_code", fmt.Errorf("unknown state %q", c.StateCode))
	}
	if c.IssuerID != "" && !ValidateTaxpayerID(c.IssuerID) {
		errs.Set("issuer_id", fmt.Errorf("%q is not a valid CNPJ or CPF", c.IssuerID))
	}
	if err := v.ValidateEnvironment(c.Environment); err != nil {
		errs.Set("environment", err)
	}
	if err := v.ValidateMotive(c.Contingency.DefaultMotive); err != nil {
		errs.Set("contingency.default_motive", err)
	}
	if err := v.ValidateMode(c.Contingency.DefaultMode); err != nil {
		errs.Set("contingency.default_mode", err)
	}
	if err := v.ValidateEmissionType(c.Contingency.AutomaticEmissionType); err != nil {
		errs.Set("contingency.automatic_tp_emis", err)
	}
	if err := v.ValidateWarningDays(c.Certificate.ExpiryWarningDays); err != nil {
		errs.Set("certificate.expiry_warning_days", err)
	}

	if err := errs.AsError(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return nil
}

// NewContingency builds a Contingency seeded from the configuration. When
// AutoActivate is set the result is already active with the default motive
// and mode.
func (c Config) NewContingency(opts ...ContingencyOption) (*Contingency, error) {
	opts = append([]ContingencyOption{WithAutomaticEmissionType(c.Contingency.AutomaticEmissionType)}, opts...)
	cont, err := NewContingency(opts...)
	if err != nil {
		return nil, err
	}
	if c.Contingency.AutoActivate {
		if _, err := cont.Activate(c.StateCode, c.Contingency.DefaultMotive, c.Contingency.DefaultMode); err != nil {
			return nil, fmt.Errorf("auto activate contingency: %w", err)
		}
	}
	return cont, nil
}

// StateCodeDigits returns the IBGE code of StateCode, as used in access keys.
func (c Config) StateCodeDigits() (string, error) {
	code, ok := StateCode(c.StateCode)
	if !ok {
		return "", fmt.Errorf("%w: unknown state %q", ErrInvalidConfiguration, c.StateCode)
	}
	return code, nil
}
