package nfecore

import (
	"fmt"
	"os"
	"strconv"
)

// LoadConfigFromEnvironment loads configuration from environment variables.
//
// Required environment variables:
//   - NFE_STATE_CODE: state acronym of the issuer
//
// Optional environment variables (defaults are applied if not set):
//   - NFE_ISSUER_ID: issuer CNPJ or CPF
//   - NFE_ENVIRONMENT: 1 production, 2 homologation (default: 2)
//   - NFE_CONTINGENCY_AUTO_ACTIVATE: "true" to start in contingency
//   - NFE_CONTINGENCY_DEFAULT_MOTIVE (default: "SEFAZ fora do ar")
//   - NFE_CONTINGENCY_DEFAULT_MODE: "", "A" or "B"
//   - NFE_CONTINGENCY_AUTOMATIC_TP_EMIS (default: "9")
//   - NFE_CERTIFICATE_EXPIRY_WARNING_DAYS (default: 30)
//
// Callers that keep these in a .env file load it first (the nfekey CLI uses
// godotenv for that).
func LoadConfigFromEnvironment() (Config, error) {
	stateCode := os.Getenv(EnvStateCode)
	if stateCode == "" {
		return Config{}, fmt.Errorf("%w: %s environment variable is required", ErrInvalidConfiguration, EnvStateCode)
	}

	environment, err := getEnvInt(EnvEnvironment, DefaultEnvironment)
	if err != nil {
		return Config{}, err
	}
	warningDays, err := getEnvInt(EnvCertificateExpiryWarningDays, DefaultExpiryWarningDays)
	if err != nil {
		return Config{}, err
	}
	autoActivate, err := getEnvBool(EnvContingencyAutoActivate)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		StateCode:   stateCode,
		IssuerID:    os.Getenv(EnvIssuerID),
		Environment: environment,
		Contingency: ContingencyConfig{
			AutoActivate:          autoActivate,
			DefaultMotive:         getEnvOrDefault(EnvContingencyDefaultMotive, DefaultContingencyMotive),
			DefaultMode:           os.Getenv(EnvContingencyDefaultMode),
			AutomaticEmissionType: getEnvOrDefault(EnvContingencyAutomaticEmissionType, DefaultAutomaticEmissionType),
		},
		Certificate: CertificateConfig{
			ExpiryWarningDays: warningDays,
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidConfiguration, key, value)
	}
	return n, nil
}

func getEnvBool(key string) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean, got %q", ErrInvalidConfiguration, key, value)
	}
	return b, nil
}
