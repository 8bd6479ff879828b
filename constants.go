package nfecore

// Access key layout
const (
	// AccessKeyLength is the length of an access key including its check digit.
	AccessKeyLength = 44

	// Widths of each access key field, in order.
	StateCodeWidth    = 2
	YearMonthWidth    = 4
	IssuerIDWidth     = 14
	ModelWidth        = 2
	SeriesWidth       = 3
	NumberWidth       = 9
	EmissionTypeWidth = 1
	NumericCodeWidth  = 8
)

// Taxpayer identifier lengths
const (
	CNPJLength = 14
	CPFLength  = 11
)

// Emission types (tpEmis)
const (
	// EmissionNormal is the emission type of documents issued against the primary endpoint.
	EmissionNormal = "1"

	// EmissionSVCAN is used while contingency runs against the SVC-AN alternate endpoint (mode A).
	EmissionSVCAN = "6"

	// EmissionSVCRS is used while contingency runs against the SVC-RS alternate endpoint (mode B).
	EmissionSVCRS = "7"

	// DefaultAutomaticEmissionType is used for the automatic mode unless overridden
	// with WithAutomaticEmissionType. Endpoint selection for that mode happens outside this package.
	DefaultAutomaticEmissionType = "9"
)

// Contingency modes
const (
	ModeAutomatic  = ""
	ModeAlternateA = "A"
	ModeAlternateB = "B"
)

// Contingency motive bounds, counted in characters.
const (
	MinMotiveLength = 15
	MaxMotiveLength = 255
)

// Environment variable names
const (
	// EnvStateCode is the state acronym of the issuer (e.g. "SP").
	EnvStateCode = "NFE_STATE_CODE"

	// EnvIssuerID is the issuer CNPJ, formatted or not.
	EnvIssuerID = "NFE_ISSUER_ID"

	// EnvEnvironment selects production (1) or homologation (2).
	EnvEnvironment = "NFE_ENVIRONMENT"

	// EnvContingencyAutoActivate activates contingency on startup when "true".
	EnvContingencyAutoActivate = "NFE_CONTINGENCY_AUTO_ACTIVATE"

	// EnvContingencyDefaultMotive is the motive used by auto activation.
	EnvContingencyDefaultMotive = "NFE_CONTINGENCY_DEFAULT_MOTIVE"

	// EnvContingencyDefaultMode is "", "A" or "B".
	EnvContingencyDefaultMode = "NFE_CONTINGENCY_DEFAULT_MODE"

	// EnvContingencyAutomaticEmissionType overrides DefaultAutomaticEmissionType.
	EnvContingencyAutomaticEmissionType = "NFE_CONTINGENCY_AUTOMATIC_TP_EMIS"

	// EnvCertificateExpiryWarningDays is the IsNearExpiration threshold.
	EnvCertificateExpiryWarningDays = "NFE_CERTIFICATE_EXPIRY_WARNING_DAYS"
)

// Default values
const (
	// DefaultEnvironment is homologation.
	DefaultEnvironment = 2

	DefaultContingencyMotive = "SEFAZ fora do ar"

	DefaultExpiryWarningDays = 30
)
