package nfecore

import (
	"fmt"
	"strconv"
)

// AccessKey holds the fields of a 44-digit access key (chave de acesso).
// Every field is kept as text because leading zeros are significant.
type AccessKey struct {
	StateCode    string // cUF
	YearMonth    string // AAMM of the emission date
	IssuerID     string // CNPJ, or CPF left-padded to 14 digits by the caller
	Model        string // 55 for NF-e, 65 for NFC-e
	Series       string
	Number       string // nNF
	EmissionType string // tpEmis
	NumericCode  string // cNF
	CheckDigit   string // cDV
}

type keyField struct {
	name  string
	width int
	value string
}

func (k AccessKey) fields() []keyField {
	return []keyField{
		{"stateCode", StateCodeWidth, k.StateCode},
		{"yearMonth", YearMonthWidth, k.YearMonth},
		{"issuerId", IssuerIDWidth, k.IssuerID},
		{"model", ModelWidth, k.Model},
		{"series", SeriesWidth, k.Series},
		{"number", NumberWidth, k.Number},
		{"emissionType", EmissionTypeWidth, k.EmissionType},
		{"numericCode", NumericCodeWidth, k.NumericCode},
	}
}

// BuildAccessKey concatenates the fields and appends the check digit.
// Fields are not padded: each one must already have its exact width.
func BuildAccessKey(stateCode, yearMonth, issuerID, model, series, number, emissionType, numericCode string) (string, error) {
	return AccessKey{
		StateCode:    stateCode,
		YearMonth:    yearMonth,
		IssuerID:     issuerID,
		Model:        model,
		Series:       series,
		Number:       number,
		EmissionType: emissionType,
		NumericCode:  numericCode,
	}.Build()
}

// Build returns the 44-digit key for k. CheckDigit is ignored and recomputed.
func (k AccessKey) Build() (string, error) {
	buf := make([]byte, 0, AccessKeyLength)
	for _, f := range k.fields() {
		if len(f.value) != f.width || !isDigits(f.value) {
			return "", NewInvalidFieldWidthError(f.name, f.width, f.value)
		}
		buf = append(buf, f.value...)
	}
	buf = append(buf, byte('0'+accessKeyCheckDigit(string(buf))))
	return string(buf), nil
}

// String renders the key as stored, including its current CheckDigit.
func (k AccessKey) String() string {
	return k.StateCode + k.YearMonth + k.IssuerID + k.Model + k.Series +
		k.Number + k.EmissionType + k.NumericCode + k.CheckDigit
}

// WithEmissionType returns a copy of k re-keyed under a different emission
// type, with a freshly computed check digit.
func (k AccessKey) WithEmissionType(emissionType string) (AccessKey, error) {
	k.EmissionType = emissionType
	key, err := k.Build()
	if err != nil {
		return AccessKey{}, err
	}
	k.CheckDigit = key[AccessKeyLength-1:]
	return k, nil
}

// ParseAccessKey splits key into its fields after checking its length,
// its characters and its check digit.
func ParseAccessKey(key string) (AccessKey, error) {
	if err := checkAccessKey(key); err != nil {
		return AccessKey{}, err
	}

	var k AccessKey
	pos := 0
	next := func(width int) string {
		s := key[pos : pos+width]
		pos += width
		return s
	}
	k.StateCode = next(StateCodeWidth)
	k.YearMonth = next(YearMonthWidth)
	k.IssuerID = next(IssuerIDWidth)
	k.Model = next(ModelWidth)
	k.Series = next(SeriesWidth)
	k.Number = next(NumberWidth)
	k.EmissionType = next(EmissionTypeWidth)
	k.NumericCode = next(NumericCodeWidth)
	k.CheckDigit = next(1)
	return k, nil
}

// ValidateAccessKey reports whether ParseAccessKey would accept key.
func ValidateAccessKey(key string) bool {
	return checkAccessKey(key) == nil
}

// AccessKeyCheckDigit computes the check digit for the first 43 digits of a key.
func AccessKeyCheckDigit(prefix string) (int, error) {
	if len(prefix) != AccessKeyLength-1 || !isDigits(prefix) {
		return 0, NewMalformedKeyError(fmt.Sprintf("check digit needs %d digits, got %q", AccessKeyLength-1, prefix))
	}
	return accessKeyCheckDigit(prefix), nil
}

// checkAccessKey is the single verification path shared by parse and validate.
func checkAccessKey(key string) error {
	if len(key) != AccessKeyLength {
		return NewMalformedKeyError(fmt.Sprintf("expected %d digits, got %d characters", AccessKeyLength, len(key)))
	}
	if !isDigits(key) {
		return NewMalformedKeyError("key must contain only digits")
	}
	want := accessKeyCheckDigit(key[:AccessKeyLength-1])
	if got := int(key[AccessKeyLength-1] - '0'); got != want {
		return NewMalformedKeyError("check digit " + strconv.Itoa(got) + " does not match computed " + strconv.Itoa(want))
	}
	return nil
}

func accessKeyCheckDigit(prefix string) int {
	return mod11(prefix, 9)
}
