package nfecore

import "strings"

// TaxpayerKind tells a CNPJ from a CPF.
type TaxpayerKind int8

const (
	KindUnknown TaxpayerKind = iota
	KindCNPJ
	KindCPF
)

func (k TaxpayerKind) String() string {
	switch k {
	case KindCNPJ:
		return "CNPJ"
	case KindCPF:
		return "CPF"
	default:
		return "unknown"
	}
}

// TaxpayerID is a stripped taxpayer identifier together with its kind and validity.
type TaxpayerID struct {
	Digits string
	Kind   TaxpayerKind
	valid  bool
}

// ParseTaxpayerID strips formatting from raw and classifies the result by length.
func ParseTaxpayerID(raw string) TaxpayerID {
	digits := OnlyDigits(raw)
	id := TaxpayerID{Digits: digits}
	switch len(digits) {
	case CNPJLength:
		id.Kind = KindCNPJ
		id.valid = validCNPJDigits(digits)
	case CPFLength:
		id.Kind = KindCPF
		id.valid = validCPFDigits(digits)
	}
	return id
}

func (t TaxpayerID) Valid() bool { return t.valid }

// String returns the identifier with the usual punctuation when it has a known kind.
func (t TaxpayerID) String() string {
	switch t.Kind {
	case KindCNPJ:
		return FormatCNPJ(t.Digits)
	case KindCPF:
		return FormatCPF(t.Digits)
	default:
		return t.Digits
	}
}

// ValidateCNPJ reports whether raw, once stripped of non-digits, is a valid
// 14-digit corporate tax ID.
func ValidateCNPJ(raw string) bool {
	return validCNPJDigits(OnlyDigits(raw))
}

// ValidateCPF reports whether raw, once stripped of non-digits, is a valid
// 11-digit individual tax ID.
func ValidateCPF(raw string) bool {
	return validCPFDigits(OnlyDigits(raw))
}

// ValidateTaxpayerID accepts either a CNPJ or a CPF.
func ValidateTaxpayerID(raw string) bool {
	return ParseTaxpayerID(raw).Valid()
}

// CNPJ weights are 2..9 cycling from the right, so both digits share mod11.
func validCNPJDigits(d string) bool {
	if len(d) != CNPJLength || allSameDigit(d) {
		return false
	}
	if mod11(d[:12], 9) != int(d[12]-'0') {
		return false
	}
	return mod11(d[:13], 9) == int(d[13]-'0')
}

// CPF weights never wrap: 10..2 for the first digit, 11..2 for the second.
func validCPFDigits(d string) bool {
	if len(d) != CPFLength || allSameDigit(d) {
		return false
	}
	if mod11(d[:9], 10) != int(d[9]-'0') {
		return false
	}
	return mod11(d[:10], 11) == int(d[10]-'0')
}

// OnlyDigits drops every byte of s that is not an ASCII digit.
func OnlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
