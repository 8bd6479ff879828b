package nfecore

import "net/mail"

// CEPLength is the length of a Brazilian postal code.
const CEPLength = 8

// ValidateCEP reports whether cep has 8 digits once formatting is removed.
func ValidateCEP(cep string) bool {
	return len(OnlyDigits(cep)) == CEPLength
}

// ValidatePhone accepts 10-digit landlines and 11-digit mobiles, area code included.
func ValidatePhone(phone string) bool {
	n := len(OnlyDigits(phone))
	return n == 10 || n == 11
}

// ValidateEmail accepts a bare address such as "nfe@empresa.com.br".
// Display names and angle brackets are rejected.
func ValidateEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Name == "" && addr.Address == email
}
