package nfecore

// mod11 computes a modulo-11 check digit over digits. Weights start at 2 on
// the rightmost digit and grow by one to the left, wrapping back to 2 after
// maxWeight. The result is 0 when the remainder is below 2, else 11 minus
// the remainder.
//
// digits must contain only ASCII digits; callers check that first.
func mod11(digits string, maxWeight int) int {
	sum := 0
	weight := 2
	for i := len(digits) - 1; i >= 0; i-- {
		sum += int(digits[i]-'0') * weight
		weight++
		if weight > maxWeight {
			weight = 2
		}
	}

	remainder := sum % 11
	if remainder < 2 {
		return 0
	}
	return 11 - remainder
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func allSameDigit(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
