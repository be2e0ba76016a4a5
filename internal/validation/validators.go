package validation

import (
	"time"
)

const (
	cardNumberMinLength = 14
	cardNumberMaxLength = 19
	cvvMinLength        = 3
	cvvMaxLength        = 4
)

// normalizeCardNumber strips everything that is not a decimal digit, so
// space- or hyphen-grouped card numbers are accepted.
func normalizeCardNumber(value string) string {
	digits := make([]byte, 0, len(value))
	for i := 0; i < len(value); i++ {
		if c := value[i]; c >= '0' && c <= '9' {
			digits = append(digits, c)
		}
	}
	return string(digits)
}

// ValidCardNumber reports whether value is a Luhn-valid card number of
// 14 to 19 digits after normalization.
func ValidCardNumber(value string) bool {
	digits := normalizeCardNumber(value)
	if len(digits) < cardNumberMinLength || len(digits) > cardNumberMaxLength {
		return false
	}
	return luhnValid(digits)
}

// luhnValid runs the Luhn checksum over an all-digit string: every second
// digit from the right is doubled, digits above 9 are reduced by 9, and the
// total must be divisible by 10.
func luhnValid(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// ValidCVV reports whether value is a 3- or 4-digit string.
func ValidCVV(value string) bool {
	if len(value) < cvvMinLength || len(value) > cvvMaxLength {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return true
}

// ValidCurrency is a case-sensitive membership test against the allow-list.
// A blank value passes here and is left to the required-field check.
func ValidCurrency(value string, allowed []string) bool {
	if value == "" {
		return true
	}
	for _, c := range allowed {
		if value == c {
			return true
		}
	}
	return false
}

// ValidExpiryMonth reports whether month lies in [1,12].
func ValidExpiryMonth(month int) bool {
	return month >= 1 && month <= 12
}

// ExpiryNotPast reports whether (month, year) names the current year-month
// or a later one. When either field is missing or the month is out of range
// it reports valid and defers to the field-level checks, so a bad month is
// reported once rather than twice.
func ExpiryNotPast(month, year int, now time.Time) bool {
	if !ValidExpiryMonth(month) || year <= 0 {
		return true
	}
	nowYear, nowMonth, _ := now.Date()
	if year != nowYear {
		return year > nowYear
	}
	return month >= int(nowMonth)
}
