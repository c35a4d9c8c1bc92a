package cards

import "strings"

// IsCardNumberValid checks a card number against its embedded Luhn check digit.
// The last digit is the check digit; the remaining digits are reversed, every
// digit at an odd 1-based position is doubled (minus 9 when the double exceeds
// 9) and the transformed digits are summed. Any non-digit character makes the
// number invalid.
func IsCardNumberValid(cardNumber string) bool {
	if strings.TrimSpace(cardNumber) == "" {
		return false
	}

	last := cardNumber[len(cardNumber)-1]
	if last < '0' || last > '9' {
		return false
	}
	checkDigit := int(last - '0')

	sum := 0
	position := 0
	for i := len(cardNumber) - 2; i >= 0; i-- {
		c := cardNumber[i]
		if c < '0' || c > '9' {
			return false
		}
		digit := int(c - '0')
		position++
		if position%2 == 1 {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
	}

	return sum%10 == (10-checkDigit)%10
}

// IsCvvValid reports whether cvv is 3 or 4 ASCII digits.
func IsCvvValid(cvv string) bool {
	if len(cvv) < 3 || len(cvv) > 4 {
		return false
	}
	for i := 0; i < len(cvv); i++ {
		if cvv[i] < '0' || cvv[i] > '9' {
			return false
		}
	}
	return true
}
