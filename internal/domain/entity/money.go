package entity

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/oakmall/consignment-ledger/internal/domain/error"
)

// MaxDecimalPlaces defines the maximum number of decimal places allowed for money amounts
const MaxDecimalPlaces = 2

// percentScale is the divisor for rates held in hundredths of a percent:
// "13" parses to 1300, and amount*1300/10000 is 13% of amount.
const percentScale = 10000

// ParseAmount validates and converts a string amount to cents.
// Uses a string-based approach to handle decimal places:
// - If no decimal point: adds ".00" and removes the point to get an integer
// - If one digit after decimal: adds a "0" and removes the point
// - If two digits after decimal: just removes the point
// Returns the amount as int64 cents and error if the validation fails
func ParseAmount(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if len(amount) == 0 {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	// Check for negative values
	if strings.HasPrefix(amount, "-") {
		return 0, errs.ErrNegativeAmount
	}

	parts := strings.Split(amount, ".")

	if len(parts) > 2 {
		// Multiple decimal points
		return 0, fmt.Errorf("%w: invalid number format", errs.ErrInvalidAmount)
	}

	var integerValue string

	if len(parts) == 1 {
		// No decimal point - add ".00"
		integerValue = parts[0] + "00"
	} else {
		switch len(parts[1]) {
		case 0:
			// Like "10." - add "00"
			integerValue = parts[0] + "00"
		case 1:
			// One digit after decimal - add one zero
			integerValue = parts[0] + parts[1] + "0"
		case 2:
			// Two digits after decimal - use as is
			integerValue = parts[0] + parts[1]
		default:
			return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
		}
	}

	value, err := strconv.ParseInt(integerValue, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}

	return value, nil
}

// ParseSignedAmount converts a string amount to cents, allowing a leading
// minus sign. Manual balance overwrites are the only callers that may go
// negative.
func ParseSignedAmount(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if strings.HasPrefix(amount, "-") {
		value, err := ParseAmount(amount[1:])
		if err != nil {
			return 0, err
		}
		return -value, nil
	}
	return ParseAmount(amount)
}

// ParsePercent converts a percentage string like "13" or "7.25" to hundredths
// of a percent (1300, 725). The same string-splitting approach as ParseAmount
// keeps floats out of the rate path entirely.
func ParsePercent(percent string) (int64, error) {
	value, err := ParseAmount(percent)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid percentage", errs.ErrInvalidRate)
	}
	if value > percentScale {
		return 0, fmt.Errorf("%w: percentage above 100", errs.ErrInvalidRate)
	}
	return value, nil
}

// PercentOf returns rate (in hundredths of a percent) applied to an amount in
// cents, rounded half away from zero
func PercentOf(amountInCents, rate int64) int64 {
	return roundDiv(amountInCents*rate, percentScale)
}

// roundDiv divides n by d rounding half away from zero. d must be positive.
func roundDiv(n, d int64) int64 {
	q := n / d
	r := n % d
	if r < 0 {
		r = -r
	}
	if 2*r >= d {
		if n < 0 {
			q--
		} else {
			q++
		}
	}
	return q
}

// FormatCents converts integer cents to a decimal string
// For example:
// - 1015 becomes "10.15"
// - 1000 becomes "10.00"
func FormatCents(amountInCents int64) string {
	isNegative := amountInCents < 0
	if isNegative {
		amountInCents = -amountInCents
	}

	amountStr := fmt.Sprintf("%d", amountInCents)

	// Ensure minimum length
	for len(amountStr) < 3 {
		amountStr = "0" + amountStr
	}

	decimalPos := len(amountStr) - 2
	wholePart := amountStr[:decimalPos]
	decimalPart := amountStr[decimalPos:]

	if wholePart == "" {
		wholePart = "0"
	}

	if isNegative {
		return "-" + wholePart + "." + decimalPart
	}
	return wholePart + "." + decimalPart
}
