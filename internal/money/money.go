// Package money converts between OHH's floating-point amounts and the
// integer minor units (cents) used everywhere inside the converter, and
// formats amounts the way the target dialect prints them.
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// zeroDecimalCurrencies are currencies whose minor unit is the whole unit.
var zeroDecimalCurrencies = map[string]bool{
	"JPY": true,
	"KRW": true,
	"VND": true,
	"CLP": true,
}

// Exponent returns the number of decimal places for a currency code.
// Unknown codes (including play-money currencies) use the standard two.
func Exponent(currency string) int {
	if zeroDecimalCurrencies[strings.ToUpper(currency)] {
		return 0
	}
	return 2
}

// ToMinor converts a decimal amount to minor units, rounding half away
// from zero. OHH records carry amounts as JSON numbers, so a hand with
// blinds 0.05/0.10 becomes 5/10 at exponent 2.
func ToMinor(amount float64, exponent int) int64 {
	scale := math.Pow10(exponent)
	return int64(math.Round(amount * scale))
}

// Format renders minor units as a plain decimal string: 123456 at
// exponent 2 becomes "1,234.56". Negative amounts keep their sign.
func Format(minor int64, exponent int) string {
	neg := minor < 0
	if neg {
		minor = -minor
	}

	scale := int64(1)
	for i := 0; i < exponent; i++ {
		scale *= 10
	}
	whole := minor / scale
	frac := minor % scale

	s := groupThousands(strconv.FormatInt(whole, 10))
	if exponent > 0 {
		s = fmt.Sprintf("%s.%0*d", s, exponent, frac)
	}
	if neg {
		s = "-" + s
	}
	return s
}

// FormatDollar renders minor units with the dialect's currency symbol:
// "$1,234.56", "-$5.00".
func FormatDollar(minor int64, exponent int) string {
	if minor < 0 {
		return "-$" + Format(-minor, exponent)
	}
	return "$" + Format(minor, exponent)
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
