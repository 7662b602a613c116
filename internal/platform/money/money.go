// Package money formats amounts and ratios for French readers.
package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

func wholeNumber(v float64) string {
	return message.NewPrinter(language.French).Sprint(number.Decimal(math.Round(v), number.MaxFractionDigits(0)))
}

// Euros formats v as whole euros, e.g. "350 000 €".
func Euros(v float64) string {
	return wholeNumber(v) + "\u00a0€"
}

// Percent formats a whole percentage, e.g. "78 %".
func Percent(v float64) string {
	return wholeNumber(v) + "\u00a0%"
}
