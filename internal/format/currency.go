// Package format renders money amounts for order rows and details.
package format

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
	"INR": "₹",
	"KRW": "₩",
	"BRL": "R$",
	"CAD": "CA$",
	"AUD": "A$",
}

var printer = message.NewPrinter(language.English)

// CurrencyMinor formats an amount held in minor units (cents for USD, yen
// for JPY) as "$1,234.50". Unknown ISO codes return an error.
func CurrencyMinor(amount int64, code string) (string, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("unknown currency %q: %w", code, err)
	}

	scale, _ := currency.Standard.Rounding(unit)

	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	div := int64(math.Pow10(scale))
	whole := amount / div
	frac := amount % div

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString(symbolFor(unit))
	b.WriteString(printer.Sprintf("%d", whole))
	if scale > 0 {
		fmt.Fprintf(&b, ".%0*d", scale, frac)
	}
	return b.String(), nil
}

// Currency formats a major-unit amount, rounding half away from zero to the
// currency's standard number of decimals.
func Currency(amount float64, code string) (string, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("unknown currency %q: %w", code, err)
	}
	scale, _ := currency.Standard.Rounding(unit)
	return CurrencyMinor(int64(math.Round(amount*math.Pow10(scale))), unit.String())
}

// MustCurrencyMinor is CurrencyMinor for codes validated at startup; an
// unknown code falls back to the bare number with the code appended.
func MustCurrencyMinor(amount int64, code string) string {
	s, err := CurrencyMinor(amount, code)
	if err != nil {
		return fmt.Sprintf("%d %s", amount, code)
	}
	return s
}

func symbolFor(unit currency.Unit) string {
	if s, ok := symbols[unit.String()]; ok {
		return s
	}
	return unit.String() + " "
}
