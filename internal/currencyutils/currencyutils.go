// Package currencyutils parses and formats the monetary values found in
// accounting uploads (Brazilian "1.234,56" as well as plain "1234.56").
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var noiseRe = regexp.MustCompile(`(?i)R\$|BRL|[\s\x{00A0}']`)

// ParseAmount parses an amount string into a decimal value.
// It handles "100,50", "1.234,56", "1,234.56", "-200", "R$ 50,00" and
// accounting negatives such as "(200,00)".
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	standardized := StandardizeAmount(amountStr)
	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// ParseAmountOrZero is ParseAmount that degrades to zero on failure, so an
// unreadable cell never aborts aggregation.
func ParseAmountOrZero(amountStr string) decimal.Decimal {
	amount, err := ParseAmount(amountStr)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// StandardizeAmount converts a localized amount into the form accepted by
// decimal.NewFromString. When both '.' and ',' occur, the right-most one is
// the decimal separator. A single comma is a decimal separator; repeated
// commas or dots are thousands separators.
func StandardizeAmount(amountStr string) string {
	s := noiseRe.ReplaceAllString(amountStr, "")

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}

	dots := strings.Count(s, ".")
	commas := strings.Count(s, ",")
	switch {
	case dots > 0 && commas > 0:
		if strings.LastIndex(s, ".") < strings.LastIndex(s, ",") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case commas == 1:
		s = strings.ReplaceAll(s, ",", ".")
	case commas > 1:
		s = strings.ReplaceAll(s, ",", "")
	case dots > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	if negative && !strings.HasPrefix(s, "-") {
		s = "-" + s
	}
	return s
}

// FormatAmount renders an amount with two decimals and a '.' separator, the
// form used in tables and CSV exports.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatBRL renders an amount for people: "R$ 1.234,56" / "-R$ 200,00".
func FormatBRL(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	fixed := amount.StringFixed(2)
	intPart, frac := fixed[:len(fixed)-3], fixed[len(fixed)-2:]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return fmt.Sprintf("%sR$ %s,%s", sign, b.String(), frac)
}
