// Package money holds the rounding conventions used by benefit computations.
//
// Published benefit amounts are truncated, never rounded to nearest: the PIA,
// family maximum and every COLA step are cut to the next-lower dime, and the
// amount actually payable is cut to the next-lower whole dollar. The two rules
// are kept as separate functions so each call site states which one applies.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// FloorDime truncates an amount to the next-lower multiple of $0.10.
func FloorDime(amount decimal.Decimal) decimal.Decimal {
	return amount.Shift(1).Floor().Shift(-1)
}

// FloorDollar truncates an amount to the next-lower whole dollar.
func FloorDollar(amount decimal.Decimal) decimal.Decimal {
	return amount.Floor()
}

// RoundDollar rounds to the nearest whole dollar, halves away from zero.
// Only bend points use this rule.
func RoundDollar(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(0)
}

// IsDimeMultiple reports whether amount is an exact multiple of $0.10.
func IsDimeMultiple(amount decimal.Decimal) bool {
	return FloorDime(amount).Equal(amount)
}

// PercentToRate converts a percentage such as 2.5 into the factor 1.025.
func PercentToRate(percent decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Add(percent.Div(hundred))
}

// Annual converts a monthly amount to annual
func Annual(monthly decimal.Decimal) decimal.Decimal {
	return monthly.Mul(twelve)
}

// Min returns the smaller of two amounts
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// FormatCurrency formats an amount as USD with cents and thousands separators.
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	whole, cents, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + "." + cents
}

// FormatWholeDollars formats an amount as USD without cents.
func FormatWholeDollars(amount decimal.Decimal) string {
	s := FormatCurrency(FloorDollar(amount))
	return strings.TrimSuffix(s, ".00")
}
