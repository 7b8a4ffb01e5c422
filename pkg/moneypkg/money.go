// Package moneypkg provides common money related functionality for apps.
package moneypkg

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// MaxDecimalPlaces is the precision of accepted money amounts.
const MaxDecimalPlaces = 2

// MaxAmountUnits is the largest accepted amount of a single charge or payment.
const MaxAmountUnits = 1_000_000_000

// maxAmountLen bounds the text of an amount before it is parsed.
const maxAmountLen = 32

// MaxAmount is MaxAmountUnits as a decimal.
var MaxAmount = decimal.NewFromInt(MaxAmountUnits)

// ParseAmount parses a positive amount not greater than MaxAmount with at
// most MaxDecimalPlaces decimals. Exponent notation is rejected.
func ParseAmount(s string) (decimal.Decimal, bool) {
	if len(s) > maxAmountLen || strings.ContainsAny(s, "eE") {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}

	if !ValidRange(d) || !d.Equal(d.Round(MaxDecimalPlaces)) {
		return decimal.Zero, false
	}

	return d, true
}

// ValidRange reports whether d is positive and not greater than MaxAmount.
func ValidRange(d decimal.Decimal) bool {
	return d.IsPositive() && d.LessThanOrEqual(MaxAmount)
}

// ValidAmount validates whether the field holds a valid money amount.
var ValidAmount validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		_, valid := ParseAmount(s)
		return valid
	}

	return false
}
