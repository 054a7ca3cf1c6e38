// Package moneypkg converts between decimal display amounts and integer minor units.
package moneypkg

import "github.com/shopspring/decimal"

// MaxPrecision is the largest number of decimal places an asset may declare.
const MaxPrecision = 4

// ToMinorUnits converts a decimal display amount to integer minor units
// for an asset with the given precision. Rounding is half away from zero.
func ToMinorUnits(amount decimal.Decimal, precision int32) int64 {
	return amount.Shift(precision).Round(0).IntPart()
}

// FromMinorUnits converts integer minor units back to the decimal display
// amount for an asset with the given precision.
func FromMinorUnits(amount int64, precision int32) decimal.Decimal {
	return decimal.New(amount, -precision)
}
