// Package money is the single serialization boundary between stored decimal
// amounts and the plain numbers exposed over the wire. Nothing outside this
// package converts a currency decimal to a float.
package money

import "github.com/shopspring/decimal"

// ToNumber converts a stored decimal amount to the wire representation.
func ToNumber(amount decimal.Decimal) float64 {
	value, _ := amount.Float64()
	return value
}

// FromNumber parses a wire number into a decimal amount.
func FromNumber(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value)
}

// Subtotal computes price multiplied by quantity.
func Subtotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}
