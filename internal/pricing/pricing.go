// Package pricing derives the amounts charged at checkout. The subtotal is
// what the seller should receive; the total grosses the subtotal up so that
// after the payment processor deducts its percentage-plus-fixed transaction
// fee the seller nets exactly the subtotal. Both the browser-facing price
// preview and the server-side intent sizing go through this package, so the
// two can never disagree.
package pricing

import (
	"math"
	"strconv"
)

// Fee constants for the deployed processor account: a fixed 0.30 EUR per
// transaction plus a percentage expressed through the divisor
// (total * 0.956 - 0.30 = subtotal).
const (
	FixedFee   = 0.30
	FeeDivisor = 0.956
)

// Round2 cuts a positive amount to two decimal places. The tiny epsilon
// compensates for binary float representations of exact cent values
// (e.g. 1.15*100 -> 114.999...).
func Round2(v float64) float64 {
	return math.Trunc(v*100+1e-9) / 100
}

// Subtotal returns the seller-side price for n participants: the tier price
// when the tour defines a fixed total for exactly n people, otherwise the
// per-person base price multiplied by n.
func Subtotal(basePrice float64, tiers map[int]float64, n int) float64 {
	if tiers != nil {
		if v, ok := tiers[n]; ok {
			return v
		}
	}
	return basePrice * float64(n)
}

// Total grosses up a subtotal to the fee-inclusive amount the guest pays.
// A zero (or negative, from malformed tour data) subtotal short-circuits to
// 0 rather than yielding a nonzero total from the fee formula alone.
func Total(subtotal float64) float64 {
	if subtotal <= 0 {
		return 0
	}
	return Round2((subtotal + FixedFee) / FeeDivisor)
}

// Fees returns the processor-fee portion of the charge for a subtotal.
func Fees(subtotal float64) float64 {
	if subtotal <= 0 {
		return 0
	}
	return Round2(Total(subtotal) - subtotal)
}

// Cents converts a currency amount to the integer cents the payment
// processor API expects.
func Cents(v float64) int64 {
	return int64(math.Floor(v*100 + 0.5))
}

// CanonicalTiers coerces a tier table with string keys (the shape JSON
// object keys always arrive in) to integer participant counts. Keys that do
// not parse as integers are dropped; without this step a tier stored as
// {"2": 80} would silently never match a lookup for 2 participants.
func CanonicalTiers(raw map[string]float64) map[int]float64 {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[int]float64, len(raw))
	for k, v := range raw {
		if n, err := strconv.Atoi(k); err == nil {
			out[n] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
