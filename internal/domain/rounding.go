package domain

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// RoundedRatio returns num/den rounded half-up to an integer, or 0 when den is 0.
func RoundedRatio(num, den int) int {
	if den == 0 {
		return 0
	}
	return int(decimal.NewFromInt(int64(num)).
		Div(decimal.NewFromInt(int64(den))).
		Round(0).
		IntPart())
}

// Percentage returns score/maxScore*100 rounded half-up to the given number of decimal places.
// It is 0 when maxScore is 0.
func Percentage(score, maxScore int, places int32) decimal.Decimal {
	if maxScore == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(score)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(maxScore))).
		Round(places)
}
