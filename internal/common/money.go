package common

import "github.com/shopspring/decimal"

// Prices are stored in sen (MYR minor units). Display and membership math
// happen in ringgit via decimal.

// SenToRinggit converts a sen amount to a ringgit decimal.
func SenToRinggit(sen int64) decimal.Decimal {
	return decimal.New(sen, -2)
}

// RinggitToSen converts a ringgit decimal to sen, rounding half up.
func RinggitToSen(d decimal.Decimal) int64 {
	return d.Mul(decimal.New(100, 0)).Round(0).IntPart()
}

// FormatRM renders a sen amount as a display string, e.g. "RM80.00".
func FormatRM(sen int64) string {
	return "RM" + SenToRinggit(sen).StringFixed(2)
}
