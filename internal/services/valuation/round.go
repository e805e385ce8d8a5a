package valuation

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// round rounds the exact binary value of v to the given number of decimal
// places, with exact ties going to the even digit.
// Non-finite values are returned unchanged.
func round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.RequireFromString(strconv.FormatFloat(v, 'f', int(places), 64)).InexactFloat64()
}

func roundPtr(v *float64, places int32) *float64 {
	if v == nil {
		return nil
	}
	return ptr(round(*v, places))
}
