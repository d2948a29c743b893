package compare

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Round rounds v half away from zero to the given number of decimal places.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// Millis converts d to milliseconds rounded to two places.
func Millis(d time.Duration) float64 {
	return Round(float64(d.Nanoseconds())/float64(time.Millisecond), 2)
}
