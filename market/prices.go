package market

import "math"

// RoundPrice rounds a price to the given number of decimal places, the
// instrument's standard quoting precision.
func RoundPrice(x float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(x*scale) / scale
}
