package scoring

import "math"

// Clamp bounds raw to [-bound, bound] and truncates toward zero.
func Clamp(raw float64, bound int) int {
	b := float64(bound)
	if raw > b {
		raw = b
	}
	if raw < -b {
		raw = -b
	}
	return int(raw)
}

// DisplayScore rescales a stored total into the narrower display range:
// the total is clamped first, divided by divisor and rounded to decimals places.
func DisplayScore(total, bound int, divisor float64, decimals int) float64 {
	if divisor <= 0 {
		divisor = 1
	}
	if decimals < 0 {
		decimals = 0
	}
	v := float64(Clamp(float64(total), bound)) / divisor
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
