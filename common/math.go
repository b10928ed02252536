package common

import "math"

// Lerp interpolates from a to b; t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// NormalizeAngle wraps a into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}
