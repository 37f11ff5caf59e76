package math

import "github.com/chewxy/math32"

const (
	// Deg2Rad converts degrees to radians.
	Deg2Rad = math32.Pi / 180
	// Rad2Deg converts radians to degrees.
	Rad2Deg = 180 / math32.Pi

	epsilonSq = 1e-15
)

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Clamp01 limits x to [0, 1].
func Clamp01(x float32) float32 {
	return Clamp(x, 0, 1)
}

// Lerp interpolates from a toward b by t, with t clamped to [0, 1].
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*Clamp01(t)
}

// Sign returns 1 for x >= 0 and -1 otherwise.
func Sign(x float32) float32 {
	if x >= 0 {
		return 1
	}
	return -1
}
