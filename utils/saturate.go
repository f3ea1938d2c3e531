// SPDX-License-Identifier: Apache-2.0

package utils

import "math"

// Clamp limits v to the inclusive range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SaturateRound rounds v to the nearest integer and clamps the result to
// [lo, hi]. Values outside the range saturate at the boundary, they never
// wrap.
func SaturateRound(v, lo, hi float64) float64 {
	return Clamp(math.Round(v), lo, hi)
}
