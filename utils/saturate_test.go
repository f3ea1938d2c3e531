// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v    float64
		want float64
	}{
		{name: "inside", v: 10, want: 10},
		{name: "at low bound", v: -100, want: -100},
		{name: "at high bound", v: 100, want: 100},
		{name: "below", v: -100.5, want: -100},
		{name: "above", v: 1e9, want: 100},
		{name: "negative infinity", v: math.Inf(-1), want: -100},
		{name: "positive infinity", v: math.Inf(1), want: 100},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Clamp(tt.v, -100, 100); got != tt.want {
				t.Errorf("Clamp(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestSaturateRound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v    float64
		want float64
	}{
		{name: "rounds half up", v: 2.5, want: 3},
		{name: "rounds half down for negatives", v: -2.5, want: -3},
		{name: "rounds down", v: 2.4, want: 2},
		{name: "saturates high", v: math.MaxInt16 + 10, want: math.MaxInt16},
		{name: "saturates low", v: math.MinInt16 - 10, want: math.MinInt16},
		{name: "never wraps", v: math.MaxInt16 + 1, want: math.MaxInt16},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SaturateRound(tt.v, math.MinInt16, math.MaxInt16); got != tt.want {
				t.Errorf("SaturateRound(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}
