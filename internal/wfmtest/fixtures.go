// SPDX-License-Identifier: Apache-2.0

// Package wfmtest provides waveform fixtures shared by the codec tests.
package wfmtest

import (
	"math"

	"github.com/tektronix/tm-data-types/waveform"
)

// NewAnalog builds an analog record with n ramp codes and a typical channel
// transform.
func NewAnalog(n int) *waveform.AnalogWaveform {
	codes := make([]int16, n)
	for i := range codes {
		codes[i] = int16(i%2000 - 1000)
	}
	return &waveform.AnalogWaveform{
		Samples:        waveform.RawFromInt16(codes),
		SampleInterval: 1e-9,
		XUnits:         "s",
		TriggerIndex:   float64(n) / 2,
		Scale:          1e-3,
		Offset:         0.05,
		YUnits:         "V",
		Meta: waveform.AnalogMetaInfo{
			MetaInfo: waveform.MetaInfo{Label: "ramp", SourceName: "CH1"},
			YOffset:  0.05,
		},
	}
}

// NewSine builds an analog record holding a normalized sine in volts.
func NewSine(n int, amplitude float64) *waveform.AnalogWaveform {
	values := make(waveform.NormalizedSamples, n)
	for i := range values {
		values[i] = amplitude * math.Sin(2*math.Pi*float64(i)/float64(n))
	}
	return &waveform.AnalogWaveform{
		Samples:        values,
		SampleInterval: 1e-6,
		XUnits:         "s",
		YUnits:         "V",
	}
}

// NewDigital builds a logic record of n samples cycling through all eight
// probe bits.
func NewDigital(n int) *waveform.DigitalWaveform {
	codes := make([]int8, n)
	for i := range codes {
		codes[i] = int8(i)
	}
	w := &waveform.DigitalWaveform{
		Samples:        waveform.RawFromInt8(codes),
		SampleInterval: 1e-8,
		XUnits:         "s",
	}
	w.Meta.Label = "logic"
	for i := range w.Meta.ProbeStates {
		w.Meta.ProbeStates[i] = "high"
	}
	return w
}

// NewIQ builds an IQ record of interleaved pairs with the spectrum metadata
// an RF capture carries.
func NewIQ(pairs int) *waveform.IQWaveform {
	codes := make([]int16, 2*pairs)
	for i := 0; i < pairs; i++ {
		phase := 2 * math.Pi * float64(i) / float64(pairs)
		codes[2*i] = int16(10000 * math.Cos(phase))
		codes[2*i+1] = int16(10000 * math.Sin(phase))
	}
	w := &waveform.IQWaveform{
		Samples:        waveform.RawFromInt16(codes),
		SampleInterval: 1e-7,
		XUnits:         "s",
		Scale:          1e-4,
		YUnits:         "V",
	}
	w.Meta.Label = "capture"
	w.Meta.CenterFrequency = 1e9
	w.Meta.FFTLength = 1024
	w.Meta.ResolutionBandwidth = 1e5
	w.Meta.Span = 4e7
	w.Meta.WindowType = "Hanning"
	return w
}

// Corrupt returns a copy of data with the byte at off flipped.
func Corrupt(data []byte, off int) []byte {
	out := make([]byte, len(data))
	copy(out, data)
	out[off] ^= 0xFF
	return out
}

// Truncate returns the first n bytes of data as a copy.
func Truncate(data []byte, n int) []byte {
	out := make([]byte, n)
	copy(out, data[:n])
	return out
}
