// SPDX-License-Identifier: Apache-2.0

package waveform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalogMetaSetRoutesFirstClassFields(t *testing.T) {
	t.Parallel()

	var m AnalogMetaInfo
	require.NoError(t, m.Set("waveform_label", "ch1 ref"))
	require.NoError(t, m.Set("yOffset", 0.25))
	require.NoError(t, m.Set("yPosition", -1.5))
	require.NoError(t, m.Set("clippingInitialized", int32(1)))
	require.NoError(t, m.Set("interpFactor", int32(4)))
	require.NoError(t, m.Set("realDataStartIndex", int32(10)))

	assert.Equal(t, "ch1 ref", m.Label)
	assert.Equal(t, 0.25, m.YOffset)
	assert.Equal(t, -1.5, m.YPosition)
	assert.Equal(t, int32(1), m.ClippingInitialized)
	assert.Equal(t, int32(4), m.InterpFactor)
	assert.Equal(t, int32(10), m.RealDataStartIndex)
	assert.Empty(t, m.Extended)
}

func TestMetaSetNameVariants(t *testing.T) {
	t.Parallel()

	// Callers do not need to know the file-format spelling of a field.
	var m AnalogMetaInfo
	require.NoError(t, m.Set("y_offset", 1.0))
	require.NoError(t, m.Set("YOffset", 2.0))
	assert.Equal(t, 2.0, m.YOffset)
	assert.Empty(t, m.Extended)
}

func TestMetaSetUnknownGoesToExtended(t *testing.T) {
	t.Parallel()

	var m AnalogMetaInfo
	require.NoError(t, m.Set("vendorSecretSauce", uint32(7)))
	assert.Equal(t, uint32(7), m.Extended["vendorSecretSauce"])
}

func TestMetaSetWrongTypeFails(t *testing.T) {
	t.Parallel()

	var m AnalogMetaInfo
	err := m.Set("yOffset", "not a number")
	assert.ErrorIs(t, err, ErrInvalidParameter)
	err = m.Set("waveform_label", int32(3))
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestMetaSetNumericCoercion(t *testing.T) {
	t.Parallel()

	var m AnalogMetaInfo
	require.NoError(t, m.Set("yOffset", int32(3)))
	assert.Equal(t, 3.0, m.YOffset)
	require.NoError(t, m.Set("interpFactor", 2.0))
	assert.Equal(t, int32(2), m.InterpFactor)
}

func TestDigitalMetaProbeStates(t *testing.T) {
	t.Parallel()

	var m DigitalMetaInfo
	for i, name := range []string{"d0", "d1", "d2", "d3", "d4", "d5", "d6", "d7"} {
		require.NoError(t, m.Set(name, "probe"))
		assert.Equal(t, "probe", m.ProbeStates[i])
	}
	// d8 is not a probe slot.
	require.NoError(t, m.Set("d8", "x"))
	assert.Equal(t, "x", m.Extended["d8"])
}

func TestIQSampleRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		window string
		want   float64
	}{
		{name: "blackharris", window: "Blackharris", want: 1024 * 1e5 / 1.9},
		{name: "flattop2", window: "Flattop2", want: 1024 * 1e5 / 3.77},
		{name: "hanning", window: "Hanning", want: 1024 * 1e5 / 1.44},
		{name: "hamming", window: "hamming", want: 1024 * 1e5 / 1.3},
		{name: "rectangle", window: "rectangle", want: 1024 * 1e5 / 0.89},
		{name: "kaiserbessel", window: "KaiserBessel", want: 1024 * 1e5 / 2.23},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := IQMetaInfo{FFTLength: 1024, ResolutionBandwidth: 1e5, Span: 4e7, WindowType: tt.window}
			assert.InDelta(t, tt.want, m.SampleRate(), 1e-6)
		})
	}
}

func TestIQSampleRateUnknownWindowFallsBackToSpan(t *testing.T) {
	t.Parallel()

	m := IQMetaInfo{FFTLength: 1024, ResolutionBandwidth: 1e5, Span: 4e7, WindowType: "mystery"}
	assert.Equal(t, 4e7, m.SampleRate())
}

func TestIQMetaSetIgnoresStoredSampleRate(t *testing.T) {
	t.Parallel()

	var m IQMetaInfo
	m.FFTLength = 1024
	m.ResolutionBandwidth = 1e5
	m.WindowType = "Hanning"
	require.NoError(t, m.Set("IQ_sampleRate", 123.0))
	assert.InDelta(t, 1024*1e5/1.44, m.SampleRate(), 1e-6)

	err := m.Set("IQ_sampleRate", "fast")
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestCopyExtendedIsDeep(t *testing.T) {
	t.Parallel()

	var m MetaInfo
	m.SetExtended("k", "v")
	dup := m.CopyExtended()
	dup["k"] = "changed"
	assert.Equal(t, "v", m.Extended["k"])
}
