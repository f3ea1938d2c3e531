// SPDX-License-Identifier: Apache-2.0

package wav

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tektronix/tm-data-types/internal/wfmtest"
	"github.com/tektronix/tm-data-types/waveform"
)

func exportToTemp(t *testing.T, w *waveform.AnalogWaveform) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, Export(f, w))
	return path
}

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()

	src := &waveform.AnalogWaveform{
		Samples:        waveform.RawFromInt16([]int16{0, 8192, -8192, 16384}),
		SampleInterval: 1.0 / 48000,
		XUnits:         "s",
		Scale:          1 / 32768.0,
	}
	path := exportToTemp(t, src)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := Import(f)
	require.NoError(t, err)
	assert.InDelta(t, src.SampleInterval, got.SampleInterval, 1e-12)

	srcCodes, err := src.Samples.(*waveform.RawSamples).Int16s()
	require.NoError(t, err)
	gotCodes, err := got.Samples.(*waveform.RawSamples).Int16s()
	require.NoError(t, err)
	assert.Equal(t, srcCodes, gotCodes)
}

func TestExportNormalizedSine(t *testing.T) {
	t.Parallel()

	src := wfmtest.NewSine(480, 0.8)
	src.SampleInterval = 1.0 / 48000
	path := exportToTemp(t, src)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := Import(f)
	require.NoError(t, err)
	assert.Equal(t, 480, got.RecordLength())

	// The sine survives within the int16 quantization and rescale slack.
	want, err := src.Normalized()
	require.NoError(t, err)
	have, err := got.Normalized()
	require.NoError(t, err)
	for i := range want {
		assert.InDeltaf(t, want[i]/0.8, have[i], 2e-3, "sample %d", i)
	}
}

func TestExportBadInterval(t *testing.T) {
	t.Parallel()

	src := wfmtest.NewAnalog(8)
	src.SampleInterval = 0
	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	assert.ErrorIs(t, Export(f, src), ErrUnsupportedRate)
}

func TestImportRejectsGarbage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "junk.wav")
	require.NoError(t, os.WriteFile(path, []byte("definitely not audio"), 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	_, err = Import(f)
	assert.ErrorIs(t, err, ErrInvalidAudio)
}
