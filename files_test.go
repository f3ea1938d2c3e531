// SPDX-License-Identifier: Apache-2.0

package tmdatatypes_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tmdatatypes "github.com/tektronix/tm-data-types"
	"github.com/tektronix/tm-data-types/internal/wfmtest"
	"github.com/tektronix/tm-data-types/waveform"
)

func TestReadWriteFileByExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		file string
	}{
		{name: "wfm", file: "capture.wfm"},
		{name: "wfm upper case", file: "CAPTURE.WFM"},
		{name: "csv", file: "capture.csv"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), tt.file)
			src := wfmtest.NewAnalog(50)
			require.NoError(t, tmdatatypes.WriteFile(path, src))

			got, err := tmdatatypes.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, waveform.ShapeAnalog, got.Shape())
			assert.Equal(t, 50, got.RecordLength())
			assert.Equal(t, "ramp", got.MetaBag().Label)
		})
	}
}

func TestReadFileUnknownExtension(t *testing.T) {
	t.Parallel()

	_, err := tmdatatypes.ReadFile("scope.xyz")
	assert.ErrorIs(t, err, tmdatatypes.ErrUnknownExtension)

	err = tmdatatypes.WriteFile("scope.xyz", wfmtest.NewAnalog(1))
	assert.ErrorIs(t, err, tmdatatypes.ErrUnknownExtension)
}

func TestReadFileMissing(t *testing.T) {
	t.Parallel()

	_, err := tmdatatypes.ReadFile(filepath.Join(t.TempDir(), "nope.wfm"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadFileErrorNamesPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.wfm")
	require.NoError(t, os.WriteFile(path, []byte("garbage bytes"), 0o644))

	_, err := tmdatatypes.ReadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.wfm")
}

func TestCrossFormatConversion(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	wfmPath := filepath.Join(dir, "src.wfm")
	csvPath := filepath.Join(dir, "dst.csv")

	src := wfmtest.NewAnalog(20)
	require.NoError(t, tmdatatypes.WriteFile(wfmPath, src))
	wf, err := tmdatatypes.ReadFile(wfmPath)
	require.NoError(t, err)
	require.NoError(t, tmdatatypes.WriteFile(csvPath, wf))

	back, err := tmdatatypes.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, 20, back.RecordLength())

	want, err := src.Normalized()
	require.NoError(t, err)
	have, err := back.(*waveform.AnalogWaveform).Normalized()
	require.NoError(t, err)
	for i := range want {
		assert.InDeltaf(t, want[i], have[i], 1e-3, "sample %d", i)
	}
}
