// SPDX-License-Identifier: Apache-2.0

package tmdatatypes_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tmdatatypes "github.com/tektronix/tm-data-types"
	"github.com/tektronix/tm-data-types/internal/wfmtest"
	"github.com/tektronix/tm-data-types/waveform"
)

func TestReadFilesMixedOutcomes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := make([]string, 5)
	for i := range good {
		good[i] = filepath.Join(dir, fmt.Sprintf("ch%d.wfm", i))
		require.NoError(t, tmdatatypes.WriteFile(good[i], wfmtest.NewAnalog(10+i)))
	}
	missing := filepath.Join(dir, "gone.wfm")
	unknown := filepath.Join(dir, "weird.xyz")

	paths := append(append([]string{}, good...), missing, unknown)
	results := tmdatatypes.ReadFiles(paths, 3)
	require.Len(t, results, len(paths))

	for i, path := range good {
		res := results[path]
		require.NoErrorf(t, res.Err, "path %s", path)
		assert.Equal(t, 10+i, res.Waveform.RecordLength())
	}
	assert.Error(t, results[missing].Err)
	assert.ErrorIs(t, results[unknown].Err, tmdatatypes.ErrUnknownExtension)
}

func TestReadFilesDuplicatePaths(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "one.wfm")
	require.NoError(t, tmdatatypes.WriteFile(path, wfmtest.NewAnalog(4)))

	results := tmdatatypes.ReadFiles([]string{path, path, path}, 2)
	require.Len(t, results, 1)
	assert.NoError(t, results[path].Err)
}

func TestReadFilesZeroWorkers(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "one.wfm")
	require.NoError(t, tmdatatypes.WriteFile(path, wfmtest.NewAnalog(4)))

	// Worker counts below one degrade to a single worker instead of
	// deadlocking.
	results := tmdatatypes.ReadFiles([]string{path}, 0)
	require.Len(t, results, 1)
	assert.NoError(t, results[path].Err)
}

func TestReadFilesEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, tmdatatypes.ReadFiles(nil, 4))
}

func TestWriteFilesMixedOutcomes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	items := map[string]waveform.Waveform{
		filepath.Join(dir, "a.wfm"):  wfmtest.NewAnalog(8),
		filepath.Join(dir, "b.csv"):  wfmtest.NewDigital(8),
		filepath.Join(dir, "c.xyz"):  wfmtest.NewAnalog(8),
		filepath.Join(dir, "iq.wfm"): wfmtest.NewIQ(8),
	}
	results := tmdatatypes.WriteFiles(items, 2)
	require.Len(t, results, len(items))

	assert.NoError(t, results[filepath.Join(dir, "a.wfm")])
	assert.NoError(t, results[filepath.Join(dir, "b.csv")])
	assert.NoError(t, results[filepath.Join(dir, "iq.wfm")])
	assert.ErrorIs(t, results[filepath.Join(dir, "c.xyz")], tmdatatypes.ErrUnknownExtension)

	// The failures above never stopped the good writes.
	got, err := tmdatatypes.ReadFile(filepath.Join(dir, "iq.wfm"))
	require.NoError(t, err)
	assert.Equal(t, waveform.ShapeIQ, got.Shape())
}
