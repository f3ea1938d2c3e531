// SPDX-License-Identifier: Apache-2.0

package wfm

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tektronix/tm-data-types/internal/wfmtest"
	"github.com/tektronix/tm-data-types/waveform"
)

func encodeAnalog(t *testing.T, n int) []byte {
	t.Helper()
	data, err := Encoder{}.EncodeBytes(wfmtest.NewAnalog(n))
	require.NoError(t, err)
	return data
}

func TestDecodeTruncated(t *testing.T) {
	t.Parallel()

	data := encodeAnalog(t, 100)
	tests := []struct {
		name string
		n    int
	}{
		{name: "empty", n: 0},
		{name: "partial preamble", n: 5},
		{name: "partial file info", n: 40},
		{name: "partial header", n: 100},
		{name: "partial curve", n: curveBufferOffset(Version3) + 10},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decoder{}.DecodeBytes(wfmtest.Truncate(data, tt.n))
			assert.ErrorIs(t, err, ErrTruncatedInput)
		})
	}
}

func TestDecodeBadMarker(t *testing.T) {
	t.Parallel()

	data := encodeAnalog(t, 10)
	_, err := Decoder{}.DecodeBytes(wfmtest.Corrupt(data, 0))
	assert.ErrorIs(t, err, ErrMalformedHeader)
}

func TestDecodeBadVersion(t *testing.T) {
	t.Parallel()

	data := encodeAnalog(t, 10)
	_, err := Decoder{}.DecodeBytes(wfmtest.Corrupt(data, 9))
	assert.ErrorIs(t, err, ErrMalformedHeader)
}

func TestDecodeBadElementSize(t *testing.T) {
	t.Parallel()

	data := encodeAnalog(t, 10)
	// Offset 15 is the bytes-per-point field.
	bad := wfmtest.Corrupt(data, 15)
	_, err := Decoder{}.DecodeBytes(bad)
	assert.ErrorIs(t, err, ErrMalformedHeader)
}

func TestDecodeChecksumMismatch(t *testing.T) {
	t.Parallel()

	data := encodeAnalog(t, 100)
	// Flip one curve byte; the stored checksum no longer matches.
	bad := wfmtest.Corrupt(data, curveBufferOffset(Version3)+3)
	_, err := Decoder{}.DecodeBytes(bad)
	require.ErrorIs(t, err, ErrMalformedHeader)
	assert.Contains(t, err.Error(), "checksum")
}

func TestDecodeMissingChecksumWarns(t *testing.T) {
	t.Parallel()

	data := encodeAnalog(t, 10)
	end := curveBufferOffset(Version3) + 10*2

	var warned []string
	d := Decoder{Warn: func(msg string) { warned = append(warned, msg) }}
	got, err := d.DecodeBytes(wfmtest.Truncate(data, end))
	require.NoError(t, err)
	assert.Equal(t, 10, got.RecordLength())
	assert.NotEmpty(t, warned)
}

func TestDecodeUnsupportedShape(t *testing.T) {
	t.Parallel()

	src := wfmtest.NewAnalog(10)
	data, err := Encoder{}.EncodeBytes(src)
	require.NoError(t, err)

	// The header data type sits right after file info plus nine header
	// fields; patch it to the pixel-map code and fix the checksum up.
	off := preambleSize + fileInfoSize + 4 + 4 + 8 + 8 + 4 + 4 + 4 + 4 + 4
	bad := make([]byte, len(data))
	copy(bad, data)
	delta := int(dataPixMap) - int(bad[off])
	bad[off] = byte(dataPixMap)
	fixChecksum(bad, delta)

	_, err = Decoder{}.DecodeBytes(bad)
	assert.ErrorIs(t, err, ErrUnsupportedShape)
}

// fixChecksum adjusts the stored byte-sum after a patch changed the summed
// bytes by delta.
func fixChecksum(data []byte, delta int) {
	idx := bytes.Index(data, []byte(tekMetaMarker))
	off := idx - 8
	sum := binary.LittleEndian.Uint64(data[off:])
	binary.LittleEndian.PutUint64(data[off:], uint64(int64(sum)+int64(delta)))
}

func TestDecodeUnknownMetadataSurvives(t *testing.T) {
	t.Parallel()

	src := wfmtest.NewAnalog(10)
	src.Meta.SetExtended("futureKnob", 3.25)
	data, err := Encoder{}.EncodeBytes(src)
	require.NoError(t, err)

	got, err := Decoder{}.DecodeBytes(data)
	require.NoError(t, err)
	assert.Equal(t, 3.25, got.MetaBag().Extended["futureKnob"])
}

func TestDecodeLabelFallsBackToHeader(t *testing.T) {
	t.Parallel()

	src := wfmtest.NewAnalog(10)
	src.Meta.Label = ""
	data, err := Encoder{}.EncodeBytes(src)
	require.NoError(t, err)

	// Patch the fixed 32-byte label field directly; the metadata postamble
	// still carries an empty waveform_label.
	off := preambleSize + 30
	name := "HDRLBL"
	var delta int
	for i := 0; i < len(name); i++ {
		delta += int(name[i]) - int(data[off+i])
		data[off+i] = name[i]
	}
	fixChecksum(data, delta)

	got, err := Decoder{}.DecodeBytes(data)
	require.NoError(t, err)
	assert.Equal(t, "HDRLBL", got.MetaBag().Label)
}

func TestDecodeReaderPath(t *testing.T) {
	t.Parallel()

	data := encodeAnalog(t, 25)
	got, err := Decoder{}.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, waveform.ShapeAnalog, got.Shape())
	assert.Equal(t, 25, got.RecordLength())
}
