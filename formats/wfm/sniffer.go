// SPDX-License-Identifier: Apache-2.0

package wfm

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/tektronix/tm-data-types/waveform"
)

// Detection is the sniffer verdict. Certain is false only when the header's
// type code is outside the known set and the analog fallback was used, so a
// caller can distinguish a real analog record from a guess.
type Detection struct {
	Shape   waveform.Shape
	Certain bool
}

// iqMetaKeys identify an IQ record; vector records carrying any of these in
// the metadata postamble are IQ, not analog.
var iqMetaKeys = []string{
	"IQ_centerFrequency",
	"IQ_fftLength",
	"IQ_rbw",
	"IQ_span",
	"IQ_windowType",
	"IQ_sampleRate",
}

// DetectShape determines the waveform shape of a WFM byte image without
// decoding it. Only the header prefix and the metadata postamble are
// inspected, never the curve buffer, so detection cost is independent of
// record length.
func DetectShape(data []byte) (Detection, error) {
	order, _, err := parsePreamble(data)
	if err != nil {
		return Detection{}, err
	}

	r := &sectionReader{buf: data, off: preambleSize, order: order}
	var info fileInfo
	if err := r.read("static file info", &info); err != nil {
		return Detection{}, err
	}
	var header wfmHeader
	if err := r.read("waveform header", &header); err != nil {
		return Detection{}, err
	}

	switch header.DataType {
	case dataDigital:
		return Detection{Shape: waveform.ShapeDigital, Certain: true}, nil
	case dataVector:
		if hasIQMetadata(data, order, info.BytesToEOF) {
			return Detection{Shape: waveform.ShapeIQ, Certain: true}, nil
		}
		return Detection{Shape: waveform.ShapeAnalog, Certain: true}, nil
	default:
		// Documented fallback: unknown type codes read as analog, flagged
		// as uncertain instead of silently mis-detecting.
		return Detection{Shape: waveform.ShapeAnalog, Certain: false}, nil
	}
}

func parsePreamble(data []byte) (binary.ByteOrder, Version, error) {
	if len(data) < preambleSize {
		return nil, "", fmt.Errorf("%w: preamble needs %d bytes, have %d",
			ErrTruncatedInput, preambleSize, len(data))
	}
	var order binary.ByteOrder
	switch {
	case data[0] == markerIntel[0] && data[1] == markerIntel[1]:
		order = binary.LittleEndian
	case data[0] == markerPPC[0] && data[1] == markerPPC[1]:
		order = binary.BigEndian
	default:
		return nil, "", fmt.Errorf("%w: byte order verification %#02x%02x is not a wfm marker",
			ErrMalformedHeader, data[0], data[1])
	}
	version := Version(data[2:10])
	if !version.valid() {
		return nil, "", fmt.Errorf("%w: unknown version string %q at offset 2", ErrMalformedHeader, string(version))
	}
	return order, version, nil
}

// hasIQMetadata looks for IQ_* keys in the metadata postamble. The postamble
// normally sits at the offset the bytes-till-EOF field declares; files with
// a stale offset fall back to a bounded scan of the image tail.
func hasIQMetadata(data []byte, order binary.ByteOrder, bytesToEOF uint32) bool {
	tail := findTekMeta(data, bytesToEOF)
	if tail == nil {
		return false
	}
	entries, err := parseTekMeta(tail, order)
	if err != nil {
		return false
	}
	for _, key := range iqMetaKeys {
		if _, ok := entries[key]; ok {
			return true
		}
	}
	for key := range entries {
		if strings.HasPrefix(key, "IQ_") {
			return true
		}
	}
	return false
}

func findTekMeta(data []byte, bytesToEOF uint32) []byte {
	if off := bytesToEOFBase + int(bytesToEOF); off >= 0 && off+len(tekMetaMarker) <= len(data) {
		if string(data[off:off+len(tekMetaMarker)]) == tekMetaMarker {
			return data[off:]
		}
	}
	// Bounded fallback scan over the last few KiB only; the curve buffer is
	// never walked.
	start := len(data) - 8192
	if start < 0 {
		start = 0
	}
	if idx := bytes.Index(data[start:], []byte(tekMetaMarker)); idx >= 0 {
		return data[start+idx:]
	}
	return nil
}
