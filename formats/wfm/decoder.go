// SPDX-License-Identifier: Apache-2.0

package wfm

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/tektronix/tm-data-types/waveform"
)

// Decoder reads WFM byte streams into waveform objects.
//
// Samples come back in the raw representation; the Raw->Normalized transform
// is never applied during decode.
type Decoder struct {
	// Warn receives non-fatal diagnostics (unrecognized metadata, size
	// mismatches). Nil discards them.
	Warn func(msg string)
}

// Decode reads a complete WFM image from r and returns the typed waveform.
func (d Decoder) Decode(r io.Reader) (waveform.Waveform, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading wfm input: %w", err)
	}
	return d.DecodeBytes(data)
}

// DecodeBytes decodes a WFM image already held in memory.
func (d Decoder) DecodeBytes(data []byte) (waveform.Waveform, error) {
	order, version, err := parsePreamble(data)
	if err != nil {
		return nil, err
	}

	r := &sectionReader{buf: data, off: preambleSize, order: order}

	var info fileInfo
	if err := r.read("static file info", &info); err != nil {
		return nil, err
	}
	switch info.BytesPerPoint {
	case 1, 2, 4, 8:
	default:
		return nil, fmt.Errorf("%w: declared element size %d is outside the supported set {1,2,4,8}",
			ErrMalformedHeader, info.BytesPerPoint)
	}
	// The trailing checksum field may be absent; everything before it must
	// be present.
	if declared := bytesToEOFBase + int(info.BytesToEOF) - 8; declared > len(data) {
		return nil, fmt.Errorf("%w: header declares %d bytes, only %d available",
			ErrTruncatedInput, declared, len(data))
	}

	var header wfmHeader
	if err := r.read("waveform header", &header); err != nil {
		return nil, err
	}
	if version.hasSummaryFrame() {
		var summary uint16
		if err := r.read("summary frame type", &summary); err != nil {
			return nil, err
		}
	}
	var pix pixMap
	if err := r.read("pixel map", &pix); err != nil {
		return nil, err
	}

	var expDim [2]explicitDimension
	var impDim [2]implicitDimension
	for i := range expDim {
		if err := r.read("explicit dimension", &expDim[i]); err != nil {
			return nil, err
		}
		if err := d.skipUserView(r, version); err != nil {
			return nil, err
		}
	}
	for i := range impDim {
		if err := r.read("implicit dimension", &impDim[i]); err != nil {
			return nil, err
		}
		if err := d.skipUserView(r, version); err != nil {
			return nil, err
		}
	}
	var bases [2]timeBase
	for i := range bases {
		if err := r.read("time base info", &bases[i]); err != nil {
			return nil, err
		}
	}
	var update updateSpec
	if err := r.read("update specification", &update); err != nil {
		return nil, err
	}
	var curve curveInfo
	if err := r.read("curve information", &curve); err != nil {
		return nil, err
	}

	// Fast frame records follow the first update/curve pair.
	frames := int(header.FastFramesAcquired)
	if need := frames * (updateSpecSize + curveInfoSize); need > r.remaining() {
		return nil, fmt.Errorf("%w: %d fast frames need %d bytes, only %d remain",
			ErrTruncatedInput, frames, need, r.remaining())
	}
	for i := 0; i < frames; i++ {
		var frameUpdate updateSpec
		if err := r.read("fast frame update specification", &frameUpdate); err != nil {
			return nil, err
		}
	}
	for i := 0; i < frames; i++ {
		var frameCurve curveInfo
		if err := r.read("fast frame curve information", &frameCurve); err != nil {
			return nil, err
		}
	}

	bpp := uint32(info.BytesPerPoint)
	if curve.PrechargeStart > curve.DataStart ||
		curve.DataStart > curve.PostchargeStart ||
		curve.PostchargeStart > curve.PostchargeStop {
		return nil, fmt.Errorf("%w: curve offsets %d/%d/%d/%d are not monotonic",
			ErrMalformedHeader, curve.PrechargeStart, curve.DataStart,
			curve.PostchargeStart, curve.PostchargeStop)
	}
	if curve.DataStart%bpp != 0 || curve.PostchargeStart%bpp != 0 || curve.PostchargeStop%bpp != 0 {
		return nil, fmt.Errorf("%w: curve offsets are not multiples of the %d-byte element size",
			ErrMalformedHeader, bpp)
	}

	curveBytes, err := r.bytes("curve buffer", int(curve.PostchargeStop))
	if err != nil {
		return nil, err
	}
	dataBytes := curveBytes[curve.DataStart:curve.PostchargeStart]

	sampleType, ok := curveFormatToSampleType(expDim[0].Format)
	if !ok {
		return nil, fmt.Errorf("%w: curve format code %d has no sample type",
			ErrMalformedHeader, expDim[0].Format)
	}
	if sampleType.Size() != int(info.BytesPerPoint) {
		return nil, fmt.Errorf("%w: curve format %s disagrees with declared element size %d",
			ErrMalformedHeader, sampleType, info.BytesPerPoint)
	}

	checksumOffset := r.off
	if r.remaining() >= 8 {
		var declared uint64
		if err := r.read("file checksum", &declared); err != nil {
			return nil, err
		}
		if computed := byteSum(data[:checksumOffset]); computed != declared {
			return nil, fmt.Errorf("%w: checksum mismatch, file declares %d, bytes sum to %d",
				ErrMalformedHeader, declared, computed)
		}
	} else if d.Warn != nil {
		d.Warn("file ends before the checksum field; integrity not verified")
	}

	entries := map[string]any{}
	if idx := bytes.Index(data[r.off:], []byte(tekMetaMarker)); idx >= 0 {
		entries, err = parseTekMeta(data[r.off+idx:], order)
		if err != nil {
			return nil, fmt.Errorf("metadata postamble: %w", err)
		}
	}

	var raw *waveform.RawSamples
	if order == binary.ByteOrder(binary.BigEndian) {
		raw = &waveform.RawSamples{Type: sampleType, Data: swapToLittleEndian(dataBytes, sampleType.Size())}
	} else {
		buf := make([]byte, len(dataBytes))
		copy(buf, dataBytes)
		raw = &waveform.RawSamples{Type: sampleType, Data: buf}
	}

	if total := int(curve.PostchargeStop / bpp); impDim[0].Size != 0 && int(impDim[0].Size) != total && d.Warn != nil {
		d.Warn(fmt.Sprintf("implicit dimension declares %d points, curve buffer holds %d",
			impDim[0].Size, total))
	}

	interval := impDim[0].Scale
	var trigger float64
	if interval != 0 {
		trigger = -impDim[0].Offset / interval
	}
	xUnits := trimString(impDim[0].Units[:])
	yUnits := trimString(expDim[0].Units[:])
	label := trimString(info.Label[:])

	switch header.DataType {
	case dataDigital:
		w := &waveform.DigitalWaveform{
			Samples:        raw,
			SampleInterval: interval,
			XUnits:         xUnits,
			TriggerIndex:   trigger,
			YUnits:         yUnits,
		}
		populateBag(w.Meta.Set, &w.Meta.MetaInfo, entries, d.Warn)
		if w.Meta.Label == "" {
			w.Meta.Label = label
		}
		return w, nil
	case dataVector:
		if hasIQKeys(entries) {
			w := &waveform.IQWaveform{
				Samples:        raw,
				SampleInterval: interval,
				XUnits:         xUnits,
				TriggerIndex:   trigger,
				Scale:          expDim[0].Scale,
				Offset:         expDim[0].Offset,
				YUnits:         yUnits,
			}
			populateBag(w.Meta.Set, &w.Meta.MetaInfo, entries, d.Warn)
			if w.Meta.Label == "" {
				w.Meta.Label = label
			}
			w.Position = w.Meta.YPosition
			return w, nil
		}
		w := &waveform.AnalogWaveform{
			Samples:        raw,
			SampleInterval: interval,
			XUnits:         xUnits,
			TriggerIndex:   trigger,
			Scale:          expDim[0].Scale,
			Offset:         expDim[0].Offset,
			YUnits:         yUnits,
		}
		populateBag(w.Meta.Set, &w.Meta.MetaInfo, entries, d.Warn)
		if w.Meta.Label == "" {
			w.Meta.Label = label
		}
		w.Position = w.Meta.YPosition
		return w, nil
	default:
		return nil, fmt.Errorf("%w: header data type code %d has no decode path",
			ErrUnsupportedShape, header.DataType)
	}
}

func (d Decoder) skipUserView(r *sectionReader, version Version) error {
	if version == Version3 {
		var view userViewV3
		return r.read("dimension user view", &view)
	}
	var view userViewV12
	return r.read("dimension user view", &view)
}

func hasIQKeys(entries map[string]any) bool {
	for _, key := range iqMetaKeys {
		if _, ok := entries[key]; ok {
			return true
		}
	}
	return false
}
