// SPDX-License-Identifier: Apache-2.0

package wfm

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"

	"github.com/tektronix/tm-data-types/waveform"
)

// Encoder writes waveform objects as WFM byte streams.
//
// The zero value writes little-endian version 3 files, the layout current
// instruments produce.
type Encoder struct {
	// ByteOrder selects the byte order marker and payload ordering. Nil
	// means little endian.
	ByteOrder binary.ByteOrder
	// Version selects the layout revision. Empty means Version3.
	Version Version
	// Strict makes unplaceable extension metadata an error instead of a
	// dropped field.
	Strict bool
	// Warn receives non-fatal diagnostics. Nil discards them.
	Warn func(msg string)
}

// Encode writes wf to w as a complete WFM image.
func (e Encoder) Encode(w io.Writer, wf waveform.Waveform) error {
	data, err := e.EncodeBytes(wf)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing wfm output: %w", err)
	}
	return nil
}

// EncodeBytes encodes wf into a freshly allocated WFM image.
func (e Encoder) EncodeBytes(wf waveform.Waveform) ([]byte, error) {
	order := e.ByteOrder
	if order == nil {
		order = binary.LittleEndian
	}
	version := e.Version
	if version == "" {
		version = Version3
	}
	if !version.valid() {
		return nil, fmt.Errorf("%w: unknown version %q", ErrMalformedHeader, string(version))
	}

	plan, err := e.plan(wf)
	if err != nil {
		return nil, err
	}

	format, ok := sampleTypeToCurveFormat(plan.raw.Type)
	if !ok {
		return nil, fmt.Errorf("%w: no curve format for sample type %s",
			waveform.ErrIncompatibleRepresentation, plan.raw.Type)
	}
	elemSize := plan.raw.Type.Size()
	points := plan.raw.Len()
	curveBytes := points * elemSize
	curveOff := curveBufferOffset(version)

	buf := &bytes.Buffer{}
	buf.Grow(curveOff + curveBytes + 8)

	if order == binary.ByteOrder(binary.BigEndian) {
		buf.Write(markerPPC[:])
	} else {
		buf.Write(markerIntel[:])
	}
	buf.WriteString(string(version))

	bytesToEOF := uint32(curveOff + curveBytes + 8 - bytesToEOFBase)
	info := fileInfo{
		DigitsInByteCount: uint8(len(strconv.Itoa(int(bytesToEOF)))),
		BytesToEOF:        bytesToEOF,
		BytesPerPoint:     uint8(elemSize),
		CurveByteOffset:   int32(curveOff),
		HZoomScale:        1,
		VZoomScale:        1,
		FrameCount:        0,
	}
	putString(info.Label[:], plan.label)
	if version == Version1 {
		info.HeaderSize = uint16(wfmHeaderSize + pixMapSize)
	} else {
		info.HeaderSize = uint16(wfmHeaderSize + 2 + pixMapSize)
	}
	writeBin(buf, order, info)

	writeBin(buf, order, wfmHeader{
		WaveformType:       2,
		WfmCount:           1,
		SlotID:             5,
		UpdateSpecCount:    1,
		ImpDimRefCount:     1,
		ExpDimRefCount:     1,
		DataType:           plan.dataType,
		AccumulatedCount:   1,
		TargetAccumulation: 1,
		CurveRefCount:      1,
	})
	if version.hasSummaryFrame() {
		writeBin(buf, order, uint16(0))
	}
	writeBin(buf, order, pixMap{})

	expFirst := explicitDimension{
		Scale:       plan.scale,
		Offset:      plan.offset,
		Size:        uint32(points),
		Format:      format,
		StorageType: plan.storage,
	}
	putString(expFirst.Units[:], plan.yUnits)
	expSecond := explicitDimension{Format: curveNoDimension, StorageType: storageInvalid}
	for _, dim := range []explicitDimension{expFirst, expSecond} {
		writeBin(buf, order, dim)
		e.writeUserView(buf, order, version, dim.Units)
	}

	impFirst := implicitDimension{
		Scale:  plan.interval,
		Offset: -plan.trigger * plan.interval,
		Size:   uint32(points),
	}
	putString(impFirst.Units[:], plan.xUnits)
	for _, dim := range []implicitDimension{impFirst, {}} {
		writeBin(buf, order, dim)
		e.writeUserView(buf, order, version, dim.Units)
	}

	writeBin(buf, order, timeBase{PointSpacing: 1, Sweep: sweepSample, BaseType: baseTime})
	writeBin(buf, order, timeBase{Sweep: sweepInvalid, BaseType: baseInvalid})
	writeBin(buf, order, updateSpec{TriggerTimeOffset: 0.5})
	writeBin(buf, order, curveInfo{
		StateFlags:      81,
		PostchargeStart: uint32(curveBytes),
		PostchargeStop:  uint32(curveBytes),
		EndOfCurve:      uint32(curveBytes),
	})

	if buf.Len() != curveOff {
		return nil, fmt.Errorf("%w: header section sizes sum to %d, layout expects %d",
			ErrMalformedHeader, buf.Len(), curveOff)
	}

	if order == binary.ByteOrder(binary.BigEndian) {
		buf.Write(swapToLittleEndian(plan.raw.Data, elemSize))
	} else {
		buf.Write(plan.raw.Data)
	}

	writeBin(buf, order, byteSum(buf.Bytes()))

	entries := appendExtended(plan.entries, plan.bag, e.Warn)
	if err := appendTekMeta(buf, order, entries, e.Strict, e.Warn); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodePlan is everything shape-specific the section writer needs.
type encodePlan struct {
	raw      *waveform.RawSamples
	dataType int32
	storage  int32
	scale    float64
	offset   float64
	interval float64
	trigger  float64
	xUnits   string
	yUnits   string
	label    string
	entries  []metaEntry
	bag      *waveform.MetaInfo
}

func (e Encoder) plan(wf waveform.Waveform) (*encodePlan, error) {
	switch w := wf.(type) {
	case *waveform.AnalogWaveform:
		raw, scale, offset, err := digitizeScaled(w.Samples, w.Scale, w.Offset, w.Position)
		if err != nil {
			return nil, err
		}
		meta := w.Meta
		meta.YPosition = w.Position
		return &encodePlan{
			raw:      raw,
			dataType: dataVector,
			storage:  storageSample,
			scale:    scale,
			offset:   offset,
			interval: w.SampleInterval,
			trigger:  w.TriggerIndex,
			xUnits:   w.XUnits,
			yUnits:   w.YUnits,
			label:    w.Meta.Label,
			entries:  analogEntries(&meta),
			bag:      &w.Meta.MetaInfo,
		}, nil
	case *waveform.DigitalWaveform:
		raw, err := digitalRaw(w.Samples)
		if err != nil {
			return nil, err
		}
		return &encodePlan{
			raw:      raw,
			dataType: dataDigital,
			storage:  storageSample,
			scale:    1,
			interval: w.SampleInterval,
			trigger:  w.TriggerIndex,
			xUnits:   w.XUnits,
			yUnits:   w.YUnits,
			label:    w.Meta.Label,
			entries:  digitalEntries(&w.Meta),
			bag:      &w.Meta.MetaInfo,
		}, nil
	case *waveform.IQWaveform:
		raw, scale, offset, err := digitizeScaled(w.Samples, w.Scale, w.Offset, w.Position)
		if err != nil {
			return nil, err
		}
		meta := w.Meta
		meta.YPosition = w.Position
		return &encodePlan{
			raw:      raw,
			dataType: dataVector,
			storage:  storageMinMax,
			scale:    scale,
			offset:   offset,
			interval: w.SampleInterval,
			trigger:  w.TriggerIndex,
			xUnits:   w.XUnits,
			yUnits:   w.YUnits,
			label:    w.Meta.Label,
			entries:  iqEntries(&meta),
			bag:      &w.Meta.MetaInfo,
		}, nil
	}
	return nil, fmt.Errorf("%w: cannot encode %T", ErrUnsupportedShape, wf)
}

// digitizeScaled produces the raw curve for a scaled shape. Raw containers
// pass through untouched; normalized values are quantized to int16 through
// the record's own transform, which must be populated.
func digitizeScaled(s waveform.Samples, scale, offset, position float64) (*waveform.RawSamples, float64, float64, error) {
	switch v := s.(type) {
	case *waveform.RawSamples:
		return v, scale, offset, nil
	case waveform.NormalizedSamples:
		raw, err := waveform.NormalizedToRaw(v, scale, offset, position, waveform.Int16)
		if err != nil {
			return nil, 0, 0, err
		}
		return raw, scale, offset, nil
	case nil:
		return waveform.NewRawSamples(waveform.Int16, 0), scale, offset, nil
	}
	return nil, 0, 0, fmt.Errorf("%w: unknown sample container %T", ErrUnsupportedShape, s)
}

// digitalRaw validates and packs the logic record. Digital records carry
// packed bit codes, so a normalized representation has no meaning here.
func digitalRaw(s waveform.Samples) (*waveform.RawSamples, error) {
	switch v := s.(type) {
	case *waveform.RawSamples:
		if v.Type == waveform.Int8 || v.Type == waveform.Uint8 {
			return v, nil
		}
		return waveform.ConvertRaw(v, waveform.Int8)
	case waveform.NormalizedSamples:
		return nil, fmt.Errorf("%w: digital records hold raw codes only", waveform.ErrIncompatibleRepresentation)
	case nil:
		return waveform.NewRawSamples(waveform.Int8, 0), nil
	}
	return nil, fmt.Errorf("%w: unknown sample container %T", ErrUnsupportedShape, s)
}

func (e Encoder) writeUserView(buf *bytes.Buffer, order binary.ByteOrder, version Version, units [20]byte) {
	if version == Version3 {
		view := userViewV3{Scale: 1, PointDensity: 1, HorizontalRef: 50}
		view.Units = units
		writeBin(buf, order, view)
		return
	}
	view := userViewV12{Scale: 1, PointDensity: 1, HorizontalRef: 50}
	view.Units = units
	writeBin(buf, order, view)
}
