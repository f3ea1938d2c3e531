// SPDX-License-Identifier: Apache-2.0

package wfm

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/tektronix/tm-data-types/waveform"
)

// Version is the WFM format version string stored at offset 2.
type Version string

const (
	Version1 Version = ":WFM#001"
	Version2 Version = ":WFM#002"
	Version3 Version = ":WFM#003"
)

func (v Version) valid() bool {
	return v == Version1 || v == Version2 || v == Version3
}

// hasSummaryFrame reports whether the layout includes the 2-byte summary
// frame type between the header and the pixel map.
func (v Version) hasSummaryFrame() bool { return v != Version1 }

// Byte order verification markers.
var (
	markerIntel = [2]byte{0xF0, 0xF0} // little endian
	markerPPC   = [2]byte{0x0F, 0x0F} // big endian
)

const (
	preambleSize   = 10 // marker + version
	bytesToEOFBase = 15 // offset of the first byte after the bytes-till-EOF field
	tekMetaMarker  = "tekmeta!"
)

// Curve buffer element format codes (explicit dimension format field).
const (
	curveInt16 int32 = iota
	curveInt32
	curveUint32
	curveUint64
	curveFloat32
	curveFloat64
	curveUint8
	curveInt8
	curveInvalid
	curveNoDimension
)

// Waveform header data type codes.
const (
	dataScalarMeas  int32 = 0
	dataScalarConst int32 = 1
	dataVector      int32 = 2
	dataPixMap      int32 = 3
	dataInvalid     int32 = 4
	dataWfmDB       int32 = 5
	dataDigital     int32 = 6
)

// Explicit dimension storage type codes.
const (
	storageSample  int32 = 0
	storageMinMax  int32 = 1
	storageInvalid int32 = 6
)

// Time base codes.
const (
	sweepSample  int32 = 1
	sweepInvalid int32 = 3
	baseTime     int32 = 0
	baseInvalid  int32 = 3
)

func curveFormatToSampleType(code int32) (waveform.SampleType, bool) {
	switch code {
	case curveInt16:
		return waveform.Int16, true
	case curveInt32:
		return waveform.Int32, true
	case curveUint32:
		return waveform.Uint32, true
	case curveUint64:
		return waveform.Uint64, true
	case curveFloat32:
		return waveform.Float32, true
	case curveFloat64:
		return waveform.Float64, true
	case curveUint8:
		return waveform.Uint8, true
	case curveInt8:
		return waveform.Int8, true
	}
	return 0, false
}

func sampleTypeToCurveFormat(t waveform.SampleType) (int32, bool) {
	switch t {
	case waveform.Int16:
		return curveInt16, true
	case waveform.Int32:
		return curveInt32, true
	case waveform.Uint32:
		return curveUint32, true
	case waveform.Uint64:
		return curveUint64, true
	case waveform.Float32:
		return curveFloat32, true
	case waveform.Float64:
		return curveFloat64, true
	case waveform.Uint8:
		return curveUint8, true
	case waveform.Int8:
		return curveInt8, true
	}
	return curveInvalid, false
}

// fileInfo is the static file info section directly after the preamble.
type fileInfo struct {
	DigitsInByteCount uint8
	BytesToEOF        uint32
	BytesPerPoint     uint8
	CurveByteOffset   int32
	HZoomScale        int32
	HZoomPosition     float32
	VZoomScale        float64
	VZoomPosition     float32
	Label             [32]byte
	FrameCount        uint32
	HeaderSize        uint16
}

// wfmHeader is the waveform set header.
type wfmHeader struct {
	WaveformType       int32
	WfmCount           uint32
	AcquisitionCounter uint64
	TransactionStamp   uint64
	SlotID             int32
	IsStatic           int32
	UpdateSpecCount    uint32
	ImpDimRefCount     uint32
	ExpDimRefCount     uint32
	DataType           int32
	GenPurposeCounter  uint64
	AccumulatedCount   uint32
	TargetAccumulation uint32
	CurveRefCount      uint32
	FastFramesRequest  uint32
	FastFramesAcquired uint32
}

type pixMap struct {
	DisplayFormat int32
	MaxValue      uint64
}

// explicitDimension describes the sampled quantity, usually voltage.
type explicitDimension struct {
	Scale          float64
	Offset         float64
	Size           uint32
	Units          [20]byte
	ExtentMin      float64
	ExtentMax      float64
	Resolution     float64
	ReferencePoint float64
	Format         int32
	StorageType    int32
	NullValue      int32
	OverRange      int32
	UnderRange     int32
	HighRange      int32
	LowRange       int32
}

// implicitDimension describes the implied axis, usually time. Offset holds
// the trigger position as a negative time from the first sample.
type implicitDimension struct {
	Scale          float64
	Offset         float64
	Size           uint32
	Units          [20]byte
	ExtentMin      float64
	ExtentMax      float64
	Resolution     float64
	ReferencePoint float64
	PointSpacing   uint32
}

// userViewV3 relates raw data to the on-screen view. Version 3 stores the
// point density as a double.
type userViewV3 struct {
	Scale         float64
	Units         [20]byte
	Offset        float64
	PointDensity  float64
	HorizontalRef float64
	TriggerDelay  float64
}

// userViewV12 is the version 1/2 layout with an integer point density.
type userViewV12 struct {
	Scale         float64
	Units         [20]byte
	Offset        float64
	PointDensity  uint32
	HorizontalRef float64
	TriggerDelay  float64
}

type timeBase struct {
	PointSpacing uint32
	Sweep        int32
	BaseType     int32
}

type updateSpec struct {
	RealPointOffset   uint32
	TriggerTimeOffset float64
	FractionalSecond  float64
	GMTSecond         int32
}

type curveInfo struct {
	StateFlags      uint32
	ChecksumType    int32
	Checksum        int16
	PrechargeStart  uint32
	DataStart       uint32
	PostchargeStart uint32
	PostchargeStop  uint32
	EndOfCurve      uint32
}

// Section sizes, fixed by the published layout.
var (
	fileInfoSize    = binary.Size(fileInfo{})          // 68
	wfmHeaderSize   = binary.Size(wfmHeader{})         // 76
	pixMapSize      = binary.Size(pixMap{})            // 12
	expDimSize      = binary.Size(explicitDimension{}) // 100
	impDimSize      = binary.Size(implicitDimension{}) // 76
	userViewV3Size  = binary.Size(userViewV3{})        // 60
	userViewV12Size = binary.Size(userViewV12{})       // 56
	timeBaseSize    = binary.Size(timeBase{})          // 12
	updateSpecSize  = binary.Size(updateSpec{})        // 24
	curveInfoSize   = binary.Size(curveInfo{})         // 30
)

func userViewSize(v Version) int {
	if v == Version3 {
		return userViewV3Size
	}
	return userViewV12Size
}

// curveBufferOffset returns the byte offset of the curve buffer for a file
// with no fast frames.
func curveBufferOffset(v Version) int {
	off := preambleSize + fileInfoSize + wfmHeaderSize
	if v.hasSummaryFrame() {
		off += 2
	}
	off += pixMapSize
	off += 2 * (expDimSize + userViewSize(v))
	off += 2 * (impDimSize + userViewSize(v))
	off += 2 * timeBaseSize
	off += updateSpecSize
	off += curveInfoSize
	return off
}

// sectionReader walks a byte image section by section, attaching the section
// name and byte offset to every failure.
type sectionReader struct {
	buf   []byte
	off   int
	order binary.ByteOrder
}

func (r *sectionReader) read(section string, v any) error {
	size := binary.Size(v)
	if r.off+size > len(r.buf) {
		return fmt.Errorf("%w: %s needs %d bytes at offset %d, only %d remain",
			ErrTruncatedInput, section, size, r.off, len(r.buf)-r.off)
	}
	if err := binary.Read(bytes.NewReader(r.buf[r.off:r.off+size]), r.order, v); err != nil {
		return fmt.Errorf("%s at offset %d: %w", section, r.off, err)
	}
	r.off += size
	return nil
}

func (r *sectionReader) bytes(section string, n int) ([]byte, error) {
	if r.off+n > len(r.buf) {
		return nil, fmt.Errorf("%w: %s needs %d bytes at offset %d, only %d remain",
			ErrTruncatedInput, section, n, r.off, len(r.buf)-r.off)
	}
	out := r.buf[r.off : r.off+n]
	r.off += n
	return out, nil
}

func (r *sectionReader) remaining() int { return len(r.buf) - r.off }

// putString copies s into a fixed null-padded field, truncating if needed.
func putString(dst []byte, s string) {
	for i := range dst {
		dst[i] = 0
	}
	copy(dst, s)
}

func trimString(src []byte) string {
	return string(bytes.TrimRight(src, "\x00"))
}

// byteSum is the file checksum: the plain sum of every byte value.
func byteSum(buf []byte) uint64 {
	var sum uint64
	for _, b := range buf {
		sum += uint64(b)
	}
	return sum
}

// swapToLittleEndian reorders big-endian curve bytes in place-copy so the
// in-memory RawSamples representation is always little endian.
func swapToLittleEndian(data []byte, width int) []byte {
	if width <= 1 {
		out := make([]byte, len(data))
		copy(out, data)
		return out
	}
	out := make([]byte, len(data))
	for i := 0; i+width <= len(data); i += width {
		for j := 0; j < width; j++ {
			out[i+j] = data[i+width-1-j]
		}
	}
	return out
}
