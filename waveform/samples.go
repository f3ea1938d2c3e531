// SPDX-License-Identifier: Apache-2.0

package waveform

import (
	"encoding/binary"
	"fmt"
	"math"
)

// SampleType identifies the element type of raw digitized sample codes.
type SampleType int

const (
	Int8 SampleType = iota
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Uint64
	Float32
	Float64
)

var sampleTypeNames = map[SampleType]string{
	Int8:    "int8",
	Uint8:   "uint8",
	Int16:   "int16",
	Uint16:  "uint16",
	Int32:   "int32",
	Uint32:  "uint32",
	Uint64:  "uint64",
	Float32: "float32",
	Float64: "float64",
}

func (t SampleType) String() string {
	if name, ok := sampleTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("SampleType(%d)", int(t))
}

// Size returns the width of one sample code in bytes.
func (t SampleType) Size() int {
	switch t {
	case Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Uint64, Float64:
		return 8
	}
	return 0
}

// Signed reports whether the type can hold negative codes.
func (t SampleType) Signed() bool {
	switch t {
	case Int8, Int16, Int32, Float32, Float64:
		return true
	}
	return false
}

// Integer reports whether the type holds integer codes.
func (t SampleType) Integer() bool {
	return t != Float32 && t != Float64
}

// MinValue returns the smallest representable code as a float64.
func (t SampleType) MinValue() float64 {
	switch t {
	case Int8:
		return math.MinInt8
	case Int16:
		return math.MinInt16
	case Int32:
		return math.MinInt32
	case Float32:
		return -math.MaxFloat32
	case Float64:
		return -math.MaxFloat64
	}
	return 0
}

// MaxValue returns the largest representable code as a float64.
func (t SampleType) MaxValue() float64 {
	switch t {
	case Int8:
		return math.MaxInt8
	case Uint8:
		return math.MaxUint8
	case Int16:
		return math.MaxInt16
	case Uint16:
		return math.MaxUint16
	case Int32:
		return math.MaxInt32
	case Uint32:
		return math.MaxUint32
	case Uint64:
		return math.MaxUint64
	case Float32:
		return math.MaxFloat32
	case Float64:
		return math.MaxFloat64
	}
	return 0
}

// Samples is the sample container of a waveform. Exactly one of the two
// implementations, RawSamples or NormalizedSamples, is active per waveform.
type Samples interface {
	// Len returns the number of sample elements.
	Len() int
}

// RawSamples holds digitized sample codes packed little-endian, exactly as
// the WFM curve buffer stores them.
type RawSamples struct {
	Type SampleType
	Data []byte
}

// NewRawSamples allocates a zeroed raw container for n codes of type t.
func NewRawSamples(t SampleType, n int) *RawSamples {
	return &RawSamples{Type: t, Data: make([]byte, n*t.Size())}
}

// RawFromInt16 packs int16 codes into a raw container.
func RawFromInt16(codes []int16) *RawSamples {
	raw := NewRawSamples(Int16, len(codes))
	for i, c := range codes {
		binary.LittleEndian.PutUint16(raw.Data[2*i:], uint16(c))
	}
	return raw
}

// RawFromInt8 packs int8 codes into a raw container.
func RawFromInt8(codes []int8) *RawSamples {
	raw := NewRawSamples(Int8, len(codes))
	for i, c := range codes {
		raw.Data[i] = byte(c)
	}
	return raw
}

func (r *RawSamples) Len() int {
	size := r.Type.Size()
	if size == 0 {
		return 0
	}
	return len(r.Data) / size
}

// Code returns sample i as a float64. Integer codes up to 53 bits convert
// exactly; uint64 codes above 2^53 lose low-order bits.
func (r *RawSamples) Code(i int) float64 {
	switch r.Type {
	case Int8:
		return float64(int8(r.Data[i]))
	case Uint8:
		return float64(r.Data[i])
	case Int16:
		return float64(int16(binary.LittleEndian.Uint16(r.Data[2*i:])))
	case Uint16:
		return float64(binary.LittleEndian.Uint16(r.Data[2*i:]))
	case Int32:
		return float64(int32(binary.LittleEndian.Uint32(r.Data[4*i:])))
	case Uint32:
		return float64(binary.LittleEndian.Uint32(r.Data[4*i:]))
	case Uint64:
		return float64(binary.LittleEndian.Uint64(r.Data[8*i:]))
	case Float32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(r.Data[4*i:])))
	case Float64:
		return math.Float64frombits(binary.LittleEndian.Uint64(r.Data[8*i:]))
	}
	return 0
}

// SetCode stores v as sample i. v must already be rounded and in range for
// integer types; SetCode truncates, it does not saturate.
func (r *RawSamples) SetCode(i int, v float64) {
	switch r.Type {
	case Int8:
		r.Data[i] = byte(int8(v))
	case Uint8:
		r.Data[i] = byte(uint8(v))
	case Int16:
		binary.LittleEndian.PutUint16(r.Data[2*i:], uint16(int16(v)))
	case Uint16:
		binary.LittleEndian.PutUint16(r.Data[2*i:], uint16(v))
	case Int32:
		binary.LittleEndian.PutUint32(r.Data[4*i:], uint32(int32(v)))
	case Uint32:
		binary.LittleEndian.PutUint32(r.Data[4*i:], uint32(v))
	case Uint64:
		// float64(MaxUint64) rounds up to 2^64, one past the largest code,
		// and converting that back to uint64 is out of range.
		if v >= float64(math.MaxUint64) {
			binary.LittleEndian.PutUint64(r.Data[8*i:], math.MaxUint64)
			return
		}
		binary.LittleEndian.PutUint64(r.Data[8*i:], uint64(v))
	case Float32:
		binary.LittleEndian.PutUint32(r.Data[4*i:], math.Float32bits(float32(v)))
	case Float64:
		binary.LittleEndian.PutUint64(r.Data[8*i:], math.Float64bits(v))
	}
}

// Int16s unpacks the codes of an Int16 container.
func (r *RawSamples) Int16s() ([]int16, error) {
	if r.Type != Int16 {
		return nil, fmt.Errorf("%w: samples are %s, not int16", ErrIncompatibleRepresentation, r.Type)
	}
	out := make([]int16, r.Len())
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(r.Data[2*i:]))
	}
	return out, nil
}

// Int8s unpacks the codes of an Int8 container.
func (r *RawSamples) Int8s() ([]int8, error) {
	if r.Type != Int8 {
		return nil, fmt.Errorf("%w: samples are %s, not int8", ErrIncompatibleRepresentation, r.Type)
	}
	out := make([]int8, len(r.Data))
	for i, b := range r.Data {
		out[i] = int8(b)
	}
	return out, nil
}

// Clone returns a deep copy of the container.
func (r *RawSamples) Clone() *RawSamples {
	data := make([]byte, len(r.Data))
	copy(data, r.Data)
	return &RawSamples{Type: r.Type, Data: data}
}

// NormalizedSamples holds physically scaled sample values.
type NormalizedSamples []float64

func (n NormalizedSamples) Len() int { return len(n) }
