// SPDX-License-Identifier: Apache-2.0

package waveform

import "fmt"

// Shape is the waveform subtype. It is a closed enum; codecs switch over it
// exhaustively instead of looking behavior up at runtime.
type Shape int

const (
	ShapeAnalog Shape = iota
	ShapeDigital
	ShapeIQ
)

func (s Shape) String() string {
	switch s {
	case ShapeAnalog:
		return "analog"
	case ShapeDigital:
		return "digital"
	case ShapeIQ:
		return "iq"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// Waveform is implemented by the three shape structs. Codecs own a decoded
// waveform only until Decode returns; after that the caller owns it for its
// full lifetime.
type Waveform interface {
	// Shape returns the waveform subtype.
	Shape() Shape
	// RecordLength returns the number of samples in the record. A zero
	// length record is legal.
	RecordLength() int
	// MetaBag returns the shared base of the shape's metadata bag.
	MetaBag() *MetaInfo
}

// AnalogWaveform is a single channel of scaled samples.
type AnalogWaveform struct {
	// Samples holds the record in exactly one representation.
	Samples Samples
	// SampleInterval is the horizontal spacing between samples in seconds.
	// Must be > 0 for a valid record.
	SampleInterval float64
	// XUnits names the horizontal unit, normally "s".
	XUnits string
	// TriggerIndex is the trigger position within the record. The
	// fractional part places the trigger between samples.
	TriggerIndex float64

	// Scale, Offset and Position define the Raw<->Normalized affine
	// transform for this channel. Required whenever Samples is raw.
	Scale    float64
	Offset   float64
	Position float64
	// YUnits names the vertical unit, normally "V".
	YUnits string

	Meta AnalogMetaInfo
}

func (w *AnalogWaveform) Shape() Shape { return ShapeAnalog }

func (w *AnalogWaveform) RecordLength() int {
	if w.Samples == nil {
		return 0
	}
	return w.Samples.Len()
}

func (w *AnalogWaveform) MetaBag() *MetaInfo { return &w.Meta.MetaInfo }

// Normalized returns the record as physical values, applying the channel
// transform when the samples are raw. Raw samples are left untouched.
func (w *AnalogWaveform) Normalized() (NormalizedSamples, error) {
	switch s := w.Samples.(type) {
	case NormalizedSamples:
		return s, nil
	case *RawSamples:
		return RawToNormalized(s, w.Scale, w.Offset, w.Position)
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("%w: unknown sample container %T", ErrIncompatibleRepresentation, w.Samples)
}

// Digitize returns the record as raw codes of type t, quantizing normalized
// values through the channel transform. Raw samples of the requested type
// are returned as-is (the fast path).
func (w *AnalogWaveform) Digitize(t SampleType) (*RawSamples, error) {
	switch s := w.Samples.(type) {
	case *RawSamples:
		if s.Type == t {
			return s, nil
		}
		return ConvertRaw(s, t)
	case NormalizedSamples:
		return NormalizedToRaw(s, w.Scale, w.Offset, w.Position, t)
	case nil:
		return NewRawSamples(t, 0), nil
	}
	return nil, fmt.Errorf("%w: unknown sample container %T", ErrIncompatibleRepresentation, w.Samples)
}

// DigitalWaveform is a record of logic-level bitstreams. Each raw int8 code
// packs up to eight parallel bitstream bits for one sample instant; there is
// no continuous vertical scale.
type DigitalWaveform struct {
	Samples        Samples
	SampleInterval float64
	XUnits         string
	TriggerIndex   float64
	// YUnits is normally empty for logic data.
	YUnits string

	Meta DigitalMetaInfo
}

func (w *DigitalWaveform) Shape() Shape { return ShapeDigital }

func (w *DigitalWaveform) RecordLength() int {
	if w.Samples == nil {
		return 0
	}
	return w.Samples.Len()
}

func (w *DigitalWaveform) MetaBag() *MetaInfo { return &w.Meta.MetaInfo }

// Bitstream extracts bit n (0..7) of every sample as a 0/1 slice.
func (w *DigitalWaveform) Bitstream(n int) ([]uint8, error) {
	if n < 0 || n > 7 {
		return nil, fmt.Errorf("%w: bitstream index %d out of range", ErrInvalidParameter, n)
	}
	raw, ok := w.Samples.(*RawSamples)
	if !ok {
		return nil, fmt.Errorf("%w: digital records hold raw codes only", ErrIncompatibleRepresentation)
	}
	out := make([]uint8, len(raw.Data))
	for i, b := range raw.Data {
		out[i] = (b >> uint(n)) & 1
	}
	return out, nil
}

// IQWaveform is a record of interleaved in-phase/quadrature pairs sharing one
// vertical transform.
type IQWaveform struct {
	// Samples holds interleaved I,Q elements; RecordLength counts elements,
	// PairCount counts I/Q pairs.
	Samples        Samples
	SampleInterval float64
	XUnits         string
	TriggerIndex   float64

	Scale    float64
	Offset   float64
	Position float64
	YUnits   string

	Meta IQMetaInfo
}

func (w *IQWaveform) Shape() Shape { return ShapeIQ }

func (w *IQWaveform) RecordLength() int {
	if w.Samples == nil {
		return 0
	}
	return w.Samples.Len()
}

func (w *IQWaveform) MetaBag() *MetaInfo { return &w.Meta.MetaInfo }

// PairCount returns the number of complete I/Q pairs in the record.
func (w *IQWaveform) PairCount() int { return w.RecordLength() / 2 }

// Normalized returns the interleaved record as physical values.
func (w *IQWaveform) Normalized() (NormalizedSamples, error) {
	switch s := w.Samples.(type) {
	case NormalizedSamples:
		return s, nil
	case *RawSamples:
		return RawToNormalized(s, w.Scale, w.Offset, w.Position)
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("%w: unknown sample container %T", ErrIncompatibleRepresentation, w.Samples)
}

// Digitize returns the interleaved record as raw codes of type t.
func (w *IQWaveform) Digitize(t SampleType) (*RawSamples, error) {
	switch s := w.Samples.(type) {
	case *RawSamples:
		if s.Type == t {
			return s, nil
		}
		return ConvertRaw(s, t)
	case NormalizedSamples:
		return NormalizedToRaw(s, w.Scale, w.Offset, w.Position, t)
	case nil:
		return NewRawSamples(t, 0), nil
	}
	return nil, fmt.Errorf("%w: unknown sample container %T", ErrIncompatibleRepresentation, w.Samples)
}
