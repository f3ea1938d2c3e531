// SPDX-License-Identifier: Apache-2.0

package waveform

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/tektronix/tm-data-types/utils"
)

// RawToNormalized converts digitized codes to physical values using the
// per-channel affine transform
//
//	value = (code - position)*scale + offset
//
// The transform runs element-wise over the whole record with no per-element
// branching. scale must be non-zero.
func RawToNormalized(raw *RawSamples, scale, offset, position float64) (NormalizedSamples, error) {
	if scale == 0 {
		return nil, fmt.Errorf("%w: scale must be non-zero", ErrInvalidParameter)
	}
	out := make(NormalizedSamples, raw.Len())
	for i := range out {
		out[i] = (raw.Code(i)-position)*scale + offset
	}
	return out, nil
}

// NormalizedToRaw is the inverse of RawToNormalized. Each value is mapped to
//
//	code = round((value - offset)/scale + position)
//
// rounded to the nearest representable code of type t and saturated at the
// type's bounds rather than wrapping. Quantization makes this direction lossy
// by up to one code step. scale must be non-zero.
func NormalizedToRaw(values NormalizedSamples, scale, offset, position float64, t SampleType) (*RawSamples, error) {
	if scale == 0 {
		return nil, fmt.Errorf("%w: scale must be non-zero", ErrInvalidParameter)
	}
	raw := NewRawSamples(t, len(values))
	lo, hi := t.MinValue(), t.MaxValue()
	if t.Integer() {
		for i, v := range values {
			raw.SetCode(i, utils.SaturateRound((v-offset)/scale+position, lo, hi))
		}
	} else {
		for i, v := range values {
			raw.SetCode(i, utils.Clamp((v-offset)/scale+position, lo, hi))
		}
	}
	return raw, nil
}

// DeriveTransform picks an int16 channel transform centered on the extent of
// values, so records without an explicit transform still quantize with the
// full code range. Empty or constant records get the identity transform.
func DeriveTransform(values NormalizedSamples) (scale, offset float64) {
	if len(values) == 0 {
		return 1, 0
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	offset = (min + max) / 2
	scale = (max - min) / (Int16.MaxValue() - Int16.MinValue())
	if scale == 0 {
		scale = 1
	}
	return scale, offset
}

// typeRange returns the span of an integer sample type as an exact decimal.
// The uint64 span is not float64-representable, so the spans come from the
// integer bounds rather than from MinValue and MaxValue.
func typeRange(t SampleType) decimal.Decimal {
	switch t {
	case Int8, Uint8:
		return decimal.NewFromInt(math.MaxUint8)
	case Int16, Uint16:
		return decimal.NewFromInt(math.MaxUint16)
	case Int32, Uint32:
		return decimal.NewFromInt(math.MaxUint32)
	case Uint64:
		return decimal.NewFromUint64(math.MaxUint64)
	}
	return decimal.NewFromFloat(t.MaxValue()).Sub(decimal.NewFromFloat(t.MinValue()))
}

// typeRatio returns the ratio between the representable ranges of two sample
// types.
func typeRatio(from, to SampleType) float64 {
	ratio, _ := typeRange(to).Div(typeRange(from)).Float64()
	return ratio
}

// ConvertRaw rescales digitized codes from one integer sample type to
// another, preserving each code's relative position within the type's range.
// Converting to a narrower type loses precision; converting between signed
// and unsigned types shifts the zero point accordingly.
func ConvertRaw(raw *RawSamples, to SampleType) (*RawSamples, error) {
	if raw.Type == to {
		return raw.Clone(), nil
	}
	if !raw.Type.Integer() || !to.Integer() {
		return nil, fmt.Errorf("%w: raw conversion requires integer sample types, got %s to %s",
			ErrInvalidParameter, raw.Type, to)
	}

	ratio := typeRatio(raw.Type, to)
	var shift float64
	switch {
	case raw.Type.Signed() && !to.Signed():
		shift = raw.Type.MinValue() * ratio
	case !raw.Type.Signed() && to.Signed():
		shift = -to.MinValue()
	}

	out := NewRawSamples(to, raw.Len())
	lo, hi := to.MinValue(), to.MaxValue()
	for i := 0; i < raw.Len(); i++ {
		out.SetCode(i, utils.SaturateRound(raw.Code(i)*ratio-shift, lo, hi))
	}
	return out, nil
}
