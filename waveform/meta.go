// SPDX-License-Identifier: Apache-2.0

package waveform

import (
	"fmt"
	"strings"
)

// MetaInfo is the metadata bag shared by every waveform shape. Fields the
// file formats promote to first-class attributes live on the typed structs;
// everything else goes into Extended.
//
// Extended values are restricted to the types the WFM metadata postamble can
// store: string, []byte, int32, uint32 and float64.
type MetaInfo struct {
	// Label is the user-assigned reference waveform label.
	Label string
	// SourceName names the channel the record was acquired from (e.g. "CH1").
	SourceName string
	// Extended holds format-defined and vendor-custom fields that are not
	// modeled as first-class attributes. Keys are never required to be
	// recognized; unknown keys round-trip verbatim.
	Extended map[string]any
}

// SetExtended stores a custom field in the extension bag.
func (m *MetaInfo) SetExtended(key string, value any) {
	if m.Extended == nil {
		m.Extended = make(map[string]any)
	}
	m.Extended[key] = value
}

// CopyExtended returns a copy of the extension bag, so waveform copies never
// share mutable metadata.
func (m *MetaInfo) CopyExtended() map[string]any {
	if m.Extended == nil {
		return nil
	}
	out := make(map[string]any, len(m.Extended))
	for k, v := range m.Extended {
		out[k] = v
	}
	return out
}

func (m *MetaInfo) setBase(name string, value any) (bool, error) {
	switch canonicalName(name) {
	case "waveformlabel", "label":
		s, ok := value.(string)
		if !ok {
			return true, fmt.Errorf("%w: label must be a string, got %T", ErrInvalidParameter, value)
		}
		m.Label = s
	case "sourcename", "source":
		s, ok := value.(string)
		if !ok {
			return true, fmt.Errorf("%w: source name must be a string, got %T", ErrInvalidParameter, value)
		}
		m.SourceName = s
	default:
		return false, nil
	}
	return true, nil
}

// canonicalName lowers a field name and strips separators, so "yOffset",
// "y_offset" and "YOffset" all route to the same slot.
func canonicalName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", ""))
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint32:
		return float64(v), true
	}
	return 0, false
}

func toInt32(value any) (int32, bool) {
	switch v := value.(type) {
	case int32:
		return v, true
	case int:
		return int32(v), true
	case int64:
		return int32(v), true
	case uint32:
		return int32(v), true
	case float64:
		return int32(v), true
	}
	return 0, false
}

// AnalogMetaInfo carries the metadata an analog WFM record stores beside the
// fixed header slots.
type AnalogMetaInfo struct {
	MetaInfo

	// YOffset is the vertical offset in physical units.
	YOffset float64
	// YPosition is the vertical screen position in divisions.
	YPosition float64
	// AnalogThumbnail is an instrument-generated preview blob.
	AnalogThumbnail string
	// ClippingInitialized reports whether clipping detection ran.
	ClippingInitialized int32
	// InterpFactor is the interpolation factor applied to the record.
	InterpFactor int32
	// RealDataStartIndex is the index of the first non-interpolated sample.
	RealDataStartIndex int32
}

// Set assigns a named metadata field, routing it to the matching first-class
// attribute or, for unrecognized names, to the Extended bag. Callers do not
// need to know which kind of field a name is.
func (m *AnalogMetaInfo) Set(name string, value any) error {
	if done, err := m.setBase(name, value); done {
		return err
	}
	switch canonicalName(name) {
	case "yoffset":
		f, ok := toFloat(value)
		if !ok {
			return fmt.Errorf("%w: yOffset must be numeric, got %T", ErrInvalidParameter, value)
		}
		m.YOffset = f
	case "yposition":
		f, ok := toFloat(value)
		if !ok {
			return fmt.Errorf("%w: yPosition must be numeric, got %T", ErrInvalidParameter, value)
		}
		m.YPosition = f
	case "analogthumbnail":
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: thumbnail must be a string, got %T", ErrInvalidParameter, value)
		}
		m.AnalogThumbnail = s
	case "clippinginitialized":
		n, ok := toInt32(value)
		if !ok {
			return fmt.Errorf("%w: clippingInitialized must be an integer, got %T", ErrInvalidParameter, value)
		}
		m.ClippingInitialized = n
	case "interpfactor":
		n, ok := toInt32(value)
		if !ok {
			return fmt.Errorf("%w: interpFactor must be an integer, got %T", ErrInvalidParameter, value)
		}
		m.InterpFactor = n
	case "realdatastartindex":
		n, ok := toInt32(value)
		if !ok {
			return fmt.Errorf("%w: realDataStartIndex must be an integer, got %T", ErrInvalidParameter, value)
		}
		m.RealDataStartIndex = n
	default:
		m.SetExtended(name, value)
	}
	return nil
}

// DigitalMetaInfo carries the metadata of a digital (logic) WFM record.
type DigitalMetaInfo struct {
	MetaInfo

	// ProbeStates holds the per-probe state strings d0..d7.
	ProbeStates [8]string
}

// Set assigns a named metadata field, routing probe states d0..d7 to their
// slots and unrecognized names to the Extended bag.
func (m *DigitalMetaInfo) Set(name string, value any) error {
	if done, err := m.setBase(name, value); done {
		return err
	}
	key := canonicalName(name)
	if len(key) == 2 && key[0] == 'd' && key[1] >= '0' && key[1] <= '7' {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: probe state must be a string, got %T", ErrInvalidParameter, value)
		}
		m.ProbeStates[key[1]-'0'] = s
		return nil
	}
	m.SetExtended(name, value)
	return nil
}

// IQWindowFactors maps spectral window names to the bandwidth factor used to
// derive the IQ sample rate from FFT length and resolution bandwidth.
var IQWindowFactors = map[string]float64{
	"blackharris":  1.9,
	"flattop2":     3.77,
	"hanning":      1.44,
	"hamming":      1.3,
	"rectangle":    0.89,
	"kaiserbessel": 2.23,
}

// IQMetaInfo carries the metadata of an IQ WFM record. IQ records reuse the
// analog vertical fields and add the spectrum parameters below.
type IQMetaInfo struct {
	AnalogMetaInfo

	// CenterFrequency is the RF center frequency in Hz.
	CenterFrequency float64
	// FFTLength is the FFT length used during acquisition.
	FFTLength float64
	// ResolutionBandwidth is the RBW in Hz.
	ResolutionBandwidth float64
	// Span is the captured frequency span in Hz.
	Span float64
	// WindowType names the spectral window (e.g. "Hanning").
	WindowType string
}

// SampleRate derives the IQ sample rate from the window type, FFT length and
// resolution bandwidth. When the window is unknown the span is returned.
func (m *IQMetaInfo) SampleRate() float64 {
	if factor, ok := IQWindowFactors[canonicalName(m.WindowType)]; ok {
		return m.FFTLength * m.ResolutionBandwidth / factor
	}
	return m.Span
}

// Set assigns a named metadata field, routing IQ spectrum parameters and the
// inherited analog fields to their slots and unrecognized names to the
// Extended bag.
func (m *IQMetaInfo) Set(name string, value any) error {
	switch canonicalName(name) {
	case "iqcenterfrequency":
		f, ok := toFloat(value)
		if !ok {
			return fmt.Errorf("%w: center frequency must be numeric, got %T", ErrInvalidParameter, value)
		}
		m.CenterFrequency = f
	case "iqfftlength":
		f, ok := toFloat(value)
		if !ok {
			return fmt.Errorf("%w: FFT length must be numeric, got %T", ErrInvalidParameter, value)
		}
		m.FFTLength = f
	case "iqrbw", "iqresolutionbandwidth":
		f, ok := toFloat(value)
		if !ok {
			return fmt.Errorf("%w: resolution bandwidth must be numeric, got %T", ErrInvalidParameter, value)
		}
		m.ResolutionBandwidth = f
	case "iqspan":
		f, ok := toFloat(value)
		if !ok {
			return fmt.Errorf("%w: span must be numeric, got %T", ErrInvalidParameter, value)
		}
		m.Span = f
	case "iqwindowtype":
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: window type must be a string, got %T", ErrInvalidParameter, value)
		}
		m.WindowType = s
	case "iqsamplerate":
		// Derived from the window parameters; accepted and ignored so files
		// that carry it round-trip without complaint.
		if _, ok := toFloat(value); !ok {
			return fmt.Errorf("%w: sample rate must be numeric, got %T", ErrInvalidParameter, value)
		}
	default:
		return m.AnalogMetaInfo.Set(name, value)
	}
	return nil
}
