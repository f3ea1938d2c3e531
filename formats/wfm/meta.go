// SPDX-License-Identifier: Apache-2.0

package wfm

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/tektronix/tm-data-types/waveform"
)

// tekmeta value type indicators.
const (
	tekMetaString uint8 = 1
	tekMetaInt32  uint8 = 2
	tekMetaFloat  uint8 = 3
	tekMetaUint32 uint8 = 4
)

// metaEntry is one tekmeta key/value pair. Entries are ordered so encoding
// is deterministic.
type metaEntry struct {
	key   string
	value any
}

// parseTekMeta decodes the metadata postamble starting at the "tekmeta!"
// marker. Keys are returned verbatim; values decode to string, []byte,
// int32, float64 or uint32 per their type indicator.
func parseTekMeta(buf []byte, order binary.ByteOrder) (map[string]any, error) {
	r := &sectionReader{buf: buf, order: order}
	marker, err := r.bytes("tekmeta marker", len(tekMetaMarker))
	if err != nil {
		return nil, err
	}
	if string(marker) != tekMetaMarker {
		return nil, fmt.Errorf("%w: unrecognizable post-amble prefix %q", ErrMalformedHeader, marker)
	}
	var count uint32
	if err := r.read("tekmeta count", &count); err != nil {
		return nil, err
	}

	entries := make(map[string]any, count)
	for i := 0; i < int(count); i++ {
		var keyLen uint32
		if err := r.read("tekmeta key length", &keyLen); err != nil {
			return nil, err
		}
		keyBytes, err := r.bytes("tekmeta key", int(keyLen))
		if err != nil {
			return nil, err
		}
		key := string(keyBytes)

		kind, err := r.bytes("tekmeta type indicator", 1)
		if err != nil {
			return nil, err
		}
		switch kind[0] {
		case tekMetaString:
			var valLen uint32
			if err := r.read("tekmeta value length", &valLen); err != nil {
				return nil, err
			}
			val, err := r.bytes("tekmeta value", int(valLen))
			if err != nil {
				return nil, err
			}
			if utf8.Valid(val) {
				entries[key] = string(val)
			} else {
				blob := make([]byte, len(val))
				copy(blob, val)
				entries[key] = blob
			}
		case tekMetaInt32:
			var v int32
			if err := r.read("tekmeta value", &v); err != nil {
				return nil, err
			}
			entries[key] = v
		case tekMetaFloat:
			var v float64
			if err := r.read("tekmeta value", &v); err != nil {
				return nil, err
			}
			entries[key] = v
		case tekMetaUint32:
			var v uint32
			if err := r.read("tekmeta value", &v); err != nil {
				return nil, err
			}
			entries[key] = v
		default:
			return nil, fmt.Errorf("%w: tekmeta entry %q has unknown type indicator %d",
				ErrMalformedHeader, key, kind[0])
		}
	}
	return entries, nil
}

// populateBag routes every tekmeta entry through the bag's Set method.
// Entries whose value type does not fit a first-class slot land in the
// extension bag verbatim instead of failing the decode.
func populateBag(set func(string, any) error, bag *waveform.MetaInfo, entries map[string]any, warn func(string)) {
	for key, value := range entries {
		if err := set(key, value); err != nil {
			bag.SetExtended(key, value)
			if warn != nil {
				warn(fmt.Sprintf("metadata key %q kept as extension field: %v", key, err))
			}
		}
	}
}

// analogEntries maps the first-class analog metadata fields to their fixed
// tekmeta slots.
func analogEntries(m *waveform.AnalogMetaInfo) []metaEntry {
	entries := []metaEntry{
		{"waveform_label", m.Label},
		{"yOffset", m.YOffset},
		{"yPosition", m.YPosition},
		{"clippingInitialized", m.ClippingInitialized},
	}
	if m.SourceName != "" {
		entries = append(entries, metaEntry{"sourceName", m.SourceName})
	}
	if m.AnalogThumbnail != "" {
		entries = append(entries, metaEntry{"ANALOG_Thumbnail", m.AnalogThumbnail})
	}
	if m.InterpFactor != 0 {
		entries = append(entries, metaEntry{"interpFactor", m.InterpFactor})
	}
	if m.RealDataStartIndex != 0 {
		entries = append(entries, metaEntry{"realDataStartIndex", m.RealDataStartIndex})
	}
	return entries
}

func digitalEntries(m *waveform.DigitalMetaInfo) []metaEntry {
	entries := []metaEntry{{"waveform_label", m.Label}}
	if m.SourceName != "" {
		entries = append(entries, metaEntry{"sourceName", m.SourceName})
	}
	for i, state := range m.ProbeStates {
		entries = append(entries, metaEntry{fmt.Sprintf("d%d", i), state})
	}
	return entries
}

func iqEntries(m *waveform.IQMetaInfo) []metaEntry {
	entries := analogEntries(&m.AnalogMetaInfo)
	entries = append(entries,
		metaEntry{"IQ_centerFrequency", m.CenterFrequency},
		metaEntry{"IQ_fftLength", m.FFTLength},
		metaEntry{"IQ_rbw", m.ResolutionBandwidth},
		metaEntry{"IQ_span", m.Span},
		metaEntry{"IQ_windowType", m.WindowType},
		metaEntry{"IQ_sampleRate", m.SampleRate()},
	)
	return entries
}

// appendExtended adds the extension bag entries after the first-class slots,
// in sorted key order. A key that collides with an already placed slot is
// skipped with a warning so the first-class value wins.
func appendExtended(entries []metaEntry, bag *waveform.MetaInfo, warn func(string)) []metaEntry {
	if len(bag.Extended) == 0 {
		return entries
	}
	placed := make(map[string]bool, len(entries))
	for _, e := range entries {
		placed[e.key] = true
	}
	keys := make([]string, 0, len(bag.Extended))
	for key := range bag.Extended {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if placed[key] {
			if warn != nil {
				warn(fmt.Sprintf("extension metadata key %q shadows a first-class field and was skipped", key))
			}
			continue
		}
		entries = append(entries, metaEntry{key, bag.Extended[key]})
	}
	return entries
}

// appendTekMeta writes the metadata postamble. Entries whose value type the
// postamble cannot store are rejected with ErrUnsupportedMetadataField in
// strict mode, otherwise dropped with a warning naming the key.
func appendTekMeta(buf *bytes.Buffer, order binary.ByteOrder, entries []metaEntry, strict bool, warn func(string)) error {
	placeable := entries[:0:0]
	for _, e := range entries {
		if _, ok := tekMetaKind(e.value); !ok {
			if strict {
				return fmt.Errorf("%w: %q has unplaceable type %T", ErrUnsupportedMetadataField, e.key, e.value)
			}
			if warn != nil {
				warn(fmt.Sprintf("metadata key %q dropped: type %T cannot be stored", e.key, e.value))
			}
			continue
		}
		placeable = append(placeable, e)
	}

	buf.WriteString(tekMetaMarker)
	writeBin(buf, order, uint32(len(placeable)))
	for _, e := range placeable {
		writeBin(buf, order, uint32(len(e.key)))
		buf.WriteString(e.key)
		kind, _ := tekMetaKind(e.value)
		buf.WriteByte(kind)
		switch v := e.value.(type) {
		case string:
			writeBin(buf, order, uint32(len(v)))
			buf.WriteString(v)
		case []byte:
			writeBin(buf, order, uint32(len(v)))
			buf.Write(v)
		case int32:
			writeBin(buf, order, v)
		case int:
			writeBin(buf, order, int32(v))
		case int64:
			writeBin(buf, order, int32(v))
		case float64:
			writeBin(buf, order, v)
		case float32:
			writeBin(buf, order, float64(v))
		case uint32:
			writeBin(buf, order, v)
		}
	}
	return nil
}

func tekMetaKind(value any) (uint8, bool) {
	switch value.(type) {
	case string, []byte:
		return tekMetaString, true
	case int32, int, int64:
		return tekMetaInt32, true
	case float64, float32:
		return tekMetaFloat, true
	case uint32:
		return tekMetaUint32, true
	}
	return 0, false
}

func writeBin(buf *bytes.Buffer, order binary.ByteOrder, v any) {
	// bytes.Buffer never fails to grow.
	_ = binary.Write(buf, order, v)
}
