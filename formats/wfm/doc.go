// SPDX-License-Identifier: Apache-2.0

// Package wfm implements the Tektronix WFM binary waveform file format.
//
// A WFM file is a fixed-layout binary header followed by a curve buffer of
// digitized integer samples and an optional "tekmeta!" metadata postamble:
//
//	byte order verification (2 bytes, 0xF0F0 little endian / 0x0F0F big endian)
//	version string (8 bytes, ":WFM#001" .. ":WFM#003")
//	static file info (68 bytes: sizes, offsets, zoom, label)
//	waveform header (76 bytes: counts, data type)
//	summary frame type (2 bytes, versions 2 and 3 only)
//	pixel map (12 bytes)
//	2 x explicit dimension (100 bytes) + user view (60 bytes in v3, 56 before)
//	2 x implicit dimension (76 bytes) + user view
//	2 x time base info (12 bytes)
//	update specification (24 bytes), curve information (30 bytes)
//	fast frame update/curve arrays
//	curve buffer (precharge, data, postcharge)
//	file checksum (uint64 sum of all preceding bytes)
//	tekmeta postamble (open key/value metadata)
//
// # Decoding
//
//	decoder := wfm.Decoder{}
//	wf, err := decoder.Decode(file)
//
// Decode returns the waveform with samples in the raw (digitized)
// representation; it never applies the Raw->Normalized transform itself, so
// the common read path costs no per-sample arithmetic. Structural problems
// surface as ErrMalformedHeader, ErrTruncatedInput or ErrUnsupportedShape,
// each wrapped with the failing field and byte offset.
//
// # Shape detection
//
// DetectShape inspects only the header prefix and the metadata postamble,
// never the curve buffer. The header's data type field drives the verdict;
// IQ records are vector records carrying IQ_* metadata keys. Unknown type
// codes fall back to analog with Certain=false instead of mis-detecting
// silently.
//
// # Encoding
//
//	encoder := wfm.Encoder{}
//	err := encoder.Encode(file, wf)
//
// Raw samples are written as-is (the fast path). Normalized samples are
// digitized first through the waveform's own scale/offset/position; a
// waveform that cannot provide those fails with
// waveform.ErrIncompatibleRepresentation. Extension metadata the postamble cannot
// store is dropped with a warning, or rejected with
// ErrUnsupportedMetadataField when Strict is set.
package wfm
