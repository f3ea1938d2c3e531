// SPDX-License-Identifier: Apache-2.0

// Package waveform defines the in-memory model for instrument waveform data.
//
// A waveform couples a sample container with horizontal timing information and
// a metadata bag. Samples exist in exactly one of two representations:
//
//   - RawSamples: the digitized integer codes as stored on disk. This is the
//     native representation of the WFM binary format and the fast path, since
//     no numeric transform is needed to read or write it.
//   - NormalizedSamples: physically scaled float64 values (volts, amps, ...),
//     the representation display and analysis code expects.
//
// Conversion between the two is always explicit, via RawToNormalized and
// NormalizedToRaw, using the affine transform
//
//	value = (code - position)*scale + offset
//
// Going from normalized values back to integer codes quantizes, so that
// direction is lossy by up to one code step.
//
// # Shapes
//
// Three waveform shapes exist: AnalogWaveform (one channel of scaled samples),
// DigitalWaveform (logic-level bitstreams, no vertical scale), and IQWaveform
// (interleaved in-phase/quadrature pairs). The Shape enum drives exhaustive
// switches in the codecs; there is no runtime type lookup.
//
// # Metadata
//
// Each shape carries a typed metadata struct with the fields the file formats
// promote to first-class attributes, plus an open Extended map for everything
// else. Unknown keys read from a file survive in Extended verbatim and are
// written back out unchanged. The Set method on each metadata type routes a
// named field to either a first-class attribute or the Extended bag, so
// callers do not need to know which one it is.
package waveform
