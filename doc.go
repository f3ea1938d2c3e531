// SPDX-License-Identifier: Apache-2.0

// Package tmdatatypes reads and writes Tektronix oscilloscope waveform
// files.
//
// # Supported Formats
//
// The package supports the following waveform file formats:
//   - WFM (binary instrument format, versions 1-3) via formats/wfm
//   - CSV (front-panel text export) via formats/csv
//
// Analog records can additionally be bridged to 16-bit PCM WAV audio via
// formats/wav.
//
// # Quick Start
//
// The simplest way to handle waveform files is by path; the extension picks
// the codec:
//
//	wf, err := tmdatatypes.ReadFile("capture.wfm")
//	if err != nil {
//		log.Fatal(err)
//	}
//	analog := wf.(*waveform.AnalogWaveform)
//	values, _ := analog.Normalized()
//
//	err = tmdatatypes.WriteFile("capture.csv", wf)
//
// # Codecs
//
// Each format has its own codec package with explicit knobs:
//
//	// WFM with strict metadata handling
//	enc := wfm.Encoder{Strict: true}
//	err := enc.Encode(f, wf)
//
//	// Shape sniffing without a full decode
//	det, err := wfm.DetectShape(data)
//
// Codecs are looked up through a Registry; custom formats can be registered
// beside the built-in ones.
//
// # Batch Access
//
// ReadFiles and WriteFiles fan work out over a bounded worker pool and
// report a per-path outcome, so one corrupt file never aborts its siblings:
//
//	results := tmdatatypes.ReadFiles(paths, 8)
//	for path, res := range results {
//		if res.Err != nil {
//			log.Printf("%s: %v", path, res.Err)
//		}
//	}
//
// See the individual subpackages for the waveform model and the format
// layouts.
package tmdatatypes
