// SPDX-License-Identifier: Apache-2.0

// Package csv reads and writes oscilloscope waveform records as CSV text,
// the export format scope front panels offer beside the binary one.
//
// A file starts with header rows (Record Length, Sample Interval, Zero
// Index, Waveform Type, units and metadata rows), followed by a channel
// label row and one row per sample. The first column is time; analog
// records carry one value column, IQ records one interleaved I/Q column and
// digital records one column per bitstream bit.
//
// Values are written normalized. Reading an analog or IQ file re-digitizes
// the values to int16 codes with a transform centered on the value extent,
// which is what instruments do when importing CSV.
package csv
