// SPDX-License-Identifier: Apache-2.0

// Package wav bridges analog waveform records to 16-bit PCM WAV audio.
//
// Export digitizes a record to int16 codes and writes a mono WAV whose
// sample rate is the rounded reciprocal of the sample interval. Import
// reads a PCM WAV back into an analog record with a full-scale channel
// transform. Digital and IQ records have no audio rendition.
//
// It uses the github.com/go-audio library for WAV file handling.
package wav
