// SPDX-License-Identifier: Apache-2.0

package wav

import (
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/tektronix/tm-data-types/waveform"
)

const fullScale = 32768.0

// Export writes an analog record to ws as mono 16-bit PCM WAV. The audio
// sample rate is round(1/SampleInterval), which must land on a positive
// whole number of hertz.
func Export(ws io.WriteSeeker, w *waveform.AnalogWaveform) error {
	rate, err := sampleRate(w.SampleInterval)
	if err != nil {
		return err
	}

	raw, err := digitize(w)
	if err != nil {
		return err
	}
	codes, err := raw.Int16s()
	if err != nil {
		return err
	}
	data := make([]int, len(codes))
	for i, c := range codes {
		data[i] = int(c)
	}

	enc := wav.NewEncoder(ws, rate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		SourceBitDepth: 16,
		Data:           data,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("writing wav data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}
	return nil
}

// Import reads a PCM WAV from rs into an analog record. Multi-channel audio
// keeps the first channel; the vertical transform maps full scale to ±1.
func Import(rs io.ReadSeeker) (*waveform.AnalogWaveform, error) {
	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a riff/wave file", ErrInvalidAudio)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAudio, err)
	}
	if buf.Format == nil || buf.Format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: missing format chunk", ErrInvalidAudio)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}
	frames := len(buf.Data) / channels
	codes := make([]int16, frames)
	// Rescale whatever bit depth the file carries to int16 full scale.
	shift := 0
	if buf.SourceBitDepth > 16 {
		shift = int(buf.SourceBitDepth) - 16
	}
	for i := 0; i < frames; i++ {
		v := buf.Data[i*channels] >> uint(shift)
		if buf.SourceBitDepth == 8 {
			v = (v - 128) << 8
		}
		if v > math.MaxInt16 {
			v = math.MaxInt16
		}
		if v < math.MinInt16 {
			v = math.MinInt16
		}
		codes[i] = int16(v)
	}

	return &waveform.AnalogWaveform{
		Samples:        waveform.RawFromInt16(codes),
		SampleInterval: 1 / float64(buf.Format.SampleRate),
		XUnits:         "s",
		Scale:          1 / fullScale,
	}, nil
}

// digitize picks int16 codes for the record, deriving a transform from the
// value extent when the record carries no explicit one.
func digitize(w *waveform.AnalogWaveform) (*waveform.RawSamples, error) {
	if values, ok := w.Samples.(waveform.NormalizedSamples); ok && w.Scale == 0 {
		scale, offset := waveform.DeriveTransform(values)
		return waveform.NormalizedToRaw(values, scale, offset, 0, waveform.Int16)
	}
	return w.Digitize(waveform.Int16)
}

func sampleRate(interval float64) (int, error) {
	if interval <= 0 {
		return 0, fmt.Errorf("%w: sample interval %g", ErrUnsupportedRate, interval)
	}
	rate := math.Round(1 / interval)
	if rate < 1 || rate > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %g points per second", ErrUnsupportedRate, rate)
	}
	return int(rate), nil
}
