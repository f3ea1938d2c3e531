// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tektronix/tm-data-types/waveform"
)

// Decoder reads CSV waveform records.
type Decoder struct {
	// Warn receives non-fatal diagnostics, such as a value row count that
	// disagrees with the Record Length header. Nil discards them.
	Warn func(msg string)
}

// parsedFile is the raw content of a CSV record before shaping.
type parsedFile struct {
	shape        string
	trigger      float64
	interval     float64
	recordLength int
	hasLength    bool
	xUnits       string
	yUnits       string
	meta         map[string]string
	rows         [][]float64
}

// Decode reads a CSV record from r and returns the typed waveform.
func (d Decoder) Decode(r io.Reader) (waveform.Waveform, error) {
	p, err := parseFile(r)
	if err != nil {
		return nil, err
	}
	if !p.hasLength {
		return nil, fmt.Errorf("%w: no Record Length row", ErrMalformedInput)
	}
	if p.recordLength != len(p.rows) && d.Warn != nil {
		d.Warn(fmt.Sprintf("Record Length declares %d rows, file holds %d", p.recordLength, len(p.rows)))
	}

	switch p.shape {
	case typeAnalog, "":
		return d.shapeAnalog(p)
	case typeDigital:
		return d.shapeDigital(p)
	case typeIQ:
		return d.shapeIQ(p)
	}
	return nil, fmt.Errorf("%w: waveform type %q", ErrUnsupportedShape, p.shape)
}

func parseFile(r io.Reader) (*parsedFile, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	p := &parsedFile{meta: make(map[string]string)}
	var width int
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		if len(row) == 0 || row[0] == "" || row[0] == rowLabels {
			continue
		}

		if _, numErr := strconv.ParseFloat(row[0], 64); numErr == nil {
			if width == 0 {
				width = len(row)
			}
			if len(row) != width {
				return nil, fmt.Errorf("%w: value row has %d columns, expected %d",
					ErrMalformedInput, len(row), width)
			}
			values := make([]float64, len(row))
			for i, cell := range row {
				v, err := strconv.ParseFloat(cell, 64)
				if err != nil {
					return nil, fmt.Errorf("%w: value cell %q is not numeric", ErrMalformedInput, cell)
				}
				values[i] = v
			}
			p.rows = append(p.rows, values)
			continue
		}

		if len(row) < 2 {
			continue
		}
		switch row[0] {
		case rowModel:
			// Informational only.
		case rowWaveformType:
			p.shape = row[1]
		case rowZeroIndex:
			p.trigger = parseFloatCell(row[1])
		case rowSampleInterval:
			p.interval = parseFloatCell(row[1])
		case rowRecordLength:
			n, err := strconv.Atoi(row[1])
			if err != nil {
				return nil, fmt.Errorf("%w: Record Length %q is not an integer", ErrMalformedInput, row[1])
			}
			p.recordLength = n
			p.hasLength = true
		case rowHorizontalUnits:
			p.xUnits = row[1]
		case rowVerticalUnits:
			p.yUnits = row[1]
		case rowDigitalType:
			// Always 8x1 for byte-packed logic records.
		case rowTime:
			// Channel label row; multi-channel records join their labels.
			p.meta["sourceName"] = strings.Join(row[1:], ",")
		default:
			p.meta[row[0]] = row[1]
		}
	}
	return p, nil
}

func parseFloatCell(cell string) float64 {
	v, _ := strconv.ParseFloat(cell, 64)
	return v
}

// shapeAnalog re-digitizes the normalized value column to int16 codes with a
// transform centered on the value extent.
func (d Decoder) shapeAnalog(p *parsedFile) (waveform.Waveform, error) {
	values, err := column(p.rows, 1)
	if err != nil {
		return nil, err
	}
	scale, offset := waveform.DeriveTransform(values)
	raw, err := waveform.NormalizedToRaw(values, scale, offset, 0, waveform.Int16)
	if err != nil {
		return nil, err
	}
	w := &waveform.AnalogWaveform{
		Samples:        raw,
		SampleInterval: p.interval,
		XUnits:         p.xUnits,
		TriggerIndex:   p.trigger,
		Scale:          scale,
		Offset:         offset,
		YUnits:         p.yUnits,
	}
	applyMeta(w.Meta.Set, p.meta, d.Warn)
	w.Position = w.Meta.YPosition
	return w, nil
}

// shapeDigital packs the per-bit columns back into byte codes.
func (d Decoder) shapeDigital(p *parsedFile) (waveform.Waveform, error) {
	codes := make([]int8, len(p.rows))
	for i, row := range p.rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("%w: digital row %d has no bit columns", ErrMalformedInput, i)
		}
		var code int8
		for bit, cell := range row[1:] {
			if bit > 7 {
				break
			}
			if cell != 0 {
				code |= 1 << uint(bit)
			}
		}
		codes[i] = code
	}
	w := &waveform.DigitalWaveform{
		Samples:        waveform.RawFromInt8(codes),
		SampleInterval: p.interval,
		XUnits:         p.xUnits,
		TriggerIndex:   p.trigger,
	}
	if src, ok := p.meta["sourceName"]; ok {
		p.meta["sourceName"] = digitalSource(src)
	}
	applyMeta(w.Meta.Set, p.meta, d.Warn)
	return w, nil
}

// digitalSource reduces the per-bit column labels (CH1_D0 through CH1_D7)
// back to the channel name. Labels that do not share one channel prefix are
// kept as joined.
func digitalSource(joined string) string {
	labels := strings.Split(joined, ",")
	for i, label := range labels {
		n := strings.LastIndex(label, "_D")
		if n < 0 {
			continue
		}
		if _, err := strconv.Atoi(label[n+2:]); err == nil {
			labels[i] = label[:n]
		}
	}
	for _, label := range labels[1:] {
		if label != labels[0] {
			return joined
		}
	}
	return labels[0]
}

// shapeIQ re-digitizes the interleaved value column like the analog path.
func (d Decoder) shapeIQ(p *parsedFile) (waveform.Waveform, error) {
	values, err := column(p.rows, 1)
	if err != nil {
		return nil, err
	}
	scale, offset := waveform.DeriveTransform(values)
	raw, err := waveform.NormalizedToRaw(values, scale, offset, 0, waveform.Int16)
	if err != nil {
		return nil, err
	}
	w := &waveform.IQWaveform{
		Samples:        raw,
		SampleInterval: p.interval,
		XUnits:         p.xUnits,
		TriggerIndex:   p.trigger,
		Scale:          scale,
		Offset:         offset,
		YUnits:         p.yUnits,
	}
	applyMeta(w.Meta.Set, p.meta, d.Warn)
	w.Position = w.Meta.YPosition
	return w, nil
}

func column(rows [][]float64, i int) (waveform.NormalizedSamples, error) {
	out := make(waveform.NormalizedSamples, len(rows))
	for n, row := range rows {
		if len(row) <= i {
			return nil, fmt.Errorf("%w: value row %d has no column %d", ErrMalformedInput, n, i)
		}
		out[n] = row[i]
	}
	return out, nil
}

// applyMeta routes header metadata rows into the bag. CSV cells are text, so
// numeric slots get a parsed float when the cell parses as one.
func applyMeta(set func(string, any) error, meta map[string]string, warn func(string)) {
	for key, cell := range meta {
		var value any = cell
		if f, err := strconv.ParseFloat(cell, 64); err == nil {
			value = f
		}
		if err := set(key, value); err != nil {
			// Fall back to the string form before giving up.
			if err2 := set(key, cell); err2 != nil && warn != nil {
				warn(fmt.Sprintf("metadata row %q dropped: %v", key, err2))
			}
		}
	}
}
