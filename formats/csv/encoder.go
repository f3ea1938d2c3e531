// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/tektronix/tm-data-types/waveform"
)

// Shape labels used in the Waveform Type header row.
const (
	typeAnalog  = "ANALOG"
	typeDigital = "DIGITAL"
	typeIQ      = "IQ"
)

// Header row names shared by reader and writer.
const (
	rowModel           = "Model"
	rowWaveformType    = "Waveform Type"
	rowZeroIndex       = "Zero Index"
	rowSampleInterval  = "Sample Interval"
	rowRecordLength    = "Record Length"
	rowHorizontalUnits = "Horizontal Units"
	rowVerticalUnits   = "Vertical Units"
	rowDigitalType     = "Digital Type"
	rowLabels          = "Labels"
	rowTime            = "TIME"
)

// Encoder writes waveform objects as CSV text.
type Encoder struct {
	// Model is written to the Model header row. Empty means "MSO54", the
	// default instrument family label.
	Model string
}

// Encode writes wf to w as a CSV record.
func (e Encoder) Encode(w io.Writer, wf waveform.Waveform) error {
	cw := csv.NewWriter(w)
	model := e.Model
	if model == "" {
		model = "MSO54"
	}

	switch v := wf.(type) {
	case *waveform.AnalogWaveform:
		return e.encodeAnalog(cw, model, v)
	case *waveform.DigitalWaveform:
		return e.encodeDigital(cw, model, v)
	case *waveform.IQWaveform:
		return e.encodeIQ(cw, model, v)
	}
	return fmt.Errorf("%w: cannot encode %T", ErrUnsupportedShape, wf)
}

func (e Encoder) encodeAnalog(cw *csv.Writer, model string, w *waveform.AnalogWaveform) error {
	values, err := w.Normalized()
	if err != nil {
		return err
	}
	if err := writeCommonHeader(cw, model, typeAnalog, w.TriggerIndex, w.SampleInterval,
		len(values), w.XUnits); err != nil {
		return err
	}
	if err := cw.Write([]string{rowVerticalUnits, w.YUnits}); err != nil {
		return err
	}
	if err := writeMetaRows(cw, &w.Meta); err != nil {
		return err
	}
	channel := w.Meta.SourceName
	if channel == "" {
		channel = "CH1"
	}
	if err := writeColumnHeader(cw, channel); err != nil {
		return err
	}
	for i, v := range values {
		row := []string{
			formatFloat((float64(i) - w.TriggerIndex) * w.SampleInterval),
			formatFloat(v),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (e Encoder) encodeDigital(cw *csv.Writer, model string, w *waveform.DigitalWaveform) error {
	raw, ok := w.Samples.(*waveform.RawSamples)
	if !ok && w.Samples != nil {
		return fmt.Errorf("%w: digital records hold raw codes only", waveform.ErrIncompatibleRepresentation)
	}
	var codes []byte
	if raw != nil {
		codes = raw.Data
	}
	if err := writeCommonHeader(cw, model, typeDigital, w.TriggerIndex, w.SampleInterval,
		len(codes), w.XUnits); err != nil {
		return err
	}
	if err := cw.Write([]string{rowDigitalType, "8x1"}); err != nil {
		return err
	}
	if err := cw.Write([]string{"waveform_label", w.Meta.Label}); err != nil {
		return err
	}

	channel := w.Meta.SourceName
	if channel == "" {
		channel = "CH1"
	}
	header := []string{rowTime}
	for bit := 0; bit < 8; bit++ {
		header = append(header, fmt.Sprintf("%s_D%d", channel, bit))
	}
	if err := cw.Write([]string{rowLabels}); err != nil {
		return err
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, 9)
	for i, code := range codes {
		row[0] = formatFloat((float64(i) - w.TriggerIndex) * w.SampleInterval)
		for bit := 0; bit < 8; bit++ {
			row[1+bit] = strconv.Itoa(int(code>>uint(bit)) & 1)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (e Encoder) encodeIQ(cw *csv.Writer, model string, w *waveform.IQWaveform) error {
	values, err := w.Normalized()
	if err != nil {
		return err
	}
	if err := writeCommonHeader(cw, model, typeIQ, w.TriggerIndex, w.SampleInterval,
		len(values), w.XUnits); err != nil {
		return err
	}
	if err := cw.Write([]string{rowVerticalUnits, w.YUnits}); err != nil {
		return err
	}
	if err := writeMetaRows(cw, &w.Meta.AnalogMetaInfo); err != nil {
		return err
	}
	for _, row := range [][]string{
		{"IQ_centerFrequency", formatFloat(w.Meta.CenterFrequency)},
		{"IQ_fftLength", formatFloat(w.Meta.FFTLength)},
		{"IQ_rbw", formatFloat(w.Meta.ResolutionBandwidth)},
		{"IQ_span", formatFloat(w.Meta.Span)},
		{"IQ_windowType", w.Meta.WindowType},
	} {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	channel := w.Meta.SourceName
	if channel == "" {
		channel = "CH1"
	}
	if err := writeColumnHeader(cw, channel); err != nil {
		return err
	}
	// I and Q elements alternate down the single value column; two rows
	// share one sample instant.
	for i, v := range values {
		row := []string{
			formatFloat((float64(i/2) - w.TriggerIndex) * w.SampleInterval),
			formatFloat(v),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeCommonHeader(cw *csv.Writer, model, shape string, trigger, interval float64, length int, xUnits string) error {
	if xUnits == "" {
		xUnits = "s"
	}
	rows := [][]string{
		{rowModel, model},
		{rowWaveformType, shape},
		{rowZeroIndex, formatFloat(trigger)},
		{rowSampleInterval, formatFloat(interval)},
		{rowRecordLength, strconv.Itoa(length)},
		{rowHorizontalUnits, xUnits},
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeMetaRows(cw *csv.Writer, m *waveform.AnalogMetaInfo) error {
	rows := [][]string{
		{"waveform_label", m.Label},
		{"yOffset", formatFloat(m.YOffset)},
		{"yPosition", formatFloat(m.YPosition)},
	}
	if m.AnalogThumbnail != "" {
		rows = append(rows, []string{"ANALOG_Thumbnail", m.AnalogThumbnail})
	}
	if m.ClippingInitialized != 0 {
		rows = append(rows, []string{"clippingInitialized", strconv.Itoa(int(m.ClippingInitialized))})
	}
	if m.InterpFactor != 0 {
		rows = append(rows, []string{"interpFactor", strconv.Itoa(int(m.InterpFactor))})
	}
	if m.RealDataStartIndex != 0 {
		rows = append(rows, []string{"realDataStartIndex", strconv.Itoa(int(m.RealDataStartIndex))})
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeColumnHeader(cw *csv.Writer, channel string) error {
	if err := cw.Write([]string{rowLabels}); err != nil {
		return err
	}
	return cw.Write([]string{rowTime, channel})
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'e', 8, 64)
}
