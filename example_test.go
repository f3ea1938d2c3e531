// SPDX-License-Identifier: Apache-2.0

package tmdatatypes_test

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tmdatatypes "github.com/tektronix/tm-data-types"
	"github.com/tektronix/tm-data-types/waveform"
)

// Example_basicUsage demonstrates the most common use case: writing a
// waveform by path and reading it back, with the extension picking the
// codec.
func Example_basicUsage() {
	dir, err := os.MkdirTemp("", "wfm")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "ramp.wfm")

	src := &waveform.AnalogWaveform{
		Samples:        waveform.RawFromInt16([]int16{100, 150, 200, 250}),
		SampleInterval: 1e-9,
		XUnits:         "s",
		Scale:          0.01,
		YUnits:         "V",
	}
	if err := tmdatatypes.WriteFile(path, src); err != nil {
		log.Fatal(err)
	}

	wf, err := tmdatatypes.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	values, err := wf.(*waveform.AnalogWaveform).Normalized()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(wf.Shape(), values)
	// Output:
	// analog [1 1.5 2 2.5]
}

// Example_batch reads a directory of captures concurrently.
func Example_batch() {
	dir, err := os.MkdirTemp("", "wfm")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	paths := make([]string, 3)
	for i := range paths {
		paths[i] = filepath.Join(dir, fmt.Sprintf("ch%d.wfm", i+1))
		wf := &waveform.AnalogWaveform{
			Samples:        waveform.RawFromInt16([]int16{int16(i), int16(i + 1)}),
			SampleInterval: 1e-9,
			Scale:          1,
		}
		if err := tmdatatypes.WriteFile(paths[i], wf); err != nil {
			log.Fatal(err)
		}
	}

	results := tmdatatypes.ReadFiles(paths, 2)
	ok := 0
	for _, res := range results {
		if res.Err == nil {
			ok++
		}
	}
	fmt.Println(len(results), ok)
	// Output:
	// 3 3
}
