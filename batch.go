// SPDX-License-Identifier: Apache-2.0

package tmdatatypes

import (
	"sync"

	"github.com/tektronix/tm-data-types/waveform"
)

// ReadResult is the per-path outcome of a batch read. Exactly one of
// Waveform and Err is set.
type ReadResult struct {
	Waveform waveform.Waveform
	Err      error
}

// ReadFiles decodes the given paths concurrently over a pool of workers and
// returns the outcome per path. A failing path reports its error in the
// result map; it never aborts the other reads. Duplicate paths are read
// once. Workers below 1 are treated as 1.
func ReadFiles(paths []string, workers int) map[string]ReadResult {
	results := make(map[string]ReadResult, len(paths))
	jobs := make(chan string)

	var mtx sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < poolSize(workers, len(paths)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				wf, err := ReadFile(path)
				mtx.Lock()
				results[path] = ReadResult{Waveform: wf, Err: err}
				mtx.Unlock()
			}
		}()
	}

	seen := make(map[string]bool, len(paths))
	for _, path := range paths {
		if seen[path] {
			continue
		}
		seen[path] = true
		jobs <- path
	}
	close(jobs)
	wg.Wait()
	return results
}

// WriteFiles encodes the given waveforms concurrently over a pool of
// workers, keyed by destination path, and returns the error per path (nil
// on success). One failing write never aborts the others.
func WriteFiles(items map[string]waveform.Waveform, workers int) map[string]error {
	type job struct {
		path string
		wf   waveform.Waveform
	}

	results := make(map[string]error, len(items))
	jobs := make(chan job)

	var mtx sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < poolSize(workers, len(items)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				err := WriteFile(j.path, j.wf)
				mtx.Lock()
				results[j.path] = err
				mtx.Unlock()
			}
		}()
	}

	for path, wf := range items {
		jobs <- job{path: path, wf: wf}
	}
	close(jobs)
	wg.Wait()
	return results
}

func poolSize(workers, items int) int {
	if workers < 1 {
		workers = 1
	}
	if items > 0 && workers > items {
		workers = items
	}
	return workers
}
