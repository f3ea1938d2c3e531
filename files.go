// SPDX-License-Identifier: Apache-2.0

package tmdatatypes

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tektronix/tm-data-types/waveform"
)

// ReadFile decodes the waveform file at path, selecting the codec by file
// extension.
func ReadFile(path string) (waveform.Waveform, error) {
	codec, err := codecFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading waveform: %w", err)
	}
	defer f.Close()

	wf, err := codec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return wf, nil
}

// WriteFile encodes wf to path, selecting the codec by file extension.
func WriteFile(path string, wf waveform.Waveform) error {
	codec, err := codecFor(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing waveform: %w", err)
	}

	if err := codec.Encode(f, wf); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func codecFor(path string) (Codec, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	codec, ok := DefaultRegistry.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownExtension, path)
	}
	return codec, nil
}
