// SPDX-License-Identifier: Apache-2.0

package wav

import "errors"

var (
	// ErrInvalidAudio reports a file that is not a decodable PCM WAV.
	ErrInvalidAudio = errors.New("invalid wav audio")
	// ErrUnsupportedRate reports a sample interval that maps to no whole
	// audio sample rate.
	ErrUnsupportedRate = errors.New("unsupported sample rate")
)
