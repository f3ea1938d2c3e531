// SPDX-License-Identifier: Apache-2.0

package csv

import "errors"

var (
	// ErrMalformedInput reports a file whose header rows or value rows
	// cannot be interpreted: a missing record length, a non-numeric value
	// cell or inconsistent column counts.
	ErrMalformedInput = errors.New("malformed csv input")
	// ErrUnsupportedShape reports a waveform type label with no codec path.
	ErrUnsupportedShape = errors.New("unsupported waveform shape")
)
