// SPDX-License-Identifier: Apache-2.0

package waveform

import "errors"

var (
	// ErrInvalidParameter reports a transform or conversion argument that has
	// no usable value, such as a zero vertical scale.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrIncompatibleRepresentation reports a sample representation that the
	// requested operation cannot work with, such as encoding normalized
	// values into a format that mandates digitized codes when no scale
	// information is available to digitize them.
	ErrIncompatibleRepresentation = errors.New("incompatible sample representation")
)
