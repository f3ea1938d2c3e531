// SPDX-License-Identifier: Apache-2.0

package tmdatatypes

import "errors"

var (
	// ErrUnknownExtension reports a file path whose extension maps to no
	// registered codec.
	ErrUnknownExtension = errors.New("unknown file extension")
)
