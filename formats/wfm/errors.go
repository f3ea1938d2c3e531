// SPDX-License-Identifier: Apache-2.0

package wfm

import "errors"

var (
	// ErrTruncatedInput reports fewer bytes than the header declares.
	ErrTruncatedInput = errors.New("truncated wfm input")
	// ErrMalformedHeader reports a fixed header field that fails structural
	// validation: bad magic, unknown version, unsupported element width,
	// inconsistent curve offsets or a checksum mismatch.
	ErrMalformedHeader = errors.New("malformed wfm header")
	// ErrUnsupportedShape reports a waveform subtype with no decode path.
	ErrUnsupportedShape = errors.New("unsupported waveform shape")
	// ErrUnsupportedMetadataField reports, in strict mode only, an extension
	// metadata entry that cannot be placed in the file.
	ErrUnsupportedMetadataField = errors.New("unsupported metadata field")
)
