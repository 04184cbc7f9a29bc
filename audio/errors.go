// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrInvalidRange indicates a sample range that is empty, reversed or outside the buffer
	ErrInvalidRange = errors.New("invalid sample range")

	// ErrInvalidFormat indicates a channel count, frame count or sample rate that cannot describe a buffer
	ErrInvalidFormat = errors.New("invalid buffer format")
)
