// SPDX-License-Identifier: EPL-2.0

package peaks

import "errors"

var (
	ErrInvalidResolution = errors.New("samples per pixel must be positive")
	ErrUnsupportedBits   = errors.New("unsupported peak bit depth")
	ErrInvalidRange      = errors.New("invalid cue range")
)
