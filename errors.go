// SPDX-License-Identifier: EPL-2.0

package wavedit

import "errors"

// ErrInvalidRange indicates a mixdown window whose end is not after its start
var ErrInvalidRange = errors.New("invalid mixdown range")
