// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile = errors.New("not a WAV file")

	// ErrUnsupportedEncoding indicates a WAV payload that is not integer PCM
	ErrUnsupportedEncoding = errors.New("only integer PCM WAV is supported")
)
