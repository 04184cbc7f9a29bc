// SPDX-License-Identifier: EPL-2.0

// Package aiff imports and exports integer PCM AIFF files through
// github.com/go-audio/aiff.
//
// Decoder streams 16, 24 or 32 bit PCM as float samples in [-1, 1] and is
// registered for both the aif and aiff extensions by the session loader:
//
//	src, err := aiff.Decoder{}.Decode(f)
//	if err != nil {
//		return err
//	}
//	buf, err := audio.ReadAll(src)
//
// Write encodes an audio.Buffer:
//
//	err := aiff.Write(out, buf, 24)
package aiff
