// SPDX-License-Identifier: EPL-2.0

package track

import "errors"

var (
	// ErrInvalidRange indicates cues or a cut range that cannot be applied
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidFade indicates a fade that does not fit inside the track
	ErrInvalidFade = errors.New("invalid fade")

	// ErrInvalidFadeType indicates a stored fade that is neither a fade-in nor a fade-out
	ErrInvalidFadeType = errors.New("invalid fade type saved on track")

	ErrNoBuffer  = errors.New("track has no buffer")
	ErrNoPlayout = errors.New("track has no playout")
)
