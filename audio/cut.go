// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Cut returns a new buffer with frames [start, end) removed from every channel.
// buf itself is left untouched.
func Cut(buf *Buffer, start, end int) (*Buffer, error) {
	if start >= end || start < 0 || end > buf.Length() {
		return nil, fmt.Errorf("%w: cut [%d, %d) of %d frames", ErrInvalidRange, start, end, buf.Length())
	}

	out, err := NewBuffer(buf.NumberOfChannels(), buf.Length()-(end-start), buf.SampleRate())
	if err != nil {
		return nil, err
	}

	for c := range buf.NumberOfChannels() {
		src := buf.ChannelData(c)
		dst := out.ChannelData(c)

		copy(dst, src[:start])
		copy(dst[start:], src[end:])
	}

	return out, nil
}
