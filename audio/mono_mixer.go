// SPDX-License-Identifier: EPL-2.0

package audio

// Mono averages all channels of buf into a single channel. A mono buffer is
// returned as is.
func Mono(buf *Buffer) *Buffer {
	channels := buf.NumberOfChannels()
	if channels == 1 {
		return buf
	}

	frames := buf.Length()
	dst := make([]float32, frames)
	invChannels := float32(1.0) / float32(channels)

	switch channels {
	case 2: // Stereo (most common)
		l, r := buf.ChannelData(0), buf.ChannelData(1)
		for f := range frames {
			dst[f] = (l[f] + r[f]) * 0.5
		}
	default:
		for c := range channels {
			src := buf.ChannelData(c)
			for f := range frames {
				dst[f] += src[f]
			}
		}
		for f := range frames {
			dst[f] *= invChannels
		}
	}

	return &Buffer{sampleRate: buf.SampleRate(), length: frames, channels: [][]float32{dst}}
}
