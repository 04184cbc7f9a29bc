// SPDX-License-Identifier: EPL-2.0

package peaks

import (
	"fmt"
	"math"

	"github.com/ik5/wavedit/audio"
)

// DefaultBits is the peak resolution used when none is configured.
const DefaultBits = 8

// Peaks holds one slice per channel of interleaved min, max values, one pair
// per pixel, scaled to signed integers of Bits bits.
type Peaks struct {
	Length int
	Bits   int
	Data   [][]int32
}

// Min and Max return the scaled extremes of pixel i on channel c.
func (p *Peaks) Min(c, i int) int32 { return p.Data[c][i*2] }
func (p *Peaks) Max(c, i int) int32 { return p.Data[c][i*2+1] }

// Extract computes peaks for frames [cueIn, cueOut) of buf. A cueOut of 0
// means the end of the buffer. When mono is set, channels are averaged first.
func Extract(buf *audio.Buffer, samplesPerPixel int, mono bool, cueIn, cueOut, bits int) (*Peaks, error) {
	if samplesPerPixel <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidResolution, samplesPerPixel)
	}
	switch bits {
	case 8, 16, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBits, bits)
	}

	if cueOut == 0 {
		cueOut = buf.Length()
	}
	if cueIn < 0 || cueOut > buf.Length() || cueIn > cueOut {
		return nil, fmt.Errorf("%w: [%d, %d) of %d frames", ErrInvalidRange, cueIn, cueOut, buf.Length())
	}

	if mono {
		buf = audio.Mono(buf)
	}

	pixels := (cueOut - cueIn + samplesPerPixel - 1) / samplesPerPixel
	p := &Peaks{Length: pixels, Bits: bits, Data: make([][]int32, buf.NumberOfChannels())}

	for c := range p.Data {
		p.Data[c] = channelPeaks(buf.ChannelData(c)[cueIn:cueOut], samplesPerPixel, pixels, bits)
	}
	return p, nil
}

func channelPeaks(samples []float32, samplesPerPixel, pixels, bits int) []int32 {
	out := make([]int32, pixels*2)

	for i := range pixels {
		segment := samples[i*samplesPerPixel : min((i+1)*samplesPerPixel, len(samples))]

		lo, hi := segment[0], segment[0]
		for _, s := range segment[1:] {
			lo = min(lo, s)
			hi = max(hi, s)
		}

		out[i*2] = scale(lo, bits)
		out[i*2+1] = scale(hi, bits)
	}
	return out
}

// scale maps a sample in [-1, 1] onto the signed range of bits, truncating
// toward zero.
func scale(s float32, bits int) int32 {
	full := math.Ldexp(1, bits-1)

	v := float64(s) * full
	if s > 0 {
		v = float64(s) * (full - 1)
	}
	return int32(math.Max(-full, math.Min(full-1, math.Trunc(v))))
}
