// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"

	"github.com/ik5/wavedit/utils"
)

// Resample converts buf to dstRate using cubic interpolation, preserving the
// channel count. When downsampling, a one-pole low-pass runs over the input
// first to tame aliasing. A buffer already at dstRate is returned as is.
func Resample(buf *Buffer, dstRate int) (*Buffer, error) {
	if dstRate <= 0 {
		return nil, fmt.Errorf("%w: target rate %d Hz", ErrInvalidFormat, dstRate)
	}
	if buf.SampleRate() == dstRate {
		return buf, nil
	}

	// source samples per output sample
	ratio := float64(buf.SampleRate()) / float64(dstRate)
	frames := int(math.Round(float64(buf.Length()) / ratio))

	out, err := NewBuffer(buf.NumberOfChannels(), frames, dstRate)
	if err != nil {
		return nil, err
	}

	for c := range buf.NumberOfChannels() {
		src := buf.ChannelData(c)
		if ratio > 1.0 {
			src = lowPass(src, 0.5)
		}
		resampleChannel(src, out.ChannelData(c), ratio)
	}

	return out, nil
}

func resampleChannel(src, dst []float32, ratio float64) {
	if len(src) == 0 {
		return
	}

	last := len(src) - 1
	at := func(i int) float32 {
		return src[max(0, min(i, last))]
	}

	for i := range dst {
		pos := float64(i) * ratio
		idx := int(pos)
		alpha := float32(pos - float64(idx))

		dst[i] = utils.CubicInterpolate(at(idx-1), at(idx), at(idx+1), at(idx+2), alpha)
	}
}

// lowPass applies y[n] = alpha*x[n] + (1-alpha)*y[n-1], seeded with x[0]
// to avoid a warm-up transient.
func lowPass(src []float32, alpha float32) []float32 {
	out := make([]float32, len(src))
	if len(src) == 0 {
		return out
	}

	state := src[0]
	for i, x := range src {
		state = alpha*x + (1-alpha)*state
		out[i] = state
	}
	return out
}
