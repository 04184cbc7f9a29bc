// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
)

// Buffer holds decoded PCM as one float32 slice per channel, all of the same length.
type Buffer struct {
	sampleRate int
	length     int
	channels   [][]float32
}

// NewBuffer allocates a silent buffer of frames frames per channel.
func NewBuffer(channels, frames, sampleRate int) (*Buffer, error) {
	if channels < 1 || frames < 0 || sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d channels, %d frames at %d Hz", ErrInvalidFormat, channels, frames, sampleRate)
	}

	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
	}

	return &Buffer{sampleRate: sampleRate, length: frames, channels: data}, nil
}

// NewBufferFromChannels wraps existing planar data without copying it.
func NewBufferFromChannels(sampleRate int, data ...[]float32) (*Buffer, error) {
	if len(data) == 0 || sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrInvalidFormat, len(data), sampleRate)
	}

	length := len(data[0])
	for c, ch := range data {
		if len(ch) != length {
			return nil, fmt.Errorf("%w: channel %d has %d frames, want %d", ErrInvalidFormat, c, len(ch), length)
		}
	}

	return &Buffer{sampleRate: sampleRate, length: length, channels: data}, nil
}

func (b *Buffer) NumberOfChannels() int { return len(b.channels) }
func (b *Buffer) SampleRate() int       { return b.sampleRate }

// Length is the number of frames per channel.
func (b *Buffer) Length() int { return b.length }

// ChannelData returns the live samples of channel c.
func (b *Buffer) ChannelData(c int) []float32 { return b.channels[c] }

// Duration in seconds.
func (b *Buffer) Duration() float64 {
	return FramesToSeconds(b.length, b.sampleRate)
}

// SecondsToFrames converts seconds to the nearest frame index at sampleRate.
func SecondsToFrames(seconds float64, sampleRate int) int {
	return int(math.Round(seconds * float64(sampleRate)))
}

// FramesToSeconds converts a frame count at sampleRate to seconds.
func FramesToSeconds(frames, sampleRate int) float64 {
	return float64(frames) / float64(sampleRate)
}
