// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds PCM fixtures shared by the package tests. It does
// not import the audio package so that audio's own tests can use it.
package audiotest

import (
	"io"
	"math"
)

// Wave yields the sample value of a frame on a channel.
type Wave func(frame, channel int) float32

// Silence is an all-zero wave.
func Silence(int, int) float32 { return 0 }

// Constant returns a wave holding v on every channel.
func Constant(v float32) Wave {
	return func(int, int) float32 { return v }
}

// Sine returns a sine wave of freq Hz sampled at sampleRate.
func Sine(freq float64, sampleRate int) Wave {
	return func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * freq * t))
	}
}

// Ramp encodes the frame index, so tests can tell which frames survived an edit.
func Ramp(frames int) Wave {
	return func(frame, _ int) float32 {
		return float32(frame) / float32(frames)
	}
}

// Planar renders frames frames of wave into one slice per channel.
func Planar(channels, frames int, wave Wave) [][]float32 {
	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
		for f := range frames {
			data[c][f] = wave(f, c)
		}
	}
	return data
}

// MockSource streams a wave as interleaved samples; it satisfies audio.Source.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int
	pos        int
	wave       Wave
	closed     bool
}

func NewSource(sampleRate, channels, frames int, wave Wave) *MockSource {
	return &MockSource{sampleRate: sampleRate, channels: channels, frames: frames, wave: wave}
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Closed() bool    { return m.closed }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.pos >= m.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/m.channels, m.frames-m.pos)
	for f := range n {
		for c := range m.channels {
			dst[f*m.channels+c] = m.wave(m.pos+f, c)
		}
	}
	m.pos += n

	if m.pos >= m.frames {
		return n * m.channels, io.EOF
	}
	return n * m.channels, nil
}
