// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	t.Parallel()

	buf, err := NewBuffer(2, 44100*10, 44100)
	if err != nil {
		t.Fatalf("NewBuffer() error = %v", err)
	}

	if buf.NumberOfChannels() != 2 {
		t.Errorf("NumberOfChannels() = %d, want 2", buf.NumberOfChannels())
	}
	if buf.Length() != 441000 {
		t.Errorf("Length() = %d, want 441000", buf.Length())
	}
	if buf.Duration() != 10 {
		t.Errorf("Duration() = %v, want 10", buf.Duration())
	}
	if len(buf.ChannelData(1)) != 441000 {
		t.Errorf("len(ChannelData(1)) = %d, want 441000", len(buf.ChannelData(1)))
	}
}

func TestNewBuffer_InvalidFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                   string
		channels, frames, rate int
	}{
		{"no channels", 0, 10, 8000},
		{"negative frames", 1, -1, 8000},
		{"zero rate", 1, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewBuffer(tt.channels, tt.frames, tt.rate)
			if !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("NewBuffer() error = %v, want ErrInvalidFormat", err)
			}
		})
	}
}

func TestNewBufferFromChannels(t *testing.T) {
	t.Parallel()

	left := []float32{0.1, 0.2, 0.3}
	right := []float32{-0.1, -0.2, -0.3}

	buf, err := NewBufferFromChannels(8000, left, right)
	if err != nil {
		t.Fatalf("NewBufferFromChannels() error = %v", err)
	}
	if buf.Length() != 3 || buf.NumberOfChannels() != 2 {
		t.Errorf("got %d frames, %d channels; want 3, 2", buf.Length(), buf.NumberOfChannels())
	}

	if _, err := NewBufferFromChannels(8000, left, right[:2]); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("ragged channels error = %v, want ErrInvalidFormat", err)
	}
	if _, err := NewBufferFromChannels(8000); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("no channels error = %v, want ErrInvalidFormat", err)
	}
}

func TestSecondsToFrames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		seconds float64
		rate    int
		want    int
	}{
		{2, 44100, 88200},
		{0, 44100, 0},
		{0.5, 8000, 4000},
		{1.0 / 3, 3, 1},
		{0.00001, 44100, 0},
	}

	for _, tt := range tests {
		if got := SecondsToFrames(tt.seconds, tt.rate); got != tt.want {
			t.Errorf("SecondsToFrames(%v, %d) = %d, want %d", tt.seconds, tt.rate, got, tt.want)
		}
	}

	if got := FramesToSeconds(88200, 44100); got != 2 {
		t.Errorf("FramesToSeconds(88200, 44100) = %v, want 2", got)
	}
}
