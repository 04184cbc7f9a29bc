// SPDX-License-Identifier: EPL-2.0

package playout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/ik5/wavedit/audio"
	"github.com/ik5/wavedit/fade"
	"github.com/ik5/wavedit/internal/audiotest"
)

const tolerance = 1e-4

func newTestBuffer(t *testing.T, channels, frames, rate int, wave audiotest.Wave) *audio.Buffer {
	t.Helper()

	buf, err := audio.NewBufferFromChannels(rate, audiotest.Planar(channels, frames, wave)...)
	if err != nil {
		t.Fatalf("NewBufferFromChannels() error = %v", err)
	}
	return buf
}

func render(t *testing.T, ctx *OfflineContext) *audio.Buffer {
	t.Helper()

	out, err := ctx.Render(context.Background())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return out
}

func assertNear(t *testing.T, what string, got float32, want float64) {
	t.Helper()

	if math.Abs(float64(got)-want) > tolerance {
		t.Errorf("%s = %v, want %v", what, got, want)
	}
}

func TestOffline_PlacesSourceAtWhenAndOffset(t *testing.T) {
	t.Parallel()

	ctx, _ := NewOfflineContext(1, 30, 10)
	b := ctx.NewBackend(newTestBuffer(t, 1, 10, 10, audiotest.Ramp(10)), nil)

	b.SetUpSource()
	b.Play(1, 0.5, 0.3)

	out := render(t, ctx).ChannelData(0)
	for f, v := range out {
		switch f {
		case 10, 11, 12:
			assertNear(t, "sounding frame", v, float64(f-5)/10)
		default:
			if v != 0 {
				t.Errorf("frame %d = %v, want silence", f, v)
			}
		}
	}
}

func TestOffline_Gains(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		volume     float64
		master     float64
		shouldPlay bool
		want       float64
	}{
		{name: "unity", volume: 1, master: 1, shouldPlay: true, want: 1},
		{name: "volume and master multiply", volume: 0.5, master: 0.5, shouldPlay: true, want: 0.25},
		{name: "muted", volume: 1, master: 1, shouldPlay: false, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, _ := NewOfflineContext(1, 10, 10)
			b := ctx.NewBackend(newTestBuffer(t, 1, 10, 10, audiotest.Constant(1)), nil)

			b.SetUpSource()
			b.SetVolumeGainLevel(tt.volume)
			b.SetMasterGainLevel(tt.master)
			b.SetShouldPlay(tt.shouldPlay)
			b.Play(0, 0, 1)

			for f, v := range render(t, ctx).ChannelData(0) {
				assertNear(t, fmt.Sprintf("frame %d", f), v, tt.want)
			}
		})
	}
}

func TestOffline_FadeInFromStart(t *testing.T) {
	t.Parallel()

	ctx, _ := NewOfflineContext(1, 20, 10)
	b := ctx.NewBackend(newTestBuffer(t, 1, 20, 10, audiotest.Constant(1)), nil)

	b.SetUpSource()
	b.ApplyFadeIn(0, 1, fade.Linear)
	b.Play(0, 0, 2)

	out := render(t, ctx).ChannelData(0)
	for f := range 10 {
		assertNear(t, "fading frame", out[f], float64(f)/10)
	}
	for f := 10; f < 20; f++ {
		assertNear(t, "frame after fade", out[f], 1)
	}
}

func TestOffline_FadeOutEnteredMidway(t *testing.T) {
	t.Parallel()

	ctx, _ := NewOfflineContext(1, 20, 10)
	b := ctx.NewBackend(newTestBuffer(t, 1, 20, 10, audiotest.Constant(1)), nil)

	b.SetUpSource()
	b.ApplyFadeOut(-0.5, 1, fade.Linear)
	b.Play(0, 0, 2)

	out := render(t, ctx).ChannelData(0)
	assertNear(t, "first frame", out[0], 0.5)
	assertNear(t, "second frame", out[1], 0.4)
	for f := 5; f < 20; f++ {
		assertNear(t, "frame after fade-out", out[f], 0)
	}
}

func TestOffline_StereoPan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		channels    int
		pan         float64
		left, right float64
	}{
		{name: "mono centre", channels: 1, pan: 0, left: math.Sqrt2 / 2, right: math.Sqrt2 / 2},
		{name: "mono hard left", channels: 1, pan: -1, left: 1, right: 0},
		{name: "mono hard right", channels: 1, pan: 1, left: 0, right: 1},
		{name: "stereo centre", channels: 2, pan: 0, left: 1, right: 1},
		{name: "stereo hard left", channels: 2, pan: -1, left: 2, right: 0},
		{name: "stereo hard right", channels: 2, pan: 1, left: 0, right: 2},
		{name: "clamped beyond right", channels: 2, pan: 3, left: 0, right: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, _ := NewOfflineContext(2, 5, 10)
			b := ctx.NewBackend(newTestBuffer(t, tt.channels, 5, 10, audiotest.Constant(1)), nil)

			b.SetUpSource()
			b.SetStereoPanValue(tt.pan)
			b.Play(0, 0, 0.5)

			out := render(t, ctx)
			assertNear(t, "left", out.ChannelData(0)[2], tt.left)
			assertNear(t, "right", out.ChannelData(1)[2], tt.right)
		})
	}
}

func TestOffline_DoneAndIsPlaying(t *testing.T) {
	t.Parallel()

	ctx, _ := NewOfflineContext(1, 10, 10)
	b := ctx.NewBackend(newTestBuffer(t, 1, 10, 10, audiotest.Constant(1)), nil)

	done := b.SetUpSource()
	if b.IsPlaying() {
		t.Error("IsPlaying() = true before Play")
	}

	b.Play(0, 0, 1)
	if !b.IsPlaying() {
		t.Error("IsPlaying() = false after Play")
	}

	select {
	case <-done:
		t.Fatal("done closed before Render")
	default:
	}

	render(t, ctx)

	select {
	case <-done:
	default:
		t.Fatal("done still open after Render")
	}
	if b.IsPlaying() {
		t.Error("IsPlaying() = true after Render")
	}
}

func TestOffline_StopTruncates(t *testing.T) {
	t.Parallel()

	ctx, _ := NewOfflineContext(1, 20, 10)
	b := ctx.NewBackend(newTestBuffer(t, 1, 20, 10, audiotest.Constant(1)), nil)

	b.SetUpSource()
	b.Play(0, 0, 2)
	b.Stop(1)

	out := render(t, ctx).ChannelData(0)
	assertNear(t, "frame before stop", out[9], 1)
	assertNear(t, "frame after stop", out[10], 0)
}

func TestOffline_StopBeforePlayResolves(t *testing.T) {
	t.Parallel()

	ctx, _ := NewOfflineContext(1, 10, 10)
	b := ctx.NewBackend(newTestBuffer(t, 1, 10, 10, audiotest.Silence), nil)

	done := b.SetUpSource()
	b.Stop(0)

	select {
	case <-done:
	default:
		t.Fatal("Stop() on an unplayed source did not resolve it")
	}

	b.Stop(0) // no source armed, must not panic
}

func TestOffline_SetUpSourceResolvesAbandonedSource(t *testing.T) {
	t.Parallel()

	ctx, _ := NewOfflineContext(1, 10, 10)
	b := ctx.NewBackend(newTestBuffer(t, 1, 10, 10, audiotest.Silence), nil)

	first := b.SetUpSource()
	b.SetUpSource()

	select {
	case <-first:
	default:
		t.Fatal("replacing an unplayed source left it unresolved")
	}
}

func TestOffline_CancelledRender(t *testing.T) {
	t.Parallel()

	ctx, _ := NewOfflineContext(1, 10, 10)
	b := ctx.NewBackend(newTestBuffer(t, 1, 10, 10, audiotest.Constant(1)), nil)

	done := b.SetUpSource()
	b.Play(0, 0, 1)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ctx.Render(cancelled); !errors.Is(err, context.Canceled) {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}

	select {
	case <-done:
	default:
		t.Fatal("cancelled render left done open")
	}
}

func TestOffline_MixesSeveralBackends(t *testing.T) {
	t.Parallel()

	ctx, _ := NewOfflineContext(1, 10, 10)
	master := NewMasterGain(1)

	a := ctx.NewBackend(newTestBuffer(t, 1, 10, 10, audiotest.Constant(0.25)), master)
	b := ctx.NewBackend(newTestBuffer(t, 1, 10, 10, audiotest.Constant(0.5)), master)

	a.SetUpSource()
	a.Play(0, 0, 1)
	b.SetUpSource()
	b.SetMasterGainLevel(0.5)
	b.Play(0.5, 0, 1)

	if master.Level() != 0.5 {
		t.Errorf("shared master level = %v, want 0.5", master.Level())
	}

	out := render(t, ctx).ChannelData(0)
	assertNear(t, "only first source", out[2], 0.25)
	assertNear(t, "both sources", out[7], 0.25+0.25)
}

func TestNewOfflineContext_InvalidFormat(t *testing.T) {
	t.Parallel()

	if _, err := NewOfflineContext(0, 10, 44100); !errors.Is(err, audio.ErrInvalidFormat) {
		t.Errorf("NewOfflineContext() error = %v, want audio.ErrInvalidFormat", err)
	}
}

func TestEncodePCM16_Interleaves(t *testing.T) {
	t.Parallel()

	buf, _ := audio.NewBufferFromChannels(8000, []float32{1, 0}, []float32{-1, 0.5})
	got := encodePCM16(buf)

	want := []byte{0xff, 0x7f, 0x01, 0x80, 0x00, 0x00, 0xff, 0x3f}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("byte %d = %#x, want %#x", i, got[i], want[i])
		}
	}
}
