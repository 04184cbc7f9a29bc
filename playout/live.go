// SPDX-License-Identifier: EPL-2.0

package playout

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"
	"go.uber.org/zap"

	"github.com/ik5/wavedit/audio"
	"github.com/ik5/wavedit/utils"
)

// LiveContext plays sources on the default output device. oto allows a
// single context per process, so create one and share it between tracks.
type LiveContext struct {
	otoCtx     *oto.Context
	sampleRate int
	channels   int
	origin     time.Time
	logger     *zap.Logger
}

func NewLiveContext(sampleRate, channels int, logger *zap.Logger) (*LiveContext, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	otoCtx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}
	<-ready

	logger.Info("audio output initialized",
		zap.Int("sample_rate", sampleRate),
		zap.Int("channels", channels))

	return &LiveContext{
		otoCtx:     otoCtx,
		sampleRate: sampleRate,
		channels:   channels,
		origin:     time.Now(),
		logger:     logger,
	}, nil
}

func (c *LiveContext) NewBackend(buf *audio.Buffer, master *MasterGain) Backend {
	return &liveBackend{backend: newBackend(buf, master), ctx: c}
}

// CurrentTime is the number of seconds since the context was created.
func (c *LiveContext) CurrentTime() float64 { return time.Since(c.origin).Seconds() }

// Suspend pauses the device; Resume restarts it.
func (c *LiveContext) Suspend() error { return c.otoCtx.Suspend() }
func (c *LiveContext) Resume() error  { return c.otoCtx.Resume() }

// watch resolves v once its player drains or v is halted.
func (c *LiveContext) watch(v *voice, player *oto.Player) {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

loop:
	for player.IsPlaying() {
		select {
		case <-v.halted:
			player.Pause()
			break loop
		case <-ticker.C:
		}
	}

	if err := player.Close(); err != nil {
		c.logger.Warn("closing player", zap.Error(err))
	}
	v.finish()
}

// liveBackend renders a source when Play is called, so level changes made
// while it sounds apply from the next Play.
type liveBackend struct {
	*backend
	ctx *LiveContext
}

func (b *liveBackend) Play(when, start, duration float64) {
	v := b.arm(when, start, duration)
	if v == nil {
		return
	}

	origin := b.ctx.CurrentTime()
	frames := max(0, audio.SecondsToFrames(v.end()-origin, b.ctx.sampleRate))

	out, err := audio.NewBuffer(b.ctx.channels, frames, b.ctx.sampleRate)
	if err != nil {
		b.ctx.logger.Error("allocating live render buffer", zap.Error(err))
		v.finish()
		return
	}
	v.mixInto(out, origin)

	player := b.ctx.otoCtx.NewPlayer(bytes.NewReader(encodePCM16(out)))
	player.Play()

	b.ctx.logger.Debug("source started",
		zap.Float64("when", when),
		zap.Float64("offset", start),
		zap.Float64("duration", duration))

	go b.ctx.watch(v, player)
}

func (b *liveBackend) Stop(when float64) {
	b.mu.Lock()
	v := b.current
	started := v != nil && v.started
	b.mu.Unlock()

	if v == nil {
		return
	}
	if !started {
		v.finish()
		return
	}

	v.setStop(when)
	delay := time.Duration((when - b.ctx.CurrentTime()) * float64(time.Second))
	if delay <= 0 {
		v.halt()
		return
	}
	time.AfterFunc(delay, v.halt)
}

// encodePCM16 interleaves buf as signed 16-bit little-endian samples.
func encodePCM16(buf *audio.Buffer) []byte {
	channels := buf.NumberOfChannels()
	out := make([]byte, buf.Length()*channels*2)

	for f := range buf.Length() {
		for c := range channels {
			s := utils.Float32ToInt16(buf.ChannelData(c)[f])
			binary.LittleEndian.PutUint16(out[(f*channels+c)*2:], uint16(s))
		}
	}
	return out
}
