// SPDX-License-Identifier: EPL-2.0

package playout

import (
	"context"
	"fmt"
	"sync"

	"github.com/ik5/wavedit/audio"
)

// OfflineContext renders scheduled sources into a buffer instead of a device.
// Transport time 0 is the first rendered frame.
type OfflineContext struct {
	mu         sync.Mutex
	channels   int
	frames     int
	sampleRate int
	voices     []*voice
}

func NewOfflineContext(channels, frames, sampleRate int) (*OfflineContext, error) {
	if channels < 1 || frames < 0 || sampleRate <= 0 {
		return nil, fmt.Errorf("offline context: %w: %d channels, %d frames at %d Hz",
			audio.ErrInvalidFormat, channels, frames, sampleRate)
	}
	return &OfflineContext{channels: channels, frames: frames, sampleRate: sampleRate}, nil
}

func (c *OfflineContext) NewBackend(buf *audio.Buffer, master *MasterGain) Backend {
	return &offlineBackend{backend: newBackend(buf, master), ctx: c}
}

func (c *OfflineContext) CurrentTime() float64 { return 0 }
func (c *OfflineContext) SampleRate() int      { return c.sampleRate }
func (c *OfflineContext) Channels() int        { return c.channels }

func (c *OfflineContext) schedule(v *voice) {
	c.mu.Lock()
	c.voices = append(c.voices, v)
	c.mu.Unlock()
}

// Render mixes every source played so far and resolves their done channels.
// Sources played after Render starts are kept for the next call.
func (c *OfflineContext) Render(ctx context.Context) (*audio.Buffer, error) {
	c.mu.Lock()
	voices := c.voices
	c.voices = nil
	c.mu.Unlock()

	defer func() {
		for _, v := range voices {
			v.finish()
		}
	}()

	out, err := audio.NewBuffer(c.channels, c.frames, c.sampleRate)
	if err != nil {
		return nil, fmt.Errorf("offline render: %w", err)
	}

	for _, v := range voices {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("offline render: %w", err)
		}
		v.mixInto(out, 0)
	}

	return out, nil
}

type offlineBackend struct {
	*backend
	ctx *OfflineContext
}

func (b *offlineBackend) Play(when, start, duration float64) {
	if v := b.arm(when, start, duration); v != nil {
		b.ctx.schedule(v)
	}
}

// Stop truncates the current source at when. A source that was set up but
// never played is resolved immediately.
func (b *offlineBackend) Stop(when float64) {
	b.mu.Lock()
	v := b.current
	started := v != nil && v.started
	b.mu.Unlock()

	if v == nil {
		return
	}
	v.setStop(when)
	if !started {
		v.finish()
	}
}
