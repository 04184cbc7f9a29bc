// SPDX-License-Identifier: EPL-2.0

package playout

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/ik5/wavedit/audio"
	"github.com/ik5/wavedit/fade"
)

// Backend is the audio-graph side of a single track.
type Backend interface {
	// SetUpSource prepares a new source and returns a channel that is
	// closed when that source stops, naturally or through Stop.
	SetUpSource() <-chan struct{}
	ApplyFadeIn(at, duration float64, shape fade.Shape)
	ApplyFadeOut(at, duration float64, shape fade.Shape)
	SetVolumeGainLevel(level float64)
	SetMasterGainLevel(level float64)
	SetStereoPanValue(value float64)
	SetShouldPlay(play bool)
	Play(when, start, duration float64)
	Stop(when float64)
	IsPlaying() bool
}

// Context creates backends bound to a buffer.
type Context interface {
	NewBackend(buf *audio.Buffer, master *MasterGain) Backend
	// CurrentTime is the transport clock in seconds.
	CurrentTime() float64
}

// MasterGain is a gain level shared by every backend of a playlist.
type MasterGain struct {
	bits atomic.Uint64
}

func NewMasterGain(level float64) *MasterGain {
	g := &MasterGain{}
	g.Set(level)
	return g
}

func (g *MasterGain) Set(level float64) { g.bits.Store(math.Float64bits(level)) }
func (g *MasterGain) Level() float64    { return math.Float64frombits(g.bits.Load()) }

// backend holds the settings common to every Backend implementation. The
// levels are read when Play is called.
type backend struct {
	mu         sync.Mutex
	buf        *audio.Buffer
	master     *MasterGain
	volume     float64
	pan        float64
	shouldPlay bool
	current    *voice
}

func newBackend(buf *audio.Buffer, master *MasterGain) *backend {
	if master == nil {
		master = NewMasterGain(1)
	}
	return &backend{buf: buf, master: master, volume: 1, shouldPlay: true}
}

func (b *backend) SetUpSource() <-chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current != nil && !b.current.started {
		b.current.finish()
	}
	b.current = newVoice(b.buf)
	return b.current.done
}

func (b *backend) ApplyFadeIn(at, duration float64, shape fade.Shape) {
	b.automate(fade.FadeIn, at, duration, shape)
}

func (b *backend) ApplyFadeOut(at, duration float64, shape fade.Shape) {
	b.automate(fade.FadeOut, at, duration, shape)
}

func (b *backend) automate(typ fade.Type, at, duration float64, shape fade.Shape) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current == nil {
		return
	}
	b.current.fades = append(b.current.fades, automation{typ: typ, shape: shape, at: at, duration: duration})
}

func (b *backend) SetVolumeGainLevel(level float64) {
	b.mu.Lock()
	b.volume = level
	b.mu.Unlock()
}

func (b *backend) SetMasterGainLevel(level float64) { b.master.Set(level) }

func (b *backend) SetStereoPanValue(value float64) {
	b.mu.Lock()
	b.pan = math.Max(-1, math.Min(1, value))
	b.mu.Unlock()
}

func (b *backend) SetShouldPlay(play bool) {
	b.mu.Lock()
	b.shouldPlay = play
	b.mu.Unlock()
}

func (b *backend) IsPlaying() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.current != nil && b.current.playing()
}

// arm copies the current levels into the prepared voice and schedules it.
// It returns nil when no source was set up.
func (b *backend) arm(when, start, duration float64) *voice {
	b.mu.Lock()
	defer b.mu.Unlock()

	v := b.current
	if v == nil || v.started {
		return nil
	}

	v.when, v.start, v.duration = when, start, duration
	v.gain = b.volume * b.master.Level()
	if !b.shouldPlay {
		v.gain = 0
	}
	v.pan = b.pan
	v.started = true
	return v
}
