// SPDX-License-Identifier: EPL-2.0

// Package playouttest provides a playout context that records every call
// made to its backends instead of producing sound.
package playouttest

import (
	"github.com/ik5/wavedit/audio"
	"github.com/ik5/wavedit/fade"
	"github.com/ik5/wavedit/playout"
)

// Call is one recorded backend method invocation.
type Call struct {
	Method string
	Args   []float64
	Shape  fade.Shape
	Flag   bool
}

type Context struct {
	Now      float64
	Backends []*Backend
}

func (c *Context) NewBackend(buf *audio.Buffer, master *playout.MasterGain) playout.Backend {
	b := &Backend{Buffer: buf, Master: master}
	c.Backends = append(c.Backends, b)
	return b
}

func (c *Context) CurrentTime() float64 { return c.Now }

// Last returns the most recently created backend, or nil.
func (c *Context) Last() *Backend {
	if len(c.Backends) == 0 {
		return nil
	}
	return c.Backends[len(c.Backends)-1]
}

// Backend records calls. Stop and Finish close the channel handed out by the
// last SetUpSource.
type Backend struct {
	Buffer *audio.Buffer
	Master *playout.MasterGain
	Calls  []Call

	done    chan struct{}
	playing bool
}

func (b *Backend) record(c Call) { b.Calls = append(b.Calls, c) }

// Called returns the recorded calls of method, in order.
func (b *Backend) Called(method string) []Call {
	var out []Call
	for _, c := range b.Calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func (b *Backend) SetUpSource() <-chan struct{} {
	b.record(Call{Method: "SetUpSource"})
	b.done = make(chan struct{})
	return b.done
}

func (b *Backend) ApplyFadeIn(at, duration float64, shape fade.Shape) {
	b.record(Call{Method: "ApplyFadeIn", Args: []float64{at, duration}, Shape: shape})
}

func (b *Backend) ApplyFadeOut(at, duration float64, shape fade.Shape) {
	b.record(Call{Method: "ApplyFadeOut", Args: []float64{at, duration}, Shape: shape})
}

func (b *Backend) SetVolumeGainLevel(level float64) {
	b.record(Call{Method: "SetVolumeGainLevel", Args: []float64{level}})
}

func (b *Backend) SetMasterGainLevel(level float64) {
	b.record(Call{Method: "SetMasterGainLevel", Args: []float64{level}})
	if b.Master != nil {
		b.Master.Set(level)
	}
}

func (b *Backend) SetStereoPanValue(value float64) {
	b.record(Call{Method: "SetStereoPanValue", Args: []float64{value}})
}

func (b *Backend) SetShouldPlay(play bool) {
	b.record(Call{Method: "SetShouldPlay", Flag: play})
}

func (b *Backend) Play(when, start, duration float64) {
	b.record(Call{Method: "Play", Args: []float64{when, start, duration}})
	b.playing = true
}

func (b *Backend) Stop(when float64) {
	b.record(Call{Method: "Stop", Args: []float64{when}})
	b.Finish()
}

func (b *Backend) IsPlaying() bool { return b.playing }

// Finish ends the current source as if it had played to its end.
func (b *Backend) Finish() {
	b.playing = false
	if b.done != nil {
		select {
		case <-b.done:
		default:
			close(b.done)
		}
	}
}
