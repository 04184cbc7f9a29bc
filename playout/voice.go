// SPDX-License-Identifier: EPL-2.0

package playout

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/ik5/wavedit/audio"
	"github.com/ik5/wavedit/fade"
)

// automation is a fade placed on the transport clock.
type automation struct {
	typ      fade.Type
	shape    fade.Shape
	at       float64
	duration float64
}

// gain holds unity before the fade and the fade's final level after it.
func (a automation) gain(t float64) float64 {
	switch {
	case t < a.at:
		return 1
	case t >= a.at+a.duration:
		if a.typ == fade.FadeOut {
			return 0
		}
		return 1
	}
	return fade.Value(a.shape, a.typ, (t-a.at)/a.duration)
}

// voice is one scheduled playback of a buffer.
type voice struct {
	buf      *audio.Buffer
	when     float64
	start    float64
	duration float64
	gain     float64
	pan      float64
	fades    []automation
	started  bool

	stopBits atomic.Uint64
	finished atomic.Bool
	done     chan struct{}
	doneOnce sync.Once
	halted   chan struct{}
	haltOnce sync.Once
}

func newVoice(buf *audio.Buffer) *voice {
	v := &voice{buf: buf, done: make(chan struct{}), halted: make(chan struct{})}
	v.setStop(math.Inf(1))
	return v
}

func (v *voice) setStop(when float64) { v.stopBits.Store(math.Float64bits(when)) }
func (v *voice) stopTime() float64    { return math.Float64frombits(v.stopBits.Load()) }

// end is the transport time at which the voice falls silent.
func (v *voice) end() float64 { return math.Min(v.when+v.duration, v.stopTime()) }

func (v *voice) playing() bool { return v.started && !v.finished.Load() }

func (v *voice) finish() {
	v.doneOnce.Do(func() {
		v.finished.Store(true)
		close(v.done)
	})
}

func (v *voice) halt() {
	v.haltOnce.Do(func() { close(v.halted) })
}

func (v *voice) envelope(t float64) float64 {
	g := 1.0
	for _, a := range v.fades {
		g *= a.gain(t)
	}
	return g
}

// mixInto adds the voice to out, whose first frame sits at transport time origin.
func (v *voice) mixInto(out *audio.Buffer, origin float64) {
	if v.buf == nil || v.gain == 0 {
		return
	}

	rate := out.SampleRate()
	first := max(0, audio.SecondsToFrames(v.when-origin, rate))
	last := min(out.Length(), audio.SecondsToFrames(v.end()-origin, rate))
	srcRate := float64(v.buf.SampleRate())

	pan := newPanner(v.buf, out.NumberOfChannels(), v.pan)
	frame := make([]float32, out.NumberOfChannels())

	for f := first; f < last; f++ {
		t := origin + float64(f)/float64(rate)
		src := int(math.Floor((v.start+t-v.when)*srcRate + 1e-9))
		if src < 0 {
			continue
		}
		if src >= v.buf.Length() {
			break
		}

		g := float32(v.gain * v.envelope(t))
		if g == 0 {
			continue
		}

		pan.frame(frame, src)
		for c, s := range frame {
			out.ChannelData(c)[f] += s * g
		}
	}
}

// panner maps a source frame onto the output channels. Stereo output follows
// the equal-power stereo panner of the Web Audio API.
type panner struct {
	in           *audio.Buffer
	outChannels  int
	pan          float64
	gainL, gainR float32
}

func newPanner(in *audio.Buffer, outChannels int, pan float64) panner {
	p := panner{in: in, outChannels: outChannels, pan: pan}

	x := pan
	switch {
	case in.NumberOfChannels() == 1:
		x = (pan + 1) / 2
	case pan <= 0:
		x = pan + 1
	}
	p.gainL = float32(math.Cos(x * math.Pi / 2))
	p.gainR = float32(math.Sin(x * math.Pi / 2))
	return p
}

func (p panner) frame(dst []float32, src int) {
	inChannels := p.in.NumberOfChannels()

	switch {
	case p.outChannels == 2 && inChannels == 1:
		s := p.in.ChannelData(0)[src]
		dst[0], dst[1] = s*p.gainL, s*p.gainR
	case p.outChannels == 2:
		l, r := p.in.ChannelData(0)[src], p.in.ChannelData(1)[src]
		if p.pan <= 0 {
			dst[0], dst[1] = l+r*p.gainL, r*p.gainR
		} else {
			dst[0], dst[1] = l*p.gainL, r+l*p.gainR
		}
	case p.outChannels == 1:
		var sum float32
		for c := range inChannels {
			sum += p.in.ChannelData(c)[src]
		}
		dst[0] = sum / float32(inChannels)
	default:
		for c := range dst {
			dst[c] = p.in.ChannelData(min(c, inChannels-1))[src]
		}
	}
}
