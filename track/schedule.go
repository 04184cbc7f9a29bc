// SPDX-License-Identifier: EPL-2.0

package track

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ik5/wavedit/fade"
	"github.com/ik5/wavedit/playout"
)

type playOptions struct {
	end        float64
	bounded    bool
	shouldPlay bool
	masterGain float64
	offline    bool
}

type PlayOption func(*playOptions)

// Until bounds the playback window at the global time end. Without it the
// window is open-ended.
func Until(end float64) PlayOption {
	return func(o *playOptions) {
		o.end = end
		o.bounded = true
	}
}

func WithShouldPlay(play bool) PlayOption {
	return func(o *playOptions) { o.shouldPlay = play }
}

func WithMasterGain(level float64) PlayOption {
	return func(o *playOptions) { o.masterGain = level }
}

// Offline schedules on the offline playout instead of the live one.
func Offline() PlayOption {
	return func(o *playOptions) { o.offline = true }
}

func newPlayOptions(opts []PlayOption) playOptions {
	o := playOptions{shouldPlay: true, masterGain: 1}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// FadeActivation is a fade placed on the transport clock. At may lie before
// the playback origin when playback resumes in the middle of a fade.
type FadeActivation struct {
	ID       string
	Type     fade.Type
	Shape    fade.Shape
	At       float64
	Duration float64
}

// Plan is what a playout needs to play a track for one transport window.
type Plan struct {
	// When is the transport time playback starts.
	When float64
	// Offset is the buffer position, in seconds, playback starts from.
	Offset   float64
	Duration float64
	Fades    []FadeActivation
}

// PlanPlay computes where and when the track plays for a window starting at
// the global time start, with now as the transport time of that start. It
// returns false when the track has nothing to play in the window, and
// ErrInvalidRange when the window ends before it starts. Stored fades are
// only checked when there is something to play.
func (t *Track) PlanPlay(now, start float64, opts ...PlayOption) (Plan, bool, error) {
	o := newPlayOptions(opts)

	var segment float64
	if o.bounded {
		if o.end < start {
			return Plan{}, false, fmt.Errorf("%w: play window [%g, %g]", ErrInvalidRange, start, o.end)
		}
		segment = o.end - start
	}

	if t.endTime <= start || (o.bounded && start+segment < t.startTime) {
		return Plan{}, false, nil
	}

	if err := t.checkFadeTypes(); err != nil {
		return Plan{}, false, err
	}

	plan := Plan{When: now}
	if t.startTime >= start {
		lead := t.startTime - start
		plan.When += lead
		plan.Duration = t.duration
		if o.bounded {
			plan.Duration = min(segment-lead, t.duration)
		}
	} else {
		plan.Offset = start - t.startTime
		plan.Duration = t.duration - plan.Offset
		if o.bounded {
			plan.Duration = min(segment, plan.Duration)
		}
	}
	plan.Offset += t.cueIn

	relPos := start - t.startTime
	ids := t.fadeIns
	if t.fadeOut != "" {
		ids = append(ids[:len(ids):len(ids)], t.fadeOut)
	}

	for _, id := range ids {
		f, ok := t.fades[id]
		if !ok || f.End <= relPos {
			continue
		}

		// A negative lead enters the curve already in progress.
		plan.Fades = append(plan.Fades, FadeActivation{
			ID:       id,
			Type:     f.Type,
			Shape:    f.Shape,
			At:       now + (f.Start - relPos),
			Duration: f.Length(),
		})
	}

	return plan, true, nil
}

func (t *Track) checkFadeTypes() error {
	for id, f := range t.fades {
		if !f.Type.Valid() {
			t.logger.Error("corrupt fade",
				zap.String("track", t.name),
				zap.String("fade", id),
				zap.Int("type", int(f.Type)))
			return fmt.Errorf("%w: fade %s has type %d", ErrInvalidFadeType, id, int(f.Type))
		}
	}
	return nil
}

// SchedulePlay plans the window starting at start and hands it to the live
// playout, or to the offline one with Offline. The returned channel is closed
// once playback stops, naturally or through ScheduleStop. When the track has
// nothing to play it is returned already closed and the playout is not
// touched.
func (t *Track) SchedulePlay(now, start float64, opts ...PlayOption) (<-chan struct{}, error) {
	plan, ok, err := t.PlanPlay(now, start, opts...)
	if err != nil {
		return nil, err
	}
	if !ok {
		return closed(), nil
	}

	o := newPlayOptions(opts)
	backend := t.backendFor(o.offline)
	if backend == nil {
		return nil, ErrNoPlayout
	}

	done := backend.SetUpSource()

	for _, a := range plan.Fades {
		switch a.Type {
		case fade.FadeIn:
			backend.ApplyFadeIn(a.At, a.Duration, a.Shape)
		case fade.FadeOut:
			backend.ApplyFadeOut(a.At, a.Duration, a.Shape)
		}
	}

	backend.SetVolumeGainLevel(t.gain)
	backend.SetShouldPlay(o.shouldPlay)
	backend.SetMasterGainLevel(o.masterGain)
	backend.SetStereoPanValue(t.stereoPan)
	backend.Play(plan.When, plan.Offset, plan.Duration)

	return done, nil
}

// ScheduleStop stops the live playout at the transport time when. Stopping a
// stopped track does nothing.
func (t *Track) ScheduleStop(when float64) {
	if t.live != nil {
		t.live.Stop(when)
	}
}

func closed() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

func (t *Track) backendFor(offline bool) playout.Backend {
	if offline {
		return t.offline
	}
	return t.live
}
