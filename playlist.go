// SPDX-License-Identifier: EPL-2.0

package wavedit

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/ik5/wavedit/audio"
	"github.com/ik5/wavedit/playout"
	"github.com/ik5/wavedit/track"
)

// Playlist schedules a set of tracks against one transport clock with a
// master gain shared by all of them.
type Playlist struct {
	mu     sync.Mutex
	tracks []*track.Track
	master *playout.MasterGain
	logger *zap.Logger
}

type Option func(*Playlist)

func WithLogger(l *zap.Logger) Option {
	return func(p *Playlist) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithMasterGain sets the starting master gain level. The default is 1.
func WithMasterGain(level float64) Option {
	return func(p *Playlist) { p.master.Set(level) }
}

func New(opts ...Option) *Playlist {
	p := &Playlist{
		master: playout.NewMasterGain(1),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Playlist) Add(t *track.Track) {
	p.mu.Lock()
	p.tracks = append(p.tracks, t)
	p.mu.Unlock()
}

func (p *Playlist) Tracks() []*track.Track {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.tracks)
}

// Duration is the latest end time of any track.
func (p *Playlist) Duration() float64 {
	var end float64
	for _, t := range p.Tracks() {
		end = max(end, t.EndTime())
	}
	return end
}

func (p *Playlist) MasterGain() float64 { return p.master.Level() }

// SetMasterGain changes the level every bound playout reads.
func (p *Playlist) SetMasterGain(level float64) { p.master.Set(level) }

// SetPlayout binds ctx as the live playout of every track, sharing the
// playlist's master gain.
func (p *Playlist) SetPlayout(ctx playout.Context) error {
	for _, t := range p.Tracks() {
		if err := t.SetPlayout(ctx, p.master); err != nil {
			return fmt.Errorf("track %q: %w", t.Name(), err)
		}
	}
	return nil
}

// Play schedules every track for the window starting at the global time
// start, with now as the transport time of that start. The returned channel
// is closed once every track has stopped. If a track cannot be scheduled the
// ones already started are stopped at now.
func (p *Playlist) Play(now, start float64, opts ...track.PlayOption) (<-chan struct{}, error) {
	opts = append([]track.PlayOption{track.WithMasterGain(p.master.Level())}, opts...)

	tracks := p.Tracks()
	dones := make([]<-chan struct{}, 0, len(tracks))

	for i, t := range tracks {
		done, err := t.SchedulePlay(now, start, opts...)
		if err != nil {
			for _, started := range tracks[:i] {
				started.ScheduleStop(now)
			}
			return nil, fmt.Errorf("track %q: %w", t.Name(), err)
		}
		dones = append(dones, done)
	}

	p.logger.Debug("playlist scheduled",
		zap.Float64("now", now),
		zap.Float64("start", start),
		zap.Int("tracks", len(tracks)))

	return all(dones), nil
}

// Stop stops the live playout of every track at the transport time when.
func (p *Playlist) Stop(when float64) {
	for _, t := range p.Tracks() {
		t.ScheduleStop(when)
	}
}

// Mixdown renders the timeline window [start, end) into a new buffer with
// the given channel count and sample rate.
func (p *Playlist) Mixdown(ctx context.Context, start, end float64, channels, rate int) (*audio.Buffer, error) {
	if end <= start {
		return nil, fmt.Errorf("%w: %g to %g", ErrInvalidRange, start, end)
	}

	octx, err := playout.NewOfflineContext(channels, audio.SecondsToFrames(end-start, rate), rate)
	if err != nil {
		return nil, err
	}

	level := p.master.Level()
	for _, t := range p.Tracks() {
		if err := t.SetOfflinePlayout(octx); err != nil {
			return nil, fmt.Errorf("track %q: %w", t.Name(), err)
		}
		if _, err := t.SchedulePlay(0, start, track.Offline(), track.Until(end), track.WithMasterGain(level)); err != nil {
			return nil, fmt.Errorf("track %q: %w", t.Name(), err)
		}
	}

	buf, err := octx.Render(ctx)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("mixdown rendered",
		zap.Float64("start", start),
		zap.Float64("end", end),
		zap.Int("frames", buf.Length()))

	return buf, nil
}

// all returns a channel closed once every channel in dones is closed.
func all(dones []<-chan struct{}) <-chan struct{} {
	out := make(chan struct{})

	var wg sync.WaitGroup
	for _, done := range dones {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-done
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}
