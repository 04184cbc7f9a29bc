// SPDX-License-Identifier: EPL-2.0

package track

import (
	"go.uber.org/zap"

	"github.com/ik5/wavedit/audio"
	"github.com/ik5/wavedit/fade"
	"github.com/ik5/wavedit/peaks"
	"github.com/ik5/wavedit/playout"
)

const DefaultName = "Untitled"

// Track is one clip on the timeline. All times are seconds.
type Track struct {
	name string
	src  string

	cueIn     float64
	cueOut    float64
	startTime float64
	endTime   float64
	duration  float64
	gain      float64
	stereoPan float64

	buffer *audio.Buffer

	fades   map[string]fade.Fade
	fadeIns []string
	fadeOut string

	liveCtx    playout.Context
	live       playout.Backend
	offlineCtx playout.Context
	offline    playout.Backend
	master     *playout.MasterGain

	states        StateRegistry
	enabledStates map[string]bool
	state         string
	handler       StateHandler

	monoPeaks bool
	peakBits  int
	peaks     *peaks.Peaks

	logger *zap.Logger
}

type Option func(*Track)

func WithLogger(l *zap.Logger) Option {
	return func(t *Track) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithStates installs the interaction state handlers SetState can attach.
func WithStates(r StateRegistry) Option {
	return func(t *Track) { t.states = r }
}

// WithEnabledStates merges enabled over DefaultEnabledStates.
func WithEnabledStates(enabled map[string]bool) Option {
	return func(t *Track) { t.SetEnabledStates(enabled) }
}

// WithPeaks sets how CalculatePeaks summarises the buffer.
func WithPeaks(mono bool, bits int) Option {
	return func(t *Track) {
		t.monoPeaks = mono
		t.peakBits = bits
	}
}

// New returns an empty track with cues (0, 0) and no fades.
func New(opts ...Option) *Track {
	t := &Track{
		name:     DefaultName,
		gain:     1,
		fades:    make(map[string]fade.Fade),
		peakBits: peaks.DefaultBits,
		logger:   zap.NewNop(),
	}
	t.SetEnabledStates(nil)

	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Track) Name() string         { return t.name }
func (t *Track) SetName(name string)  { t.name = name }
func (t *Track) Source() string       { return t.src }
func (t *Track) SetSource(src string) { t.src = src }

func (t *Track) CueIn() float64     { return t.cueIn }
func (t *Track) CueOut() float64    { return t.cueOut }
func (t *Track) StartTime() float64 { return t.startTime }
func (t *Track) EndTime() float64   { return t.endTime }
func (t *Track) Duration() float64  { return t.duration }
func (t *Track) Gain() float64      { return t.gain }
func (t *Track) StereoPan() float64 { return t.stereoPan }

func (t *Track) Buffer() *audio.Buffer { return t.buffer }

// SetBuffer installs buf as the track's audio and rebinds any playout to it.
// Cues are left alone.
func (t *Track) SetBuffer(buf *audio.Buffer) {
	t.buffer = buf
	t.rebind()
}

// SetPlayout binds the live playout. A nil master gets a fresh unity gain;
// pass the playlist's gain to share it between tracks.
func (t *Track) SetPlayout(ctx playout.Context, master *playout.MasterGain) error {
	if t.buffer == nil {
		return ErrNoBuffer
	}
	if master == nil {
		master = playout.NewMasterGain(1)
	}

	t.master = master
	t.liveCtx = ctx
	t.live = ctx.NewBackend(t.buffer, master)
	return nil
}

// SetOfflinePlayout binds the playout used by Offline scheduling. It shares
// the live playout's master gain.
func (t *Track) SetOfflinePlayout(ctx playout.Context) error {
	if t.buffer == nil {
		return ErrNoBuffer
	}
	if t.master == nil {
		t.master = playout.NewMasterGain(1)
	}

	t.offlineCtx = ctx
	t.offline = ctx.NewBackend(t.buffer, t.master)
	return nil
}

// MasterGain returns the gain shared with the track's playouts, or nil when
// none is bound.
func (t *Track) MasterGain() *playout.MasterGain { return t.master }

// rebind replaces the bound backends with ones playing the current buffer.
func (t *Track) rebind() {
	if t.buffer == nil {
		return
	}
	if t.liveCtx != nil {
		t.live = t.liveCtx.NewBackend(t.buffer, t.master)
	}
	if t.offlineCtx != nil {
		t.offline = t.offlineCtx.NewBackend(t.buffer, t.master)
	}
}

func (t *Track) SetGainLevel(level float64) {
	t.gain = level
	if t.live != nil {
		t.live.SetVolumeGainLevel(level)
	}
}

func (t *Track) SetMasterGainLevel(level float64) {
	if t.live != nil {
		t.live.SetMasterGainLevel(level)
	}
}

func (t *Track) SetStereoPanValue(value float64) {
	t.stereoPan = value
	if t.live != nil {
		t.live.SetStereoPanValue(value)
	}
}

func (t *Track) SetShouldPlay(play bool) {
	if t.live != nil {
		t.live.SetShouldPlay(play)
	}
}

func (t *Track) IsPlaying() bool {
	return t.live != nil && t.live.IsPlaying()
}

// CalculatePeaks summarises the cued region of the buffer at samplesPerPixel,
// converting cues to frames at sampleRate.
func (t *Track) CalculatePeaks(samplesPerPixel, sampleRate int) error {
	if t.buffer == nil {
		return ErrNoBuffer
	}

	cueIn := audio.SecondsToFrames(t.cueIn, sampleRate)
	cueOut := min(audio.SecondsToFrames(t.cueOut, sampleRate), t.buffer.Length())
	if cueOut <= cueIn {
		t.peaks = &peaks.Peaks{Bits: t.peakBits, Data: make([][]int32, t.buffer.NumberOfChannels())}
		return nil
	}

	p, err := peaks.Extract(t.buffer, samplesPerPixel, t.monoPeaks, cueIn, cueOut, t.peakBits)
	if err != nil {
		return err
	}
	t.peaks = p
	return nil
}

func (t *Track) Peaks() *peaks.Peaks { return t.peaks }
