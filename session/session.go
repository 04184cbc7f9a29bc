// SPDX-License-Identifier: EPL-2.0

package session

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ik5/wavedit/audio"
	"github.com/ik5/wavedit/fade"
	"github.com/ik5/wavedit/formats/aiff"
	"github.com/ik5/wavedit/formats/wav"
	"github.com/ik5/wavedit/track"
)

type Range struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

type FadeIn struct {
	Start float64    `yaml:"start"`
	End   float64    `yaml:"end"`
	Shape fade.Shape `yaml:"shape,omitempty"`
}

type FadeOut struct {
	Length float64    `yaml:"length"`
	Shape  fade.Shape `yaml:"shape,omitempty"`
}

// Track is one track entry. Pointer fields are optional; cues default to the
// whole buffer and gain to 1.
type Track struct {
	Name    string   `yaml:"name"`
	Src     string   `yaml:"src"`
	Start   float64  `yaml:"start"`
	CueIn   *float64 `yaml:"cue_in,omitempty"`
	CueOut  *float64 `yaml:"cue_out,omitempty"`
	Gain    *float64 `yaml:"gain,omitempty"`
	Pan     float64  `yaml:"pan"`
	Trim    *Range   `yaml:"trim,omitempty"`
	Cuts    []Range  `yaml:"cuts,omitempty"`
	FadeIns []FadeIn `yaml:"fade_ins,omitempty"`
	FadeOut *FadeOut `yaml:"fade_out,omitempty"`
}

type Session struct {
	// SampleRate every track is resampled to. 0 keeps each file's own rate.
	SampleRate int      `yaml:"sample_rate"`
	MasterGain *float64 `yaml:"master_gain,omitempty"`
	Tracks     []Track  `yaml:"tracks"`

	dir string
}

// Load decodes a session. Unknown keys are rejected.
func Load(r io.Reader) (*Session, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Session
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return &s, nil
}

// LoadFile loads a session from path and resolves relative sources against
// its directory.
func LoadFile(path string) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.dir = filepath.Dir(path)
	return s, nil
}

// Master returns the session's master gain, 1 when unset.
func (s *Session) Master() float64 {
	if s.MasterGain == nil {
		return 1
	}
	return *s.MasterGain
}

// DefaultRegistry knows the PCM containers this module can import.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	return reg
}

type buildOptions struct {
	shape     fade.Shape
	trackOpts []track.Option
	logger    *zap.Logger
}

type BuildOption func(*buildOptions)

// WithDefaultShape sets the shape of fades that do not name one.
func WithDefaultShape(shape fade.Shape) BuildOption {
	return func(o *buildOptions) { o.shape = shape }
}

// WithTrackOptions passes opts to every track.New call.
func WithTrackOptions(opts ...track.Option) BuildOption {
	return func(o *buildOptions) { o.trackOpts = append(o.trackOpts, opts...) }
}

func WithLogger(l *zap.Logger) BuildOption {
	return func(o *buildOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// Build loads every track's audio through reg and applies its edits.
func (s *Session) Build(reg *audio.Registry, opts ...BuildOption) ([]*track.Track, error) {
	o := buildOptions{shape: fade.DefaultShape, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	tracks := make([]*track.Track, 0, len(s.Tracks))
	for i, entry := range s.Tracks {
		name := entry.Name
		if name == "" {
			name = fmt.Sprintf("track %d", i+1)
		}

		buf, err := s.load(reg, entry.Src)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		t, err := s.build(entry, buf, o)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		o.logger.Debug("track loaded",
			zap.String("track", t.Name()),
			zap.String("src", entry.Src),
			zap.Float64("start", t.StartTime()),
			zap.Float64("duration", t.Duration()))
		tracks = append(tracks, t)
	}
	return tracks, nil
}

func (s *Session) load(reg *audio.Registry, src string) (*audio.Buffer, error) {
	if src == "" {
		return nil, ErrNoSource
	}

	dec, ok := reg.ForPath(src)
	if !ok {
		return nil, fmt.Errorf("%w: %s (known: %s)", ErrNoDecoder, src, strings.Join(reg.Formats(), ", "))
	}

	path := src
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.dir, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stream, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", src, err)
	}
	defer stream.Close()

	buf, err := audio.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", src, err)
	}

	if s.SampleRate > 0 && buf.SampleRate() != s.SampleRate {
		return audio.Resample(buf, s.SampleRate)
	}
	return buf, nil
}

func (s *Session) build(entry Track, buf *audio.Buffer, o buildOptions) (*track.Track, error) {
	t := track.New(o.trackOpts...)
	if entry.Name != "" {
		t.SetName(entry.Name)
	}
	t.SetSource(entry.Src)
	t.SetBuffer(buf)

	cueIn, cueOut := 0.0, buf.Duration()
	if entry.CueIn != nil {
		cueIn = *entry.CueIn
	}
	if entry.CueOut != nil {
		cueOut = *entry.CueOut
	}
	if err := t.SetCues(cueIn, cueOut); err != nil {
		return nil, err
	}
	t.SetStartTime(entry.Start)

	if entry.Gain != nil {
		t.SetGainLevel(*entry.Gain)
	}
	t.SetStereoPanValue(entry.Pan)

	if entry.Trim != nil {
		if err := t.Trim(entry.Trim.Start, entry.Trim.End); err != nil {
			return nil, err
		}
	}
	for _, c := range entry.Cuts {
		if err := t.Cut(c.Start, c.End); err != nil {
			return nil, err
		}
	}

	for _, f := range entry.FadeIns {
		if _, err := t.SetFadeIn(f.Start, f.End, shapeOr(f.Shape, o.shape)); err != nil {
			return nil, err
		}
	}
	if entry.FadeOut != nil {
		if _, err := t.SetFadeOut(entry.FadeOut.Length, shapeOr(entry.FadeOut.Shape, o.shape)); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func shapeOr(shape, fallback fade.Shape) fade.Shape {
	if shape == 0 {
		return fallback
	}
	return shape
}
