// SPDX-License-Identifier: EPL-2.0

package track

import (
	"maps"
	"slices"

	"github.com/ik5/wavedit/audio"
	"github.com/ik5/wavedit/fade"
)

// Snapshot is the editable state of a track at one point in time. Buffers are
// never modified in place, so holding one is enough to undo a cut.
type Snapshot struct {
	buffer    *audio.Buffer
	cueIn     float64
	cueOut    float64
	startTime float64
	endTime   float64
	duration  float64
	fades     map[string]fade.Fade
	fadeIns   []string
	fadeOut   string
}

func (t *Track) Snapshot() Snapshot {
	return Snapshot{
		buffer:    t.buffer,
		cueIn:     t.cueIn,
		cueOut:    t.cueOut,
		startTime: t.startTime,
		endTime:   t.endTime,
		duration:  t.duration,
		fades:     maps.Clone(t.fades),
		fadeIns:   slices.Clone(t.fadeIns),
		fadeOut:   t.fadeOut,
	}
}

// Restore puts the track back to s and rebinds its playouts when the buffer
// changed.
func (t *Track) Restore(s Snapshot) {
	rebuffer := s.buffer != t.buffer

	t.buffer = s.buffer
	t.cueIn = s.cueIn
	t.cueOut = s.cueOut
	t.startTime = s.startTime
	t.endTime = s.endTime
	t.duration = s.duration
	t.fades = maps.Clone(s.fades)
	t.fadeIns = slices.Clone(s.fadeIns)
	t.fadeOut = s.fadeOut

	if t.fades == nil {
		t.fades = make(map[string]fade.Fade)
	}
	if rebuffer {
		t.rebind()
	}
}
