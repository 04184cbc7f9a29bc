// SPDX-License-Identifier: EPL-2.0

package track

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ik5/wavedit/audio"
)

// SetCues sets the played region of the buffer and recomputes the duration
// and end time from the current start time. Fades that no longer fit the
// new duration are dropped or clamped.
func (t *Track) SetCues(cueIn, cueOut float64) error {
	if cueOut < cueIn {
		return fmt.Errorf("%w: cue out %g is before cue in %g", ErrInvalidRange, cueOut, cueIn)
	}

	t.cueIn = cueIn
	t.cueOut = cueOut
	t.duration = cueOut - cueIn
	t.endTime = t.startTime + t.duration
	t.fitFades()
	return nil
}

// SetStartTime moves the track on the timeline without touching its cues.
func (t *Track) SetStartTime(start float64) {
	t.startTime = start
	t.endTime = start + t.duration
}

// Trim narrows the track to the global window [start, end]. Buffer positions
// keep their place on the timeline; only the trimmed edges move. A window that
// does not overlap the track leaves it unchanged.
func (t *Track) Trim(start, end float64) error {
	if end < start {
		return fmt.Errorf("%w: trim [%g, %g]", ErrInvalidRange, start, end)
	}

	trackStart, trackEnd := t.startTime, t.endTime
	offset := t.cueIn - trackStart

	overlaps := (trackStart <= start && start <= trackEnd) ||
		(trackStart <= end && end <= trackEnd) ||
		(start <= trackStart && trackEnd <= end)
	if !overlaps {
		t.logger.Debug("trim outside track",
			zap.String("track", t.name),
			zap.Float64("start", start),
			zap.Float64("end", end))
		return nil
	}

	if err := t.SetCues(max(start, trackStart)+offset, min(end, trackEnd)+offset); err != nil {
		return err
	}
	if start > trackStart {
		t.SetStartTime(start)
	}
	return nil
}

// Cut removes [start, end) seconds of the buffer. The track gets a new,
// shorter buffer, cue out moves back by the removed length, fades that no
// longer fit are dropped or clamped, and the playouts are rebound to the new
// buffer. On error nothing changes.
func (t *Track) Cut(start, end float64) error {
	if t.buffer == nil {
		return ErrNoBuffer
	}

	rate := t.buffer.SampleRate()
	startSample := audio.SecondsToFrames(start, rate)
	endSample := audio.SecondsToFrames(end, rate)

	if startSample >= endSample || startSample < 0 || endSample > t.buffer.Length() {
		return fmt.Errorf("%w: cut [%g, %g) of a %gs buffer", ErrInvalidRange, start, end, t.buffer.Duration())
	}

	cueOut := t.cueOut - (end - start)
	if cueOut < t.cueIn {
		return fmt.Errorf("%w: cut [%g, %g) leaves cue out %g before cue in %g",
			ErrInvalidRange, start, end, cueOut, t.cueIn)
	}

	buf, err := audio.Cut(t.buffer, startSample, endSample)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRange, err)
	}
	cueOut = min(cueOut, buf.Duration())

	t.logger.Debug("cut",
		zap.String("track", t.name),
		zap.Float64("start", start),
		zap.Float64("end", end),
		zap.Int("start_sample", startSample),
		zap.Int("end_sample", endSample),
		zap.Float64("previous_duration", t.duration),
		zap.Int("frames", buf.Length()))

	t.buffer = buf
	t.cueOut = max(cueOut, t.cueIn)
	t.duration = t.cueOut - t.cueIn
	t.endTime = t.startTime + t.duration

	t.fitFades()
	t.rebind()
	return nil
}
