// SPDX-License-Identifier: EPL-2.0

// Package wavedit is the timeline and playback-scheduling core of a
// multitrack waveform editor.
//
// A [Playlist] holds tracks (package track) placed on one global timeline.
// Each track maps its buffer, a cue window over that buffer, onto the timeline
// and carries its own gain, pan and fades. The playlist schedules every track
// on a shared transport clock, either on the output device or into an
// offline render:
//
//	pl := wavedit.New(wavedit.WithLogger(logger))
//	pl.Add(drums)
//	pl.Add(bass)
//
//	// Render seconds 2 to 10 of the timeline as stereo 44.1kHz.
//	buf, err := pl.Mixdown(ctx, 2, 10, 2, 44100)
//
// # Time domains
//
// Four clocks appear across the packages:
//   - global time: the playlist timeline, in seconds
//   - track time: seconds from a track's start on the timeline
//   - cue time: seconds into the track's buffer
//   - sample index: a frame of the buffer, cue time times its sample rate
//
// Fades live in track time. Cues live in cue time. Start and end times live in
// global time.
//
// # Packages
//
//   - audio: planar float buffers, decoding registry, resampling and cutting
//   - fade: fade shapes and their gain curves
//   - playout: the backend contract with live (oto) and offline renderers
//   - track: timeline placement, trim, cut, fades and play scheduling
//   - peaks: min/max waveform summaries for drawing
//   - session: YAML session files building tracks from audio on disk
//   - formats/wav, formats/aiff: PCM import and export
package wavedit
