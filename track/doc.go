// SPDX-License-Identifier: EPL-2.0

/*
Package track holds a single audio clip placed on a multitrack timeline.

A Track reconciles four time domains: global playlist time, time relative to
the track's start, cue time inside the owned buffer, and sample indices. It
owns the clip's fades and computes, for any transport window, when and from
which buffer offset its playout backend has to play.

Basic usage:

	t := track.New(track.WithLogger(log))
	t.SetBuffer(buf)
	t.SetCues(0, buf.Duration())
	t.SetPlayout(ctx, master)
	t.SetFadeOut(2, fade.SCurve)

	done, err := t.SchedulePlay(ctx.CurrentTime(), 0)
	if err != nil {
		return err
	}
	<-done

A Track is not safe for concurrent use. Mutating a track while a scheduled
playback is in flight does not affect that playback; stop it first.
*/
package track
