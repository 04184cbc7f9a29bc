// SPDX-License-Identifier: EPL-2.0

package track

import (
	"errors"
	"testing"

	"github.com/ik5/wavedit/fade"
	"github.com/ik5/wavedit/internal/playouttest"
	"github.com/ik5/wavedit/playout"
)

func TestSetCues(t *testing.T) {
	t.Parallel()

	tr := New()
	tr.SetStartTime(3)

	if err := tr.SetCues(1, 4); err != nil {
		t.Fatalf("SetCues() error = %v", err)
	}
	if tr.Duration() != 3 || tr.EndTime() != 6 {
		t.Errorf("duration, end = %g, %g, want 3, 6", tr.Duration(), tr.EndTime())
	}
	assertInvariants(t, tr)
}

func TestSetCues_ReversedLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	tr := New()
	_ = tr.SetCues(1, 4)

	if err := tr.SetCues(5, 2); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("SetCues() error = %v, want ErrInvalidRange", err)
	}
	if tr.CueIn() != 1 || tr.CueOut() != 4 || tr.Duration() != 3 {
		t.Errorf("state changed to cues (%g, %g)", tr.CueIn(), tr.CueOut())
	}
}

func TestSetStartTime_KeepsCues(t *testing.T) {
	t.Parallel()

	tr := New()
	_ = tr.SetCues(2, 5)
	tr.SetStartTime(10)

	if tr.StartTime() != 10 || tr.EndTime() != 13 {
		t.Errorf("start, end = %g, %g, want 10, 13", tr.StartTime(), tr.EndTime())
	}
	if tr.CueIn() != 2 || tr.CueOut() != 5 {
		t.Errorf("cues = (%g, %g), want (2, 5)", tr.CueIn(), tr.CueOut())
	}
}

func TestTrim(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		start, cueIn float64
		cueOut       float64
		trimStart    float64
		trimEnd      float64
		wantStart    float64
		wantCueIn    float64
		wantCueOut   float64
		wantEnd      float64
		wantDuration float64
	}{
		{
			name: "both edges", start: 0, cueIn: 0, cueOut: 10,
			trimStart: 2, trimEnd: 8,
			wantStart: 2, wantCueIn: 2, wantCueOut: 8, wantEnd: 8, wantDuration: 6,
		},
		{
			name: "left edge of offset track", start: 5, cueIn: 1, cueOut: 9,
			trimStart: 7, trimEnd: 20,
			wantStart: 7, wantCueIn: 3, wantCueOut: 9, wantEnd: 13, wantDuration: 6,
		},
		{
			name: "right edge only", start: 5, cueIn: 1, cueOut: 9,
			trimStart: 0, trimEnd: 10,
			wantStart: 5, wantCueIn: 1, wantCueOut: 6, wantEnd: 10, wantDuration: 5,
		},
		{
			name: "window covers track", start: 5, cueIn: 1, cueOut: 9,
			trimStart: 0, trimEnd: 100,
			wantStart: 5, wantCueIn: 1, wantCueOut: 9, wantEnd: 13, wantDuration: 8,
		},
		{
			name: "disjoint after", start: 0, cueIn: 0, cueOut: 10,
			trimStart: 20, trimEnd: 30,
			wantStart: 0, wantCueIn: 0, wantCueOut: 10, wantEnd: 10, wantDuration: 10,
		},
		{
			name: "disjoint before", start: 5, cueIn: 0, cueOut: 10,
			trimStart: 0, trimEnd: 4,
			wantStart: 5, wantCueIn: 0, wantCueOut: 10, wantEnd: 15, wantDuration: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tr := New()
			tr.SetStartTime(tt.start)
			if err := tr.SetCues(tt.cueIn, tt.cueOut); err != nil {
				t.Fatalf("SetCues() error = %v", err)
			}

			if err := tr.Trim(tt.trimStart, tt.trimEnd); err != nil {
				t.Fatalf("Trim() error = %v", err)
			}

			got := []float64{tr.StartTime(), tr.CueIn(), tr.CueOut(), tr.EndTime(), tr.Duration()}
			want := []float64{tt.wantStart, tt.wantCueIn, tt.wantCueOut, tt.wantEnd, tt.wantDuration}
			for i := range got {
				if !near(got[i], want[i]) {
					t.Errorf("start, cueIn, cueOut, end, duration = %v, want %v", got, want)
					break
				}
			}
			assertInvariants(t, tr)
		})
	}
}

func TestTrim_NeverWidens(t *testing.T) {
	t.Parallel()

	windows := [][2]float64{{-5, 1}, {0, 3}, {4, 6}, {6, 50}, {-1, 100}, {5, 5}}

	for _, w := range windows {
		tr := New()
		tr.SetStartTime(2)
		_ = tr.SetCues(1, 7)

		if err := tr.Trim(w[0], w[1]); err != nil {
			t.Fatalf("Trim(%v) error = %v", w, err)
		}
		if tr.StartTime() < 2 || tr.EndTime() > 8 || tr.CueIn() < 1 || tr.CueOut() > 7 {
			t.Errorf("Trim(%v) widened the track to [%g, %g] cues (%g, %g)",
				w, tr.StartTime(), tr.EndTime(), tr.CueIn(), tr.CueOut())
		}
		assertInvariants(t, tr)
	}
}

func TestTrim_ReversedWindow(t *testing.T) {
	t.Parallel()

	tr := New()
	_ = tr.SetCues(0, 10)

	if err := tr.Trim(8, 2); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("Trim() error = %v, want ErrInvalidRange", err)
	}
	if tr.Duration() != 10 {
		t.Errorf("duration = %g, want 10", tr.Duration())
	}
}

func TestCut_TenSecondsAt44100(t *testing.T) {
	t.Parallel()

	tr := newTestTrack(t, 10, 44100)
	before := tr.Buffer()

	if err := tr.Cut(2, 4); err != nil {
		t.Fatalf("Cut() error = %v", err)
	}

	if !near(tr.Duration(), 8) || !near(tr.CueOut(), 8) {
		t.Errorf("duration, cueOut = %g, %g, want 8, 8", tr.Duration(), tr.CueOut())
	}
	if got := before.Length() - tr.Buffer().Length(); got != 88200 {
		t.Errorf("removed %d frames, want 88200", got)
	}
	if before.Length() != 441000 {
		t.Errorf("original buffer was modified: %d frames", before.Length())
	}
	assertInvariants(t, tr)
}

func TestCut_RemovesTheRange(t *testing.T) {
	t.Parallel()

	tr := newTestTrack(t, 1, 10)
	if err := tr.Cut(0.2, 0.5); err != nil {
		t.Fatalf("Cut() error = %v", err)
	}

	data := tr.Buffer().ChannelData(0)
	if len(data) != 7 {
		t.Fatalf("frames = %d, want 7", len(data))
	}
	// ramp frames 0, 1 then 5..9
	if data[1] != float32(1)/10 || data[2] != float32(5)/10 {
		t.Errorf("frames around the cut = %v, %v", data[1], data[2])
	}
}

func TestCut_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		cueIn      float64
		start, end float64
	}{
		{name: "empty", start: 2, end: 2},
		{name: "reversed", start: 4, end: 2},
		{name: "negative start", start: -1, end: 2},
		{name: "past the end", start: 8, end: 11},
		{name: "cue out before cue in", cueIn: 5, start: 0, end: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tr := newTestTrack(t, 10, 100)
			_ = tr.SetCues(tt.cueIn, 10)
			id, _ := tr.SetFadeIn(1, 2, fade.Linear)
			buf := tr.Buffer()

			if err := tr.Cut(tt.start, tt.end); !errors.Is(err, ErrInvalidRange) {
				t.Fatalf("Cut() error = %v, want ErrInvalidRange", err)
			}

			if tr.Buffer() != buf || tr.CueIn() != tt.cueIn || tr.CueOut() != 10 {
				t.Error("failed cut changed the track")
			}
			if _, ok := tr.Fade(id); !ok {
				t.Error("failed cut removed a fade")
			}
		})
	}
}

func TestCut_NoBuffer(t *testing.T) {
	t.Parallel()

	if err := New().Cut(0, 1); !errors.Is(err, ErrNoBuffer) {
		t.Errorf("Cut() error = %v, want ErrNoBuffer", err)
	}
}

func TestCut_FitsFades(t *testing.T) {
	t.Parallel()

	tr := newTestTrack(t, 10, 100)
	head, _ := tr.SetFadeIn(0, 1, fade.Linear)
	late, _ := tr.SetFadeIn(8.5, 9.5, fade.Linear)
	out, _ := tr.SetFadeOut(3, fade.SCurve)

	if err := tr.Cut(0, 2); err != nil {
		t.Fatalf("Cut() error = %v", err)
	}

	if _, ok := tr.Fade(late); ok {
		t.Error("fade-in starting past the new end survived")
	}
	if ids := tr.FadeIns(); len(ids) != 1 || ids[0] != head {
		t.Errorf("FadeIns() = %v, want [%s]", ids, head)
	}

	f, ok := tr.Fade(out)
	if !ok {
		t.Fatal("fade-out removed")
	}
	if f.Start != 7 || !near(f.End, 8) {
		t.Errorf("fade-out = [%g, %g], want [7, 8]", f.Start, f.End)
	}
	assertInvariants(t, tr)
}

func TestTrim_FitsFades(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		end      float64
		keepLate bool
		keepOut  bool
		outEnd   float64
	}{
		{name: "fade-out past the new end is dropped", end: 5},
		{name: "fade-out running past the new end is clamped", end: 7.5, keepLate: true, keepOut: true, outEnd: 7.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tr := newTestTrack(t, 10, 100)
			head, _ := tr.SetFadeIn(0, 1, fade.Linear)
			late, _ := tr.SetFadeIn(6, 7, fade.Linear)
			out, _ := tr.SetFadeOut(3, fade.Linear)

			if err := tr.Trim(0, tt.end); err != nil {
				t.Fatalf("Trim() error = %v", err)
			}

			if _, ok := tr.Fade(head); !ok {
				t.Error("fade-in inside the trimmed track was removed")
			}
			if _, ok := tr.Fade(late); ok != tt.keepLate {
				t.Errorf("late fade-in kept = %v, want %v", ok, tt.keepLate)
			}

			f, ok := tr.Fade(out)
			if ok != tt.keepOut {
				t.Fatalf("fade-out kept = %v, want %v", ok, tt.keepOut)
			}
			if _, indexed := tr.FadeOut(); indexed != tt.keepOut {
				t.Errorf("fade-out indexed = %v, want %v", indexed, tt.keepOut)
			}
			if ok && (f.Start != 7 || !near(f.End, tt.outEnd)) {
				t.Errorf("fade-out = [%g, %g], want [7, %g]", f.Start, f.End, tt.outEnd)
			}
			if d := tr.Details(); (d.FadeOut != nil) != tt.keepOut {
				t.Errorf("Details().FadeOut = %+v", d.FadeOut)
			}
			assertInvariants(t, tr)
		})
	}
}

func TestSetCues_FitsFades(t *testing.T) {
	t.Parallel()

	tr := newTestTrack(t, 10, 100)
	id, _ := tr.SetFadeIn(2, 6, fade.SCurve)

	if err := tr.SetCues(1, 5); err != nil {
		t.Fatalf("SetCues() error = %v", err)
	}

	f, ok := tr.Fade(id)
	if !ok || f.Start != 2 || !near(f.End, 4) {
		t.Errorf("fade-in = %+v (kept %v), want [2, 4]", f, ok)
	}
	assertInvariants(t, tr)
}

func TestCut_RebindsPlayouts(t *testing.T) {
	t.Parallel()

	tr := newTestTrack(t, 10, 100)
	live, offline := &playouttest.Context{}, &playouttest.Context{}
	master := playout.NewMasterGain(0.8)

	_ = tr.SetPlayout(live, master)
	_ = tr.SetOfflinePlayout(offline)

	if err := tr.Cut(1, 2); err != nil {
		t.Fatalf("Cut() error = %v", err)
	}

	for name, ctx := range map[string]*playouttest.Context{"live": live, "offline": offline} {
		if len(ctx.Backends) != 2 {
			t.Errorf("%s backends = %d, want 2", name, len(ctx.Backends))
			continue
		}
		if ctx.Last().Buffer != tr.Buffer() {
			t.Errorf("%s backend plays the old buffer", name)
		}
		if ctx.Last().Master != master {
			t.Errorf("%s backend lost the master gain", name)
		}
	}
}
