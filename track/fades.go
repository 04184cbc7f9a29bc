// SPDX-License-Identifier: EPL-2.0

package track

import (
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/ik5/wavedit/fade"
)

// SaveFade stores a fade and returns its new id. It does not validate the
// fade and does not register it as the track's fade-in or fade-out.
func (t *Track) SaveFade(typ fade.Type, shape fade.Shape, start, end float64) string {
	id := uuid.NewString()
	t.fades[id] = fade.Fade{Type: typ, Shape: shape, Start: start, End: end}
	return id
}

// SetFadeIn adds a fade-in over [start, end] of the track. Several fade-ins
// may coexist.
func (t *Track) SetFadeIn(start, end float64, shape fade.Shape) (string, error) {
	if !shape.Valid() {
		return "", fmt.Errorf("%w: %w: %s", ErrInvalidFade, fade.ErrUnsupportedShape, shape)
	}
	if start < 0 || end <= start || end > t.duration {
		return "", fmt.Errorf("%w: fade-in [%g, %g] on a %gs track", ErrInvalidFade, start, end, t.duration)
	}

	id := t.SaveFade(fade.FadeIn, shape, start, end)
	t.fadeIns = append(t.fadeIns, id)
	return id, nil
}

// SetFadeOut replaces the track's fade-out with one of the given length
// ending at the end of the track.
func (t *Track) SetFadeOut(length float64, shape fade.Shape) (string, error) {
	if !shape.Valid() {
		return "", fmt.Errorf("%w: %w: %s", ErrInvalidFade, fade.ErrUnsupportedShape, shape)
	}
	if length <= 0 || length > t.duration {
		return "", fmt.Errorf("%w: fade-out of %gs on a %gs track", ErrInvalidFade, length, t.duration)
	}

	if t.fadeOut != "" {
		t.RemoveFade(t.fadeOut)
	}

	t.fadeOut = t.SaveFade(fade.FadeOut, shape, t.duration-length, t.duration)
	return t.fadeOut, nil
}

// RemoveFade deletes a fade and drops it from the fade-in and fade-out slots.
// Unknown ids are ignored.
func (t *Track) RemoveFade(id string) {
	delete(t.fades, id)
	t.fadeIns = slices.DeleteFunc(t.fadeIns, func(in string) bool { return in == id })
	if t.fadeOut == id {
		t.fadeOut = ""
	}
}

// Fade returns the stored fade with the given id.
func (t *Track) Fade(id string) (fade.Fade, bool) {
	f, ok := t.fades[id]
	return f, ok
}

// Fades returns a copy of every stored fade keyed by id.
func (t *Track) Fades() map[string]fade.Fade {
	return maps.Clone(t.fades)
}

// FadeIns returns the fade-in ids in the order they were added.
func (t *Track) FadeIns() []string { return slices.Clone(t.fadeIns) }

// FadeOut returns the fade-out id, if the track has one.
func (t *Track) FadeOut() (string, bool) { return t.fadeOut, t.fadeOut != "" }

// fitFades drops fades that start at or after the end of the track and
// shortens the ones that run past it.
func (t *Track) fitFades() {
	for id, f := range t.fades {
		switch {
		case f.Start >= t.duration:
			t.RemoveFade(id)
		case f.End > t.duration:
			f.End = t.duration
			t.fades[id] = f
		}
	}
}
