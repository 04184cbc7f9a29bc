// SPDX-License-Identifier: EPL-2.0

package track

import "maps"

// StateHandler is an interaction mode attached to a track, such as selecting
// or shifting it with the pointer. Handlers live outside this package.
type StateHandler interface {
	// Events lists the input events the handler consumes.
	Events() []string
	// Class is the style class a renderer applies while the state is active.
	Class() string
	Setup(samplesPerPixel, sampleRate int)
}

// StateRegistry maps state names to handler constructors.
type StateRegistry map[string]func(*Track) StateHandler

// DefaultEnabledStates returns the states enabled on a new track.
func DefaultEnabledStates() map[string]bool {
	return map[string]bool{
		"cursor":  true,
		"fadein":  true,
		"fadeout": true,
		"select":  true,
		"shift":   true,
	}
}

// SetEnabledStates enables or disables states on top of the defaults.
func (t *Track) SetEnabledStates(enabled map[string]bool) {
	t.enabledStates = DefaultEnabledStates()
	maps.Copy(t.enabledStates, enabled)
}

func (t *Track) StateEnabled(name string) bool { return t.enabledStates[name] }

// SetState switches the interaction mode. The matching handler is attached
// when the state is enabled and registered; otherwise no handler is active.
func (t *Track) SetState(name string) {
	t.state = name
	t.handler = nil

	if !t.enabledStates[name] {
		return
	}
	if newHandler, ok := t.states[name]; ok {
		t.handler = newHandler(t)
	}
}

func (t *Track) State() string              { return t.state }
func (t *Track) StateHandler() StateHandler { return t.handler }
