// SPDX-License-Identifier: EPL-2.0

package track

import "github.com/ik5/wavedit/fade"

type FadeDetails struct {
	Shape    fade.Shape `yaml:"shape"`
	Duration float64    `yaml:"duration"`
}

// Details describes a track the way a session file would.
type Details struct {
	Name      string        `yaml:"name"`
	Src       string        `yaml:"src,omitempty"`
	Start     float64       `yaml:"start"`
	End       float64       `yaml:"end"`
	CueIn     float64       `yaml:"cue_in"`
	CueOut    float64       `yaml:"cue_out"`
	StereoPan float64       `yaml:"pan"`
	Gain      float64       `yaml:"gain"`
	FadeIns   []FadeDetails `yaml:"fade_ins,omitempty"`
	FadeOut   *FadeDetails  `yaml:"fade_out,omitempty"`
}

func (t *Track) Details() Details {
	d := Details{
		Name:      t.name,
		Src:       t.src,
		Start:     t.startTime,
		End:       t.endTime,
		CueIn:     t.cueIn,
		CueOut:    t.cueOut,
		StereoPan: t.stereoPan,
		Gain:      t.gain,
	}

	for _, id := range t.fadeIns {
		f := t.fades[id]
		d.FadeIns = append(d.FadeIns, FadeDetails{Shape: f.Shape, Duration: f.Length()})
	}
	if f, ok := t.fades[t.fadeOut]; ok && t.fadeOut != "" {
		d.FadeOut = &FadeDetails{Shape: f.Shape, Duration: f.Length()}
	}
	return d
}
