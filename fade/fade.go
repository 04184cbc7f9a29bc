// SPDX-License-Identifier: EPL-2.0

package fade

import (
	"fmt"
	"strings"
)

// Type is the orientation of a fade.
type Type int

const (
	FadeIn Type = iota + 1
	FadeOut
)

// Shape selects the interpolation family of a fade.
type Shape int

const (
	Linear Shape = iota + 1
	Exponential
	Logarithmic
	SCurve
)

// DefaultShape is used when no shape is given.
const DefaultShape = Logarithmic

var typeNames = map[Type]string{
	FadeIn:  "FadeIn",
	FadeOut: "FadeOut",
}

var shapeNames = map[Shape]string{
	Linear:      "linear",
	Exponential: "exponential",
	Logarithmic: "logarithmic",
	SCurve:      "sCurve",
}

func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

func (s Shape) Valid() bool {
	_, ok := shapeNames[s]
	return ok
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// MarshalText lets shapes appear by name in YAML and JSON documents.
func (s Shape) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedShape, int(s))
	}
	return []byte(s.String()), nil
}

func (s *Shape) UnmarshalText(text []byte) error {
	parsed, err := ParseShape(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseShape converts a shape name, case-insensitively. "s-curve" and
// "scurve" are accepted as spellings of SCurve.
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linear":
		return Linear, nil
	case "exponential":
		return Exponential, nil
	case "logarithmic":
		return Logarithmic, nil
	case "scurve", "s-curve":
		return SCurve, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedShape, name)
}

// ParseType converts "fadein" / "fadeout" (any case, optional dash) to a Type.
func ParseType(name string) (Type, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "") {
	case "fadein":
		return FadeIn, nil
	case "fadeout":
		return FadeOut, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedType, name)
}

// Fade is an amplitude envelope over a track-relative time range in seconds.
type Fade struct {
	Type  Type
	Shape Shape
	Start float64
	End   float64
}

// Length returns End - Start.
func (f Fade) Length() float64 { return f.End - f.Start }
