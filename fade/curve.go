// SPDX-License-Identifier: EPL-2.0

package fade

import (
	"fmt"
	"math"
	"sync"
)

// logBase is the base used by the logarithmic family.
const logBase = 10

type curveKey struct {
	shape Shape
	typ   Type
	width int
}

var curveCache sync.Map // curveKey -> []float64

// Curve returns width gain points describing the fade. FadeIn curves are
// drawn with reflection +1 and FadeOut curves with reflection -1.
func Curve(shape Shape, typ Type, width int) ([]float64, error) {
	reflection, err := reflectionOf(typ)
	if err != nil {
		return nil, err
	}
	if !shape.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedShape, shape)
	}
	if width <= 0 {
		return []float64{}, nil
	}

	key := curveKey{shape: shape, typ: typ, width: width}
	if cached, ok := curveCache.Load(key); ok {
		return append([]float64(nil), cached.([]float64)...), nil
	}

	var curve []float64
	switch shape {
	case Linear:
		curve = linear(width, reflection)
	case Exponential:
		curve = exponential(width, reflection)
	case Logarithmic:
		curve = logarithmic(width, logBase, reflection)
	case SCurve:
		curve = sCurve(width, reflection)
	}

	curveCache.Store(key, curve)
	return append([]float64(nil), curve...), nil
}

// Value evaluates the fade at progress in [0, 1]; progress outside the range
// is clamped. Unknown shapes or types yield unity gain.
func Value(shape Shape, typ Type, progress float64) float64 {
	reflection, err := reflectionOf(typ)
	if err != nil {
		return 1
	}
	x := math.Max(0, math.Min(1, progress))
	if reflection < 0 {
		x = 1 - x
	}

	switch shape {
	case Linear:
		return x
	case Exponential:
		return math.Exp(2*x-1) / math.E
	case Logarithmic:
		return math.Log1p(logBase*x) / math.Log1p(logBase)
	case SCurve:
		return math.Sin(math.Pi*x-math.Pi/2)/2 + 0.5
	}
	return 1
}

func reflectionOf(typ Type) (float64, error) {
	switch typ {
	case FadeIn:
		return 1, nil
	case FadeOut:
		return -1, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedType, typ)
}

// position maps index i to [0, 1] over length points. A single point sits at 1.
func position(i, length int) float64 {
	if length == 1 {
		return 1
	}
	return float64(i) / float64(length-1)
}

func linear(length int, reflection float64) []float64 {
	curve := make([]float64, length)
	for i := range length {
		x := position(i, length)
		if reflection > 0 {
			curve[i] = x
		} else {
			curve[i] = 1 - x
		}
	}
	return curve
}

func exponential(length int, reflection float64) []float64 {
	curve := make([]float64, length)
	for i := range length {
		index := i
		if reflection < 0 {
			index = length - 1 - i
		}
		curve[index] = math.Exp(2*position(i, length)-1) / math.E
	}
	return curve
}

func logarithmic(length int, base, reflection float64) []float64 {
	curve := make([]float64, length)
	for i := range length {
		index := i
		if reflection < 0 {
			index = length - 1 - i
		}
		x := float64(i) / float64(length)
		curve[index] = math.Log1p(base*x) / math.Log1p(base)
	}
	return curve
}

func sCurve(length int, reflection float64) []float64 {
	curve := make([]float64, length)
	phase := math.Pi / 2
	if reflection < 0 {
		phase = -phase
	}
	for i := range length {
		curve[i] = math.Sin(math.Pi*float64(i)/float64(length)-phase)/2 + 0.5
	}
	return curve
}
