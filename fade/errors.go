// SPDX-License-Identifier: EPL-2.0

package fade

import "errors"

var (
	// ErrUnsupportedShape indicates a shape outside Linear, Exponential, Logarithmic and SCurve
	ErrUnsupportedShape = errors.New("unsupported fade shape")

	// ErrUnsupportedType indicates a type other than FadeIn or FadeOut
	ErrUnsupportedType = errors.New("unsupported fade type")
)
