// SPDX-License-Identifier: EPL-2.0

// Package fade models amplitude fades applied at the edges of a track.
//
// A fade is described by a Type (FadeIn or FadeOut) and a Shape (Linear,
// Exponential, Logarithmic or SCurve). Both are closed enumerations: any
// value outside them is rejected with ErrUnsupportedType or
// ErrUnsupportedShape.
//
// # Curves
//
// Curve returns a fixed number of gain points for drawing or for feeding a
// value-curve automation:
//
//	points, err := fade.Curve(fade.Logarithmic, fade.FadeIn, 512)
//
// The result is cached per (shape, type, width), so repeated calls for the
// same fade are cheap. Each call returns its own copy.
//
// Value evaluates the same families continuously at a progress in [0, 1],
// which is what the renderers in the playout package use:
//
//	g := fade.Value(fade.SCurve, fade.FadeOut, 0.25)
//
// # Orientation
//
// FadeIn curves rise from silence towards unity gain, FadeOut curves fall
// from unity gain towards silence.
package fade
