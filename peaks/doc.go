// SPDX-License-Identifier: EPL-2.0

// Package peaks summarises a buffer region as min/max pairs per pixel, the
// data a waveform renderer draws from.
package peaks
