// SPDX-License-Identifier: EPL-2.0

package utils

// FloatToPCM clamps x to [-1, 1] and scales it to a signed integer of
// bitDepth bits. Positive full scale maps to 2^(bitDepth-1)-1 so that the
// result never overflows; negative full scale maps to its mirror.
func FloatToPCM(x float32, bitDepth int) int {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	fullScale := float64(int64(1)<<(bitDepth-1) - 1)
	return int(float64(x) * fullScale)
}

func Float32ToInt16(x float32) int16 {
	return int16(FloatToPCM(x, 16))
}
