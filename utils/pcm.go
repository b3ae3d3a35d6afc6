// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 converts a normalized sample to 16-bit PCM.
// Values outside [-1, 1] are clipped; 32767 is used for both signs so the
// conversion is symmetric.
func Float32ToInt16(x float32) int16 {
	x = Clamp(x, -1, 1)
	return int16(x * 32767.0)
}

// Int16ToFloat32 converts 16-bit PCM to a normalized sample.
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}
