// SPDX-License-Identifier: EPL-2.0

// Package beepout plays channels through github.com/gopxl/beep/v2.
//
// The Device is itself a beep.Streamer wrapping a beep.Mixer, so it can be
// handed to speaker.Play (Start does this) or pulled directly by another
// mixer or a test. Each voice is a chain built on play:
//
//	buffer seeker -> looper -> effects.Gain -> effects.Pan -> beep.Resampler -> beep.Ctrl
//
// Pitch is the resampler ratio; volume and distance attenuation are folded
// into the gain; the stereo position comes from the voice's offset to the
// listener along X.
package beepout
