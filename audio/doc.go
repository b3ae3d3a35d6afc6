// SPDX-License-Identifier: EPL-2.0

// Package audio is the clip layer of audcue.
//
// Decoders in the formats subpackages stream a file as a Source. ReadClip
// drains a Source into a Clip, the immutable in-memory PCM buffer that cue
// definitions reference and that output backends play:
//
//	codecs := audio.NewRegistry()
//	codecs.Register("wav", wav.Decoder{})
//
//	dec, ok := codecs.Lookup("sfx/boom.wav")
//	src, _ := dec.Decode(file)
//	clip, err := audio.ReadClip("sfx/boom.wav", src)
//
// Clips can be conformed to a mixer rate with Resample and folded to a
// single channel with Downmix; spatialized cues use mono clips.
//
// # Sample Format
//
// Samples are interleaved float32 values in [-1.0, 1.0]. Positions exposed
// by Clip are in frames (one sample per channel), which is the unit loop
// points are expressed in.
//
// # Loop Metadata
//
// A Source may implement LoopPointer when its container carries loop points
// (WAV smpl chunks do). ReadClip copies them onto the Clip.
package audio
