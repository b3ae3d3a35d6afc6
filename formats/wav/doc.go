// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes WAV clips.
//
// Decoding goes through github.com/go-audio/wav and accepts integer PCM at
// 8, 16, 24 or 32 bits. The first loop of a smpl chunk is exposed through
// audio.LoopPointer, so authoring tools can carry loop points inside the
// file:
//
//	src, err := wav.Decoder{}.Decode(file)
//	clip, err := audio.ReadClip("music/theme.wav", src)
//	start, end, ok := clip.LoopPoints()
//
// PCM16 writes 16-bit files, optionally with a smpl loop:
//
//	pcm := wav.PCM16{SampleRate: 44100, Channels: 1, Samples: samples,
//		Loop: true, LoopStart: 10000, LoopEnd: 50000}
//	_, err := pcm.WriteTo(out)
package wav
