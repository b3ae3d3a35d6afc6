// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 clips with github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit stereo, so sources from this package
// report two channels regardless of the file's channel mode. MP3 has no
// loop metadata; cues looping an MP3 declare their loop points explicitly.
package mp3
