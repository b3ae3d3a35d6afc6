// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC clips through github.com/gopxl/beep/v2/flac.
//
// beep streams stereo pairs; the adapter here turns any beep.Streamer into
// an audio.Source, folding the pair back to mono for single-channel files.
package flac
