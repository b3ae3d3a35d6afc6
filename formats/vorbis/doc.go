// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis clips with github.com/jfreymuth/oggvorbis.
// Vorbis is the usual container for music cues.
package vorbis
