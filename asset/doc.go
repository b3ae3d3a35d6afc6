// SPDX-License-Identifier: EPL-2.0

// Package asset describes playable cues.
//
// A Definition is one sound or music cue: the clips it picks from, how loud
// it plays relative to its volume tier, how it loops and fades, and how many
// copies may sound at once. Definitions are grouped into Libraries, each with
// a sound and a music Category. A cue is addressed by its Key, a stable
// 64-bit value built from the category's declared name and the cue's ordinal
// in it, or by its fully qualified name "<category>.<cue>".
//
// Libraries are usually built from a JSON manifest with LoadManifest, which
// decodes every referenced clip through an audio.Registry.
package asset
