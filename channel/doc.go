// SPDX-License-Identifier: EPL-2.0

// Package channel implements playback slots and the pool that hands them
// out.
//
// A Channel binds one cue at a time and drives a backend Voice: it picks
// the clip, composes the volume from the cascade, applies pitch variance
// and timescale, runs fades and loop points, and tracks a spatialization
// target. All of it is advanced by explicit ticks (Update, FixedUpdate,
// LateUpdate); nothing here starts goroutines or sleeps.
//
// The Pool keeps sound and music channels apart, grows on demand when
// allowed, and enforces per-cue instance limits with a FIFO per cue.
//
// Nothing in this package is safe for concurrent use. The owner, usually
// audcue.System, serializes every call.
package channel
