// SPDX-License-Identifier: EPL-2.0

// Package audcue is the runtime core of a game audio layer.
//
// A System owns three things: a registry of loaded cue libraries, a pool of
// sound and music channels, and the volume cascade (master, music, sound,
// voice). Games ask it to play cues by key, by name or by definition; it
// resolves the cue, finds or steals a channel, and the channel then runs on
// its own as the host drives the frame callbacks.
//
// # Quick Start
//
//	sys, _ := audcue.New(headless.New(), audcue.DefaultConfig())
//	lib, _ := asset.LoadManifest(ctx, os.DirFS("audio"), "combat.json", audcue.NewCodecs())
//	sys.LoadLibrary(lib)
//
//	sys.Play(asset.Name("CombatSound.Explosion"), audcue.WithPosition(channel.Vec3{X: 4}))
//
//	// every frame
//	sys.OnFrameUpdate(dt, unscaledDt)
//	sys.OnLateUpdate()
//
// # Outputs
//
// Channels drive voices from a channel.Output. output/beepout plays through
// the speaker with github.com/gopxl/beep/v2; output/headless only keeps
// positions and is what the tests use.
//
// # Formats
//
// NewCodecs registers decoders for WAV (with smpl loop points), MP3, Ogg
// Vorbis, AIFF and FLAC. Clips are decoded fully at library load.
//
// # Concurrency
//
// Every System method takes one lock, so manifests may be loaded on worker
// goroutines while the game thread plays cues. Channels handed out by Play
// must only be touched from the thread driving the System.
package audcue
