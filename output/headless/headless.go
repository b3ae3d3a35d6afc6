// SPDX-License-Identifier: EPL-2.0

// Package headless is an output that produces no sound. Voices keep a
// play position that moves only when Advance is called, which makes
// channel behavior reproducible in tests and on machines without audio.
package headless

import (
	"math"
	"sync"
	"time"

	"github.com/ik5/audcue/asset"
	"github.com/ik5/audcue/audio"
	"github.com/ik5/audcue/channel"
)

type Device struct {
	voices []*Voice

	mtx sync.Mutex
}

func New() *Device {
	return &Device{}
}

// NewVoice implements channel.Output.
func (d *Device) NewVoice() channel.Voice {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	v := &Voice{dev: d, volume: 1, pitch: 1}
	d.voices = append(d.voices, v)
	return v
}

// Advance moves every playing voice forward by elapsed wall time.
func (d *Device) Advance(elapsed time.Duration) {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	for _, v := range d.voices {
		v.advance(elapsed.Seconds())
	}
}

// Voices returns every voice created so far.
func (d *Device) Voices() []*Voice {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	return append([]*Voice(nil), d.voices...)
}

// Voice records everything a channel sets on it.
type Voice struct {
	dev *Device

	clip    *audio.Clip
	playing bool
	paused  bool
	looping bool
	pos     float64

	volume   float64
	pitch    float64
	priority int
	blend    float64
	maxDist  float64
	world    channel.Vec3
	effects  []asset.Effect
	plays    int
}

func (v *Voice) frames() int {
	return v.clip.Frames()
}

func (v *Voice) advance(sec float64) {
	if !v.playing || v.paused || v.clip == nil {
		return
	}
	v.pos += sec * float64(v.clip.SampleRate) * v.pitch
	n := float64(v.frames())
	if v.pos < n {
		return
	}
	if v.looping && n > 0 {
		v.pos = math.Mod(v.pos, n)
		return
	}
	v.playing = false
	v.pos = 0
}

func (v *Voice) Load(clip *audio.Clip) {
	v.clip = clip
	v.pos = 0
	v.playing = false
}

func (v *Voice) Play() {
	if v.clip == nil {
		return
	}
	v.playing = true
	v.paused = false
	v.plays++
}

func (v *Voice) Stop() {
	v.playing = false
	v.pos = 0
}

func (v *Voice) Pause()          { v.paused = true }
func (v *Voice) Resume()         { v.paused = false }
func (v *Voice) IsPlaying() bool { return v.playing }
func (v *Voice) IsPaused() bool  { return v.paused }
func (v *Voice) Position() int   { return int(v.pos) }

func (v *Voice) Seek(frame int) {
	if v.clip == nil {
		v.pos = 0
		return
	}
	v.pos = float64(min(max(frame, 0), v.frames()))
}

func (v *Voice) SetVolume(vol float64)           { v.volume = vol }
func (v *Voice) Volume() float64                 { return v.volume }
func (v *Voice) SetPitch(p float64)              { v.pitch = p }
func (v *Voice) Pitch() float64                  { return v.pitch }
func (v *Voice) SetLooping(loop bool)            { v.looping = loop }
func (v *Voice) Looping() bool                   { return v.looping }
func (v *Voice) SetPriority(p int)               { v.priority = p }
func (v *Voice) Priority() int                   { return v.priority }
func (v *Voice) SetWorldPosition(p channel.Vec3) { v.world = p }
func (v *Voice) WorldPosition() channel.Vec3     { return v.world }
func (v *Voice) SetEffects(fx []asset.Effect)    { v.effects = fx }
func (v *Voice) Effects() []asset.Effect         { return v.effects }
func (v *Voice) Clip() *audio.Clip               { return v.clip }

// Plays counts Play calls since creation.
func (v *Voice) Plays() int { return v.plays }

func (v *Voice) SetSpatial(blend, maxDistance float64) {
	v.blend, v.maxDist = blend, maxDistance
}

// Spatial returns the blend and max distance last set.
func (v *Voice) Spatial() (blend, maxDistance float64) { return v.blend, v.maxDist }
