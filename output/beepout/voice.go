// SPDX-License-Identifier: EPL-2.0

package beepout

import (
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/ik5/audcue/asset"
	"github.com/ik5/audcue/audio"
	"github.com/ik5/audcue/channel"
	"github.com/ik5/audcue/utils"
)

// Voice is one clip player in a Device's mix.
type Voice struct {
	dev *Device

	clip   *audio.Clip
	seeker *bufferSeeker
	loop   *looper
	gain   *effects.Gain
	pan    *effects.Pan
	resamp *beep.Resampler
	ctrl   *beep.Ctrl

	playing  bool
	paused   bool
	looping  bool
	volume   float64
	pitch    float64
	priority int
	blend    float64
	maxDist  float64
	world    channel.Vec3
	effects  []asset.Effect
}

func (v *Voice) Load(clip *audio.Clip) {
	v.dev.mtx.Lock()
	defer v.dev.mtx.Unlock()

	v.stopLocked()
	v.clip = clip
	v.seeker = newBufferSeeker(v.dev.buffer(clip))
}

func (v *Voice) Play() {
	v.dev.mtx.Lock()
	defer v.dev.mtx.Unlock()

	if v.seeker == nil || v.playing {
		return
	}
	v.loop = &looper{v: v, s: v.seeker}
	v.gain = &effects.Gain{Streamer: v.loop}
	v.pan = &effects.Pan{Streamer: v.gain}
	v.resamp = beep.Resample(resampleQuality, beep.SampleRate(v.clip.SampleRate), v.dev.rate, v.pan)
	v.ctrl = &beep.Ctrl{Streamer: v.resamp, Paused: v.paused}
	v.applyLocked()
	v.dev.mixer.Add(v.ctrl)
	v.playing = true
}

func (v *Voice) Stop() {
	v.dev.mtx.Lock()
	defer v.dev.mtx.Unlock()

	v.stopLocked()
}

func (v *Voice) stopLocked() {
	if v.ctrl != nil {
		// The mixer drops a Ctrl with no streamer on its next pass.
		v.ctrl.Streamer = nil
		v.ctrl = nil
	}
	v.loop = nil
	v.playing = false
	if v.seeker != nil {
		v.seeker.Seek(0)
	}
}

func (v *Voice) finishLocked(l *looper) {
	if l != v.loop {
		return
	}
	v.playing = false
	if v.ctrl != nil {
		v.ctrl.Streamer = nil
		v.ctrl = nil
	}
	v.seeker.Seek(0)
}

func (v *Voice) Pause() {
	v.dev.mtx.Lock()
	defer v.dev.mtx.Unlock()

	v.paused = true
	if v.ctrl != nil {
		v.ctrl.Paused = true
	}
}

func (v *Voice) Resume() {
	v.dev.mtx.Lock()
	defer v.dev.mtx.Unlock()

	v.paused = false
	if v.ctrl != nil {
		v.ctrl.Paused = false
	}
}

func (v *Voice) IsPlaying() bool {
	v.dev.mtx.Lock()
	defer v.dev.mtx.Unlock()

	return v.playing
}

func (v *Voice) Position() int {
	v.dev.mtx.Lock()
	defer v.dev.mtx.Unlock()

	if v.seeker == nil {
		return 0
	}
	return v.seeker.Position()
}

func (v *Voice) Seek(frame int) {
	v.dev.mtx.Lock()
	defer v.dev.mtx.Unlock()

	if v.seeker != nil {
		v.seeker.Seek(frame)
	}
}

func (v *Voice) SetVolume(vol float64) {
	v.set(func() { v.volume = vol })
}

func (v *Voice) Volume() float64 {
	v.dev.mtx.Lock()
	defer v.dev.mtx.Unlock()

	return v.volume
}

func (v *Voice) SetPitch(p float64) {
	v.set(func() { v.pitch = p })
}

func (v *Voice) Pitch() float64 {
	v.dev.mtx.Lock()
	defer v.dev.mtx.Unlock()

	return v.pitch
}

func (v *Voice) SetLooping(loop bool) {
	v.set(func() { v.looping = loop })
}

func (v *Voice) SetPriority(p int) {
	v.set(func() { v.priority = p })
}

func (v *Voice) SetSpatial(blend, maxDistance float64) {
	v.set(func() { v.blend, v.maxDist = utils.Clamp01(blend), maxDistance })
}

func (v *Voice) SetWorldPosition(p channel.Vec3) {
	v.set(func() { v.world = p })
}

// SetEffects records the cue's filter settings. The mix applies none of
// them yet; they are kept for inspection.
func (v *Voice) SetEffects(fx []asset.Effect) {
	v.set(func() { v.effects = fx })
}

func (v *Voice) set(fn func()) {
	v.dev.mtx.Lock()
	defer v.dev.mtx.Unlock()

	fn()
	v.applyLocked()
}

// applyLocked pushes volume, spatial and pitch state into the chain.
func (v *Voice) applyLocked() {
	if v.ctrl == nil {
		return
	}
	atten, pan := spatialize(v.world.Sub(v.dev.listener), v.blend, v.maxDist)
	v.gain.Gain = v.volume*atten - 1
	v.pan.Pan = pan

	if v.pitch <= 0 {
		v.ctrl.Paused = true
		return
	}
	v.ctrl.Paused = v.paused
	v.resamp.SetRatio(float64(v.clip.SampleRate) / float64(v.dev.rate) * v.pitch)
}

// spatialize returns the gain factor and stereo pan for a voice at offset
// from the listener. blend 0 is flat, 1 fully positional; attenuation is
// linear to silence at maxDistance.
func spatialize(offset channel.Vec3, blend, maxDistance float64) (atten, pan float64) {
	if blend <= 0 || maxDistance <= 0 {
		return 1, 0
	}
	dist := offset.Len()
	positional := utils.Clamp01(1 - dist/maxDistance)
	atten = 1 - blend + blend*positional
	pan = blend * utils.Clamp(offset.X/maxDistance, -1, 1)
	return atten, pan
}
