// SPDX-License-Identifier: EPL-2.0

package channel

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/ik5/audcue/asset"
	"github.com/ik5/audcue/audio"
	"github.com/ik5/audcue/volume"
)

// Vec3 is a world-space position.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Len() float64    { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Transform is a live spatialization target.
type Transform interface {
	Position() Vec3
}

// Voice is the backend side of a channel: one clip player.
type Voice interface {
	Load(clip *audio.Clip)
	Play()
	// Stop halts playback and rewinds to the start.
	Stop()
	Pause()
	Resume()
	IsPlaying() bool

	// Position and Seek are in frames of the loaded clip.
	Position() int
	Seek(frame int)

	SetVolume(v float64)
	Volume() float64
	SetPitch(p float64)
	Pitch() float64
	SetLooping(loop bool)
	SetPriority(p int)
	// SetSpatial sets the 2D/3D blend (0 flat, 1 fully positional) and the
	// distance at which the voice becomes silent.
	SetSpatial(blend, maxDistance float64)
	SetWorldPosition(p Vec3)
	SetEffects(fx []asset.Effect)
}

// Output creates voices.
type Output interface {
	NewVoice() Voice
}

// Timing selects the tick that copies live target positions.
type Timing int

const (
	TimingUpdate Timing = iota
	TimingFixed
	TimingLate
)

func (t Timing) String() string {
	switch t {
	case TimingFixed:
		return "fixed"
	case TimingLate:
		return "late"
	}
	return "update"
}

// Env is state shared by every channel of a pool.
type Env struct {
	Cascade *volume.Cascade
	Rand    *rand.Rand
	Log     *slog.Logger

	// Spatialize is the global spatialization switch.
	Spatialize bool
	Timing     Timing
	TimeScale  float64
	// Suspended is set while the application is paused or unfocused;
	// channels do not free themselves while it is.
	Suspended bool
}

// NewEnv returns an Env with unit timescale and spatialization on.
func NewEnv(cascade *volume.Cascade, rng *rand.Rand, log *slog.Logger) *Env {
	if log == nil {
		log = slog.Default()
	}
	return &Env{
		Cascade:    cascade,
		Rand:       rng,
		Log:        log,
		Spatialize: true,
		TimeScale:  1,
	}
}
