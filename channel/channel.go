// SPDX-License-Identifier: EPL-2.0

package channel

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ik5/audcue/asset"
	"github.com/ik5/audcue/audio"
	"github.com/ik5/audcue/volume"
)

// State is the externally visible phase of a channel.
type State int

const (
	Free State = iota
	Bound
	Playing
	FadingIn
	FadingOut
)

func (s State) String() string {
	switch s {
	case Free:
		return "free"
	case Bound:
		return "bound"
	case Playing:
		return "playing"
	case FadingIn:
		return "fading-in"
	case FadingOut:
		return "fading-out"
	}
	return "unknown"
}

type Channel struct {
	index int
	kind  asset.Kind
	voice Voice
	env   *Env
	pool  *Pool
	log   *slog.Logger

	def       *asset.Definition
	bound     bool
	active    bool
	reserved  bool
	paused    bool
	clip      *audio.Clip
	clipIndex int

	target   Transform
	fixedPos Vec3
	hasFixed bool
	spatial  bool

	sub        volume.Subscription
	subscribed bool
	tier       volume.Tier
	// base is the cascade's effective gain times the cue's relative volume.
	base float64

	pitchOffset float64
	delay       time.Duration
	waiting     bool

	fade                  FadeState
	fadeInLen, fadeOutLen time.Duration

	loopStart, loopEnd int
}

func newChannel(p *Pool, kind asset.Kind, index int) *Channel {
	return &Channel{
		index:     index,
		kind:      kind,
		voice:     p.out.NewVoice(),
		env:       p.env,
		pool:      p,
		log:       p.env.Log.With("channel", fmt.Sprintf("%s#%d", kind, index)),
		clipIndex: -1,
	}
}

func (c *Channel) Index() int                    { return c.index }
func (c *Channel) Kind() asset.Kind              { return c.kind }
func (c *Channel) Voice() Voice                  { return c.voice }
func (c *Channel) Definition() *asset.Definition { return c.def }
func (c *Channel) Clip() *audio.Clip             { return c.clip }
func (c *Channel) ClipIndex() int                { return c.clipIndex }
func (c *Channel) Target() Transform             { return c.target }
func (c *Channel) IsActive() bool                { return c.active }
func (c *Channel) Reserved() bool                { return c.reserved }
func (c *Channel) Paused() bool                  { return c.paused }

// IsFree reports whether the allocator may hand the channel out.
func (c *Channel) IsFree() bool { return !c.reserved && !c.active }

// SetReserved excludes the channel from allocation.
func (c *Channel) SetReserved(r bool) { c.reserved = r }

// FixedPosition returns the position snapshot, if one is set.
func (c *Channel) FixedPosition() (Vec3, bool) { return c.fixedPos, c.hasFixed }

// LoopRegion returns the loop points in frames.
func (c *Channel) LoopRegion() (start, end int) { return c.loopStart, c.loopEnd }

func (c *Channel) State() State {
	switch {
	case c.active && c.fade.Direction == FadeIn:
		return FadingIn
	case c.active && c.fade.Direction == FadeOut:
		return FadingOut
	case c.active:
		return Playing
	case c.bound:
		return Bound
	}
	return Free
}

func (c *Channel) String() string {
	return fmt.Sprintf("%s#%d", c.kind, c.index)
}

// Bind clears the channel and attaches def. It is always the first step
// before playing.
func (c *Channel) Bind(def *asset.Definition) error {
	if def == nil {
		return asset.ErrInvalidAsset
	}
	if def.Kind() != c.kind {
		return fmt.Errorf("%s on %s: %w", def.FullName(), c, ErrWrongPartition)
	}

	c.fade = FadeState{}
	c.voice.Stop()
	c.voice.Seek(0)
	c.unsubscribe()
	if c.def != nil && c.def != def {
		c.pool.untrack(c)
	}

	c.def = def
	c.bound = true
	c.active = false
	c.paused = false
	c.waiting = false
	c.target, c.hasFixed = nil, false
	c.spatial = def.Spatialize && c.env.Spatialize
	return nil
}

// SetTarget makes the channel follow t. It clears any fixed position and
// does nothing unless the cue and the environment both spatialize.
func (c *Channel) SetTarget(t Transform) {
	if !c.spatial || t == nil {
		return
	}
	c.target, c.hasFixed = t, false
	c.voice.SetWorldPosition(t.Position())
}

// SetPosition pins the channel at p. It clears any live target.
func (c *Channel) SetPosition(p Vec3) {
	if !c.spatial {
		return
	}
	c.target = nil
	c.fixedPos, c.hasFixed = p, true
	c.voice.SetWorldPosition(p)
}

// Play starts the bound cue. With no usable clip it returns
// ErrEmptyClipList and leaves the channel free.
func (c *Channel) Play() error {
	def := c.def
	if def == nil {
		return ErrNotBound
	}

	idx, clip, ok := def.SelectClip(c.env.Rand)
	if !ok {
		c.deactivate()
		return fmt.Errorf("%s: %w", def.FullName(), ErrEmptyClipList)
	}
	c.clip, c.clipIndex = clip, idx
	c.voice.Load(clip)

	if c.spatial {
		c.voice.SetSpatial(1, def.MaxDistance)
	} else {
		c.voice.SetSpatial(0, 0)
	}

	c.unsubscribe()
	c.tier = volume.TierOf(def.Tier())
	c.sub = c.env.Cascade.Subscribe(c.tier, c.onVolume)
	c.subscribed = true
	c.base = c.env.Cascade.Effective(c.tier) * def.Volume()

	c.voice.SetPriority(def.Priority)
	c.pitchOffset = def.RandomPitch(c.env.Rand) - 1
	c.voice.SetPitch(c.pitch(c.env.TimeScale))
	c.voice.SetLooping(def.LoopMode == asset.Loop)

	c.loopStart, c.loopEnd = 0, clip.Frames()
	if def.LoopMode.UsesPoints() {
		c.loopStart, c.loopEnd = def.LoopFrames(clip)
	}
	c.fadeInLen, c.fadeOutLen = 0, 0
	if def.FadeInOut {
		c.fadeInLen, c.fadeOutLen = def.FadeDurations(clip)
	}
	c.voice.SetEffects(def.Effects)
	c.applyVolume()

	c.active = true
	c.delay = def.Delay
	c.waiting = c.delay > 0
	if !c.waiting {
		c.voice.Play()
	}
	c.pool.track(c)
	return nil
}

func (c *Channel) pitch(scale float64) float64 {
	if c.def != nil && c.def.IgnoreTimeScale {
		scale = 1
	}
	return max(scale+c.pitchOffset, 0)
}

// Stop deactivates the channel. With instant the voice is cut; otherwise
// it plays out its current pass without looping.
func (c *Channel) Stop(instant bool) {
	if instant {
		c.voice.Stop()
	}
	c.fade = FadeState{}
	c.voice.SetLooping(false)
	c.deactivate()
}

func (c *Channel) deactivate() {
	if c.active {
		c.log.Debug("channel released", slog.String("cue", c.def.FullName()))
	}
	c.active = false
	c.bound = false
	c.paused = false
	c.waiting = false
	c.target, c.hasFixed = nil, false
	c.unsubscribe()
	c.pool.untrack(c)
}

func (c *Channel) unsubscribe() {
	if c.subscribed {
		c.env.Cascade.Unsubscribe(c.sub)
		c.subscribed = false
	}
}

// Pause holds the voice and the channel's timers.
func (c *Channel) Pause() {
	if !c.active || c.paused {
		return
	}
	c.paused = true
	c.voice.Pause()
}

func (c *Channel) Resume() {
	if !c.paused {
		return
	}
	c.paused = false
	c.voice.Resume()
}

func (c *Channel) onVolume(ch volume.Change) {
	if c.def == nil {
		return
	}
	c.base = ch.Effective * c.def.Volume()
	c.applyVolume()
}

// level is the volume the voice should have now. The head/tail envelope
// of FadeInOut cues also shapes a fade-in; a fade-out ramps down from the
// level it started at, envelope included.
func (c *Channel) level() float64 {
	envelope := 1.0
	if c.def != nil && c.def.FadeInOut {
		envelope = c.fadeInOutFactor()
	}
	switch c.fade.Direction {
	case FadeIn:
		return c.base * envelope * c.fade.Progress()
	case FadeOut:
		return c.fade.From * (1 - c.fade.Progress())
	}
	return c.base * envelope
}

func (c *Channel) applyVolume() {
	c.voice.SetVolume(c.level())
}

// Update advances delay, fades, loop points and target tracking by one
// frame. dt is scaled game time; unscaled is used by cues that ignore the
// timescale.
func (c *Channel) Update(dt, unscaled time.Duration) {
	if !c.active || c.paused {
		return
	}
	step := dt
	if c.def.IgnoreTimeScale {
		step = unscaled
	}

	if c.waiting {
		c.delay -= step
		if c.delay > 0 {
			return
		}
		c.waiting = false
		c.voice.Play()
	}

	if c.fade.Direction != FadeNone {
		if !c.advanceFade(step) {
			return
		}
		c.applyVolume()
	} else if c.def.FadeInOut {
		c.applyVolume()
	}

	switch c.def.LoopMode {
	case asset.LoopWithPoints, asset.ClampedLoopPoints:
		pos := c.voice.Position()
		switch {
		case pos >= c.loopEnd || (!c.voice.IsPlaying() && !c.env.Suspended):
			c.voice.Play()
			c.voice.Seek(c.loopStart)
		case c.def.LoopMode == asset.ClampedLoopPoints && pos < c.loopStart:
			c.voice.Seek(c.loopStart)
		}
	default:
		if !c.voice.IsPlaying() && !c.env.Suspended {
			c.deactivate()
			return
		}
	}

	if c.env.Timing == TimingUpdate {
		c.track()
	}
}

// FixedUpdate tracks the target when timing is TimingFixed.
func (c *Channel) FixedUpdate() {
	if c.active && c.env.Timing == TimingFixed {
		c.track()
	}
}

// LateUpdate tracks the target when timing is TimingLate.
func (c *Channel) LateUpdate() {
	if c.active && c.env.Timing == TimingLate {
		c.track()
	}
}

func (c *Channel) track() {
	if c.target != nil {
		c.voice.SetWorldPosition(c.target.Position())
	}
}

// OnTimeScaleChanged keeps the channel's pitch offset from the timescale.
func (c *Channel) OnTimeScaleChanged(_, scale float64) {
	if !c.active || c.def.IgnoreTimeScale {
		return
	}
	c.voice.SetPitch(c.pitch(scale))
}
