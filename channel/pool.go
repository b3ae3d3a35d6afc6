// SPDX-License-Identifier: EPL-2.0

package channel

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/ik5/audcue/asset"
)

// Eviction decides what happens when a cue at its instance limit is played
// again.
type Eviction int

const (
	// EvictOldest steals the cue's longest-playing channel.
	EvictOldest Eviction = iota
	// EvictReject drops the new request.
	EvictReject
	// EvictRandom steals one of the cue's channels at random.
	EvictRandom
)

func (e Eviction) String() string {
	switch e {
	case EvictReject:
		return "reject"
	case EvictRandom:
		return "random"
	}
	return "oldest"
}

// ParseEviction accepts the names String returns.
func ParseEviction(s string) (Eviction, error) {
	switch s {
	case "", "oldest":
		return EvictOldest, nil
	case "reject":
		return EvictReject, nil
	case "random":
		return EvictRandom, nil
	}
	return 0, fmt.Errorf("eviction %q: %w", s, asset.ErrUnknownEnum)
}

type PoolConfig struct {
	SoundChannels int
	MusicChannels int
	// Grow lets the pool add channels when none is free.
	Grow     bool
	Eviction Eviction
}

// Pool owns every channel. Sound and music channels live in separate
// partitions and never cross.
type Pool struct {
	out Output
	env *Env
	cfg PoolConfig
	log *slog.Logger

	channels  [2][]*Channel
	instances map[*asset.Definition][]*Channel
}

func NewPool(out Output, env *Env, cfg PoolConfig) *Pool {
	p := &Pool{
		out:       out,
		env:       env,
		cfg:       cfg,
		log:       env.Log.With("component", "pool"),
		instances: make(map[*asset.Definition][]*Channel),
	}
	for range cfg.SoundChannels {
		p.grow(asset.Sound)
	}
	for range cfg.MusicChannels {
		p.grow(asset.Music)
	}
	return p
}

func (p *Pool) grow(kind asset.Kind) *Channel {
	ch := newChannel(p, kind, len(p.channels[kind]))
	p.channels[kind] = append(p.channels[kind], ch)
	return ch
}

// Channels returns the partition for kind. The slice must not be modified.
func (p *Pool) Channels(kind asset.Kind) []*Channel { return p.channels[kind] }

// Eviction returns the instance-limit policy in force.
func (p *Pool) Eviction() Eviction { return p.cfg.Eviction }

// GetFreeChannel returns the first free channel of kind, growing the
// partition when allowed.
func (p *Pool) GetFreeChannel(kind asset.Kind) (*Channel, error) {
	for _, ch := range p.channels[kind] {
		if ch.IsFree() {
			return ch, nil
		}
	}
	if !p.cfg.Grow {
		return nil, fmt.Errorf("%s: %w", kind, ErrPoolExhausted)
	}
	ch := p.grow(kind)
	p.log.Debug("pool grown", slog.String("kind", kind.String()), slog.Int("size", len(p.channels[kind])))
	return ch, nil
}

// HandleInstanceLimit returns ch when def may start another instance.
// Otherwise it applies the eviction policy: the victim is moved to the back
// of the cue's queue and returned in place of ch, or the request is
// rejected with ErrInstanceLimit.
func (p *Pool) HandleInstanceLimit(def *asset.Definition, ch *Channel) (*Channel, error) {
	q := p.instances[def]
	if def.MaxInstances <= 0 || len(q) < def.MaxInstances {
		return ch, nil
	}

	var i int
	switch p.cfg.Eviction {
	case EvictReject:
		return nil, fmt.Errorf("%s: %w", def.FullName(), ErrInstanceLimit)
	case EvictRandom:
		i = p.env.Rand.IntN(len(q))
	}

	victim := q[i]
	q = append(slices.Delete(q, i, i+1), victim)
	p.instances[def] = q
	return victim, nil
}

// Acquire finds a channel for def: a stolen instance when def is at its
// limit, a free channel otherwise.
func (p *Pool) Acquire(def *asset.Definition) (*Channel, error) {
	if def == nil {
		return nil, asset.ErrInvalidAsset
	}
	if def.MaxInstances > 0 && len(p.instances[def]) >= def.MaxInstances {
		return p.HandleInstanceLimit(def, nil)
	}
	ch, err := p.GetFreeChannel(def.Kind())
	if err != nil {
		return nil, err
	}
	return p.HandleInstanceLimit(def, ch)
}

// Instances returns the channels playing def, oldest first.
func (p *Pool) Instances(def *asset.Definition) []*Channel {
	return slices.Clone(p.instances[def])
}

func (p *Pool) track(ch *Channel) {
	def := ch.def
	if def == nil || def.MaxInstances <= 0 {
		return
	}
	if slices.Contains(p.instances[def], ch) {
		return
	}
	p.instances[def] = append(p.instances[def], ch)
}

func (p *Pool) untrack(ch *Channel) {
	def := ch.def
	if def == nil {
		return
	}
	q := p.instances[def]
	i := slices.Index(q, ch)
	if i < 0 {
		return
	}
	q = slices.Delete(q, i, i+1)
	if len(q) == 0 {
		delete(p.instances, def)
		return
	}
	p.instances[def] = q
}

// Each calls fn for every active channel, sounds first.
func (p *Pool) Each(fn func(*Channel)) {
	for _, part := range p.channels {
		for _, ch := range part {
			if ch.active {
				fn(ch)
			}
		}
	}
}

// Active returns the active channels of kind.
func (p *Pool) Active(kind asset.Kind) []*Channel {
	var out []*Channel
	for _, ch := range p.channels[kind] {
		if ch.active {
			out = append(out, ch)
		}
	}
	return out
}

func (p *Pool) Update(dt, unscaled time.Duration) {
	p.Each(func(ch *Channel) { ch.Update(dt, unscaled) })
}

func (p *Pool) FixedUpdate() {
	p.Each(func(ch *Channel) { ch.FixedUpdate() })
}

func (p *Pool) LateUpdate() {
	p.Each(func(ch *Channel) { ch.LateUpdate() })
}

// SetTimeScale records scale and repitches every active channel.
func (p *Pool) SetTimeScale(scale float64) {
	old := p.env.TimeScale
	p.env.TimeScale = scale
	p.Each(func(ch *Channel) { ch.OnTimeScaleChanged(old, scale) })
}
