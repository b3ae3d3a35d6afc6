// SPDX-License-Identifier: EPL-2.0

// Package volume holds the master, music, sound and voice gains and mutes,
// and notifies subscribers when a tier's effective gain changes.
package volume

import (
	"github.com/ik5/audcue/asset"
	"github.com/ik5/audcue/utils"
)

// Tier is one level of the cascade.
type Tier int

const (
	Master Tier = iota
	Music
	Sound
	Voice

	numTiers
)

func (t Tier) String() string {
	switch t {
	case Master:
		return "master"
	case Music:
		return "music"
	case Sound:
		return "sound"
	case Voice:
		return "voice"
	}
	return "unknown"
}

// TierOf maps a cue's channel type to its tier. ChannelNone maps to Sound.
func TierOf(ct asset.ChannelType) Tier {
	switch ct {
	case asset.ChannelMusic:
		return Music
	case asset.ChannelVoice:
		return Voice
	}
	return Sound
}

// Change is delivered to subscribers of a tier.
type Change struct {
	Tier Tier
	// Gain is the tier's raw gain.
	Gain float64
	// Effective is master and tier composed, mutes applied.
	Effective float64
}

type Listener func(Change)

// Subscription identifies a listener for Unsubscribe.
type Subscription struct {
	tier Tier
	id   uint64
}

type entry struct {
	id uint64
	fn Listener
}

type state struct {
	gain  float64
	muted bool
}

// Cascade is not safe for concurrent use; its owner serializes access.
type Cascade struct {
	tiers  [numTiers]state
	subs   [numTiers][]entry
	nextID uint64
}

// NewCascade starts with every tier at full gain, unmuted.
func NewCascade() *Cascade {
	c := &Cascade{}
	for i := range c.tiers {
		c.tiers[i].gain = 1
	}
	return c
}

func (c *Cascade) Gain(t Tier) float64 { return c.tiers[t].gain }
func (c *Cascade) Muted(t Tier) bool   { return c.tiers[t].muted }

// Effective composes master with t. Effective(Master) is master alone.
func (c *Cascade) Effective(t Tier) float64 {
	m := c.tiers[Master]
	if m.muted {
		return 0
	}
	if t == Master {
		return m.gain
	}
	s := c.tiers[t]
	if s.muted {
		return 0
	}
	return m.gain * s.gain
}

func (c *Cascade) SetGain(t Tier, gain float64) {
	c.update(t, func(s *state) { s.gain = utils.Clamp01(gain) })
}

func (c *Cascade) SetMuted(t Tier, muted bool) {
	c.update(t, func(s *state) { s.muted = muted })
}

func (c *Cascade) update(t Tier, mutate func(*state)) {
	var before [numTiers]float64
	for i := range before {
		before[i] = c.Effective(Tier(i))
	}

	mutate(&c.tiers[t])

	affected := []Tier{t}
	if t == Master {
		affected = []Tier{Master, Music, Sound, Voice}
	}
	for _, a := range affected {
		after := c.Effective(a)
		if after == before[a] {
			continue
		}
		c.notify(Change{Tier: a, Gain: c.tiers[a].gain, Effective: after})
	}
}

func (c *Cascade) notify(ch Change) {
	// Listeners may unsubscribe while being notified.
	subs := append([]entry(nil), c.subs[ch.Tier]...)
	for _, e := range subs {
		e.fn(ch)
	}
}

// Subscribe registers fn for changes to tier t.
func (c *Cascade) Subscribe(t Tier, fn Listener) Subscription {
	c.nextID++
	c.subs[t] = append(c.subs[t], entry{id: c.nextID, fn: fn})
	return Subscription{tier: t, id: c.nextID}
}

// Unsubscribe removes a listener. Unknown or zero subscriptions are ignored.
func (c *Cascade) Unsubscribe(s Subscription) {
	if s.id == 0 {
		return
	}
	list := c.subs[s.tier]
	for i, e := range list {
		if e.id == s.id {
			c.subs[s.tier] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Subscribers counts listeners on t.
func (c *Cascade) Subscribers(t Tier) int { return len(c.subs[t]) }
