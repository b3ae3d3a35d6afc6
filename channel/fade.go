// SPDX-License-Identifier: EPL-2.0

package channel

import "time"

type FadeDirection int

const (
	FadeNone FadeDirection = iota
	FadeIn
	FadeOut
)

func (d FadeDirection) String() string {
	switch d {
	case FadeIn:
		return "in"
	case FadeOut:
		return "out"
	}
	return "none"
}

// FadeState is a timed volume ramp advanced by Update. Fade-in ramps from
// zero to the channel's current target volume; fade-out ramps from From
// to zero and stops the channel when done.
type FadeState struct {
	Direction FadeDirection
	Elapsed   time.Duration
	Duration  time.Duration
	From      float64
}

// Progress is elapsed over duration in [0,1].
func (f FadeState) Progress() float64 {
	if f.Duration <= 0 {
		return 1
	}
	return min(float64(f.Elapsed)/float64(f.Duration), 1)
}

func (f FadeState) Done() bool { return f.Elapsed >= f.Duration }

// BeginFadeIn replaces any running fade with a ramp from silence to the
// target volume over d. A non-positive d sets the target immediately.
func (c *Channel) BeginFadeIn(d time.Duration) {
	if d <= 0 {
		c.fade = FadeState{}
		c.applyVolume()
		return
	}
	c.fade = FadeState{Direction: FadeIn, Duration: d}
	c.applyVolume()
}

// BeginFadeOut replaces any running fade with a ramp from the current
// volume to silence over d, after which the channel stops. A non-positive
// d stops at once.
func (c *Channel) BeginFadeOut(d time.Duration) {
	if !c.active {
		return
	}
	if d <= 0 {
		c.Stop(true)
		return
	}
	c.fade = FadeState{Direction: FadeOut, Duration: d, From: c.level()}
	c.applyVolume()
}

// Fade returns the running fade.
func (c *Channel) Fade() FadeState { return c.fade }

// advanceFade returns false when the fade stopped the channel.
func (c *Channel) advanceFade(step time.Duration) bool {
	c.fade.Elapsed += step
	if !c.fade.Done() {
		return true
	}
	if c.fade.Direction == FadeOut {
		c.Stop(true)
		return false
	}
	c.fade = FadeState{}
	return true
}

// fadeInOutFactor is the continuous head/tail ramp of cues with FadeInOut.
func (c *Channel) fadeInOutFactor() float64 {
	if c.clip == nil || c.clip.SampleRate == 0 {
		return 1
	}
	pos := time.Duration(float64(c.voice.Position()) / float64(c.clip.SampleRate) * float64(time.Second))
	remaining := c.clip.Duration() - pos

	f := 1.0
	if c.fadeInLen > 0 && pos < c.fadeInLen {
		f = min(f, float64(pos)/float64(c.fadeInLen))
	}
	if c.fadeOutLen > 0 && remaining < c.fadeOutLen {
		f = min(f, max(float64(remaining), 0)/float64(c.fadeOutLen))
	}
	return f
}
