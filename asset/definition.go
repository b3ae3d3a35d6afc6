// SPDX-License-Identifier: EPL-2.0

package asset

import (
	"math/rand/v2"
	"time"

	"github.com/ik5/audcue/audio"
	"github.com/ik5/audcue/utils"
)

// LoopMode selects how a cue repeats.
type LoopMode int

const (
	NoLoop LoopMode = iota
	// Loop repeats the whole clip.
	Loop
	// LoopWithPoints jumps back to LoopStart whenever playback reaches LoopEnd.
	LoopWithPoints
	// ClampedLoopPoints is LoopWithPoints that also keeps the position from
	// falling below LoopStart.
	ClampedLoopPoints
)

func (m LoopMode) String() string {
	switch m {
	case NoLoop:
		return "none"
	case Loop:
		return "loop"
	case LoopWithPoints:
		return "points"
	case ClampedLoopPoints:
		return "clamped"
	}
	return "unknown"
}

// UsesPoints reports whether the mode is driven by loop points.
func (m LoopMode) UsesPoints() bool {
	return m == LoopWithPoints || m == ClampedLoopPoints
}

// ChannelType is the volume tier a cue plays through.
type ChannelType int

const (
	// ChannelNone defers to the cue's kind.
	ChannelNone ChannelType = iota
	ChannelMusic
	ChannelSound
	ChannelVoice
)

func (c ChannelType) String() string {
	switch c {
	case ChannelNone:
		return "none"
	case ChannelMusic:
		return "music"
	case ChannelSound:
		return "sound"
	case ChannelVoice:
		return "voice"
	}
	return "unknown"
}

// Kind is the namespace a cue lives in. It picks the pool partition.
type Kind int

const (
	Sound Kind = iota
	Music
)

func (k Kind) String() string {
	if k == Music {
		return "music"
	}
	return "sound"
}

// Selection picks the next clip of a multi-clip cue.
type Selection int

const (
	// Random picks by weight.
	Random Selection = iota
	// Sequential walks the clip list in order.
	Sequential
)

// Effect is an effect-filter setting passed through to the output backend.
type Effect struct {
	Type   string             `json:"type"`
	Params map[string]float64 `json:"params,omitempty"`
}

// Definition describes one cue. It is immutable once its library is loaded,
// apart from the clip cursor used for no-repeat selection.
type Definition struct {
	Name  string
	Clips []*audio.Clip
	// Weights parallel Clips. A missing or mismatched list weighs every clip
	// equally; a non-positive weight excludes a clip from random selection.
	Weights     []float64
	Selection   Selection
	NeverRepeat bool

	// RelativeVolume scales the cue against its tier, in [0, 1].
	RelativeVolume float64
	// Priority is an ordinal; lower is more important.
	Priority      int
	PitchVariance float64

	LoopMode LoopMode
	// LoopStart and LoopEnd are seconds into the clip. Both zero means the
	// clip's own loop metadata, or the whole clip.
	LoopStart, LoopEnd float64

	// FadeInOut ramps volume over the head and tail of every play.
	FadeInOut bool
	// FadeInDuration and FadeOutDuration are fractions of the clip length,
	// or seconds when FadeSeconds is set.
	FadeInDuration, FadeOutDuration float64
	FadeSeconds                     bool

	// MaxInstances caps concurrent plays, 0 is unlimited.
	MaxInstances int

	Spatialize  bool
	MaxDistance float64

	ChannelType     ChannelType
	IgnoreTimeScale bool
	// Delay before the clip starts.
	Delay time.Duration

	Effects []Effect

	kind     Kind
	fullName string
	lastClip int
	picked   bool
}

// FullName is "<category>.<cue>" once the cue belongs to a library.
func (d *Definition) FullName() string {
	if d.fullName == "" {
		return d.Name
	}
	return d.fullName
}

func (d *Definition) Kind() Kind { return d.kind }

// Volume is RelativeVolume clamped to [0, 1].
func (d *Definition) Volume() float64 { return utils.Clamp01(d.RelativeVolume) }

// Tier resolves ChannelNone to the tier of the cue's kind.
func (d *Definition) Tier() ChannelType {
	if d.ChannelType != ChannelNone {
		return d.ChannelType
	}
	if d.kind == Music {
		return ChannelMusic
	}
	return ChannelSound
}

// LastClip returns the index of the most recently selected clip, or -1.
func (d *Definition) LastClip() int {
	if !d.picked {
		return -1
	}
	return d.lastClip
}

func usable(c *audio.Clip) bool {
	return c != nil && c.Frames() > 0
}

// SelectClip picks the next clip and advances the cursor. ok is false when
// the cue has no usable clips.
func (d *Definition) SelectClip(rng *rand.Rand) (idx int, clip *audio.Clip, ok bool) {
	n := len(d.Clips)
	if n == 0 {
		return -1, nil, false
	}

	skip := -1
	if d.NeverRepeat && d.picked && d.usableCount() > 1 {
		skip = d.lastClip
	}

	if d.Selection == Sequential {
		idx = d.nextSequential(skip)
	} else {
		idx = d.nextWeighted(rng, skip)
	}
	if idx < 0 {
		return -1, nil, false
	}

	d.lastClip, d.picked = idx, true
	return idx, d.Clips[idx], true
}

func (d *Definition) usableCount() int {
	count := 0
	for _, c := range d.Clips {
		if usable(c) {
			count++
		}
	}
	return count
}

func (d *Definition) nextSequential(skip int) int {
	n := len(d.Clips)
	start := 0
	if d.picked {
		start = d.lastClip + 1
	}
	for i := range n {
		idx := (start + i) % n
		if idx != skip && usable(d.Clips[idx]) {
			return idx
		}
	}
	return -1
}

func (d *Definition) weight(i int) float64 {
	if !usable(d.Clips[i]) {
		return 0
	}
	if len(d.Weights) != len(d.Clips) {
		return 1
	}
	return max(d.Weights[i], 0)
}

func (d *Definition) nextWeighted(rng *rand.Rand, skip int) int {
	total := 0.0
	for i := range d.Clips {
		if i != skip {
			total += d.weight(i)
		}
	}
	if total == 0 {
		// Every weight is zero; fall back to the usable clips.
		return d.nextSequential(skip)
	}

	r := rng.Float64() * total
	last := -1
	for i := range d.Clips {
		if i == skip {
			continue
		}
		w := d.weight(i)
		if w == 0 {
			continue
		}
		last = i
		if r < w {
			return i
		}
		r -= w
	}
	return last
}

// RandomPitch returns a unit pitch offset by up to PitchVariance either way.
func (d *Definition) RandomPitch(rng *rand.Rand) float64 {
	if d.PitchVariance <= 0 {
		return 1
	}
	return 1 + (rng.Float64()*2-1)*d.PitchVariance
}

// LoopFrames converts the loop region to frame offsets in clip. When no
// explicit region is set the clip's own loop metadata is used, then the
// whole clip.
func (d *Definition) LoopFrames(clip *audio.Clip) (start, end int) {
	frames := clip.Frames()
	if d.LoopStart == 0 && d.LoopEnd == 0 {
		if s, e, ok := clip.LoopPoints(); ok {
			return s, e
		}
		return 0, frames
	}

	start = clip.FrameAt(d.LoopStart)
	end = frames
	if d.LoopEnd > 0 {
		end = clip.FrameAt(d.LoopEnd)
	}
	if end <= start {
		end = frames
	}
	return start, end
}

// FadeDurations returns the continuous fade lengths for clip.
func (d *Definition) FadeDurations(clip *audio.Clip) (in, out time.Duration) {
	if d.FadeSeconds {
		return seconds(d.FadeInDuration), seconds(d.FadeOutDuration)
	}
	length := clip.Duration()
	return time.Duration(d.FadeInDuration * float64(length)), time.Duration(d.FadeOutDuration * float64(length))
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Resolve lets a *Definition stand in wherever a Ref is accepted.
func (d *Definition) Resolve(Resolver) (*Definition, error) {
	if d == nil {
		return nil, ErrInvalidAsset
	}
	return d, nil
}

func (d *Definition) String() string {
	if d == nil {
		return "<nil>"
	}
	return d.FullName()
}
