// SPDX-License-Identifier: EPL-2.0

package channel_test

import (
	"errors"
	"log/slog"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/ik5/audcue/asset"
	"github.com/ik5/audcue/audio"
	"github.com/ik5/audcue/channel"
	"github.com/ik5/audcue/internal/audiotest"
	"github.com/ik5/audcue/output/headless"
	"github.com/ik5/audcue/volume"
)

const eps = 1e-9

type rig struct {
	dev  *headless.Device
	env  *channel.Env
	pool *channel.Pool
}

func newRig(cfg channel.PoolConfig) *rig {
	dev := headless.New()
	env := channel.NewEnv(volume.NewCascade(), rand.New(rand.NewPCG(7, 11)), slog.New(slog.DiscardHandler))
	return &rig{dev: dev, env: env, pool: channel.NewPool(dev, env, cfg)}
}

// newClip returns a silent mono clip of the given length.
func newClip(t *testing.T, rate, frames int) *audio.Clip {
	t.Helper()
	c, err := audio.NewClip("clip", rate, 1, make([]float32, frames))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// stamp gives definitions their kind and full name.
func stamp(t *testing.T, sounds, music []*asset.Definition) {
	t.Helper()
	lib := &asset.Library{Name: "test", Sounds: asset.Category{Cues: sounds}, Music: asset.Category{Cues: music}}
	if _, err := lib.Bind(); err != nil {
		t.Fatal(err)
	}
}

func sound(t *testing.T, def *asset.Definition) *asset.Definition {
	t.Helper()
	if def.Clips == nil {
		def.Clips = []*audio.Clip{newClip(t, 10000, 100000)}
	}
	stamp(t, []*asset.Definition{def}, nil)
	return def
}

func (r *rig) play(t *testing.T, def *asset.Definition) *channel.Channel {
	t.Helper()
	ch, err := r.pool.Acquire(def)
	if err != nil {
		t.Fatalf("Acquire(%s) error = %v", def.Name, err)
	}
	if err := ch.Bind(def); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if err := ch.Play(); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	return ch
}

func TestPool_AllocationExclusive(t *testing.T) {
	t.Parallel()

	r := newRig(channel.PoolConfig{SoundChannels: 4, MusicChannels: 1})
	seen := make(map[*channel.Channel]bool)
	for i := range 4 {
		ch := r.play(t, sound(t, &asset.Definition{Name: string(rune('A' + i)), RelativeVolume: 1}))
		if seen[ch] {
			t.Fatalf("channel %s handed out twice", ch)
		}
		seen[ch] = true
	}

	_, err := r.pool.Acquire(sound(t, &asset.Definition{Name: "E"}))
	if !errors.Is(err, channel.ErrPoolExhausted) {
		t.Errorf("Acquire() on full pool error = %v, want ErrPoolExhausted", err)
	}
	if len(r.pool.Active(asset.Music)) != 0 {
		t.Error("sound play used a music channel")
	}
}

func TestPool_Grow(t *testing.T) {
	t.Parallel()

	r := newRig(channel.PoolConfig{SoundChannels: 1, Grow: true})
	for i := range 3 {
		r.play(t, sound(t, &asset.Definition{Name: string(rune('A' + i))}))
	}
	if n := len(r.pool.Channels(asset.Sound)); n != 3 {
		t.Errorf("pool size = %d, want 3", n)
	}
}

func TestPool_Partitions(t *testing.T) {
	t.Parallel()

	r := newRig(channel.PoolConfig{SoundChannels: 1, MusicChannels: 1})
	theme := &asset.Definition{Name: "Theme", Clips: []*audio.Clip{newClip(t, 1000, 1000)}}
	stamp(t, nil, []*asset.Definition{theme})

	ch := r.play(t, theme)
	if ch.Kind() != asset.Music {
		t.Errorf("music cue on %s", ch)
	}

	sfx := sound(t, &asset.Definition{Name: "Hit"})
	if err := ch.Bind(sfx); !errors.Is(err, channel.ErrWrongPartition) {
		t.Errorf("Bind() across partitions error = %v", err)
	}
}

func TestPool_InstanceLimitFIFO(t *testing.T) {
	t.Parallel()

	r := newRig(channel.PoolConfig{SoundChannels: 8})
	def := sound(t, &asset.Definition{Name: "Step", MaxInstances: 2})

	a := r.play(t, def)
	b := r.play(t, def)
	c := r.play(t, def)

	if c != a {
		t.Fatalf("third play got %s, want oldest %s", c, a)
	}
	got := r.pool.Instances(def)
	if len(got) != 2 || got[0] != b || got[1] != c {
		t.Errorf("instances = %v, want [%s %s]", got, b, c)
	}
	if n := len(r.pool.Active(asset.Sound)); n != 2 {
		t.Errorf("active = %d, want 2", n)
	}

	d := r.play(t, def)
	if d != b {
		t.Errorf("fourth play got %s, want %s", d, b)
	}

	c.Stop(true)
	if got := r.pool.Instances(def); len(got) != 1 || got[0] != d {
		t.Errorf("instances after stop = %v", got)
	}
}

func TestPool_EvictionPolicies(t *testing.T) {
	t.Parallel()

	t.Run("reject", func(t *testing.T) {
		t.Parallel()
		r := newRig(channel.PoolConfig{SoundChannels: 4, Eviction: channel.EvictReject})
		def := sound(t, &asset.Definition{Name: "Shot", MaxInstances: 1})
		first := r.play(t, def)
		if _, err := r.pool.Acquire(def); !errors.Is(err, channel.ErrInstanceLimit) {
			t.Errorf("Acquire() error = %v, want ErrInstanceLimit", err)
		}
		if !first.IsActive() {
			t.Error("rejected request stopped the playing instance")
		}
	})

	t.Run("random", func(t *testing.T) {
		t.Parallel()
		r := newRig(channel.PoolConfig{SoundChannels: 4, Eviction: channel.EvictRandom})
		def := sound(t, &asset.Definition{Name: "Shot", MaxInstances: 2})
		a, b := r.play(t, def), r.play(t, def)
		c := r.play(t, def)
		if c != a && c != b {
			t.Errorf("random eviction used fresh channel %s", c)
		}
		if n := len(r.pool.Instances(def)); n != 2 {
			t.Errorf("instances = %d, want 2", n)
		}
	})
}

func TestParseEviction(t *testing.T) {
	t.Parallel()

	for _, e := range []channel.Eviction{channel.EvictOldest, channel.EvictReject, channel.EvictRandom} {
		got, err := channel.ParseEviction(e.String())
		if err != nil || got != e {
			t.Errorf("ParseEviction(%q) = %v, %v", e, got, err)
		}
	}
	if _, err := channel.ParseEviction("lifo"); !errors.Is(err, asset.ErrUnknownEnum) {
		t.Errorf("ParseEviction(lifo) error = %v", err)
	}
}

func TestChannel_EmptyClipList(t *testing.T) {
	t.Parallel()

	r := newRig(channel.PoolConfig{SoundChannels: 1})
	def := sound(t, &asset.Definition{Name: "Nothing", Clips: []*audio.Clip{}})
	ch, err := r.pool.Acquire(def)
	if err != nil {
		t.Fatal(err)
	}
	if err := ch.Bind(def); err != nil {
		t.Fatal(err)
	}
	if ch.State() != channel.Bound {
		t.Errorf("state after Bind = %v", ch.State())
	}
	if err := ch.Play(); !errors.Is(err, channel.ErrEmptyClipList) {
		t.Errorf("Play() error = %v, want ErrEmptyClipList", err)
	}
	if ch.State() != channel.Free || !ch.IsFree() {
		t.Errorf("state = %v, want free", ch.State())
	}
}

func TestChannel_VolumeFollowsCascade(t *testing.T) {
	t.Parallel()

	r := newRig(channel.PoolConfig{SoundChannels: 1})
	r.env.Cascade.SetGain(volume.Master, 0.5)
	ch := r.play(t, sound(t, &asset.Definition{Name: "Hum", RelativeVolume: 0.5}))

	if v := ch.Voice().Volume(); math.Abs(v-0.25) > eps {
		t.Fatalf("initial volume = %v, want 0.25", v)
	}
	r.env.Cascade.SetGain(volume.Sound, 0.8)
	if v := ch.Voice().Volume(); math.Abs(v-0.2) > eps {
		t.Errorf("volume after sound gain = %v, want 0.2", v)
	}
	r.env.Cascade.SetMuted(volume.Sound, true)
	if v := ch.Voice().Volume(); v != 0 {
		t.Errorf("muted volume = %v", v)
	}

	ch.Stop(true)
	if n := r.env.Cascade.Subscribers(volume.Sound); n != 0 {
		t.Errorf("stopped channel still subscribed (%d)", n)
	}
}

func TestChannel_RelativeVolumeClamped(t *testing.T) {
	t.Parallel()

	r := newRig(channel.PoolConfig{SoundChannels: 1})
	ch := r.play(t, sound(t, &asset.Definition{Name: "Blast", RelativeVolume: 2.5}))
	if v := ch.Voice().Volume(); v != 1 {
		t.Errorf("volume = %v, want 1", v)
	}
	r.env.Cascade.SetGain(volume.Sound, 0.5)
	if v := ch.Voice().Volume(); math.Abs(v-0.5) > eps {
		t.Errorf("volume after sound gain = %v, want 0.5", v)
	}
}

func TestChannel_ReplaySubscribesOnce(t *testing.T) {
	t.Parallel()

	r := newRig(channel.PoolConfig{SoundChannels: 1})
	ch := r.play(t, sound(t, &asset.Definition{Name: "Tick", RelativeVolume: 1}))
	for range 3 {
		if err := ch.Play(); err != nil {
			t.Fatal(err)
		}
	}
	if n := r.env.Cascade.Subscribers(volume.Sound); n != 1 {
		t.Errorf("subscribers after replay = %d, want 1", n)
	}
	ch.Stop(true)
	if n := r.env.Cascade.Subscribers(volume.Sound); n != 0 {
		t.Errorf("subscribers after stop = %d, want 0", n)
	}
}

func TestChannel_VoiceTierOverride(t *testing.T) {
	t.Parallel()

	r := newRig(channel.PoolConfig{SoundChannels: 1})
	r.env.Cascade.SetGain(volume.Voice, 0.3)
	ch := r.play(t, sound(t, &asset.Definition{Name: "Line", RelativeVolume: 1, ChannelType: asset.ChannelVoice}))
	if v := ch.Voice().Volume(); math.Abs(v-0.3) > eps {
		t.Errorf("voice-tier volume = %v, want 0.3", v)
	}
}

func TestChannel_LoopPoints(t *testing.T) {
	t.Parallel()

	for _, mode := range []asset.LoopMode{asset.LoopWithPoints, asset.ClampedLoopPoints} {
		t.Run(mode.String(), func(t *testing.T) {
			t.Parallel()

			r := newRig(channel.PoolConfig{SoundChannels: 1})
			def := sound(t, &asset.Definition{
				Name:      "Engine",
				Clips:     []*audio.Clip{newClip(t, 10000, 60000)},
				LoopMode:  mode,
				LoopStart: 1,
				LoopEnd:   5,
			})
			ch := r.play(t, def)
			if s, e := ch.LoopRegion(); s != 10000 || e != 50000 {
				t.Fatalf("LoopRegion() = %d, %d", s, e)
			}

			r.dev.Advance(5 * time.Second)
			ch.Update(5*time.Second, 5*time.Second)
			if pos := ch.Voice().Position(); pos != 10000 {
				t.Errorf("position after reaching loop end = %d, want 10000", pos)
			}

			ch.Voice().Seek(5000)
			ch.Update(0, 0)
			want := 5000
			if mode == asset.ClampedLoopPoints {
				want = 10000
			}
			if pos := ch.Voice().Position(); pos != want {
				t.Errorf("position after seek below start = %d, want %d", pos, want)
			}
		})
	}
}

func TestChannel_LoopPointsRestartAfterEnd(t *testing.T) {
	t.Parallel()

	r := newRig(channel.PoolConfig{SoundChannels: 1})
	def := sound(t, &asset.Definition{
		Name:      "Drone",
		Clips:     []*audio.Clip{newClip(t, 1000, 1000)},
		LoopMode:  asset.LoopWithPoints,
		LoopStart: 0.25,
	})
	ch := r.play(t, def)
	r.dev.Advance(2 * time.Second)
	if ch.Voice().IsPlaying() {
		t.Fatal("voice should have run off the clip end")
	}
	ch.Update(time.Second, time.Second)
	if !ch.Voice().IsPlaying() || ch.Voice().Position() != 250 || !ch.IsActive() {
		t.Errorf("restart: playing = %v pos = %d", ch.Voice().IsPlaying(), ch.Voice().Position())
	}
}

func TestChannel_NaturalEnd(t *testing.T) {
	t.Parallel()

	r := newRig(channel.PoolConfig{SoundChannels: 1})
	def := sound(t, &asset.Definition{Name: "Blip", Clips: []*audio.Clip{newClip(t, 1000, 500)}, MaxInstances: 3})
	ch := r.play(t, def)

	r.env.Suspended = true
	r.dev.Advance(time.Second)
	ch.Update(time.Second, time.Second)
	if !ch.IsActive() {
		t.Fatal("channel freed itself while suspended")
	}

	r.env.Suspended = false
	ch.Update(0, 0)
	if ch.IsActive() || ch.State() != channel.Free {
		t.Errorf("finished channel state = %v", ch.State())
	}
	if len(r.pool.Instances(def)) != 0 {
		t.Error("finished channel still counted as an instance")
	}
}

func TestChannel_LoopKeepsPlaying(t *testing.T) {
	t.Parallel()

	r := newRig(channel.PoolConfig{SoundChannels: 1})
	ch := r.play(t, sound(t, &asset.Definition{Name: "Wind", Clips: []*audio.Clip{newClip(t, 1000, 500)}, LoopMode: asset.Loop}))
	for range 5 {
		r.dev.Advance(time.Second)
		ch.Update(time.Second, time.Second)
	}
	if !ch.IsActive() {
		t.Error("looping channel freed itself")
	}

	ch.Stop(false)
	if ch.IsActive() {
		t.Error("Stop(false) left channel active")
	}
	if ch.Voice().(*headless.Voice).Looping() {
		t.Error("Stop() left looping on")
	}
}

func TestChannel_FadeIn(t *testing.T) {
	t.Parallel()

	r := newRig(channel.PoolConfig{SoundChannels: 1})
	ch := r.play(t, sound(t, &asset.Definition{Name: "Pad", RelativeVolume: 0.8}))

	ch.BeginFadeIn(time.Second)
	if ch.State() != channel.FadingIn || ch.Voice().Volume() != 0 {
		t.Fatalf("state = %v volume = %v", ch.State(), ch.Voice().Volume())
	}

	prev := 0.0
	for i := 1; i <= 10; i++ {
		ch.Update(100*time.Millisecond, 100*time.Millisecond)
		v := ch.Voice().Volume()
		if v < prev {
			t.Fatalf("volume decreased at step %d: %v < %v", i, v, prev)
		}
		if want := 0.8 * float64(i) / 10; math.Abs(v-want) > eps {
			t.Errorf("step %d volume = %v, want %v", i, v, want)
		}
		prev = v
	}
	if ch.State() != channel.Playing {
		t.Errorf("state after fade = %v", ch.State())
	}
}

func TestChannel_FadeOut(t *testing.T) {
	t.Parallel()

	r := newRig(channel.PoolConfig{SoundChannels: 1})
	ch := r.play(t, sound(t, &asset.Definition{Name: "Pad", RelativeVolume: 0.5}))

	ch.BeginFadeOut(400 * time.Millisecond)
	if ch.State() != channel.FadingOut {
		t.Fatalf("state = %v", ch.State())
	}
	prev := 0.5
	for i := 1; i <= 3; i++ {
		ch.Update(100*time.Millisecond, 100*time.Millisecond)
		v := ch.Voice().Volume()
		if v > prev {
			t.Fatalf("volume increased at step %d", i)
		}
		if want := 0.5 * (1 - float64(i)/4); math.Abs(v-want) > eps {
			t.Errorf("step %d volume = %v, want %v", i, v, want)
		}
		prev = v
	}

	ch.Update(100*time.Millisecond, 100*time.Millisecond)
	if ch.IsActive() || ch.Voice().IsPlaying() {
		t.Error("fade-out did not stop the channel")
	}
}

func TestChannel_FadeReplacesRunningFade(t *testing.T) {
	t.Parallel()

	r := newRig(channel.PoolConfig{SoundChannels: 1})
	ch := r.play(t, sound(t, &asset.Definition{Name: "Pad", RelativeVolume: 1}))

	ch.BeginFadeIn(time.Second)
	ch.Update(500*time.Millisecond, 500*time.Millisecond)
	ch.BeginFadeOut(time.Second)
	if f := ch.Fade(); f.Direction != channel.FadeOut || math.Abs(f.From-0.5) > eps {
		t.Errorf("fade = %+v, want fade-out from 0.5", f)
	}
}

func TestChannel_ZeroDurationFades(t *testing.T) {
	t.Parallel()

	r := newRig(channel.PoolConfig{SoundChannels: 1})
	ch := r.play(t, sound(t, &asset.Definition{Name: "Pad", RelativeVolume: 0.7}))

	ch.BeginFadeIn(0)
	if ch.State() != channel.Playing || math.Abs(ch.Voice().Volume()-0.7) > eps {
		t.Errorf("zero fade-in: state %v volume %v", ch.State(), ch.Voice().Volume())
	}
	ch.BeginFadeOut(0)
	if ch.IsActive() {
		t.Error("zero fade-out left channel active")
	}
}

func TestChannel_FadeInOut(t *testing.T) {
	t.Parallel()

	r := newRig(channel.PoolConfig{SoundChannels: 1})
	ch := r.play(t, sound(t, &asset.Definition{
		Name:            "Swell",
		Clips:           []*audio.Clip{newClip(t, 1000, 4000)},
		RelativeVolume:  1,
		FadeInOut:       true,
		FadeInDuration:  0.25,
		FadeOutDuration: 0.25,
	}))
	if v := ch.Voice().Volume(); v != 0 {
		t.Errorf("volume at start = %v, want 0", v)
	}

	steps := []struct {
		advance time.Duration
		want    float64
	}{
		{500 * time.Millisecond, 0.5},
		{time.Second, 1},
		{1500 * time.Millisecond, 1},
		{500 * time.Millisecond, 0.5},
	}
	for i, s := range steps {
		r.dev.Advance(s.advance)
		ch.Update(s.advance, s.advance)
		if v := ch.Voice().Volume(); math.Abs(v-s.want) > 1e-6 {
			t.Errorf("step %d volume = %v, want %v", i, v, s.want)
		}
	}
}

func TestChannel_FadeInFollowsEnvelope(t *testing.T) {
	t.Parallel()

	r := newRig(channel.PoolConfig{SoundChannels: 1})
	ch := r.play(t, sound(t, &asset.Definition{
		Name:            "Swell",
		Clips:           []*audio.Clip{newClip(t, 1000, 4000)},
		RelativeVolume:  1,
		FadeInOut:       true,
		FadeInDuration:  0.25,
		FadeOutDuration: 0.25,
	}))
	ch.BeginFadeIn(2 * time.Second)

	steps := []struct {
		advance time.Duration
		want    float64
	}{
		{500 * time.Millisecond, 0.5 * 0.25},
		{time.Second, 0.75},
		{500 * time.Millisecond, 1},
	}
	for i, s := range steps {
		r.dev.Advance(s.advance)
		ch.Update(s.advance, s.advance)
		if v := ch.Voice().Volume(); math.Abs(v-s.want) > 1e-6 {
			t.Errorf("step %d volume = %v, want %v", i, v, s.want)
		}
	}
}

func TestChannel_Delay(t *testing.T) {
	t.Parallel()

	r := newRig(channel.PoolConfig{SoundChannels: 1})
	ch := r.play(t, sound(t, &asset.Definition{Name: "Echo", Delay: 500 * time.Millisecond}))
	if ch.Voice().IsPlaying() || !ch.IsActive() {
		t.Fatal("delayed cue started at once")
	}
	ch.Update(300*time.Millisecond, 300*time.Millisecond)
	if ch.Voice().IsPlaying() {
		t.Fatal("delayed cue started early")
	}
	ch.Update(300*time.Millisecond, 300*time.Millisecond)
	if !ch.Voice().IsPlaying() {
		t.Error("delayed cue did not start")
	}
}

func TestChannel_DelayUnscaled(t *testing.T) {
	t.Parallel()

	r := newRig(channel.PoolConfig{SoundChannels: 1})
	ch := r.play(t, sound(t, &asset.Definition{Name: "Menu", Delay: 100 * time.Millisecond, IgnoreTimeScale: true}))
	ch.Update(0, 200*time.Millisecond)
	if !ch.Voice().IsPlaying() {
		t.Error("cue ignoring timescale waited on scaled time")
	}
}

func TestChannel_TimeScale(t *testing.T) {
	t.Parallel()

	r := newRig(channel.PoolConfig{SoundChannels: 4})
	plain := r.play(t, sound(t, &asset.Definition{Name: "Plain"}))
	varied := r.play(t, sound(t, &asset.Definition{Name: "Varied", PitchVariance: 0.2}))
	fixed := r.play(t, sound(t, &asset.Definition{Name: "UI", IgnoreTimeScale: true}))

	offset := varied.Voice().Pitch() - 1
	r.pool.SetTimeScale(0.5)

	if p := plain.Voice().Pitch(); math.Abs(p-0.5) > eps {
		t.Errorf("plain pitch = %v, want 0.5", p)
	}
	if p := varied.Voice().Pitch(); math.Abs(p-(0.5+offset)) > eps {
		t.Errorf("varied pitch = %v, want %v", p, 0.5+offset)
	}
	if p := fixed.Voice().Pitch(); p != 1 {
		t.Errorf("ignore-timescale pitch = %v, want 1", p)
	}

	late := r.play(t, sound(t, &asset.Definition{Name: "Late"}))
	if p := late.Voice().Pitch(); math.Abs(p-0.5) > eps {
		t.Errorf("pitch of cue started at timescale 0.5 = %v", p)
	}
}

func TestChannel_SpatialTracking(t *testing.T) {
	t.Parallel()

	tests := []struct {
		timing channel.Timing
		tick   func(*channel.Channel)
	}{
		{channel.TimingUpdate, func(c *channel.Channel) { c.Update(0, 0) }},
		{channel.TimingFixed, func(c *channel.Channel) { c.FixedUpdate() }},
		{channel.TimingLate, func(c *channel.Channel) { c.LateUpdate() }},
	}
	for _, tt := range tests {
		t.Run(tt.timing.String(), func(t *testing.T) {
			t.Parallel()

			r := newRig(channel.PoolConfig{SoundChannels: 1})
			r.env.Timing = tt.timing
			def := sound(t, &asset.Definition{Name: "Bee", Spatialize: true, MaxDistance: 20, LoopMode: asset.Loop})
			ch, _ := r.pool.Acquire(def)
			if err := ch.Bind(def); err != nil {
				t.Fatal(err)
			}
			target := &audiotest.Target{}
			ch.SetTarget(target)
			if err := ch.Play(); err != nil {
				t.Fatal(err)
			}
			v := ch.Voice().(*headless.Voice)
			if blend, dist := v.Spatial(); blend != 1 || dist != 20 {
				t.Errorf("Spatial() = %v, %v", blend, dist)
			}

			target.MoveTo(3, 4, 0)
			if tt.timing != channel.TimingUpdate {
				ch.Update(0, 0)
				if v.WorldPosition() == target.Pos {
					t.Error("position tracked in the wrong phase")
				}
			}
			tt.tick(ch)
			if v.WorldPosition() != target.Pos {
				t.Errorf("position = %+v, want %+v", v.WorldPosition(), target.Pos)
			}

			ch.SetPosition(channel.Vec3{X: 1})
			target.MoveTo(9, 9, 9)
			tt.tick(ch)
			if ch.Target() != nil || v.WorldPosition() != (channel.Vec3{X: 1}) {
				t.Error("fixed position did not replace live target")
			}
		})
	}
}

func TestChannel_SpatialDisabled(t *testing.T) {
	t.Parallel()

	r := newRig(channel.PoolConfig{SoundChannels: 2})
	r.env.Spatialize = false
	def := sound(t, &asset.Definition{Name: "Bee", Spatialize: true})
	ch, _ := r.pool.Acquire(def)
	if err := ch.Bind(def); err != nil {
		t.Fatal(err)
	}
	ch.SetTarget(&audiotest.Target{})
	if ch.Target() != nil {
		t.Error("target set with spatialization off")
	}

	r.env.Spatialize = true
	flat := sound(t, &asset.Definition{Name: "Flat"})
	if err := ch.Bind(flat); err != nil {
		t.Fatal(err)
	}
	ch.SetPosition(channel.Vec3{X: 5})
	if _, ok := ch.FixedPosition(); ok {
		t.Error("position set on non-spatial cue")
	}
}

func TestChannel_Pause(t *testing.T) {
	t.Parallel()

	r := newRig(channel.PoolConfig{SoundChannels: 1})
	ch := r.play(t, sound(t, &asset.Definition{Name: "Pad", RelativeVolume: 1}))
	ch.BeginFadeIn(time.Second)
	ch.Pause()
	ch.Update(500*time.Millisecond, 500*time.Millisecond)
	if ch.Fade().Elapsed != 0 || !ch.Paused() {
		t.Error("paused channel advanced its fade")
	}
	ch.Resume()
	ch.Update(500*time.Millisecond, 500*time.Millisecond)
	if ch.Fade().Elapsed != 500*time.Millisecond {
		t.Errorf("fade elapsed = %v", ch.Fade().Elapsed)
	}
}
