// SPDX-License-Identifier: EPL-2.0

package audcue

import (
	"errors"
	"log/slog"
	"time"

	"github.com/ik5/audcue/asset"
	"github.com/ik5/audcue/channel"
)

type playOptions struct {
	target   channel.Transform
	pos      channel.Vec3
	hasPos   bool
	channel  *channel.Channel
	mainSong bool
}

// PlayOption adjusts Play, FadeIn, Stop and IsPlaying.
type PlayOption func(*playOptions)

// WithTarget makes a spatial cue follow t. For Stop and IsPlaying it
// narrows the match to channels following t.
func WithTarget(t channel.Transform) PlayOption {
	return func(o *playOptions) { o.target = t }
}

// WithPosition pins a spatial cue at p.
func WithPosition(p channel.Vec3) PlayOption {
	return func(o *playOptions) { o.pos, o.hasPos = p, true }
}

// WithChannel plays on ch instead of asking the pool. The channel is
// rebound even if it is busy.
func WithChannel(ch *channel.Channel) PlayOption {
	return func(o *playOptions) { o.channel = ch }
}

// AsMainMusic marks a music cue as the main song. Starting a new main song
// stops (or, with FadeIn, crossfades) the previous one.
func AsMainMusic() PlayOption {
	return func(o *playOptions) { o.mainSong = true }
}

func collect(opts []PlayOption) playOptions {
	var o playOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Play starts the cue named by ref and returns the channel it plays on.
//
// When the cue has no usable clip the channel is returned together with an
// error wrapping channel.ErrEmptyClipList; the channel is left free.
func (s *System) Play(ref asset.Ref, opts ...PlayOption) (*channel.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := collect(opts)
	def, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}
	if o.mainSong && def.Kind() == asset.Music && s.mainMusic != nil && s.mainMusic.IsActive() {
		s.mainMusic.Stop(true)
		s.mainMusic = nil
	}
	return s.start(def, o)
}

func (s *System) start(def *asset.Definition, o playOptions) (*channel.Channel, error) {
	log := s.log.With(slog.String("cue", def.FullName()), slog.String("kind", def.Kind().String()))

	ch := o.channel
	if ch == nil {
		var err error
		ch, err = s.pool.Acquire(def)
		switch {
		case errors.Is(err, channel.ErrInstanceLimit):
			log.Debug("instance limit reached", slog.Int("max_instances", def.MaxInstances))
			return nil, err
		case errors.Is(err, channel.ErrPoolExhausted):
			log.Error("no free channel")
			return nil, err
		case err != nil:
			return nil, err
		}
	}
	log = log.With(slog.String("channel", ch.String()))

	if err := ch.Bind(def); err != nil {
		log.Error("bind failed", slog.Any("err", err))
		return nil, err
	}
	switch {
	case o.target != nil:
		ch.SetTarget(o.target)
	case o.hasPos:
		ch.SetPosition(o.pos)
	}
	if err := ch.Play(); err != nil {
		log.Warn("cue has no clips")
		return ch, err
	}
	if o.mainSong && def.Kind() == asset.Music {
		s.mainMusic = ch
	}
	log.Debug("playing", slog.Int("clip", ch.ClipIndex()))
	return ch, nil
}

// matching returns the active channels bound to def, narrowed to target
// when one is given.
func (s *System) matching(def *asset.Definition, target channel.Transform) []*channel.Channel {
	var out []*channel.Channel
	for _, ch := range s.pool.Active(def.Kind()) {
		if ch.Definition() != def {
			continue
		}
		if target != nil && ch.Target() != target {
			continue
		}
		out = append(out, ch)
	}
	return out
}

// Stop stops every channel playing ref (following the WithTarget target,
// if given) and returns the first of them, or nil when none was playing.
func (s *System) Stop(ref asset.Ref, instant bool, opts ...PlayOption) (*channel.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	def, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}
	o := collect(opts)
	chs := s.matching(def, o.target)
	for _, ch := range chs {
		ch.Stop(instant)
		if ch == s.mainMusic {
			s.mainMusic = nil
		}
	}
	if len(chs) == 0 {
		return nil, nil
	}
	return chs[0], nil
}

// IsPlaying reports whether any channel is playing ref.
func (s *System) IsPlaying(ref asset.Ref, opts ...PlayOption) bool {
	_, ok := s.TryGetPlaying(ref, opts...)
	return ok
}

// TryGetPlaying returns the oldest channel playing ref.
func (s *System) TryGetPlaying(ref asset.Ref, opts ...PlayOption) (*channel.Channel, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	def, err := s.resolve(ref)
	if err != nil {
		return nil, false
	}
	chs := s.matching(def, collect(opts).target)
	if len(chs) == 0 {
		return nil, false
	}
	return chs[0], true
}

// FadeIn plays ref from silence up to its volume over d. With isMain set
// on a music cue, the current main song fades out over the same d.
func (s *System) FadeIn(ref asset.Ref, d time.Duration, isMain bool, opts ...PlayOption) (*channel.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	def, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}
	o := collect(opts)
	o.mainSong = isMain

	old := s.mainMusic
	ch, err := s.start(def, o)
	if err != nil {
		return ch, err
	}
	ch.BeginFadeIn(d)

	if isMain && def.Kind() == asset.Music && old != nil && old != ch && old.IsActive() {
		old.BeginFadeOut(d)
		s.log.Debug("crossfade",
			slog.String("from", old.Definition().FullName()),
			slog.String("to", def.FullName()),
			slog.Duration("duration", d))
	}
	return ch, nil
}

// FadeOut fades every channel playing ref to silence over d and stops it.
func (s *System) FadeOut(ref asset.Ref, d time.Duration, opts ...PlayOption) (*channel.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	def, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}
	chs := s.matching(def, collect(opts).target)
	for _, ch := range chs {
		ch.BeginFadeOut(d)
	}
	if len(chs) == 0 {
		return nil, nil
	}
	return chs[0], nil
}

// MainMusic returns the channel playing the main song, if any.
func (s *System) MainMusic() (*channel.Channel, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mainMusic == nil || !s.mainMusic.IsActive() {
		return nil, false
	}
	return s.mainMusic, true
}

func (s *System) StopAll(instant bool) {
	s.StopAllSounds(instant)
	s.StopAllMusic(instant)
}

func (s *System) StopAllSounds(instant bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopKind(asset.Sound, instant)
}

func (s *System) StopAllMusic(instant bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopKind(asset.Music, instant)
	s.mainMusic = nil
}

func (s *System) stopKind(kind asset.Kind, instant bool) {
	for _, ch := range s.pool.Active(kind) {
		ch.Stop(instant)
	}
}

// PauseAll holds every active channel.
func (s *System) PauseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pool.Each((*channel.Channel).Pause)
}

func (s *System) ResumeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pool.Each((*channel.Channel).Resume)
}
