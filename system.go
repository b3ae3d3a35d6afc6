// SPDX-License-Identifier: EPL-2.0

package audcue

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/ik5/audcue/asset"
	"github.com/ik5/audcue/audio"
	"github.com/ik5/audcue/channel"
	"github.com/ik5/audcue/registry"
	"github.com/ik5/audcue/volume"
)

// System is the audio manager a game talks to.
type System struct {
	mu sync.Mutex

	cfg    Config
	log    *slog.Logger
	codecs *audio.Registry

	reg     *registry.Registry
	cascade *volume.Cascade
	env     *channel.Env
	pool    *channel.Pool

	mainMusic *channel.Channel

	paused, unfocused bool
}

type Option func(*System)

// WithLogger sets the logger. The default is slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(s *System) { s.log = l }
}

// WithRand replaces the random source used for clip selection, pitch
// variance and random eviction. It overrides Config.Seed.
func WithRand(r *rand.Rand) Option {
	return func(s *System) { s.env.Rand = r }
}

// WithCodecs replaces the decoders LoadManifest uses.
func WithCodecs(r *audio.Registry) Option {
	return func(s *System) { s.codecs = r }
}

// New builds a System playing through out.
func New(out channel.Output, cfg Config, opts ...Option) (*System, error) {
	if out == nil {
		return nil, ErrNilOutput
	}
	timing, eviction, err := cfg.parse()
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	s := &System{
		cfg:     cfg,
		log:     slog.Default(),
		reg:     registry.New(),
		cascade: volume.NewCascade(),
	}
	s.env = channel.NewEnv(s.cascade, rand.New(rand.NewPCG(seed, seed>>1|1)), nil)
	for _, opt := range opts {
		opt(s)
	}
	if s.codecs == nil {
		s.codecs = NewCodecs()
	}
	s.log = s.log.With("component", "audcue")

	s.env.Log = s.log
	s.env.Spatialize = cfg.Spatialize
	s.env.Timing = timing

	s.pool = channel.NewPool(out, s.env, channel.PoolConfig{
		SoundChannels: cfg.SoundChannels,
		MusicChannels: cfg.MusicChannels,
		Grow:          cfg.GrowPool,
		Eviction:      eviction,
	})

	s.log.Info("audio system ready",
		slog.Int("sound_channels", cfg.SoundChannels),
		slog.Int("music_channels", cfg.MusicChannels),
		slog.String("eviction", eviction.String()),
		slog.String("spatial_timing", timing.String()))
	return s, nil
}

// Config returns the configuration the System was built with.
func (s *System) Config() Config { return s.cfg }

// Pool exposes the channel pool. Callers must not use it concurrently with
// the System.
func (s *System) Pool() *channel.Pool { return s.pool }

// LoadLibrary registers every cue of lib. Loading a library twice is
// rejected with registry.ErrDuplicateLoad.
func (s *System) LoadLibrary(lib *asset.Library) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lib == nil {
		s.log.Warn("load of nil library")
		return asset.ErrInvalidAsset
	}
	err := s.reg.Load(lib)
	var collision *registry.KeyCollisionError
	switch {
	case err == nil:
		s.log.Info("library loaded", slog.String("library", lib.Name))
	case errors.Is(err, registry.ErrDuplicateLoad):
		s.log.Warn("library already loaded", slog.String("library", lib.Name))
	case errors.As(err, &collision):
		s.log.Error("key collision",
			slog.String("library", lib.Name),
			slog.String("key", collision.Key.String()),
			slog.String("cue", collision.Name))
	default:
		s.log.Error("library load failed", slog.String("library", lib.Name), slog.Any("err", err))
	}
	return err
}

// UnloadLibrary stops every channel playing one of lib's cues and removes
// its keys.
func (s *System) UnloadLibrary(lib *asset.Library) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lib == nil {
		return asset.ErrInvalidAsset
	}
	if err := s.reg.Unload(lib); err != nil {
		s.log.Warn("library not loaded", slog.String("library", lib.Name))
		return err
	}

	owned := make(map[*asset.Definition]bool)
	for _, cat := range []asset.Category{lib.Sounds, lib.Music} {
		for _, def := range cat.Cues {
			owned[def] = true
		}
	}
	s.pool.Each(func(ch *channel.Channel) {
		if owned[ch.Definition()] {
			ch.Stop(true)
		}
	})
	if s.mainMusic != nil && !s.mainMusic.IsActive() {
		s.mainMusic = nil
	}

	s.log.Info("library unloaded", slog.String("library", lib.Name))
	return nil
}

// LoadManifest decodes a JSON manifest from fsys and loads the library.
func (s *System) LoadManifest(ctx context.Context, fsys fs.FS, name string, opts ...asset.ManifestOption) (*asset.Library, error) {
	lib, err := asset.LoadManifest(ctx, fsys, name, s.codecs, opts...)
	if err != nil {
		s.log.Error("manifest load failed", slog.String("manifest", name), slog.Any("err", err))
		return nil, fmt.Errorf("load manifest %s: %w", name, err)
	}
	if err := s.LoadLibrary(lib); err != nil {
		return nil, err
	}
	return lib, nil
}

// Resolve looks up a cue the same way Play does.
func (s *System) Resolve(ref asset.Ref) (*asset.Definition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolve(ref)
}

func (s *System) resolve(ref asset.Ref) (*asset.Definition, error) {
	if ref == nil {
		s.log.Warn("invalid asset")
		return nil, asset.ErrInvalidAsset
	}
	def, err := ref.Resolve(s.reg)
	switch {
	case err == nil:
		return def, nil
	case errors.Is(err, asset.ErrInvalidAsset):
		s.log.Warn("invalid asset", slog.String("cue", fmt.Sprint(ref)))
	default:
		s.log.Error("cue not found", slog.String("cue", fmt.Sprint(ref)), slog.Any("err", err))
	}
	return nil, err
}
