// SPDX-License-Identifier: EPL-2.0

package audcue

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ik5/audcue/channel"
)

// Config tunes a System.
type Config struct {
	// SoundChannels and MusicChannels size the pool partitions at start.
	SoundChannels int  `json:"soundChannels"`
	MusicChannels int  `json:"musicChannels"`
	GrowPool      bool `json:"growPool"`

	Spatialize bool `json:"spatialize"`
	// SpatialTiming is the tick live targets are copied in: update, fixed
	// or late.
	SpatialTiming string `json:"spatialTiming"`

	StopSoundsOnSceneChange bool `json:"stopSoundsOnSceneChange"`
	StopMusicOnSceneChange  bool `json:"stopMusicOnSceneChange"`

	// Eviction is the instance-limit policy: oldest, reject or random.
	Eviction string `json:"eviction"`
	// Seed for clip selection and pitch variance; 0 seeds from the clock.
	Seed uint64 `json:"seed"`
}

func DefaultConfig() Config {
	return Config{
		SoundChannels:           16,
		MusicChannels:           2,
		GrowPool:                true,
		Spatialize:              true,
		SpatialTiming:           "update",
		StopSoundsOnSceneChange: true,
		Eviction:                "oldest",
	}
}

// LoadConfig reads AUDCUE_* environment variables over DefaultConfig.
// Malformed values are ignored.
func LoadConfig() Config {
	return loadConfig(os.Getenv)
}

func loadConfig(getenv func(string) string) Config {
	cfg := DefaultConfig()

	intVar := func(name string, dst *int) {
		if v := getenv(name); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				*dst = n
			}
		}
	}
	boolVar := func(name string, dst *bool) {
		if v := getenv(name); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				*dst = b
			}
		}
	}

	intVar("AUDCUE_SOUND_CHANNELS", &cfg.SoundChannels)
	intVar("AUDCUE_MUSIC_CHANNELS", &cfg.MusicChannels)
	boolVar("AUDCUE_GROW_POOL", &cfg.GrowPool)
	boolVar("AUDCUE_SPATIALIZE", &cfg.Spatialize)
	boolVar("AUDCUE_STOP_SOUNDS_ON_SCENE_CHANGE", &cfg.StopSoundsOnSceneChange)
	boolVar("AUDCUE_STOP_MUSIC_ON_SCENE_CHANGE", &cfg.StopMusicOnSceneChange)

	if v := getenv("AUDCUE_SPATIAL_TIMING"); v != "" {
		if _, err := parseTiming(v); err == nil {
			cfg.SpatialTiming = v
		}
	}
	if v := getenv("AUDCUE_EVICTION"); v != "" {
		if _, err := channel.ParseEviction(v); err == nil {
			cfg.Eviction = v
		}
	}
	if v := getenv("AUDCUE_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}
	return cfg
}

// DecodeConfig reads a JSON config over DefaultConfig.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrBadConfig, err)
	}
	if _, _, err := cfg.parse(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) parse() (channel.Timing, channel.Eviction, error) {
	if c.SoundChannels < 0 || c.MusicChannels < 0 {
		return 0, 0, fmt.Errorf("%w: negative channel count", ErrBadConfig)
	}
	timing, err := parseTiming(c.SpatialTiming)
	if err != nil {
		return 0, 0, err
	}
	eviction, err := channel.ParseEviction(c.Eviction)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrBadConfig, err)
	}
	return timing, eviction, nil
}

func parseTiming(s string) (channel.Timing, error) {
	switch s {
	case "", "update":
		return channel.TimingUpdate, nil
	case "fixed":
		return channel.TimingFixed, nil
	case "late":
		return channel.TimingLate, nil
	}
	return 0, fmt.Errorf("%w: spatial timing %q", ErrBadConfig, s)
}
