// SPDX-License-Identifier: EPL-2.0

package asset

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"runtime"
	"sync"

	"github.com/ik5/audcue/audio"
	"github.com/ik5/audcue/utils"
	"golang.org/x/sync/errgroup"
)

type manifestOptions struct {
	sampleRate  int
	concurrency int
}

// ManifestOption tunes LoadManifest.
type ManifestOption func(*manifestOptions)

// WithSampleRate resamples every clip to rate after decoding.
func WithSampleRate(rate int) ManifestOption {
	return func(o *manifestOptions) { o.sampleRate = rate }
}

// WithConcurrency bounds the number of clips decoded at once.
func WithConcurrency(n int) ManifestOption {
	return func(o *manifestOptions) { o.concurrency = n }
}

type manifest struct {
	Name   string       `json:"name"`
	Sounds categoryJSON `json:"sounds"`
	Music  categoryJSON `json:"music"`
}

type categoryJSON struct {
	Name string    `json:"name"`
	Cues []cueJSON `json:"cues"`
}

type cueJSON struct {
	Name            string    `json:"name"`
	Clips           []string  `json:"clips"`
	Weights         []float64 `json:"weights,omitempty"`
	Selection       string    `json:"selection,omitempty"`
	NeverRepeat     bool      `json:"neverRepeat,omitempty"`
	Volume          *float64  `json:"volume,omitempty"`
	Priority        int       `json:"priority,omitempty"`
	PitchVariance   float64   `json:"pitchVariance,omitempty"`
	Loop            string    `json:"loop,omitempty"`
	LoopStart       float64   `json:"loopStart,omitempty"`
	LoopEnd         float64   `json:"loopEnd,omitempty"`
	FadeInOut       bool      `json:"fadeInOut,omitempty"`
	FadeIn          float64   `json:"fadeIn,omitempty"`
	FadeOut         float64   `json:"fadeOut,omitempty"`
	FadeSeconds     bool      `json:"fadeSeconds,omitempty"`
	MaxInstances    int       `json:"maxInstances,omitempty"`
	Spatialize      bool      `json:"spatialize,omitempty"`
	MaxDistance     float64   `json:"maxDistance,omitempty"`
	Channel         string    `json:"channel,omitempty"`
	IgnoreTimeScale bool      `json:"ignoreTimeScale,omitempty"`
	Delay           float64   `json:"delay,omitempty"`
	Effects         []Effect  `json:"effects,omitempty"`
}

var (
	loopModes = map[string]LoopMode{
		"": NoLoop, "none": NoLoop, "loop": Loop, "points": LoopWithPoints, "clamped": ClampedLoopPoints,
	}
	channelTypes = map[string]ChannelType{
		"": ChannelNone, "none": ChannelNone, "music": ChannelMusic, "sound": ChannelSound, "voice": ChannelVoice,
	}
	selections = map[string]Selection{
		"": Random, "random": Random, "sequential": Sequential,
	}
)

// LoadManifest reads a JSON library description from fsys and decodes every
// clip it references. Clip paths are relative to the manifest. Each distinct
// clip is decoded once, concurrently; cues marked spatialize get a mono copy.
func LoadManifest(ctx context.Context, fsys fs.FS, name string, codecs *audio.Registry, opts ...ManifestOption) (*Library, error) {
	o := manifestOptions{concurrency: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&o)
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadManifest, err)
	}
	if m.Name == "" {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyLibrary)
	}

	dir := path.Dir(name)
	clips, err := decodeClips(ctx, fsys, dir, codecs, o, m.Sounds.Cues, m.Music.Cues)
	if err != nil {
		return nil, err
	}

	mono := make(map[string]*audio.Clip)
	build := func(cat categoryJSON) (Category, error) {
		out := Category{Name: cat.Name, Cues: make([]*Definition, 0, len(cat.Cues))}
		seen := make(map[string]bool, len(cat.Cues))
		for _, c := range cat.Cues {
			if seen[c.Name] {
				return out, fmt.Errorf("%w: %q", ErrDuplicateCue, c.Name)
			}
			seen[c.Name] = true

			def, err := c.definition()
			if err != nil {
				return out, fmt.Errorf("cue %q: %w", c.Name, err)
			}
			for _, p := range c.Clips {
				full := path.Join(dir, p)
				clip := clips[full]
				if c.Spatialize {
					if mono[full] == nil {
						mono[full] = audio.Downmix(clip)
					}
					clip = mono[full]
				}
				def.Clips = append(def.Clips, clip)
			}
			out.Cues = append(out.Cues, def)
		}
		return out, nil
	}

	lib := &Library{Name: m.Name}
	if lib.Sounds, err = build(m.Sounds); err != nil {
		return nil, err
	}
	if lib.Music, err = build(m.Music); err != nil {
		return nil, err
	}
	return lib, nil
}

func decodeClips(ctx context.Context, fsys fs.FS, dir string, codecs *audio.Registry, o manifestOptions, cueLists ...[]cueJSON) (map[string]*audio.Clip, error) {
	var paths []string
	seen := make(map[string]bool)
	for _, cues := range cueLists {
		for _, c := range cues {
			for _, p := range c.Clips {
				full := path.Join(dir, p)
				if !seen[full] {
					seen[full] = true
					paths = append(paths, full)
				}
			}
		}
	}

	var (
		mtx   sync.Mutex
		clips = make(map[string]*audio.Clip, len(paths))
	)

	g, ctx := errgroup.WithContext(ctx)
	if o.concurrency > 0 {
		g.SetLimit(o.concurrency)
	}
	for _, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			clip, err := decodeClip(fsys, p, codecs, o.sampleRate)
			if err != nil {
				return err
			}
			mtx.Lock()
			clips[p] = clip
			mtx.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return clips, nil
}

func decodeClip(fsys fs.FS, name string, codecs *audio.Registry, sampleRate int) (*audio.Clip, error) {
	dec, ok := codecs.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNoDecoder)
	}

	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening clip: %w", err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	clip, err := audio.ReadClip(name, src)
	if err != nil {
		return nil, err
	}
	if sampleRate > 0 {
		return audio.Resample(clip, sampleRate)
	}
	return clip, nil
}

func (c cueJSON) definition() (*Definition, error) {
	loop, ok := loopModes[c.Loop]
	if !ok {
		return nil, fmt.Errorf("%w: loop %q", ErrUnknownEnum, c.Loop)
	}
	ct, ok := channelTypes[c.Channel]
	if !ok {
		return nil, fmt.Errorf("%w: channel %q", ErrUnknownEnum, c.Channel)
	}
	sel, ok := selections[c.Selection]
	if !ok {
		return nil, fmt.Errorf("%w: selection %q", ErrUnknownEnum, c.Selection)
	}

	vol := 1.0
	if c.Volume != nil {
		vol = utils.Clamp01(*c.Volume)
	}

	return &Definition{
		Name:            c.Name,
		Weights:         c.Weights,
		Selection:       sel,
		NeverRepeat:     c.NeverRepeat,
		RelativeVolume:  vol,
		Priority:        c.Priority,
		PitchVariance:   c.PitchVariance,
		LoopMode:        loop,
		LoopStart:       c.LoopStart,
		LoopEnd:         c.LoopEnd,
		FadeInOut:       c.FadeInOut,
		FadeInDuration:  c.FadeIn,
		FadeOutDuration: c.FadeOut,
		FadeSeconds:     c.FadeSeconds,
		MaxInstances:    c.MaxInstances,
		Spatialize:      c.Spatialize,
		MaxDistance:     c.MaxDistance,
		ChannelType:     ct,
		IgnoreTimeScale: c.IgnoreTimeScale,
		Delay:           seconds(c.Delay),
		Effects:         c.Effects,
	}, nil
}
