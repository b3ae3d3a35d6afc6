// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// Clip is a fully decoded, immutable PCM buffer.
type Clip struct {
	Name       string
	SampleRate int
	Channels   int
	// Samples are interleaved, len(Samples) == Frames()*Channels.
	Samples []float32

	loopStart, loopEnd int
	hasLoop            bool
}

// NewClip wraps already decoded samples.
func NewClip(name string, sampleRate, channels int, samples []float32) (*Clip, error) {
	if sampleRate <= 0 {
		return nil, ErrBadSampleRate
	}
	if channels <= 0 {
		return nil, ErrBadChannels
	}
	if len(samples)%channels != 0 {
		return nil, ErrInvalidDstSize
	}
	return &Clip{Name: name, SampleRate: sampleRate, Channels: channels, Samples: samples}, nil
}

// ReadClip drains src into a Clip and closes it.
func ReadClip(name string, src Source) (*Clip, error) {
	defer src.Close()

	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrBadChannels
	}
	if src.SampleRate() <= 0 {
		return nil, ErrBadSampleRate
	}

	bufSize := src.BufSize()
	if bufSize <= 0 {
		bufSize = 4096
	}
	// Whole frames only, so a short read never splits one.
	bufSize -= bufSize % channels
	if bufSize == 0 {
		bufSize = channels
	}

	buf := make([]float32, bufSize)
	samples := make([]float32, 0, src.SampleRate()*channels)
	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		if n == 0 {
			// Decoder made no progress without signalling EOF.
			break
		}
	}

	samples = samples[:len(samples)-len(samples)%channels]
	if len(samples) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyClip)
	}

	c := &Clip{
		Name:       name,
		SampleRate: src.SampleRate(),
		Channels:   channels,
		Samples:    samples,
	}
	if lp, ok := src.(LoopPointer); ok {
		if start, end, ok := lp.LoopPoints(); ok {
			c.SetLoopPoints(start, end)
		}
	}
	return c, nil
}

// Frames returns the clip length in frames.
func (c *Clip) Frames() int {
	if c == nil || c.Channels == 0 {
		return 0
	}
	return len(c.Samples) / c.Channels
}

// Duration returns the playback length at unit pitch.
func (c *Clip) Duration() time.Duration {
	if c == nil || c.SampleRate == 0 {
		return 0
	}
	return time.Duration(float64(c.Frames()) / float64(c.SampleRate) * float64(time.Second))
}

// FrameAt converts seconds to a frame offset clamped to the clip length.
func (c *Clip) FrameAt(seconds float64) int {
	if c == nil || seconds <= 0 {
		return 0
	}
	f := int(seconds * float64(c.SampleRate))
	return min(f, c.Frames())
}

// Sample returns the value of channel ch at frame. Channels past the
// clip's channel count fold onto the last one, so mono clips feed stereo.
func (c *Clip) Sample(frame, ch int) float32 {
	if ch >= c.Channels {
		ch = c.Channels - 1
	}
	return c.Samples[frame*c.Channels+ch]
}

// SetLoopPoints records a loop region from container metadata. Invalid
// regions are ignored.
func (c *Clip) SetLoopPoints(start, end int) {
	if start < 0 || end <= start || end > c.Frames() {
		return
	}
	c.loopStart, c.loopEnd, c.hasLoop = start, end, true
}

// LoopPoints reports the loop region carried by the source file, if any.
func (c *Clip) LoopPoints() (start, end int, ok bool) {
	return c.loopStart, c.loopEnd, c.hasLoop
}
