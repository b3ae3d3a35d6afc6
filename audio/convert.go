// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"github.com/ik5/audcue/utils"
)

// Resample returns a copy of c at dstRate using cubic interpolation.
// Loop points are rescaled. c is returned unchanged when rates match.
func Resample(c *Clip, dstRate int) (*Clip, error) {
	if dstRate <= 0 {
		return nil, ErrBadSampleRate
	}
	if c.SampleRate == dstRate {
		return c, nil
	}

	ratio := float64(c.SampleRate) / float64(dstRate)
	srcFrames := c.Frames()
	outFrames := int(float64(srcFrames) / ratio)
	if outFrames == 0 {
		return nil, ErrEmptyClip
	}

	at := func(f, ch int) float32 {
		f = utils.Clamp(f, 0, srcFrames-1)
		return c.Samples[f*c.Channels+ch]
	}

	out := make([]float32, outFrames*c.Channels)
	for i := range outFrames {
		pos := float64(i) * ratio
		base := int(pos)
		frac := float32(pos - float64(base))
		for ch := range c.Channels {
			out[i*c.Channels+ch] = utils.CubicInterpolate(
				at(base-1, ch), at(base, ch), at(base+1, ch), at(base+2, ch), frac)
		}
	}

	r := &Clip{Name: c.Name, SampleRate: dstRate, Channels: c.Channels, Samples: out}
	if start, end, ok := c.LoopPoints(); ok {
		r.SetLoopPoints(int(float64(start)/ratio), min(int(float64(end)/ratio), outFrames))
	}
	return r, nil
}

// Downmix folds all channels into one by averaging. Mono clips are
// returned unchanged.
func Downmix(c *Clip) *Clip {
	if c.Channels == 1 {
		return c
	}

	frames := c.Frames()
	inv := float32(1) / float32(c.Channels)
	out := make([]float32, frames)
	switch c.Channels {
	case 2:
		for f := range frames {
			idx := f << 1
			out[f] = (c.Samples[idx] + c.Samples[idx+1]) * 0.5
		}
	default:
		for f := range frames {
			var sum float32
			base := f * c.Channels
			for ch := range c.Channels {
				sum += c.Samples[base+ch]
			}
			out[f] = sum * inv
		}
	}

	m := &Clip{Name: c.Name, SampleRate: c.SampleRate, Channels: 1, Samples: out}
	if start, end, ok := c.LoopPoints(); ok {
		m.SetLoopPoints(start, end)
	}
	return m
}
