// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/gopxl/beep/v2"
	beepflac "github.com/gopxl/beep/v2/flac"
	"github.com/ik5/audcue/audio"
)

const bufFrames = 2048

// StreamerSource adapts a beep streamer to audio.Source.
type StreamerSource struct {
	s        beep.Streamer
	closer   io.Closer
	rate     int
	channels int
	pairs    [][2]float64
}

// NewStreamerSource wraps s. channels must be 1 or 2.
func NewStreamerSource(s beep.Streamer, format beep.Format) (*StreamerSource, error) {
	if format.NumChannels < 1 || format.NumChannels > 2 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedChannels, format.NumChannels)
	}
	src := &StreamerSource{
		s:        s,
		rate:     int(format.SampleRate),
		channels: format.NumChannels,
		pairs:    make([][2]float64, bufFrames),
	}
	if c, ok := s.(io.Closer); ok {
		src.closer = c
	}
	return src, nil
}

func (s *StreamerSource) SampleRate() int { return s.rate }
func (s *StreamerSource) Channels() int   { return s.channels }
func (s *StreamerSource) BufSize() int    { return bufFrames * s.channels }

func (s *StreamerSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func (s *StreamerSource) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	frames := min(len(dst)/s.channels, len(s.pairs))
	if frames == 0 {
		return 0, nil
	}

	n, ok := s.s.Stream(s.pairs[:frames])
	for i := range n {
		p := s.pairs[i]
		if s.channels == 1 {
			dst[i] = float32(p[0])
			continue
		}
		dst[2*i] = float32(p[0])
		dst[2*i+1] = float32(p[1])
	}
	if !ok {
		if err := s.s.Err(); err != nil {
			return n * s.channels, err
		}
		return n * s.channels, io.EOF
	}
	return n * s.channels, nil
}

type Decoder struct{}

// Register adds the decoder under its file extension.
func Register(reg *audio.Registry) {
	reg.Register("flac", Decoder{})
}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, format, err := beepflac.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFlacFile, err)
	}
	src, err := NewStreamerSource(stream, format)
	if err != nil {
		stream.Close()
		return nil, err
	}
	return src, nil
}
