// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/audcue/audio"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

// pcmSource serves fully decoded samples.
type pcmSource struct {
	sampleRate int
	channels   int
	samples    []float32
	pos        int

	loopStart, loopEnd int
	hasLoop            bool
}

func (s *pcmSource) SampleRate() int { return s.sampleRate }
func (s *pcmSource) Channels() int   { return s.channels }
func (s *pcmSource) BufSize() int    { return 4096 }
func (s *pcmSource) Close() error    { return nil }

func (s *pcmSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.samples) {
		return 0, io.EOF
	}
	n := copy(dst, s.samples[s.pos:])
	s.pos += n
	return n, nil
}

func (s *pcmSource) LoopPoints() (start, end int, ok bool) {
	return s.loopStart, s.loopEnd, s.hasLoop
}

type Decoder struct{}

// Register adds the decoder under its file extensions.
func Register(reg *audio.Registry) {
	reg.Register("wav", Decoder{})
	reg.Register("wave", Decoder{})
}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio needs a seeker and a second pass for metadata.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}

	dec := gowav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	if dec.WavAudioFormat != formatPCM && dec.WavAudioFormat != formatExtensible {
		return nil, ErrUnsupportedEncoding
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoPCMData, err)
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels <= 0 {
		return nil, ErrNoPCMData
	}

	samples, err := normalize(buf, int(dec.BitDepth))
	if err != nil {
		return nil, err
	}

	src := &pcmSource{
		sampleRate: buf.Format.SampleRate,
		channels:   buf.Format.NumChannels,
		samples:    samples,
	}
	src.loopStart, src.loopEnd, src.hasLoop = readLoop(data, len(samples)/src.channels)
	return src, nil
}

func normalize(buf *goaudio.IntBuffer, bitDepth int) ([]float32, error) {
	var scale float32
	offset := 0
	switch bitDepth {
	case 8:
		// 8-bit WAV is unsigned.
		scale, offset = 128, 128
	case 16:
		scale = 32768
	case 24:
		scale = 8388608
	case 32:
		scale = 2147483648
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	out := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		out[i] = float32(v-offset) / scale
	}
	return out, nil
}

// readLoop returns the first smpl loop as an end-exclusive frame range.
func readLoop(data []byte, frames int) (start, end int, ok bool) {
	meta := gowav.NewDecoder(bytes.NewReader(data))
	meta.ReadMetadata()
	if meta.Metadata == nil || meta.Metadata.SamplerInfo == nil {
		return 0, 0, false
	}
	for _, l := range meta.Metadata.SamplerInfo.Loops {
		if l == nil {
			continue
		}
		s, e := int(l.Start), int(l.End)+1
		if s < e && e <= frames {
			return s, e, true
		}
	}
	return 0, 0, false
}
