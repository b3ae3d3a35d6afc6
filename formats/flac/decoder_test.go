// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/ik5/audcue/audio"
)

func TestStreamerSource_Stereo(t *testing.T) {
	t.Parallel()

	pairs := [][2]float64{{0.5, -0.5}, {0.25, -0.25}, {0, 0}}
	src, err := NewStreamerSource(&sliceStreamer{pairs: pairs}, beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2})
	if err != nil {
		t.Fatalf("NewStreamerSource() error = %v", err)
	}
	clip, err := audio.ReadClip("hit.flac", src)
	if err != nil {
		t.Fatalf("ReadClip() error = %v", err)
	}
	if clip.Frames() != 3 || clip.Channels != 2 {
		t.Fatalf("clip = %d frames %dch", clip.Frames(), clip.Channels)
	}
	if clip.Sample(0, 0) != 0.5 || clip.Sample(0, 1) != -0.5 {
		t.Errorf("frame 0 = %v, %v", clip.Sample(0, 0), clip.Sample(0, 1))
	}
}

func TestStreamerSource_Mono(t *testing.T) {
	t.Parallel()

	src, err := NewStreamerSource(&sliceStreamer{pairs: [][2]float64{{0.5, 0.5}, {-0.5, -0.5}}},
		beep.Format{SampleRate: 22050, NumChannels: 1, Precision: 2})
	if err != nil {
		t.Fatalf("NewStreamerSource() error = %v", err)
	}
	clip, err := audio.ReadClip("mono.flac", src)
	if err != nil {
		t.Fatalf("ReadClip() error = %v", err)
	}
	if clip.Frames() != 2 || clip.Samples[1] != -0.5 {
		t.Errorf("samples = %v", clip.Samples)
	}
}

func TestNewStreamerSource_BadChannels(t *testing.T) {
	t.Parallel()

	_, err := NewStreamerSource(&sliceStreamer{}, beep.Format{SampleRate: 8000, NumChannels: 6})
	if !errors.Is(err, ErrUnsupportedChannels) {
		t.Errorf("error = %v, want ErrUnsupportedChannels", err)
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := (Decoder{}).Decode(bytes.NewReader([]byte("definitely not flac")))
	if !errors.Is(err, ErrNotFlacFile) {
		t.Errorf("Decode() error = %v, want ErrNotFlacFile", err)
	}
}

type sliceStreamer struct {
	pairs [][2]float64
	pos   int
}

func (s *sliceStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= len(s.pairs) {
		return 0, false
	}
	n := copy(samples, s.pairs[s.pos:])
	s.pos += n
	return n, true
}

func (s *sliceStreamer) Err() error { return nil }
