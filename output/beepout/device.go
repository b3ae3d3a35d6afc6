// SPDX-License-Identifier: EPL-2.0

package beepout

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/ik5/audcue/audio"
	"github.com/ik5/audcue/channel"
)

const (
	// resampleQuality trades CPU for aliasing; beep accepts 1 to 64.
	resampleQuality = 4
	bufferPrecision = 4
)

type Device struct {
	rate     beep.SampleRate
	mixer    beep.Mixer
	listener channel.Vec3
	voices   []*Voice
	buffers  map[*audio.Clip]*beep.Buffer
	started  bool

	mtx sync.Mutex
}

// New creates a device mixing at sampleRate.
func New(sampleRate int) *Device {
	return &Device{
		rate:    beep.SampleRate(sampleRate),
		buffers: make(map[*audio.Clip]*beep.Buffer),
	}
}

func (d *Device) SampleRate() int { return int(d.rate) }

// Start opens the speaker and plays the device through it.
func (d *Device) Start(latency time.Duration) error {
	if err := speaker.Init(d.rate, d.rate.N(latency)); err != nil {
		return fmt.Errorf("%w: %w", ErrSpeaker, err)
	}
	speaker.Play(d)
	d.mtx.Lock()
	d.started = true
	d.mtx.Unlock()
	return nil
}

// Close silences the speaker if Start opened it.
func (d *Device) Close() {
	d.mtx.Lock()
	started := d.started
	d.started = false
	d.mtx.Unlock()
	if started {
		speaker.Clear()
		speaker.Close()
	}
}

// Stream implements beep.Streamer.
func (d *Device) Stream(samples [][2]float64) (int, bool) {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	return d.mixer.Stream(samples)
}

func (d *Device) Err() error { return nil }

// Playing counts the voices currently in the mix.
func (d *Device) Playing() int {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	return d.mixer.Len()
}

// SetListener moves the point voices are heard from.
func (d *Device) SetListener(p channel.Vec3) {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	d.listener = p
	for _, v := range d.voices {
		v.applyLocked()
	}
}

// NewVoice implements channel.Output.
func (d *Device) NewVoice() channel.Voice {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	v := &Voice{dev: d, volume: 1, pitch: 1}
	d.voices = append(d.voices, v)
	return v
}

// buffer returns the clip as a beep buffer, converting it once.
func (d *Device) buffer(clip *audio.Clip) *beep.Buffer {
	if buf, ok := d.buffers[clip]; ok {
		return buf
	}

	buf := beep.NewBuffer(beep.Format{
		SampleRate:  beep.SampleRate(clip.SampleRate),
		NumChannels: 2,
		Precision:   bufferPrecision,
	})
	frame := 0
	buf.Append(beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n := min(len(samples), clip.Frames()-frame)
		if n <= 0 {
			return 0, false
		}
		for i := range n {
			samples[i][0] = float64(clip.Sample(frame+i, 0))
			samples[i][1] = float64(clip.Sample(frame+i, 1))
		}
		frame += n
		return n, true
	}))
	d.buffers[clip] = buf
	return buf
}

// Forget drops the cached buffer of clip.
func (d *Device) Forget(clip *audio.Clip) {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	delete(d.buffers, clip)
}
