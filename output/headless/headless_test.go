// SPDX-License-Identifier: EPL-2.0

package headless

import (
	"testing"
	"time"

	"github.com/ik5/audcue/audio"
)

func testClip(t *testing.T, rate, frames int) *audio.Clip {
	t.Helper()
	c, err := audio.NewClip("t", rate, 1, make([]float32, frames))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestVoice_Advance(t *testing.T) {
	t.Parallel()

	d := New()
	v := d.NewVoice().(*Voice)
	v.Load(testClip(t, 1000, 1000))
	v.Play()

	d.Advance(250 * time.Millisecond)
	if v.Position() != 250 || !v.IsPlaying() {
		t.Fatalf("pos = %d playing = %v", v.Position(), v.IsPlaying())
	}

	v.SetPitch(2)
	d.Advance(250 * time.Millisecond)
	if v.Position() != 750 {
		t.Errorf("pitched pos = %d, want 750", v.Position())
	}

	d.Advance(time.Second)
	if v.IsPlaying() || v.Position() != 0 {
		t.Errorf("voice past end: playing = %v pos = %d", v.IsPlaying(), v.Position())
	}
}

func TestVoice_Loop(t *testing.T) {
	t.Parallel()

	d := New()
	v := d.NewVoice().(*Voice)
	v.Load(testClip(t, 1000, 1000))
	v.SetLooping(true)
	v.Play()

	d.Advance(1300 * time.Millisecond)
	if !v.IsPlaying() || v.Position() != 300 {
		t.Errorf("looped pos = %d playing = %v", v.Position(), v.IsPlaying())
	}
}

func TestVoice_PauseSeekStop(t *testing.T) {
	t.Parallel()

	d := New()
	v := d.NewVoice().(*Voice)
	v.Load(testClip(t, 1000, 1000))
	v.Play()
	v.Pause()
	d.Advance(time.Second)
	if v.Position() != 0 || !v.IsPlaying() {
		t.Errorf("paused voice moved: pos = %d", v.Position())
	}
	v.Resume()

	v.Seek(5000)
	if v.Position() != 1000 {
		t.Errorf("Seek() past end = %d, want 1000", v.Position())
	}
	v.Seek(-3)
	if v.Position() != 0 {
		t.Errorf("Seek() negative = %d", v.Position())
	}

	v.Seek(400)
	v.Stop()
	if v.IsPlaying() || v.Position() != 0 {
		t.Error("Stop() did not rewind")
	}
	if v.Plays() != 1 || len(d.Voices()) != 1 {
		t.Errorf("plays = %d voices = %d", v.Plays(), len(d.Voices()))
	}
}
