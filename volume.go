// SPDX-License-Identifier: EPL-2.0

package audcue

import (
	"log/slog"

	"github.com/ik5/audcue/volume"
)

// Volume returns the user gain of tier, before mute and master.
func (s *System) Volume(t volume.Tier) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cascade.Gain(t)
}

// SetVolume sets tier's gain, clamped to [0, 1]. Every channel on the tier
// (every channel, for the master tier) picks the change up at once.
func (s *System) SetVolume(t volume.Tier, gain float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cascade.SetGain(t, gain)
	s.log.Debug("volume changed", slog.String("tier", t.String()), slog.Float64("gain", s.cascade.Gain(t)))
}

func (s *System) Muted(t volume.Tier) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cascade.Muted(t)
}

func (s *System) SetMuted(t volume.Tier, muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cascade.SetMuted(t, muted)
	s.log.Debug("mute changed", slog.String("tier", t.String()), slog.Bool("muted", muted))
}

// EffectiveVolume is tier's gain times master, zero when either is muted.
func (s *System) EffectiveVolume(t volume.Tier) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cascade.Effective(t)
}

func (s *System) MasterVolume() float64     { return s.Volume(volume.Master) }
func (s *System) MusicVolume() float64      { return s.Volume(volume.Music) }
func (s *System) SoundVolume() float64      { return s.Volume(volume.Sound) }
func (s *System) VoiceVolume() float64      { return s.Volume(volume.Voice) }
func (s *System) SetMasterVolume(v float64) { s.SetVolume(volume.Master, v) }
func (s *System) SetMusicVolume(v float64)  { s.SetVolume(volume.Music, v) }
func (s *System) SetSoundVolume(v float64)  { s.SetVolume(volume.Sound, v) }
func (s *System) SetVoiceVolume(v float64)  { s.SetVolume(volume.Voice, v) }
func (s *System) MasterMuted() bool         { return s.Muted(volume.Master) }
func (s *System) MusicMuted() bool          { return s.Muted(volume.Music) }
func (s *System) SoundMuted() bool          { return s.Muted(volume.Sound) }
func (s *System) VoiceMuted() bool          { return s.Muted(volume.Voice) }
func (s *System) SetMasterMuted(m bool)     { s.SetMuted(volume.Master, m) }
func (s *System) SetMusicMuted(m bool)      { s.SetMuted(volume.Music, m) }
func (s *System) SetSoundMuted(m bool)      { s.SetMuted(volume.Sound, m) }
func (s *System) SetVoiceMuted(m bool)      { s.SetMuted(volume.Voice, m) }
