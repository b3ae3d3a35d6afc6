// SPDX-License-Identifier: EPL-2.0

package audcue

import (
	"log/slog"
	"time"

	"github.com/ik5/audcue/asset"
)

// OnFrameUpdate advances every channel by one frame. dt is scaled game
// time, unscaled is wall time.
func (s *System) OnFrameUpdate(dt, unscaled time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pool.Update(dt, unscaled)
	if s.mainMusic != nil && !s.mainMusic.IsActive() {
		s.mainMusic = nil
	}
}

func (s *System) OnFixedUpdate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pool.FixedUpdate()
}

func (s *System) OnLateUpdate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pool.LateUpdate()
}

// OnSceneChanged stops sounds and music as configured.
func (s *System) OnSceneChanged() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.StopSoundsOnSceneChange {
		s.stopKind(asset.Sound, true)
	}
	if s.cfg.StopMusicOnSceneChange {
		s.stopKind(asset.Music, true)
		s.mainMusic = nil
	}
	s.log.Debug("scene changed",
		slog.Bool("stopped_sounds", s.cfg.StopSoundsOnSceneChange),
		slog.Bool("stopped_music", s.cfg.StopMusicOnSceneChange))
}

// OnApplicationPause and OnApplicationFocus suspend channel reclamation:
// while the application is paused or unfocused, a voice that stopped
// advancing does not free its channel.
func (s *System) OnApplicationPause(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = paused
	s.env.Suspended = s.paused || s.unfocused
}

func (s *System) OnApplicationFocus(focused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unfocused = !focused
	s.env.Suspended = s.paused || s.unfocused
}

// OnTimeScaleChanged repitches every channel that follows the timescale.
func (s *System) OnTimeScaleChanged(scale float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pool.SetTimeScale(max(scale, 0))
}

// TimeScale returns the last timescale the host reported.
func (s *System) TimeScale() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.env.TimeScale
}
