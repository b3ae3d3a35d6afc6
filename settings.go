// SPDX-License-Identifier: EPL-2.0

package audcue

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ik5/audcue/volume"
)

// SettingsStore persists player audio preferences between sessions.
type SettingsStore interface {
	Float(key string) (float64, bool)
	Bool(key string) (bool, bool)
	SetFloat(key string, v float64) error
	SetBool(key string, v bool) error
}

var tiers = [...]volume.Tier{volume.Master, volume.Music, volume.Sound, volume.Voice}

// SettingsKeys returns the store keys for tier's gain and mute flag.
func SettingsKeys(t volume.Tier) (gain, muted string) {
	return fmt.Sprintf("audcue.%s.volume", t), fmt.Sprintf("audcue.%s.muted", t)
}

// SaveSettings writes every tier's gain and mute flag.
func (s *System) SaveSettings(store SettingsStore) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, t := range tiers {
		gk, mk := SettingsKeys(t)
		errs = append(errs,
			store.SetFloat(gk, s.cascade.Gain(t)),
			store.SetBool(mk, s.cascade.Muted(t)))
	}
	if err := errors.Join(errs...); err != nil {
		s.log.Error("saving settings", slog.Any("err", err))
		return err
	}
	return nil
}

// LoadSettings applies whatever the store holds. Missing keys keep the
// current value.
func (s *System) LoadSettings(store SettingsStore) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range tiers {
		gk, mk := SettingsKeys(t)
		if g, ok := store.Float(gk); ok {
			s.cascade.SetGain(t, g)
		}
		if m, ok := store.Bool(mk); ok {
			s.cascade.SetMuted(t, m)
		}
	}
}

// MapStore is an in-memory SettingsStore.
type MapStore map[string]any

func (m MapStore) Float(key string) (float64, bool) {
	v, ok := m[key].(float64)
	return v, ok
}

func (m MapStore) Bool(key string) (bool, bool) {
	v, ok := m[key].(bool)
	return v, ok
}

func (m MapStore) SetFloat(key string, v float64) error {
	m[key] = v
	return nil
}

func (m MapStore) SetBool(key string, v bool) error {
	m[key] = v
	return nil
}
