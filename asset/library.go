// SPDX-License-Identifier: EPL-2.0

package asset

import "fmt"

// Category is one identifier namespace of a library.
type Category struct {
	// Name is the declared name keys are derived from. It must be stable
	// across releases for keys to stay stable.
	Name string
	Cues []*Definition
}

// Library bundles a sound and a music category.
type Library struct {
	Name   string
	Sounds Category
	Music  Category
}

// Entry is one cue as issued by a library.
type Entry struct {
	Key  Key
	Name string
	Kind Kind
	Def  *Definition
}

// Bind stamps the definition with the entry's kind and fully qualified
// name.
func (e Entry) Bind() {
	e.Def.kind = e.Kind
	e.Def.fullName = e.Name
}

func (l *Library) soundCategory() string {
	if l.Sounds.Name != "" {
		return l.Sounds.Name
	}
	return l.Name + ".sound"
}

func (l *Library) musicCategory() string {
	if l.Music.Name != "" {
		return l.Music.Name
	}
	return l.Name + ".music"
}

// Entries returns the keys, names and kinds the library issues, sounds
// first. The definitions are not modified; see Bind.
func (l *Library) Entries() ([]Entry, error) {
	if l == nil || l.Name == "" {
		return nil, ErrEmptyLibrary
	}

	entries := make([]Entry, 0, len(l.Sounds.Cues)+len(l.Music.Cues))
	add := func(category string, kind Kind, cues []*Definition) error {
		for i, def := range cues {
			if def == nil {
				return fmt.Errorf("%s[%d]: %w", category, i, ErrInvalidAsset)
			}
			entries = append(entries, Entry{
				Key:  NewKey(category, i),
				Name: category + "." + def.Name,
				Kind: kind,
				Def:  def,
			})
		}
		return nil
	}
	if err := add(l.soundCategory(), Sound, l.Sounds.Cues); err != nil {
		return nil, err
	}
	if err := add(l.musicCategory(), Music, l.Music.Cues); err != nil {
		return nil, err
	}
	return entries, nil
}

// Bind computes the entries and stamps every definition with them. Use it
// for libraries that are played without a registry.
func (l *Library) Bind() ([]Entry, error) {
	entries, err := l.Entries()
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		e.Bind()
	}
	return entries, nil
}

// KeyOf returns the key of the named cue in the library.
func (l *Library) KeyOf(kind Kind, cue string) (Key, bool) {
	category, cues := l.soundCategory(), l.Sounds.Cues
	if kind == Music {
		category, cues = l.musicCategory(), l.Music.Cues
	}
	for i, def := range cues {
		if def != nil && def.Name == cue {
			return NewKey(category, i), true
		}
	}
	return 0, false
}
