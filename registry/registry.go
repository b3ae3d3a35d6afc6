// SPDX-License-Identifier: EPL-2.0

// Package registry resolves cue keys and names to definitions of loaded
// libraries.
package registry

import (
	"fmt"
	"sync"

	"github.com/ik5/audcue/asset"
)

type loaded struct {
	lib   *asset.Library
	refs  int
	keys  []asset.Key
	names []string
	defs  []*asset.Definition
}

type Registry struct {
	byKey  map[asset.Key]*asset.Definition
	byName map[string]*asset.Definition
	libs   map[string]*loaded

	// owner maps each bound definition to its library.
	owner map[*asset.Definition]string

	mtx sync.Mutex
}

func New() *Registry {
	return &Registry{
		byKey:  make(map[asset.Key]*asset.Definition),
		byName: make(map[string]*asset.Definition),
		libs:   make(map[string]*loaded),
		owner:  make(map[*asset.Definition]string),
	}
}

// Load binds every cue of lib. Loading a library that is already loaded
// returns ErrDuplicateLoad and changes nothing. A key or name collision
// with another loaded library, or a definition another loaded library
// already owns, aborts the load. Definitions are only stamped with their
// kind and name once every check has passed.
func (r *Registry) Load(lib *asset.Library) error {
	entries, err := lib.Entries()
	if err != nil {
		return err
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.libs[lib.Name]; ok {
		return fmt.Errorf("%q: %w", lib.Name, ErrDuplicateLoad)
	}

	names := make(map[string]bool, len(entries))
	defs := make(map[*asset.Definition]bool, len(entries))
	for _, e := range entries {
		if prev, ok := r.byKey[e.Key]; ok {
			return &KeyCollisionError{Key: e.Key, Name: e.Name, Existing: prev.FullName(), Library: lib.Name}
		}
		if prev, ok := r.byName[e.Name]; ok {
			return &KeyCollisionError{Key: e.Key, Name: e.Name, Existing: prev.FullName(), Library: lib.Name}
		}
		if names[e.Name] {
			return &KeyCollisionError{Key: e.Key, Name: e.Name, Existing: e.Name, Library: lib.Name}
		}
		if owner, ok := r.owner[e.Def]; ok || defs[e.Def] {
			if !ok {
				owner = lib.Name
			}
			return fmt.Errorf("%s in %q, owned by %q: %w", e.Name, lib.Name, owner, ErrSharedDefinition)
		}
		names[e.Name] = true
		defs[e.Def] = true
	}

	l := &loaded{lib: lib, refs: 1}
	for _, e := range entries {
		e.Bind()
		r.byKey[e.Key] = e.Def
		r.byName[e.Name] = e.Def
		r.owner[e.Def] = lib.Name
		l.keys = append(l.keys, e.Key)
		l.names = append(l.names, e.Name)
		l.defs = append(l.defs, e.Def)
	}

	r.libs[lib.Name] = l
	return nil
}

func (r *Registry) remove(l *loaded) {
	for _, k := range l.keys {
		delete(r.byKey, k)
	}
	for _, n := range l.names {
		delete(r.byName, n)
	}
	for _, d := range l.defs {
		delete(r.owner, d)
	}
}

// Unload removes every key and name lib issued.
func (r *Registry) Unload(lib *asset.Library) error {
	if lib == nil {
		return asset.ErrInvalidAsset
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	l, ok := r.libs[lib.Name]
	if !ok {
		return fmt.Errorf("%q: %w", lib.Name, ErrDuplicateUnload)
	}
	l.refs--
	if l.refs > 0 {
		return nil
	}
	r.remove(l)
	delete(r.libs, lib.Name)
	return nil
}

// Loaded reports whether a library of that name is loaded.
func (r *Registry) Loaded(name string) bool {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	_, ok := r.libs[name]
	return ok
}

// Libraries returns the loaded libraries.
func (r *Registry) Libraries() []*asset.Library {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	out := make([]*asset.Library, 0, len(r.libs))
	for _, l := range r.libs {
		out = append(out, l.lib)
	}
	return out
}

func (r *Registry) Resolve(k asset.Key) (*asset.Definition, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	def, ok := r.byKey[k]
	if !ok {
		return nil, fmt.Errorf("key %s: %w", k, ErrNotFound)
	}
	return def, nil
}

func (r *Registry) ResolveByName(name string) (*asset.Definition, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	def, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return def, nil
}
