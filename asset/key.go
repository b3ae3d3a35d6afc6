// SPDX-License-Identifier: EPL-2.0

package asset

import (
	"fmt"
	"hash/fnv"
)

// Key identifies a cue: the FNV-1a hash of its category's declared name in
// the high 32 bits, its ordinal in the low 32. The same name and ordinal
// always produce the same key.
type Key uint64

// CategoryHash hashes a category's declared name.
func CategoryHash(name string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(name))
	return h.Sum32()
}

func NewKey(category string, ordinal int) Key {
	return Key(uint64(CategoryHash(category))<<32 | uint64(uint32(ordinal)))
}

func (k Key) Category() uint32 { return uint32(k >> 32) }
func (k Key) Ordinal() int     { return int(uint32(k)) }

func (k Key) String() string {
	return fmt.Sprintf("%016x", uint64(k))
}

// Resolver looks cues up by key or by fully qualified name.
type Resolver interface {
	Resolve(Key) (*Definition, error)
	ResolveByName(string) (*Definition, error)
}

// Ref is anything that names a cue: a Key, a Name or a *Definition.
type Ref interface {
	Resolve(Resolver) (*Definition, error)
}

func (k Key) Resolve(r Resolver) (*Definition, error) {
	return r.Resolve(k)
}

// Name is a fully qualified cue name, "<category>.<cue>".
type Name string

func (n Name) Resolve(r Resolver) (*Definition, error) {
	return r.ResolveByName(string(n))
}
