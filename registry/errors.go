// SPDX-License-Identifier: EPL-2.0

package registry

import (
	"errors"
	"fmt"

	"github.com/ik5/audcue/asset"
)

var (
	ErrNotFound         = errors.New("cue not found")
	ErrDuplicateLoad    = errors.New("library already loaded")
	ErrDuplicateUnload  = errors.New("library not loaded")
	ErrKeyCollision     = errors.New("key collision")
	ErrSharedDefinition = errors.New("definition belongs to another library")
)

// KeyCollisionError reports two cues issued under the same key or name.
type KeyCollisionError struct {
	Key      asset.Key
	Name     string
	Existing string
	Library  string
}

func (e *KeyCollisionError) Error() string {
	return fmt.Sprintf("key collision in library %q: %s (%s) already bound to %s", e.Library, e.Key, e.Name, e.Existing)
}

func (e *KeyCollisionError) Is(target error) bool {
	return target == ErrKeyCollision
}
