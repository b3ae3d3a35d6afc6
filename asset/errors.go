// SPDX-License-Identifier: EPL-2.0

package asset

import "errors"

var (
	ErrInvalidAsset = errors.New("invalid asset")
	ErrBadManifest  = errors.New("malformed library manifest")
	ErrNoDecoder    = errors.New("no decoder registered for clip")
	ErrUnknownEnum  = errors.New("unknown enum value")
	ErrDuplicateCue = errors.New("duplicate cue name in category")
	ErrEmptyLibrary = errors.New("library has no name")
)
