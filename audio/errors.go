// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	ErrEmptyClip      = errors.New("clip has no frames")
	ErrBadChannels    = errors.New("source reports no channels")
	ErrBadSampleRate  = errors.New("sample rate must be positive")
)
