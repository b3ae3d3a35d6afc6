// SPDX-License-Identifier: EPL-2.0

package channel

import "errors"

var (
	ErrPoolExhausted  = errors.New("no free channel")
	ErrEmptyClipList  = errors.New("cue has no usable clips")
	ErrInstanceLimit  = errors.New("cue at instance limit")
	ErrNotBound       = errors.New("channel has no cue bound")
	ErrWrongPartition = errors.New("channel kind does not match cue kind")
)
