// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	ErrNotAiffFile           = errors.New("not a valid AIFF file")
	ErrUnsupportedBitDepth   = errors.New("unsupported AIFF bit depth")
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")
)
