// SPDX-License-Identifier: EPL-2.0

package audcue

import "errors"

var (
	ErrNilOutput = errors.New("output is nil")
	ErrBadConfig = errors.New("invalid configuration")
)
