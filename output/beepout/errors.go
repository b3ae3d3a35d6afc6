// SPDX-License-Identifier: EPL-2.0

package beepout

import "errors"

var ErrSpeaker = errors.New("speaker init failed")
