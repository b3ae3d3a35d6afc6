// SPDX-License-Identifier: EPL-2.0

package audiotest

import "github.com/ik5/audcue/channel"

// Target is a movable spatialization target.
type Target struct {
	Pos channel.Vec3
}

// Position implements channel.Transform.
func (t *Target) Position() channel.Vec3 { return t.Pos }

// MoveTo relocates the target.
func (t *Target) MoveTo(x, y, z float64) {
	t.Pos = channel.Vec3{X: x, Y: y, Z: z}
}
