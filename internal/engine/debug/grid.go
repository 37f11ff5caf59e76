package debug

import "github.com/Faultbox/locomotion/pkg/math"

// GridColor is the floor grid color.
var GridColor = Color{0.3, 0.3, 0.35}

// Grid adds floor lines every spacing units across the XZ extent of lo..hi
// at height y.
func (l *Lines) Grid(lo, hi math.Vec3, spacing, y float32) {
	if spacing <= 0 {
		return
	}

	// Lines along Z
	for x := lo.X; x <= hi.X; x += spacing {
		l.Segment(math.Vec3{X: x, Y: y, Z: lo.Z}, math.Vec3{X: x, Y: y, Z: hi.Z}, GridColor)
	}

	// Lines along X
	for z := lo.Z; z <= hi.Z; z += spacing {
		l.Segment(math.Vec3{X: lo.X, Y: y, Z: z}, math.Vec3{X: hi.X, Y: y, Z: z}, GridColor)
	}
}
