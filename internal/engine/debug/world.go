package debug

import (
	"github.com/Faultbox/locomotion/internal/engine/collision"
	"github.com/Faultbox/locomotion/pkg/math"
)

// Collider colors.
var (
	BoxColor       = Color{0.75, 0.75, 0.8}
	WalkableColor  = Color{0.0, 0.8, 0.0}
	TooSteepColor  = Color{0.8, 0.0, 0.0}
	HitNormalColor = Color{1.0, 1.0, 0.0}
)

// World adds every collider. Triangles are green when their slope is within
// slopeLimit degrees and red when the character would slide off them.
func (l *Lines) World(w *collision.World, slopeLimit float32) {
	for _, c := range w.Colliders() {
		switch c.Shape {
		case collision.ShapeBox:
			l.Box(c.Box.Min, c.Box.Max, BoxColor)
		case collision.ShapeTriangle:
			t := c.Triangle
			col := WalkableColor
			if t.Normal.Angle(math.Up) > slopeLimit {
				col = TooSteepColor
			}
			l.Triangle(t.A, t.B, t.C, col)
		}
	}
}
