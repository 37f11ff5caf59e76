package debug

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/locomotion/internal/locomotion"
	"github.com/Faultbox/locomotion/pkg/math"
)

const capsuleSegments = 16

// Probe colors.
var (
	VelocityColor = Color{0.2, 0.6, 1.0}
	HeadingColor  = Color{1.0, 1.0, 1.0}
)

// StateColor is the color the character is drawn in for each state.
func StateColor(s locomotion.MovementState) Color {
	switch s {
	case locomotion.Idle:
		return Color{0.6, 0.6, 0.6}
	case locomotion.Walking:
		return Color{0.3, 0.8, 0.3}
	case locomotion.Running:
		return Color{0.2, 0.5, 1.0}
	case locomotion.Sprinting:
		return Color{0.6, 0.3, 1.0}
	case locomotion.Jumping:
		return Color{1.0, 0.8, 0.1}
	case locomotion.Falling:
		return Color{1.0, 0.4, 0.1}
	case locomotion.Crouching:
		return Color{0.1, 0.8, 0.8}
	}
	return Color{1, 0, 1}
}

// Capsule adds a wireframe capsule around the segment a-b: a ring at each
// end and four lines joining them.
func (l *Lines) Capsule(a, b math.Vec3, radius float32, c Color) {
	ring := func(center math.Vec3) {
		for i := 0; i < capsuleSegments; i++ {
			l.Segment(ringPoint(center, radius, i), ringPoint(center, radius, i+1), c)
		}
	}
	ring(a)
	ring(b)
	for i := 0; i < capsuleSegments; i += capsuleSegments / 4 {
		l.Segment(ringPoint(a, radius, i), ringPoint(b, radius, i), c)
	}
	// Caps
	l.Segment(a, a.Sub(math.Up.Scale(radius)), c)
	l.Segment(b, b.Add(math.Up.Scale(radius)), c)
}

func ringPoint(center math.Vec3, radius float32, i int) math.Vec3 {
	angle := 2 * math32.Pi * float32(i) / capsuleSegments
	return center.Add(math.Vec3{X: radius * math32.Cos(angle), Z: radius * math32.Sin(angle)})
}

// Character adds the body capsule in its state color, the heading, the
// horizontal velocity and, when showProbes is set, the ground normal.
func (l *Lines) Character(body locomotion.Body, state locomotion.MovementState, groundNormal math.Vec3, showProbes bool) {
	pos := body.Position()
	center := pos.Add(body.Center())
	r := body.Radius()
	half := max(body.Height()/2-r, 0)
	a := center.Sub(math.Up.Scale(half))
	b := center.Add(math.Up.Scale(half))
	l.Capsule(a, b, r, StateColor(state))

	l.Ray(center, body.Rotation().Forward(), r*2, HeadingColor)

	if !showProbes {
		return
	}
	l.Ray(pos.Add(math.Up.Scale(0.05)), body.Velocity().Flat(), 0.25, VelocityColor)
	l.Ray(pos, groundNormal, 0.75, HitNormalColor)
}
