package locomotion

import (
	"github.com/Faultbox/locomotion/pkg/math"
)

const (
	// wallAngleTolerance is added to the slope limit before a surface counts as a wall.
	wallAngleTolerance = 0.01
	// wallApproachSpeed is the minimum speed into a surface for it to count as a wall.
	wallApproachSpeed = 0.1
	// wallProbeHeight is how far above the feet the wall probes start.
	wallProbeHeight = 0.5
	// minHeadRadius floors the stand-up clearance radius.
	minHeadRadius = 0.05
)

// Probe answers ground and surface questions for one body. It holds no
// per-tick state.
type Probe struct {
	World      World
	Body       Body
	Mask       LayerMask
	SlopeLimit float32
	WallCheck  float32
}

// IsGrounded uses a permissive overlap test while the character is in a
// grounded state and a strict cast-plus-contact test while airborne.
func (p Probe) IsGrounded(state MovementState) bool {
	if state.Grounded() {
		return p.groundedWhileGrounded()
	}
	return p.groundedWhileAirborne()
}

// groundedWhileGrounded keeps the character snapped across small bumps.
func (p Probe) groundedWhileGrounded() bool {
	pos := p.Body.Position()
	r := p.Body.Radius()
	return p.World.CheckSphere(pos.WithY(pos.Y-r), r, p.Mask)
}

// groundedWhileAirborne refuses landings on faces steeper than the slope limit.
func (p Probe) groundedWhileAirborne() bool {
	if !p.Body.Grounded() {
		return false
	}
	return p.WalkableNormal(p.SurfaceNormal())
}

// WalkableNormal reports whether a surface with normal n is within the slope limit.
func (p Probe) WalkableNormal(n math.Vec3) bool {
	return n.Angle(math.Up) <= p.SlopeLimit
}

// SurfaceNormal casts down from the shape center and returns the normal of
// the surface below, or up when nothing is within half the shape height.
func (p Probe) SurfaceNormal() math.Vec3 {
	center := p.Body.Position().Add(p.Body.Center())
	hit, ok := p.World.SphereCast(center, p.Body.Radius(), math.Down, p.Body.Height()/2, p.Mask)
	if !ok {
		return math.Up
	}
	return hit.Normal
}

// DetectNearbyWall probes forward, back, right and left of the body for a
// surface steeper than the slope limit that velocity is driving into.
// Grazing contact does not count.
func (p Probe) DetectNearbyWall(velocity math.Vec3) bool {
	origin := p.Body.Position().Add(math.Up.Scale(wallProbeHeight))
	rot := p.Body.Rotation()
	fwd := rot.Forward()
	right := rot.RightAxis()
	dirs := [4]math.Vec3{fwd, fwd.Neg(), right, right.Neg()}

	for _, dir := range dirs {
		hit, ok := p.World.SphereCast(origin, p.Body.Radius(), dir, p.WallCheck, p.Mask)
		if !ok {
			continue
		}
		if hit.Normal.Angle(math.Up) <= p.SlopeLimit+wallAngleTolerance {
			continue
		}
		if velocity.Dot(hit.Normal.Neg()) > wallApproachSpeed {
			return true
		}
	}
	return false
}

// AdjustVelocityForSteepGround keeps a settling character from treating a
// too-steep face as ground: the velocity is projected on the face, the
// projected part is scaled by friction, and the original vertical speed is
// restored so gravity still pulls along the face.
func (p Probe) AdjustVelocityForSteepGround(velocity math.Vec3, friction float32) math.Vec3 {
	normal := p.SurfaceNormal()
	if p.WalkableNormal(normal) || velocity.Y > 0 {
		return velocity
	}
	return velocity.ProjectOnPlane(normal).Scale(friction).WithY(velocity.Y)
}

// CanStandUp reports whether the head can rise from its current height to
// the standing height without touching geometry.
func (p Probe) CanStandUp(standingHeight float32, standingCenter math.Vec3) bool {
	headRadius := p.Body.Radius() * 0.9
	if headRadius < minHeadRadius {
		headRadius = minHeadRadius
	}
	pos := p.Body.Position()
	start := pos.Add(p.Body.Center()).Add(math.Up.Scale(p.Body.Height() / 2))
	end := pos.Add(standingCenter).Add(math.Up.Scale(standingHeight / 2))
	return !p.World.CheckCapsule(start, end, headRadius, p.Mask)
}
