package locomotion

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/locomotion/pkg/math"
)

// LayerMask selects which collider layers a query considers.
type LayerMask uint32

// AllLayers matches every layer.
const AllLayers LayerMask = 0xFFFFFFFF

// Contains reports whether layer is selected by the mask.
func (m LayerMask) Contains(layer uint8) bool {
	return layer < 32 && m&(1<<layer) != 0
}

// Hit describes the first surface found by a cast.
type Hit struct {
	Point    math.Vec3
	Normal   math.Vec3
	Distance float32
}

// World answers the geometric queries the probes need. Casts ignore colliders
// the shape already overlaps at its origin.
type World interface {
	CheckSphere(center math.Vec3, radius float32, mask LayerMask) bool
	CheckCapsule(a, b math.Vec3, radius float32, mask LayerMask) bool
	SphereCast(origin math.Vec3, radius float32, dir math.Vec3, maxDist float32, mask LayerMask) (Hit, bool)
	Raycast(origin, dir math.Vec3, maxDist float32, mask LayerMask) (Hit, bool)
}

// Body is the physics body that carries the character. Position is the base
// of the shape; Center is relative to it.
type Body interface {
	Position() math.Vec3
	Rotation() math.Quat
	SetRotation(q math.Quat)

	// Velocity is the displacement achieved by the last Move divided by its dt.
	Velocity() math.Vec3
	// Grounded reports whether the last Move ended touching something below.
	Grounded() bool

	Radius() float32
	Height() float32
	Center() math.Vec3
	SetHeight(h float32)
	SetCenter(c math.Vec3)

	StepOffset() float32
	SetStepOffset(offset float32)

	// Move displaces the body by delta, resolving collisions.
	Move(delta math.Vec3, dt float32)
}

// CameraView is the camera the character steers relative to.
type CameraView interface {
	Forward() math.Vec3
	Right() math.Vec3
}

func sqrt(x float32) float32 {
	if x <= 0 {
		return 0
	}
	return math32.Sqrt(x)
}

func abs(x float32) float32 {
	return math32.Abs(x)
}
