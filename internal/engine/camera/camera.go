// Package camera provides the cameras used to view and steer the character.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/locomotion/internal/config"
	"github.com/Faultbox/locomotion/pkg/math"
)

const (
	nearPlane = 0.1
	farPlane  = 500
)

// OrbitCamera orbits around a center point. The sandbox uses it as a free
// overview of the whole course.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        30,
		RotationX:       0.6,
		RotationY:       0,
		MinDistance:     3,
		MaxDistance:     200,
		MinPitch:        0.1,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	horiz := c.Distance * math32.Cos(c.RotationX)
	return c.Center.Add(math.Vec3{
		X: horiz * math32.Sin(c.RotationY),
		Y: c.Distance * math32.Sin(c.RotationX),
		Z: horiz * math32.Cos(c.RotationY),
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Up)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX = math.Clamp(c.RotationX+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = math.Clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// FitToBounds centers the camera on a bounding box and backs off far enough
// to see all of it.
func (c *OrbitCamera) FitToBounds(lo, hi math.Vec3) {
	c.Center = lo.Add(hi).Scale(0.5)

	size := hi.X - lo.X
	if d := hi.Z - lo.Z; d > size {
		size = d
	}
	c.Distance = math.Clamp(size*0.8, c.MinDistance, c.MaxDistance)

	c.RotationX = 0.6 // Look down at ~35 degrees
	c.RotationY = 0
}

// Rig is a third-person camera driven by look input. Yaw 0 looks along +Z;
// positive pitch raises the camera above the target so it looks down.
// Angles are in degrees.
type Rig struct {
	Yaw   float32
	Pitch float32

	Distance float32

	cfg config.CameraConfig
}

// NewRig creates a rig from camera settings.
func NewRig(cfg config.CameraConfig) *Rig {
	r := &Rig{}
	r.SetConfig(cfg)
	r.Distance = cfg.Distance
	r.Pitch = cfg.Pitch
	return r
}

// SetConfig applies new settings, keeping the current orientation within the
// new limits.
func (r *Rig) SetConfig(cfg config.CameraConfig) {
	r.cfg = cfg
	r.Pitch = math.Clamp(r.Pitch, -cfg.LookLimitV, cfg.LookLimitV)
	r.Distance = math.Clamp(r.Distance, cfg.MinDistance, cfg.MaxDistance)
}

// Look turns the rig by a look delta. Positive X turns right; positive Y
// (mouse moving down) raises the camera.
func (r *Rig) Look(delta math.Vec2) {
	r.Yaw = wrapDegrees(r.Yaw + delta.X*r.cfg.LookSenseH)
	r.Pitch = math.Clamp(r.Pitch+delta.Y*r.cfg.LookSenseV, -r.cfg.LookLimitV, r.cfg.LookLimitV)
}

// Zoom moves the rig toward (positive delta) or away from the target.
func (r *Rig) Zoom(delta float32) {
	r.Distance = math.Clamp(r.Distance-delta*r.Distance*r.cfg.ZoomSensitivity, r.cfg.MinDistance, r.cfg.MaxDistance)
}

// Forward returns the view direction.
func (r *Rig) Forward() math.Vec3 {
	yaw, pitch := r.Yaw*math.Deg2Rad, r.Pitch*math.Deg2Rad
	cp := math32.Cos(pitch)
	return math.Vec3{
		X: math32.Sin(yaw) * cp,
		Y: -math32.Sin(pitch),
		Z: math32.Cos(yaw) * cp,
	}
}

// Right returns the horizontal right axis.
func (r *Rig) Right() math.Vec3 {
	yaw := r.Yaw * math.Deg2Rad
	return math.Vec3{X: math32.Cos(yaw), Z: -math32.Sin(yaw)}
}

// Pivot is the point the rig orbits: the target raised to head height.
func (r *Rig) Pivot(target math.Vec3) math.Vec3 {
	return target.Add(math.Up.Scale(r.cfg.TargetHeight))
}

// Position returns the camera position for a target.
func (r *Rig) Position(target math.Vec3) math.Vec3 {
	return r.Pivot(target).Sub(r.Forward().Scale(r.Distance))
}

// ViewMatrix returns the view matrix looking at the pivot above target.
func (r *Rig) ViewMatrix(target math.Vec3) math.Mat4 {
	return math.LookAt(r.Position(target), r.Pivot(target), math.Up)
}

// Projection returns the perspective matrix for the configured FOV.
func (r *Rig) Projection(aspect float32) math.Mat4 {
	return Projection(r.cfg.FOV, aspect)
}

// Projection returns a perspective matrix for a vertical FOV in degrees.
func Projection(fovDeg, aspect float32) math.Mat4 {
	return math.Perspective(fovDeg*math.Deg2Rad, aspect, nearPlane, farPlane)
}

func wrapDegrees(a float32) float32 {
	a = math32.Mod(a+180, 360)
	if a < 0 {
		a += 360
	}
	return a - 180
}
