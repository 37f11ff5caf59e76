package locomotion

import "github.com/Faultbox/locomotion/pkg/math"

// faceMoveSpeed is the slerp rate used when turning toward the move direction.
const faceMoveSpeed = 10

// Lateral integrates horizontal velocity with a smoothed speed cap.
type Lateral struct {
	// SpeedCap follows the active state's top speed at the smoothing rate.
	SpeedCap float32
}

// NewLateral starts the speed cap at walk speed.
func NewLateral(p *Params) Lateral {
	return Lateral{SpeedCap: p.Walk.TopSpeed}
}

// MoveDirection maps the stick onto the camera's horizontal axes.
func MoveDirection(cam CameraView, movement math.Vec2) math.Vec3 {
	fwd := cam.Forward().Flat().Normalize()
	right := cam.Right().Flat().Normalize()
	return right.Scale(movement.X).Add(fwd.Scale(movement.Y))
}

// Integrate returns the velocity for this tick: the body's last velocity
// plus acceleration along dir, minus drag, with the horizontal part clamped
// to the speed cap and the vertical speed replaced by vertical.
func (l *Lateral) Integrate(dt float32, st StateParams, smoothing float32, dir, bodyVelocity math.Vec3, vertical float32) math.Vec3 {
	l.SpeedCap = math.Lerp(l.SpeedCap, st.TopSpeed, math.Clamp01(smoothing*dt))

	v := bodyVelocity.Add(dir.Scale(st.Acceleration * dt))

	drag := st.Drag * dt
	if v.Length() > drag {
		v = v.Sub(v.Normalize().Scale(drag))
	} else {
		v = math.Vec3{}
	}

	v = v.Flat().ClampLength(l.SpeedCap)
	v.Y = vertical
	return v
}

// FaceToward turns rot toward dir at the face-move rate. A dir whose squared
// length is within threshold leaves the rotation unchanged.
func FaceToward(rot math.Quat, dir math.Vec3, threshold, dt float32) math.Quat {
	if dir.Flat().LengthSq() <= threshold {
		return rot
	}
	return rot.Slerp(math.QuatLookRotation(dir), faceMoveSpeed*dt)
}
