package locomotion

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/locomotion/pkg/math"
)

// minRemaining floors the countdown divisor.
const minRemaining = 1e-4

// Rotator keeps the body facing the camera. While moving it follows at a
// fixed rate; while idle it tolerates a mismatch up to the tolerance and
// then turns in place on a countdown, committed to one direction.
type Rotator struct {
	params RotationParams

	timer     float32
	clockwise bool
	mismatch  float32
}

// NewRotator returns a rotator with no turn in progress.
func NewRotator(p RotationParams) *Rotator {
	return &Rotator{params: p}
}

// SetParams replaces the tuning. A turn in progress keeps its countdown.
func (r *Rotator) SetParams(p RotationParams) {
	r.params = p
}

// Mismatch is the signed yaw from body forward to camera forward in
// degrees, measured after the last Update. Positive is clockwise.
func (r *Rotator) Mismatch() float32 { return r.mismatch }

// Turning reports whether an idle turn countdown is running.
func (r *Rotator) Turning() bool { return r.timer > 0 }

// Timer is the remaining idle turn countdown.
func (r *Rotator) Timer() float32 { return r.timer }

// Update runs one tick. track is false when the body should not follow the
// camera this tick.
func (r *Rotator) Update(dt float32, body Body, cam CameraView, idle, track bool) {
	target := cam.Forward().Flat()
	if target.LengthSq() < 1e-8 {
		return
	}
	target = target.Normalize()
	r.mismatch = r.measure(body, target)

	switch {
	case !idle:
		// An idle turn still in flight finishes on its countdown.
		if track {
			r.rotate(dt, body, target, r.timer > 0)
		} else {
			r.timer = math32Max(0, r.timer-dt)
		}
	case abs(r.mismatch) > r.params.Tolerance || r.timer > 0:
		if r.timer <= 0 && r.params.TimeToTarget > 0 {
			r.timer = r.params.TimeToTarget
			r.clockwise = r.mismatch > 0
		}
		if r.timer > 0 && !r.sameDirection() {
			// Crossed zero: the turn is finished.
			r.timer = 0
			break
		}
		r.rotate(dt, body, target, r.timer > 0)
	}

	r.mismatch = r.measure(body, target)
}

func (r *Rotator) sameDirection() bool {
	if r.clockwise {
		return r.mismatch > 0
	}
	return r.mismatch < 0
}

func (r *Rotator) rotate(dt float32, body Body, target math.Vec3, countdown bool) {
	goal := math.QuatLookRotation(target)

	var t float32
	if countdown {
		remaining := r.timer
		r.timer = math32Max(0, r.timer-dt)
		t = dt / math32Max(minRemaining, remaining)
	} else {
		t = r.params.Speed * dt
	}

	q := body.Rotation().Slerp(goal, t)
	if q.Angle(goal) < r.params.SnapAngle {
		q = goal
	}
	body.SetRotation(q)
}

// measure returns the signed yaw from body forward to target. Residuals
// below the snap angle read as zero.
func (r *Rotator) measure(body Body, target math.Vec3) float32 {
	fwd := body.Rotation().Forward()
	if fwd.Flat().LengthSq() < 1e-8 {
		return 0
	}
	diff := yawOf(target) - yawOf(fwd)
	for diff > 180 {
		diff -= 360
	}
	for diff < -180 {
		diff += 360
	}
	if abs(diff) < r.params.SnapAngle {
		return 0
	}
	return diff
}

// yawOf is the heading of v in degrees; positive turns +Z toward +X.
func yawOf(v math.Vec3) float32 {
	return math32.Atan2(v.X, v.Z) * math.Rad2Deg
}

func math32Max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
