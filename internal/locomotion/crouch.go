package locomotion

import "github.com/Faultbox/locomotion/pkg/math"

// UpdateShape eases the body's height and center toward the crouched or
// standing shape. It runs every tick, so an interrupted transition simply
// reverses.
func UpdateShape(body Body, shape ShapeParams, state MovementState, dt float32) {
	height, center := shape.StandingHeight, shape.StandingCenter
	if state == Crouching {
		height, center = shape.CrouchHeight, shape.CrouchCenter
	}
	t := math.Clamp01(shape.TransitionSpeed * dt)
	body.SetHeight(math.Lerp(body.Height(), height, t))
	body.SetCenter(body.Center().Lerp(center, t))
}
