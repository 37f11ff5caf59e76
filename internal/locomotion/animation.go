package locomotion

import "github.com/Faultbox/locomotion/pkg/math"

// blendEpsilon floors the top speed used to normalize the blend vector.
const blendEpsilon = 1e-4

// AnimationFrame is what the animation layer reads after each tick.
type AnimationFrame struct {
	State    MovementState
	Grounded bool

	// Blend is the body-local lateral velocity scaled into blend space:
	// X is strafe, Y is forward.
	Blend          math.Vec2
	BlendMagnitude float32

	RotationMismatch float32
	RotatingToTarget bool

	VerticalVelocity float32

	Attacking   bool
	Aiming      bool
	Interacting bool
	// PlayingAction is set while an action that holds the character in
	// place is running. Only interact does.
	PlayingAction bool
}

// Idle reports whether the frame is in the Idle state.
func (f AnimationFrame) Idle() bool { return f.State == Idle }

// Jumping reports whether the frame is in the Jumping state.
func (f AnimationFrame) Jumping() bool { return f.State == Jumping }

// Falling reports whether the frame is in the Falling state.
func (f AnimationFrame) Falling() bool { return f.State == Falling }

// Crouching reports whether the frame is in the Crouching state.
func (f AnimationFrame) Crouching() bool { return f.State == Crouching }

// blendTarget maps a world velocity into the body's blend space.
func blendTarget(rot math.Quat, velocity math.Vec3, st StateParams) math.Vec2 {
	local := math.Vec2{
		X: velocity.Dot(rot.RightAxis()),
		Y: velocity.Dot(rot.Forward()),
	}
	top := st.TopSpeed
	if top < blendEpsilon {
		top = blendEpsilon
	}
	return local.Scale(st.BlendMax / top)
}
