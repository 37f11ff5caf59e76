package locomotion

import "github.com/Faultbox/locomotion/pkg/math"

// Decision is everything the state machine looks at for one tick.
type Decision struct {
	Current MovementState
	// Movement is the raw stick value.
	Movement math.Vec2
	// Grounded is the probe result for Current.
	Grounded bool
	// MovingLaterally is true when horizontal body speed exceeds the threshold.
	MovingLaterally bool

	WantsCrouch bool
	Walk        bool
	Sprint      bool

	// Jumped reports a jump applied by the vertical integrator this tick.
	Jumped           bool
	VerticalVelocity float32
	// SteepWallTimer is the remaining steep-wall cooldown.
	SteepWallTimer float32

	// CanStandUp is consulted only when leaving Crouching.
	CanStandUp func() bool
}

// Transition is the outcome of Classify.
type Transition struct {
	State MovementState
	// StepOffset is false while airborne or recently against a steep wall.
	StepOffset bool
	// StandBlocked is set when crouch was released under a low ceiling.
	StandBlocked bool
}

// CanRun reports whether the stick points mostly forward. Strafing and
// backpedaling are walk speed.
func CanRun(movement math.Vec2) bool {
	return movement.Y >= abs(movement.X)
}

// Classify picks the next movement state. It has no side effects.
func Classify(d Decision) Transition {
	var t Transition

	strictlyGrounded := d.Current.Grounded() && d.Grounded
	wantsCrouch := d.WantsCrouch && strictlyGrounded

	hasInput := !d.Movement.IsZero()
	walking := d.MovingLaterally && (!CanRun(d.Movement) || d.Walk)
	sprinting := d.Sprint && d.MovingLaterally
	running := d.MovingLaterally || hasInput

	lateral := Idle
	switch {
	case walking:
		lateral = Walking
	case sprinting:
		lateral = Sprinting
	case running:
		lateral = Running
	}

	switch {
	case wantsCrouch:
		t.State = Crouching
	case d.Current == Crouching:
		if d.CanStandUp == nil || d.CanStandUp() {
			t.State = lateral
		} else {
			t.State = Crouching
			t.StandBlocked = true
		}
	default:
		t.State = lateral
	}

	airborne := !d.Grounded || d.Jumped
	if airborne {
		if d.VerticalVelocity > 0 {
			t.State = Jumping
		} else {
			t.State = Falling
		}
	}

	t.StepOffset = !airborne && d.SteepWallTimer <= 0
	return t
}
