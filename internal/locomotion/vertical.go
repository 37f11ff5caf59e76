package locomotion

// Vertical integrates the character's vertical speed. It is separate from the
// lateral velocity so gravity, jumps and ground snapping never fight the
// lateral drag.
type Vertical struct {
	// Velocity is the signed vertical speed, positive up.
	Velocity float32
	// Coyote is the remaining window in which a jump is still accepted after
	// leaving the ground. It goes negative while airborne.
	Coyote float32

	// launched is set by a jump and cleared on landing; it separates a jump
	// from walking off a ledge.
	launched bool
}

// Step advances one tick. grounded and wasGrounded are the grounded
// classification of the current and previous movement states. It returns
// whether a jump was applied this tick.
func (v *Vertical) Step(dt float32, p *Params, grounded, wasGrounded, jumpRequested bool) bool {
	antiBump := p.EffectiveAntiBump()

	v.Velocity -= p.Gravity * dt

	if grounded && v.Velocity <= 0 {
		v.Velocity = -antiBump
		v.Coyote = p.CoyoteTime
		v.launched = false
	} else {
		v.Coyote -= dt
	}

	jumped := false
	if jumpRequested && (grounded || v.Coyote > 0) {
		v.Velocity = p.JumpVelocity()
		v.Coyote = 0
		v.launched = true
		jumped = true
	}

	// Walking off a ledge: drop the ground bias so the fall starts from rest.
	if wasGrounded && !grounded && !v.launched {
		v.Velocity += antiBump
	}

	if abs(v.Velocity) > p.TerminalVelocity {
		v.Velocity = -p.TerminalVelocity
	}
	return jumped
}

// Launched reports whether the character is airborne because of a jump.
func (v *Vertical) Launched() bool {
	return v.launched
}
