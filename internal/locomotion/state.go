// Package locomotion implements the per-frame movement state machine and the
// physics integration behind a player-controlled character: ground probes,
// vertical and lateral integration, crouch shape and camera-relative rotation.
//
// A Character is driven by calling Tick once per frame. Everything runs
// synchronously on the caller's goroutine; characters share no state.
package locomotion

// MovementState is the single discrete movement state of a character.
type MovementState int

// Movement states.
const (
	Idle MovementState = iota
	Walking
	Running
	Sprinting
	Jumping
	Falling
	Crouching
	// Swimming is reserved. No transition produces it yet.
	Swimming

	numStates
)

var stateNames = [numStates]string{
	Idle:      "idle",
	Walking:   "walking",
	Running:   "running",
	Sprinting: "sprinting",
	Jumping:   "jumping",
	Falling:   "falling",
	Crouching: "crouching",
	Swimming:  "swimming",
}

// String returns the lower-case state name.
func (s MovementState) String() string {
	if s < 0 || s >= numStates {
		return "unknown"
	}
	return stateNames[s]
}

// Valid reports whether s is one of the declared states.
func (s MovementState) Valid() bool {
	return s >= 0 && s < numStates
}

// Grounded reports whether s is one of the grounded states
// {Idle, Crouching, Walking, Running, Sprinting}. This is the only place the
// classification is made; every other component asks the state.
func (s MovementState) Grounded() bool {
	switch s {
	case Idle, Crouching, Walking, Running, Sprinting:
		return true
	}
	return false
}

// ParseMovementState maps a state name back to its value.
func ParseMovementState(name string) (MovementState, bool) {
	for i, n := range stateNames {
		if n == name {
			return MovementState(i), true
		}
	}
	return Idle, false
}

// StateHolder owns the active state of one character together with the state
// that was active before the most recent classification.
type StateHolder struct {
	current MovementState
	last    MovementState
}

// NewStateHolder returns a holder starting in initial.
func NewStateHolder(initial MovementState) StateHolder {
	return StateHolder{current: initial, last: initial}
}

// Current returns the active state.
func (h *StateHolder) Current() MovementState { return h.current }

// Last returns the state that was active before the latest Set.
func (h *StateHolder) Last() MovementState { return h.last }

// InGroundedState reports whether the active state is a grounded state.
func (h *StateHolder) InGroundedState() bool { return h.current.Grounded() }

// Set makes s the active state and remembers the previous one.
func (h *StateHolder) Set(s MovementState) {
	h.last = h.current
	h.current = s
}
