package locomotion

import "github.com/Faultbox/locomotion/pkg/math"

// ButtonEvent is the per-tick state of one button.
type ButtonEvent uint8

// Button events.
const (
	// Up means the button is not down and was not down last tick.
	Up ButtonEvent = iota
	// Pressed means the button went down this tick.
	Pressed
	// Held means the button was already down and still is.
	Held
	// Released means the button went up this tick.
	Released
)

// String returns the event name.
func (e ButtonEvent) String() string {
	switch e {
	case Up:
		return "up"
	case Pressed:
		return "pressed"
	case Held:
		return "held"
	case Released:
		return "released"
	}
	return "unknown"
}

// Down reports whether the button is down this tick.
func (e ButtonEvent) Down() bool {
	return e == Pressed || e == Held
}

// EdgeOf derives the event from the button level last tick and now.
func EdgeOf(wasDown, isDown bool) ButtonEvent {
	switch {
	case isDown && !wasDown:
		return Pressed
	case isDown:
		return Held
	case wasDown:
		return Released
	}
	return Up
}

// Snapshot is the input for one tick. Movement is X=strafe, Y=forward.
type Snapshot struct {
	Movement math.Vec2
	Look     math.Vec2
	Jump     ButtonEvent
	Crouch   ButtonEvent
	Sprint   ButtonEvent
	Walk     ButtonEvent

	Attack   ButtonEvent
	Aim      ButtonEvent
	Interact ButtonEvent
}

// InputProvider supplies the snapshot for the current tick.
type InputProvider interface {
	Snapshot() Snapshot
}

// Fixed is an InputProvider that always returns the same snapshot.
type Fixed Snapshot

// Snapshot implements InputProvider.
func (f Fixed) Snapshot() Snapshot { return Snapshot(f) }

// Script replays a fixed sequence of snapshots, then repeats Idle input.
type Script struct {
	frames []Snapshot
	next   int
}

// NewScript returns a provider over frames.
func NewScript(frames ...Snapshot) *Script {
	return &Script{frames: frames}
}

// Snapshot implements InputProvider.
func (s *Script) Snapshot() Snapshot {
	if s.next >= len(s.frames) {
		return Snapshot{}
	}
	f := s.frames[s.next]
	s.next++
	return f
}

// Remaining returns how many scripted frames are left.
func (s *Script) Remaining() int {
	return len(s.frames) - s.next
}

// intent is the latched interpretation of the button stream.
type intent struct {
	crouch bool
	walk   bool
	sprint bool
	jump   bool

	// Attack and interact stay set until the animation layer clears them.
	attack   bool
	aim      bool
	interact bool
}

// latch folds one snapshot into the latched intent. Crouch and walk toggle on
// press; sprint is held or toggled depending on holdToSprint; a jump press
// cancels a latched crouch.
func (in *intent) latch(s Snapshot, holdToSprint bool) {
	if s.Crouch == Pressed {
		in.crouch = !in.crouch
	}
	if s.Walk == Pressed {
		in.walk = !in.walk
	}
	if holdToSprint {
		in.sprint = s.Sprint.Down()
	} else if s.Sprint == Pressed {
		in.sprint = !in.sprint
	}
	in.jump = s.Jump == Pressed
	if in.jump {
		in.crouch = false
	}
}

// latchActions folds the action buttons. Attack and interact latch on press;
// aim is held or toggled depending on holdToAim.
func (in *intent) latchActions(s Snapshot, holdToAim bool) {
	if s.Attack == Pressed {
		in.attack = true
	}
	if s.Interact == Pressed {
		in.interact = true
	}
	if holdToAim {
		in.aim = s.Aim.Down()
	} else if s.Aim == Pressed {
		in.aim = !in.aim
	}
}

// cancelInteract drops a pending interact once the character moves, leaves
// the ground or sprints.
func (in *intent) cancelInteract(movement math.Vec2, state MovementState) {
	switch {
	case movement != (math.Vec2{}),
		state == Jumping, state == Falling, state == Sprinting:
		in.interact = false
	}
}
