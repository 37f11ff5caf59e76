// Package input turns SDL2 events into per-tick locomotion input.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/locomotion/internal/locomotion"
	"github.com/Faultbox/locomotion/pkg/math"
)

// Event types for sandbox use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseDown
	EventMouseUp
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
}

// Action is a bindable control.
type Action int

// Actions.
const (
	Forward Action = iota
	Back
	Left
	Right
	Jump
	Crouch
	Sprint
	Walk
	Attack
	Aim
	Interact
	numActions
)

// Bindings maps each action to a key.
type Bindings [numActions]sdl.Scancode

// DefaultBindings is WASD with space to jump, C to crouch, left shift to
// sprint and Z to toggle walking. F attacks, Q aims and E interacts.
func DefaultBindings() Bindings {
	return Bindings{
		Forward:  sdl.SCANCODE_W,
		Back:     sdl.SCANCODE_S,
		Left:     sdl.SCANCODE_A,
		Right:    sdl.SCANCODE_D,
		Jump:     sdl.SCANCODE_SPACE,
		Crouch:   sdl.SCANCODE_C,
		Sprint:   sdl.SCANCODE_LSHIFT,
		Walk:     sdl.SCANCODE_Z,
		Attack:   sdl.SCANCODE_F,
		Aim:      sdl.SCANCODE_Q,
		Interact: sdl.SCANCODE_E,
	}
}

// Input handles all input processing. It accumulates key levels and mouse
// motion between ticks; Snapshot consumes them.
type Input struct {
	events   []Event
	bindings Bindings

	keys   map[sdl.Scancode]bool
	tapped map[sdl.Scancode]bool
	prev   [numActions]bool

	look  math.Vec2
	wheel float32
}

// New creates a new input handler.
func New(b Bindings) *Input {
	return &Input{
		events:   make([]Event, 0, 16),
		bindings: b,
		keys:     make(map[sdl.Scancode]bool),
		tapped:   make(map[sdl.Scancode]bool),
	}
}

// Update polls SDL events. Returns true if the sandbox should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0] // Clear previous events

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			if e.Type == sdl.KEYDOWN {
				i.KeyDown(e.Keysym.Scancode)
			} else if e.Type == sdl.KEYUP {
				i.KeyUp(e.Keysym.Scancode)
			}

		case *sdl.MouseMotionEvent:
			i.MouseMotion(float32(e.XRel), float32(e.YRel))

		case *sdl.MouseWheelEvent:
			i.wheel += float32(e.Y)

		case *sdl.MouseButtonEvent:
			typ := EventMouseDown
			if e.Type == sdl.MOUSEBUTTONUP {
				typ = EventMouseUp
			}
			i.events = append(i.events, Event{
				Type:   typ,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				Button: e.Button,
			})
		}
	}

	return false
}

// KeyDown records a key press.
func (i *Input) KeyDown(key sdl.Scancode) {
	i.keys[key] = true
	i.tapped[key] = true
	i.events = append(i.events, Event{Type: EventKeyDown, Key: key})
}

// KeyUp records a key release.
func (i *Input) KeyUp(key sdl.Scancode) {
	i.keys[key] = false
	i.events = append(i.events, Event{Type: EventKeyUp, Key: key})
}

// MouseMotion accumulates relative mouse motion for the next snapshot.
func (i *Input) MouseMotion(dx, dy float32) {
	i.look = i.look.Add(math.Vec2{X: dx, Y: dy})
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// Wheel returns and clears the accumulated scroll.
func (i *Input) Wheel() float32 {
	w := i.wheel
	i.wheel = 0
	return w
}

// Snapshot builds the input for one tick. A key pressed and released
// between two ticks still counts as down for one tick.
func (i *Input) Snapshot() locomotion.Snapshot {
	var down [numActions]bool
	for a, key := range i.bindings {
		down[a] = i.keys[key] || i.tapped[key]
	}
	clear(i.tapped)

	move := math.Vec2{}
	if down[Forward] {
		move.Y++
	}
	if down[Back] {
		move.Y--
	}
	if down[Right] {
		move.X++
	}
	if down[Left] {
		move.X--
	}

	s := locomotion.Snapshot{
		Movement: move.Normalize(),
		Look:     i.look,
		Jump:     locomotion.EdgeOf(i.prev[Jump], down[Jump]),
		Crouch:   locomotion.EdgeOf(i.prev[Crouch], down[Crouch]),
		Sprint:   locomotion.EdgeOf(i.prev[Sprint], down[Sprint]),
		Walk:     locomotion.EdgeOf(i.prev[Walk], down[Walk]),
		Attack:   locomotion.EdgeOf(i.prev[Attack], down[Attack]),
		Aim:      locomotion.EdgeOf(i.prev[Aim], down[Aim]),
		Interact: locomotion.EdgeOf(i.prev[Interact], down[Interact]),
	}
	i.look = math.Vec2{}
	i.prev = down
	return s
}

var _ locomotion.InputProvider = (*Input)(nil)
