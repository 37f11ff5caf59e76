package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/locomotion/internal/locomotion"
	"github.com/Faultbox/locomotion/pkg/math"
)

func TestSnapshotButtonEdges(t *testing.T) {
	in := New(DefaultBindings())

	in.KeyDown(sdl.SCANCODE_SPACE)
	if got := in.Snapshot().Jump; got != locomotion.Pressed {
		t.Errorf("first tick jump = %v, want pressed", got)
	}
	if got := in.Snapshot().Jump; got != locomotion.Held {
		t.Errorf("second tick jump = %v, want held", got)
	}
	in.KeyUp(sdl.SCANCODE_SPACE)
	if got := in.Snapshot().Jump; got != locomotion.Released {
		t.Errorf("after release jump = %v, want released", got)
	}
	if got := in.Snapshot().Jump; got != locomotion.Up {
		t.Errorf("idle jump = %v, want up", got)
	}
}

func TestSnapshotActionButtons(t *testing.T) {
	in := New(DefaultBindings())

	in.KeyDown(sdl.SCANCODE_F)
	in.KeyDown(sdl.SCANCODE_Q)
	in.KeyDown(sdl.SCANCODE_E)
	s := in.Snapshot()
	if s.Attack != locomotion.Pressed || s.Aim != locomotion.Pressed || s.Interact != locomotion.Pressed {
		t.Errorf("actions = %v %v %v, want all pressed", s.Attack, s.Aim, s.Interact)
	}
	if s.Movement != (math.Vec2{}) {
		t.Errorf("action keys moved the character: %+v", s.Movement)
	}
}

func TestSnapshotKeepsQuickTap(t *testing.T) {
	in := New(DefaultBindings())

	in.KeyDown(sdl.SCANCODE_C)
	in.KeyUp(sdl.SCANCODE_C)
	if got := in.Snapshot().Crouch; got != locomotion.Pressed {
		t.Errorf("tapped crouch = %v, want pressed", got)
	}
	if got := in.Snapshot().Crouch; got != locomotion.Released {
		t.Errorf("next tick crouch = %v, want released", got)
	}
}

func TestSnapshotMovement(t *testing.T) {
	tests := []struct {
		name string
		keys []sdl.Scancode
		want math.Vec2
	}{
		{"none", nil, math.Vec2{}},
		{"forward", []sdl.Scancode{sdl.SCANCODE_W}, math.Vec2{Y: 1}},
		{"back", []sdl.Scancode{sdl.SCANCODE_S}, math.Vec2{Y: -1}},
		{"opposed", []sdl.Scancode{sdl.SCANCODE_A, sdl.SCANCODE_D}, math.Vec2{}},
		{"diagonal", []sdl.Scancode{sdl.SCANCODE_W, sdl.SCANCODE_D}, math.Vec2{X: 0.70710677, Y: 0.70710677}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := New(DefaultBindings())
			for _, k := range tt.keys {
				in.KeyDown(k)
			}
			got := in.Snapshot().Movement
			if got.Sub(tt.want).Length() > 1e-5 {
				t.Errorf("movement = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSnapshotConsumesLook(t *testing.T) {
	in := New(DefaultBindings())

	in.MouseMotion(3, -1)
	in.MouseMotion(2, 4)
	if got := in.Snapshot().Look; got != (math.Vec2{X: 5, Y: 3}) {
		t.Errorf("look = %+v, want (5, 3)", got)
	}
	if got := in.Snapshot().Look; !got.IsZero() {
		t.Errorf("look after consume = %+v, want zero", got)
	}
}

func TestIsKeyPressed(t *testing.T) {
	in := New(DefaultBindings())
	in.KeyDown(sdl.SCANCODE_F1)

	if !in.IsKeyPressed(sdl.SCANCODE_F1) {
		t.Error("expected F1 to be reported as pressed")
	}
	if in.IsKeyPressed(sdl.SCANCODE_F2) {
		t.Error("F2 was not pressed")
	}
}
