package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/locomotion/internal/locomotion"
	"github.com/Faultbox/locomotion/pkg/math"
)

func TestParseDefaults(t *testing.T) {
	s, err := Parse([]byte("steps:\n  - ticks: 5\n"), locomotion.DefaultParams())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.DT != defaultDT {
		t.Errorf("dt = %v, want %v", s.DT, defaultDT)
	}
	if s.Scene.Empty() {
		t.Error("empty scene should fall back to the course")
	}
	if s.Locomotion != locomotion.DefaultParams() {
		t.Error("tuning should default to the base parameters")
	}
}

func TestParseOverridesTuning(t *testing.T) {
	data := []byte(`
name: custom
dt: 0.02
camera_yaw: 90
spawn: {x: 1, y: 0, z: 2}
locomotion:
  jump_height: 2
scene:
  boxes:
    - {min: {x: -5, y: -1, z: -5}, max: {x: 5, y: 0, z: 5}}
steps:
  - {ticks: 3, move: {y: 1}, sprint: true, expect: sprinting}
`)
	base := locomotion.DefaultParams()
	s, err := Parse(data, base)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if s.Name != "custom" || s.DT != 0.02 || s.CameraYaw != 90 {
		t.Errorf("header = %q %v %v", s.Name, s.DT, s.CameraYaw)
	}
	if s.Spawn != (math.Vec3{X: 1, Z: 2}) {
		t.Errorf("spawn = %+v", s.Spawn)
	}
	if s.Locomotion.JumpHeight != 2 {
		t.Errorf("jump height = %v, want 2", s.Locomotion.JumpHeight)
	}
	if s.Locomotion.Gravity != base.Gravity {
		t.Errorf("gravity = %v, want base %v", s.Locomotion.Gravity, base.Gravity)
	}
	if len(s.Scene.Boxes) != 1 || len(s.Scene.Ramps) != 0 {
		t.Errorf("scene = %+v, want the single box", s.Scene)
	}
	st := s.Steps[0]
	if st.Move != (math.Vec2{Y: 1}) || !st.Sprint || st.Expect != "sprinting" {
		t.Errorf("step = %+v", st)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no steps", "dt: 0.01\n"},
		{"negative dt", "dt: -1\nsteps:\n  - ticks: 1\n"},
		{"zero ticks", "steps:\n  - ticks: 0\n"},
		{"unknown state", "steps:\n  - {ticks: 1, expect: flying}\n"},
		{"bad tuning", "locomotion:\n  gravity: 0\nsteps:\n  - ticks: 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), locomotion.DefaultParams())
			if !errors.Is(err, ErrInvalidScript) {
				t.Errorf("error = %v, want ErrInvalidScript", err)
			}
		})
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("steps: [ticks: }"), locomotion.DefaultParams())
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if errors.Is(err, ErrInvalidScript) {
		t.Errorf("malformed YAML should not be reported as invalid script: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walk.yaml")
	if err := os.WriteFile(path, []byte("name: walk\nsteps:\n  - ticks: 2\n"), 0644); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	s, err := Load(path, locomotion.DefaultParams())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Name != "walk" {
		t.Errorf("name = %q, want walk", s.Name)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), locomotion.DefaultParams()); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestSnapshotsDeriveEdges(t *testing.T) {
	s := &Script{Steps: []Step{
		{Ticks: 2, Jump: true},
		{Ticks: 1},
		{Ticks: 1, Crouch: true, Move: math.Vec2{X: 1}},
		{Ticks: 1, Crouch: true},
	}}

	snaps := s.Snapshots()
	if len(snaps) != s.Ticks() || len(snaps) != 5 {
		t.Fatalf("got %d snapshots, want 5", len(snaps))
	}

	jumps := []locomotion.ButtonEvent{locomotion.Pressed, locomotion.Held, locomotion.Released, locomotion.Up, locomotion.Up}
	crouches := []locomotion.ButtonEvent{locomotion.Up, locomotion.Up, locomotion.Up, locomotion.Pressed, locomotion.Held}
	for i, snap := range snaps {
		if snap.Jump != jumps[i] {
			t.Errorf("tick %d: jump = %v, want %v", i, snap.Jump, jumps[i])
		}
		if snap.Crouch != crouches[i] {
			t.Errorf("tick %d: crouch = %v, want %v", i, snap.Crouch, crouches[i])
		}
	}
	if snaps[3].Movement != (math.Vec2{X: 1}) {
		t.Errorf("tick 3 movement = %+v", snaps[3].Movement)
	}
}

func TestSceneBounds(t *testing.T) {
	s := Scene{
		Boxes: []Box{{Min: math.Vec3{X: 1, Y: 1, Z: 1}, Max: math.Vec3{X: -1, Y: 0, Z: -1}}},
		Ramps: []Ramp{{Base: math.Vec3{Z: 1}, Width: 4, Length: 3, Height: 2}},
	}

	lo, hi := s.Bounds()
	if lo != (math.Vec3{X: -2, Y: 0, Z: -1}) {
		t.Errorf("lo = %+v", lo)
	}
	if hi != (math.Vec3{X: 2, Y: 2, Z: 4}) {
		t.Errorf("hi = %+v", hi)
	}
}
