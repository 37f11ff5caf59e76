package sandbox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/locomotion/internal/config"
	"github.com/Faultbox/locomotion/internal/locomotion"
	"github.com/Faultbox/locomotion/internal/scenario"
	"github.com/Faultbox/locomotion/pkg/math"
)

func TestClockAdvance(t *testing.T) {
	c := NewClock(60)
	step := time.Second / 60

	if n := c.Advance(step / 2); n != 0 {
		t.Errorf("half a step ran %d ticks", n)
	}
	if n := c.Advance(step / 2); n != 1 {
		t.Errorf("accumulated step ran %d ticks, want 1", n)
	}
	if n := c.Advance(3 * step); n != 3 {
		t.Errorf("three steps ran %d ticks, want 3", n)
	}
	if d := c.DT(); d < 0.0166 || d > 0.0167 {
		t.Errorf("dt = %v", d)
	}
}

func TestClockDropsStalls(t *testing.T) {
	c := NewClock(60)

	if n := c.Advance(time.Second); n != maxTicksPerFrame {
		t.Errorf("stall ran %d ticks, want %d", n, maxTicksPerFrame)
	}
	if c.Dropped() != 60-maxTicksPerFrame {
		t.Errorf("dropped = %d, want %d", c.Dropped(), 60-maxTicksPerFrame)
	}
	if n := c.Advance(0); n != 0 {
		t.Errorf("stall carried over %d ticks", n)
	}
}

func TestClockDefaultRate(t *testing.T) {
	if c := NewClock(0); c.step != time.Second/60 {
		t.Errorf("step = %v, want 1/60s", c.step)
	}
}

func newSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(config.Default(), scenario.Course(), DefaultSpawn)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestSessionStep(t *testing.T) {
	s := newSession(t)
	dt := float32(1) / 60

	for i := 0; i < 60; i++ {
		s.Step(dt, locomotion.Snapshot{Movement: math.Vec2{Y: 1}})
	}
	if s.Character.State() != locomotion.Running {
		t.Errorf("state = %v, want running", s.Character.State())
	}
	if s.Ticks() != 60 {
		t.Errorf("ticks = %d, want 60", s.Ticks())
	}
	if z := s.Body.Position().Z; z <= DefaultSpawn.Z {
		t.Errorf("z = %v, want forward progress", z)
	}
	if !strings.HasPrefix(s.Status(), "running") {
		t.Errorf("status = %q", s.Status())
	}
}

func TestSessionLookTurnsCamera(t *testing.T) {
	s := newSession(t)
	s.Step(float32(1)/60, locomotion.Snapshot{Look: math.Vec2{X: 100}})

	want := 100 * s.Config().Camera.LookSenseH
	if d := s.Rig.Yaw - want; d > 1e-4 || d < -1e-4 {
		t.Errorf("yaw = %v, want %v", s.Rig.Yaw, want)
	}
}

func TestSessionReset(t *testing.T) {
	s := newSession(t)
	for i := 0; i < 30; i++ {
		s.Step(float32(1)/60, locomotion.Snapshot{Movement: math.Vec2{Y: 1}})
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if s.Body.Position() != DefaultSpawn {
		t.Errorf("position = %+v, want spawn", s.Body.Position())
	}
	if s.Character.State() != locomotion.Idle || s.Ticks() != 0 {
		t.Errorf("state = %v ticks = %d after reset", s.Character.State(), s.Ticks())
	}
}

func TestSessionApply(t *testing.T) {
	s := newSession(t)

	bad := config.Default()
	bad.Locomotion.Gravity = -1
	if err := s.Apply(bad); err == nil {
		t.Error("expected invalid tuning to be rejected")
	}
	if s.Config().Locomotion.Gravity != config.Default().Locomotion.Gravity {
		t.Error("rejected config should not replace the active one")
	}

	good := config.Default()
	good.Locomotion.JumpHeight = 3
	good.Camera.LookLimitV = 30
	if err := s.Apply(good); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if s.Character.Params().JumpHeight != 3 {
		t.Errorf("jump height = %v, want 3", s.Character.Params().JumpHeight)
	}
	if s.Rig.Pitch > 30 {
		t.Errorf("pitch = %v, want clamped to 30", s.Rig.Pitch)
	}
}

func TestSessionLines(t *testing.T) {
	s := newSession(t)
	plain := s.Lines(false)
	probes := s.Lines(true)

	if len(plain) == 0 {
		t.Fatal("no lines drawn")
	}
	if len(probes) <= len(plain) {
		t.Errorf("probes should add lines: %d vs %d", len(probes), len(plain))
	}
}

func TestLoadSceneFromScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	data := `
spawn: {x: 1, y: 0, z: 1}
scene:
  boxes:
    - {min: {x: -3, y: -1, z: -3}, max: {x: 3, y: 0, z: 3}}
steps:
  - ticks: 1
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write scene: %v", err)
	}

	cfg := config.Default()
	cfg.Sandbox.Scene = path
	s, err := Load(cfg)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Body.Position() != (math.Vec3{X: 1, Z: 1}) {
		t.Errorf("spawn = %+v", s.Body.Position())
	}
	if n := len(s.World.Colliders()); n != 1 {
		t.Errorf("colliders = %d, want 1", n)
	}

	cfg.Sandbox.Scene = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := Load(cfg); err == nil {
		t.Error("expected error for a missing scene")
	}
}
