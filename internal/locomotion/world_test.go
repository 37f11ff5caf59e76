package locomotion_test

import (
	"testing"

	"github.com/Faultbox/locomotion/internal/engine/collision"
	"github.com/Faultbox/locomotion/internal/locomotion"
	"github.com/Faultbox/locomotion/pkg/math"
)

const dt = float32(1) / 60

type fixedCamera struct{}

func (fixedCamera) Forward() math.Vec3 { return math.Forward }
func (fixedCamera) Right() math.Vec3   { return math.Right }

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// spawn places a character with default tuning on a large floor whose top is y = 0.
func spawn(t *testing.T, at math.Vec3) (*locomotion.Character, *collision.World, *collision.Body) {
	t.Helper()
	w := collision.NewWorld()
	w.AddBox(math.Vec3{X: -100, Y: -1, Z: -100}, math.Vec3{X: 100, Y: 0, Z: 100}, 0)

	p := locomotion.DefaultParams()
	body := collision.NewBody(w, at, p.Shape.Radius, p.Shape.StandingHeight)
	c, err := locomotion.NewCharacter(p, body, w, fixedCamera{})
	if err != nil {
		t.Fatalf("NewCharacter: %v", err)
	}
	return c, w, body
}

func TestCharacter_RunSettlesAtTopSpeed(t *testing.T) {
	c, _, body := spawn(t, math.Vec3{})
	p := c.Params()

	run := locomotion.Fixed{Movement: math.Vec2{Y: 1}}
	for i := 0; i < 120; i++ {
		c.Tick(dt, run)
	}

	if c.State() != locomotion.Running {
		t.Errorf("state = %v, want running", c.State())
	}
	if speed := body.Velocity().Flat().Length(); abs(speed-p.Run.TopSpeed) > 0.05 {
		t.Errorf("speed = %v, want %v", speed, p.Run.TopSpeed)
	}
	if v := c.VerticalVelocity(); v != -p.EffectiveAntiBump() {
		t.Errorf("vertical velocity = %v, want %v", v, -p.EffectiveAntiBump())
	}
	if z := body.Position().Z; z < 9 {
		t.Errorf("travelled %v, want most of 12 units", z)
	}
	if y := body.Position().Y; abs(y) > 1e-2 {
		t.Errorf("feet at %v, want on the floor", y)
	}
}

func TestCharacter_SingleJump(t *testing.T) {
	c, _, _ := spawn(t, math.Vec3{})
	p := c.Params()

	for i := 0; i < 10; i++ {
		c.Tick(dt, nil)
	}
	if c.State() != locomotion.Idle {
		t.Fatalf("state before jump = %v, want idle", c.State())
	}

	frame := c.Tick(dt, locomotion.Fixed{Jump: locomotion.Pressed})
	if frame.State != locomotion.Jumping {
		t.Fatalf("state = %v, want jumping", frame.State)
	}
	if abs(c.VerticalVelocity()-p.JumpVelocity()) > 1e-4 {
		t.Errorf("vertical = %v, want %v", c.VerticalVelocity(), p.JumpVelocity())
	}
	if c.CoyoteTimer() != 0 {
		t.Errorf("coyote = %v, want 0", c.CoyoteTimer())
	}

	for i := 0; i < 5; i++ {
		c.Tick(dt, locomotion.Fixed{Jump: locomotion.Held})
	}
	before := c.VerticalVelocity()
	c.Tick(dt, nil)
	c.Tick(dt, locomotion.Fixed{Jump: locomotion.Pressed})
	if got := c.VerticalVelocity(); got > before {
		t.Errorf("second press in the air changed vertical velocity from %v to %v", before, got)
	}

	landed := false
	for i := 0; i < 180; i++ {
		if c.Tick(dt, nil).Grounded {
			landed = true
			break
		}
	}
	if !landed {
		t.Fatal("character never landed")
	}
	if c.State() != locomotion.Idle {
		t.Errorf("state after landing = %v, want idle", c.State())
	}
}

func TestCharacter_FallInvariants(t *testing.T) {
	c, _, body := spawn(t, math.Vec3{Y: 80})
	p := c.Params()

	for i := 0; i < 600; i++ {
		frame := c.Tick(dt, nil)
		if v := c.VerticalVelocity(); abs(v) > p.TerminalVelocity {
			t.Fatalf("tick %d: |vertical| %v exceeds terminal %v", i, v, p.TerminalVelocity)
		}
		if !frame.State.Valid() {
			t.Fatalf("tick %d: invalid state %v", i, frame.State)
		}
		if frame.Grounded != frame.State.Grounded() {
			t.Fatalf("tick %d: grounded flag %v disagrees with state %v", i, frame.Grounded, frame.State)
		}
		if frame.State == locomotion.Jumping {
			t.Fatalf("tick %d: jumping without a jump", i)
		}
	}
	if c.State() != locomotion.Idle {
		t.Errorf("state after the fall = %v, want idle", c.State())
	}
	if y := body.Position().Y; abs(y) > 1e-2 {
		t.Errorf("feet at %v, want on the floor", y)
	}
}

func TestCharacter_CrouchBlockedByCeiling(t *testing.T) {
	c, w, body := spawn(t, math.Vec3{})
	p := c.Params()

	c.Tick(dt, locomotion.Fixed{Crouch: locomotion.Pressed})
	for i := 0; i < 120; i++ {
		c.Tick(dt, nil)
	}
	if c.State() != locomotion.Crouching {
		t.Fatalf("state = %v, want crouching", c.State())
	}
	if abs(body.Height()-p.Shape.CrouchHeight) > 1e-2 {
		t.Fatalf("height = %v, want %v", body.Height(), p.Shape.CrouchHeight)
	}

	ceiling := w.AddBox(math.Vec3{X: -2, Y: 1.5, Z: -2}, math.Vec3{X: 2, Y: 2, Z: 2}, 0)

	c.Tick(dt, locomotion.Fixed{Crouch: locomotion.Pressed})
	for i := 0; i < 200; i++ {
		if s := c.Tick(dt, nil).State; s != locomotion.Crouching {
			t.Fatalf("tick %d: stood up into the ceiling, state %v", i, s)
		}
	}
	if abs(body.Height()-p.Shape.CrouchHeight) > 1e-2 {
		t.Errorf("height = %v, want to stay crouched", body.Height())
	}

	w.Remove(ceiling)
	c.Tick(dt, nil)
	if c.State() != locomotion.Idle {
		t.Errorf("state with clearance = %v, want idle", c.State())
	}
}

func TestCharacter_CoyoteJumpOffLedge(t *testing.T) {
	w := collision.NewWorld()
	w.AddBox(math.Vec3{X: -10, Y: -1, Z: -10}, math.Vec3{X: 10, Y: 0, Z: 1}, 0)

	p := locomotion.DefaultParams()
	body := collision.NewBody(w, math.Vec3{}, p.Shape.Radius, p.Shape.StandingHeight)
	c, err := locomotion.NewCharacter(p, body, w, fixedCamera{})
	if err != nil {
		t.Fatalf("NewCharacter: %v", err)
	}

	run := locomotion.Fixed{Movement: math.Vec2{Y: 1}}
	fell := false
	for i := 0; i < 120; i++ {
		if c.Tick(dt, run).State == locomotion.Falling {
			fell = true
			break
		}
	}
	if !fell {
		t.Fatalf("never left the ledge, z = %v", body.Position().Z)
	}

	frame := c.Tick(dt, locomotion.Fixed{Movement: math.Vec2{Y: 1}, Jump: locomotion.Pressed})
	if frame.State != locomotion.Jumping {
		t.Errorf("state = %v, want a coyote jump", frame.State)
	}
}

func TestCharacter_WalkToggle(t *testing.T) {
	c, _, body := spawn(t, math.Vec3{})
	p := c.Params()

	c.Tick(dt, locomotion.Fixed{Movement: math.Vec2{Y: 1}, Walk: locomotion.Pressed})
	for i := 0; i < 180; i++ {
		c.Tick(dt, locomotion.Fixed{Movement: math.Vec2{Y: 1}})
	}
	if c.State() != locomotion.Walking {
		t.Errorf("state = %v, want walking", c.State())
	}
	if speed := body.Velocity().Flat().Length(); abs(speed-p.Walk.TopSpeed) > 0.05 {
		t.Errorf("speed = %v, want %v", speed, p.Walk.TopSpeed)
	}
}

func TestCharacter_Sprint(t *testing.T) {
	c, _, body := spawn(t, math.Vec3{})
	p := c.Params()

	c.Tick(dt, locomotion.Fixed{Movement: math.Vec2{Y: 1}, Sprint: locomotion.Pressed})
	for i := 0; i < 180; i++ {
		c.Tick(dt, locomotion.Fixed{Movement: math.Vec2{Y: 1}, Sprint: locomotion.Held})
	}
	if c.State() != locomotion.Sprinting {
		t.Errorf("state = %v, want sprinting", c.State())
	}
	if speed := body.Velocity().Flat().Length(); abs(speed-p.Sprint.TopSpeed) > 0.05 {
		t.Errorf("speed = %v, want %v", speed, p.Sprint.TopSpeed)
	}
}

func TestCharacter_StaysGroundedClimbingRamp(t *testing.T) {
	c, w, body := spawn(t, math.Vec3{Z: -1})
	// 30 degrees, inside the default slope limit.
	w.AddRamp(math.Vec3{Z: 2}, 6, 10, 5.77, 0)

	run := locomotion.Fixed{Movement: math.Vec2{Y: 1}}
	onRamp := 0
	for i := 0; i < 300; i++ {
		c.Tick(dt, run)
		pos := body.Position()
		if pos.Z > 11.5 {
			break
		}
		if pos.Z < 2.5 {
			continue
		}
		onRamp++
		if !c.State().Grounded() {
			t.Fatalf("tick %d at %+v: state %v on a walkable ramp", i, pos, c.State())
		}
	}

	if onRamp < 30 {
		t.Fatalf("only %d ticks on the ramp", onRamp)
	}
	pos := body.Position()
	if abs(pos.X) > 0.1 {
		t.Errorf("drifted sideways to x = %v", pos.X)
	}
	if pos.Y < 4 {
		t.Errorf("y = %v, want the character near the top", pos.Y)
	}
}
