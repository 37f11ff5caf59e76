package locomotion

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/locomotion/internal/logger"
	"github.com/Faultbox/locomotion/pkg/math"
)

// Character is the composition of one player-controlled mover. It is built
// once at spawn and advanced with Tick. A Character is not safe for
// concurrent use; separate characters are independent.
type Character struct {
	params Params
	table  StateTable

	body   Body
	world  World
	camera CameraView

	probe    Probe
	states   StateHolder
	vertical Vertical
	lateral  Lateral
	rotator  *Rotator
	intent   intent

	grounded       bool
	nearWall       bool
	steepWallTimer float32
	blend          math.Vec2
	frame          AnimationFrame

	log *zap.Logger
}

// NewCharacter validates the collaborators and tuning and puts the body in
// its standing shape.
func NewCharacter(p Params, body Body, world World, camera CameraView) (*Character, error) {
	if body == nil {
		return nil, fmt.Errorf("new character: %w", ErrMissingBody)
	}
	if world == nil {
		return nil, fmt.Errorf("new character: %w", ErrMissingWorld)
	}
	if camera == nil {
		return nil, fmt.Errorf("new character: %w", ErrMissingCamera)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("new character: %w", err)
	}

	c := &Character{
		body:    body,
		world:   world,
		camera:  camera,
		states:  NewStateHolder(Idle),
		rotator: NewRotator(p.Rotation),
		log:     logger.Named("locomotion"),
	}
	c.applyParams(p)
	c.lateral = NewLateral(&c.params)

	body.SetHeight(p.Shape.StandingHeight)
	body.SetCenter(p.Shape.StandingCenter)
	body.SetStepOffset(p.Shape.StepOffset)

	c.frame = AnimationFrame{State: Idle}
	return c, nil
}

func (c *Character) applyParams(p Params) {
	c.params = p
	c.table = c.params.Table()
	c.rotator.SetParams(p.Rotation)
	c.probe = Probe{
		World:      c.world,
		Body:       c.body,
		Mask:       p.GroundMask,
		SlopeLimit: p.SlopeLimit,
		WallCheck:  p.WallCheckDistance,
	}
}

// SetParams swaps the tuning between ticks. Integration state is kept.
func (c *Character) SetParams(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	c.applyParams(p)
	c.log.Debug("params replaced")
	return nil
}

// Params returns the active tuning.
func (c *Character) Params() Params { return c.params }

// State returns the current movement state.
func (c *Character) State() MovementState { return c.states.Current() }

// LastState returns the state before the most recent transition.
func (c *Character) LastState() MovementState { return c.states.Last() }

// Grounded returns the probe result of the last tick.
func (c *Character) Grounded() bool { return c.grounded }

// NearWall returns the cached near-wall flag of the last tick.
func (c *Character) NearWall() bool { return c.nearWall }

// VerticalVelocity returns the integrated vertical speed.
func (c *Character) VerticalVelocity() float32 { return c.vertical.Velocity }

// CoyoteTimer returns the remaining coyote window.
func (c *Character) CoyoteTimer() float32 { return c.vertical.Coyote }

// SteepWallTimer returns the remaining steep-wall cooldown.
func (c *Character) SteepWallTimer() float32 { return c.steepWallTimer }

// SpeedCap returns the smoothed horizontal speed cap.
func (c *Character) SpeedCap() float32 { return c.lateral.SpeedCap }

// Body returns the body the character drives.
func (c *Character) Body() Body { return c.body }

// SurfaceNormal returns the normal of the ground under the body, or up when
// nothing is below it.
func (c *Character) SurfaceNormal() math.Vec3 { return c.probe.SurfaceNormal() }

// Frame returns the animation frame of the last tick.
func (c *Character) Frame() AnimationFrame { return c.frame }

// Tick advances the character by dt seconds. The order is fixed: vertical
// integration, state selection, crouch shape, lateral integration and move,
// then rotation. A non-positive dt is ignored.
func (c *Character) Tick(dt float32, input InputProvider) AnimationFrame {
	if dt <= 0 {
		return c.frame
	}

	var snap Snapshot
	if input != nil {
		snap = input.Snapshot()
	}
	c.intent.latch(snap, c.params.HoldToSprint)
	c.intent.latchActions(snap, c.params.HoldToAim)

	jumped := c.vertical.Step(dt, &c.params,
		c.states.Current().Grounded(), c.states.Last().Grounded(), c.intent.jump)

	c.updateState(dt, snap, jumped)

	state := c.states.Current()
	c.intent.cancelInteract(snap.Movement, state)
	UpdateShape(c.body, c.params.Shape, state, dt)

	c.move(dt, snap, state)

	moving := state != Idle
	c.rotator.Update(dt, c.body, c.camera, !moving, !c.params.FaceMoveDirection)

	c.frame = c.buildFrame(dt, state)
	return c.frame
}

func (c *Character) updateState(dt float32, snap Snapshot, jumped bool) {
	current := c.states.Current()
	velocity := c.body.Velocity()

	c.grounded = c.probe.IsGrounded(current)

	if c.steepWallTimer > 0 {
		c.steepWallTimer -= dt
	}
	c.nearWall = c.probe.DetectNearbyWall(velocity)
	if c.nearWall {
		c.steepWallTimer = c.params.SteepWallCooldown
	}

	shape := c.params.Shape
	t := Classify(Decision{
		Current:          current,
		Movement:         snap.Movement,
		Grounded:         c.grounded,
		MovingLaterally:  velocity.Flat().Length() > c.params.MovementThreshold,
		WantsCrouch:      c.intent.crouch,
		Walk:             c.intent.walk,
		Sprint:           c.intent.sprint,
		Jumped:           jumped,
		VerticalVelocity: c.vertical.Velocity,
		SteepWallTimer:   c.steepWallTimer,
		CanStandUp: func() bool {
			return c.probe.CanStandUp(shape.StandingHeight, shape.StandingCenter)
		},
	})

	if t.StandBlocked {
		c.log.Debug("stand up blocked", zap.Float32("height", c.body.Height()))
	}
	if t.State != current {
		c.log.Debug("state transition",
			zap.Stringer("from", current),
			zap.Stringer("to", t.State),
			zap.Float32("vertical", c.vertical.Velocity),
		)
	}
	c.states.Set(t.State)

	if t.StepOffset {
		c.body.SetStepOffset(shape.StepOffset)
	} else {
		c.body.SetStepOffset(0)
	}
}

func (c *Character) move(dt float32, snap Snapshot, state MovementState) {
	st := c.table.Lookup(state)
	dir := MoveDirection(c.camera, snap.Movement)

	v := c.lateral.Integrate(dt, st, c.params.SpeedSmoothing, dir, c.body.Velocity(), c.vertical.Velocity)
	if !c.states.InGroundedState() {
		v = c.probe.AdjustVelocityForSteepGround(v, c.params.SteepFriction)
	}

	if c.params.FaceMoveDirection {
		c.body.SetRotation(FaceToward(c.body.Rotation(), dir, c.params.MovementThreshold, dt))
	}

	c.body.Move(v.Scale(dt), dt)
}

func (c *Character) buildFrame(dt float32, state MovementState) AnimationFrame {
	st := c.table.Lookup(state)
	target := blendTarget(c.body.Rotation(), c.body.Velocity().Flat(), st)
	c.blend = c.blend.Lerp(target, c.params.BlendSpeed*dt)

	return AnimationFrame{
		State:            state,
		Grounded:         state.Grounded(),
		Blend:            c.blend,
		BlendMagnitude:   c.blend.Length(),
		RotationMismatch: c.rotator.Mismatch(),
		RotatingToTarget: c.rotator.Turning(),
		VerticalVelocity: c.vertical.Velocity,
		Attacking:        c.intent.attack,
		Aiming:           c.intent.aim,
		Interacting:      c.intent.interact,
		PlayingAction:    c.intent.interact,
	}
}

// ClearAttack ends a latched attack. The animation layer calls it when the
// attack clip finishes.
func (c *Character) ClearAttack() {
	c.intent.attack = false
	c.frame.Attacking = false
}

// ClearInteract ends a latched interact.
func (c *Character) ClearInteract() {
	c.intent.interact = false
	c.frame.Interacting = false
	c.frame.PlayingAction = false
}
